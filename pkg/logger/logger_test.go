package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestComponentKeepsLevel(t *testing.T) {
	l := New(Config{Env: "production", Level: "error"}).Component("orders")
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
	assert.NotNil(t, Nop().Component("x"))
}
