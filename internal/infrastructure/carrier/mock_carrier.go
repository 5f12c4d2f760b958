// Package carrier adaptadores de transportadora. MockCarrier genera guías localmente
// con el formato de GHN y VTP; no hay integración real.
package carrier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
)

// Prefijos de guía por transportadora.
var prefixes = map[string]string{
	"GHN": "GHN",
	"VTP": "VTP",
}

// MockCarrier implementa ports.Carrier. Latency simula el tiempo de respuesta.
type MockCarrier struct {
	Latency time.Duration
}

// NewMockCarrier crea el adaptador.
func NewMockCarrier(latency time.Duration) *MockCarrier {
	return &MockCarrier{Latency: latency}
}

// PushOrder devuelve prefijo + id del pedido + 8 caracteres aleatorios en mayúscula.
func (m *MockCarrier) PushOrder(ctx context.Context, carrierID, orderID string) (string, error) {
	prefix, ok := prefixes[strings.ToUpper(strings.TrimSpace(carrierID))]
	if !ok {
		return "", fmt.Errorf("%w: transportadora %q no soportada", domain.ErrInvalidInput, carrierID)
	}
	if m.Latency > 0 {
		t := time.NewTimer(m.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return prefix + orderID + suffix, nil
}
