package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_ContadoresDeNegocio(t *testing.T) {
	m := NewPrometheus(false)

	m.OrderCreated()
	m.OrderCreated()
	m.OrderRejected("insufficient_stock")
	m.StatusChanged("PENDING", "CONFIRMED")
	m.PointsAccrued(7)
	m.PointsRedeemed(3)
	m.GoodsReceived(4)
	m.CarrierFailed("GHN")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersRejected.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("PENDING", "CONFIRMED")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.pointsAccrued))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pointsRedeemed))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.receiptLines))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.carrierErrors.WithLabelValues("GHN")))
}

func TestPrometheus_Handler(t *testing.T) {
	m := NewPrometheus(false)
	m.OrderCreated()
	m.ObserveHTTP(http.MethodGet, "/api/orders/:id", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tienda_orders_created_total 1")
	assert.Contains(t, string(body), `tienda_http_requests_total{method="GET",route="/api/orders/:id",status="200"} 1`)
}
