// Package metrics contadores de negocio y HTTP expuestos en /metrics (Prometheus).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/tienda-backoffice/internal/application/ports"
)

const namespace = "tienda"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics sobre un registry propio (sin estado global,
// se pueden crear varias instancias en tests).
type Prometheus struct {
	registry *prometheus.Registry

	ordersCreated  prometheus.Counter
	ordersRejected *prometheus.CounterVec
	statusChanges  *prometheus.CounterVec
	pointsAccrued  prometheus.Counter
	pointsRedeemed prometheus.Counter
	receiptLines   prometheus.Counter
	carrierErrors  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus crea y registra todas las métricas. withRuntime agrega métricas de Go y del proceso.
func NewPrometheus(withRuntime bool) *Prometheus {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := &Prometheus{
		registry:       reg,
		ordersCreated:  counter("orders_created_total", "Pedidos confirmados."),
		ordersRejected: counterVec("orders_rejected_total", "Pedidos rechazados por motivo.", "reason"),
		statusChanges:  counterVec("order_status_changes_total", "Transiciones de estado aplicadas.", "from", "to"),
		pointsAccrued:  counter("loyalty_points_accrued_total", "Puntos acreditados por entregas."),
		pointsRedeemed: counter("loyalty_points_redeemed_total", "Puntos redimidos en pedidos."),
		receiptLines:   counter("goods_receipt_lines_total", "Líneas de mercancía recibidas."),
		carrierErrors:  counterVec("carrier_failures_total", "Fallos al solicitar guía a la transportadora.", "carrier"),
		httpRequests:   counterVec("http_requests_total", "Peticiones HTTP por método, ruta y código.", "method", "route", "status"),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.ordersCreated, m.ordersRejected, m.statusChanges,
		m.pointsAccrued, m.pointsRedeemed, m.receiptLines, m.carrierErrors,
		m.httpRequests, m.httpDuration,
	)
	return m
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func (m *Prometheus) OrderCreated()                 { m.ordersCreated.Inc() }
func (m *Prometheus) OrderRejected(reason string)   { m.ordersRejected.WithLabelValues(reason).Inc() }
func (m *Prometheus) StatusChanged(from, to string) { m.statusChanges.WithLabelValues(from, to).Inc() }
func (m *Prometheus) PointsAccrued(points int)      { m.pointsAccrued.Add(float64(points)) }
func (m *Prometheus) PointsRedeemed(points int)     { m.pointsRedeemed.Add(float64(points)) }
func (m *Prometheus) GoodsReceived(lines int)       { m.receiptLines.Add(float64(lines)) }
func (m *Prometheus) CarrierFailed(id string)       { m.carrierErrors.WithLabelValues(id).Inc() }

// ObserveHTTP registra una petición ya respondida. route es el patrón (/api/orders/:id), no la URL.
func (m *Prometheus) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
