package ports

// Metrics define los contadores de negocio que exponen los casos de uso.
type Metrics interface {
	OrderCreated()
	OrderRejected(reason string)
	StatusChanged(from, to string)
	PointsAccrued(points int)
	PointsRedeemed(points int)
	GoodsReceived(lines int)
	CarrierFailed(carrierID string)
}

// NopMetrics implementación vacía para tests y ejecuciones sin /metrics.
type NopMetrics struct{}

func (NopMetrics) OrderCreated()             {}
func (NopMetrics) OrderRejected(string)      {}
func (NopMetrics) StatusChanged(_, _ string) {}
func (NopMetrics) PointsAccrued(int)         {}
func (NopMetrics) PointsRedeemed(int)        {}
func (NopMetrics) GoodsReceived(int)         {}
func (NopMetrics) CarrierFailed(string)      {}
