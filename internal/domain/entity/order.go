package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido. Las transiciones válidas están en orderTransitions.
type OrderStatus string

// Estados de pedido.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusReturned  OrderStatus = "RETURNED"
)

// orderTransitions tabla explícita de transiciones. RETURNED solo se alcanza
// desde el flujo de devoluciones (ver CanTransition).
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusShipping, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusReturned},
}

// ParseOrderStatus valida un estado recibido como texto.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned,
	} {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// CanTransition indica si from -> to está en la tabla. viaReturn habilita DELIVERED -> RETURNED.
func CanTransition(from, to OrderStatus, viaReturn bool) bool {
	if to == OrderStatusReturned && !viaReturn {
		return false
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order cabecera del pedido; raíz del agregado de sus líneas y su historial de estados.
type Order struct {
	ID             string
	UserID         string
	CouponID       string // vacío si no aplica
	Subtotal       decimal.Decimal
	DiscountTotal  decimal.Decimal
	FinalTotal     decimal.Decimal
	Status         OrderStatus
	PointsUsed     int
	PointsDiscount decimal.Decimal
	CarrierName    string
	TrackingCode   string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Lines []*OrderLine
}

// HasOwner indica si el pedido pertenece a un usuario registrado.
func (o *Order) HasOwner() bool { return o.UserID != "" }

// OrderLine línea del pedido. UnitPrice es una foto del precio al momento de crear el pedido.
type OrderLine struct {
	ID        string
	OrderID   string
	VariantID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal cantidad * precio unitario.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderStatusEvent registro inmutable del estado del pedido en un instante (auditoría).
type OrderStatusEvent struct {
	ID        string
	OrderID   string
	Status    OrderStatus
	Note      string
	ChangedAt time.Time
}
