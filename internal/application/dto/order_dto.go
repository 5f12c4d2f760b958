package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	UserID     string                   `json:"user_id" validate:"required"`
	CouponID   string                   `json:"coupon_id,omitempty"`
	Status     string                   `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED"`
	PointsUsed int                      `json:"points_used" validate:"min=0"`
	Items      []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest línea del pedido. Price en cero = precio de venta vigente de la variante.
type CreateOrderItemRequest struct {
	VariantID string          `json:"variant_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateOrderStatusRequest body para PUT /api/orders/:id.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	VariantID string          `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id,omitempty"`
	CouponID       string              `json:"coupon_id,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountTotal  decimal.Decimal     `json:"discount_total"`
	FinalTotal     decimal.Decimal     `json:"final_total"`
	Status         string              `json:"status"`
	PointsUsed     int                 `json:"points_used"`
	PointsDiscount decimal.Decimal     `json:"points_discount"`
	CarrierName    string              `json:"carrier_name,omitempty"`
	TrackingCode   string              `json:"tracking_code,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderStatusEventResponse entrada del historial de estados.
type OrderStatusEventResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewOrderItemResponse convierte una línea de dominio.
func NewOrderItemResponse(l *entity.OrderLine) OrderItemResponse {
	return OrderItemResponse{
		ID:        l.ID,
		VariantID: l.VariantID,
		Quantity:  l.Quantity,
		Price:     l.UnitPrice,
		Subtotal:  l.Subtotal(),
	}
}

// NewOrderResponse convierte el agregado Order (con Lines cargadas o no).
func NewOrderResponse(o *entity.Order) OrderResponse {
	out := OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		CouponID:       o.CouponID,
		Subtotal:       o.Subtotal,
		DiscountTotal:  o.DiscountTotal,
		FinalTotal:     o.FinalTotal,
		Status:         string(o.Status),
		PointsUsed:     o.PointsUsed,
		PointsDiscount: o.PointsDiscount,
		CarrierName:    o.CarrierName,
		TrackingCode:   o.TrackingCode,
		CreatedAt:      o.CreatedAt,
	}
	if len(o.Lines) > 0 {
		out.Items = make([]OrderItemResponse, 0, len(o.Lines))
		for _, l := range o.Lines {
			out.Items = append(out.Items, NewOrderItemResponse(l))
		}
	}
	return out
}

// NewOrderStatusEventResponse convierte un evento de historial.
func NewOrderStatusEventResponse(e *entity.OrderStatusEvent) OrderStatusEventResponse {
	return OrderStatusEventResponse{
		ID:        e.ID,
		Status:    string(e.Status),
		Note:      e.Note,
		ChangedAt: e.ChangedAt,
	}
}
