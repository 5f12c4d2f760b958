package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// CreateReturnRequest body para POST /api/returns.
type CreateReturnRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Reason  string `json:"reason" validate:"required,max=1000"`
}

// ReturnResponse salida de una solicitud de devolución.
type ReturnResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewReturnResponse convierte la solicitud de dominio.
func NewReturnResponse(r *entity.ReturnRequest) ReturnResponse {
	return ReturnResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		Reason:       r.Reason,
		Status:       string(r.Status),
		RefundAmount: r.RefundAmount,
		CreatedAt:    r.CreatedAt,
	}
}
