package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// CreateGoodsReceiptRequest body para POST /api/goods-receipts.
// El usuario que recibe se toma del token.
type CreateGoodsReceiptRequest struct {
	SupplierID string                          `json:"supplier_id" validate:"required"`
	Notes      string                          `json:"notes,omitempty" validate:"max=1000"`
	Lines      []CreateGoodsReceiptLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateGoodsReceiptLineRequest línea recibida: cantidad y precio de importación estrictamente positivos.
type CreateGoodsReceiptLineRequest struct {
	VariantID   string          `json:"variant_id" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	ImportPrice decimal.Decimal `json:"import_price"`
}

// GoodsReceiptLineResponse línea de una entrada.
type GoodsReceiptLineResponse struct {
	ID          string          `json:"id"`
	VariantID   string          `json:"variant_id"`
	Quantity    int             `json:"quantity"`
	ImportPrice decimal.Decimal `json:"import_price"`
}

// GoodsReceiptResponse salida de una entrada de mercancía.
type GoodsReceiptResponse struct {
	ID          string                     `json:"id"`
	SupplierID  string                     `json:"supplier_id"`
	UserID      string                     `json:"user_id"`
	ImportDate  time.Time                  `json:"import_date"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	Notes       string                     `json:"notes,omitempty"`
	Lines       []GoodsReceiptLineResponse `json:"lines,omitempty"`
}

// NewGoodsReceiptResponse convierte la entrada de dominio.
func NewGoodsReceiptResponse(r *entity.GoodsReceipt) GoodsReceiptResponse {
	out := GoodsReceiptResponse{
		ID:          r.ID,
		SupplierID:  r.SupplierID,
		UserID:      r.UserID,
		ImportDate:  r.ImportDate,
		TotalAmount: r.TotalAmount,
		Notes:       r.Notes,
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, GoodsReceiptLineResponse{
			ID:          l.ID,
			VariantID:   l.VariantID,
			Quantity:    l.Quantity,
			ImportPrice: l.ImportPrice,
		})
	}
	return out
}

// ReplenishmentSuggestionDTO variante bajo el umbral con la compra sugerida.
type ReplenishmentSuggestionDTO struct {
	VariantID          string          `json:"variant_id"`
	SKU                string          `json:"sku"`
	CurrentStock       int             `json:"current_stock"`
	IdealStock         int             `json:"ideal_stock"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
