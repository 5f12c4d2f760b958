package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt entrada de mercancía de un proveedor. TotalAmount = Σ cantidad * precio de importación.
type GoodsReceipt struct {
	ID          string
	SupplierID  string
	UserID      string
	ImportDate  time.Time
	TotalAmount decimal.Decimal
	Notes       string

	Lines []*GoodsReceiptLine
}

// GoodsReceiptLine línea recibida.
type GoodsReceiptLine struct {
	ID          string
	ReceiptID   string
	VariantID   string
	Quantity    int
	ImportPrice decimal.Decimal
}
