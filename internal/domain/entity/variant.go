package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant es la unidad vendible (talla/color de un producto) con su propio stock.
// StockQuantity y CostPrice solo los modifican el libro de stock y la valoración de inventario.
type ProductVariant struct {
	ID            string
	ProductID     string
	SKU           string
	SizeID        string
	ColorID       string
	SellPrice     decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal // costo promedio móvil (inicia en 0)
	StockQuantity int             // nunca negativo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
