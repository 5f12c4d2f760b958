package inventory

import (
	"context"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// ReceiptLineForPDF línea de la entrada con datos de catálogo para el documento.
type ReceiptLineForPDF struct {
	SKU         string
	Quantity    int
	ImportPrice string
	LineTotal   string
}

// ReceiptPDFGenerator genera el comprobante de una entrada de mercancía.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		receipt *entity.GoodsReceipt,
		supplier *entity.Supplier,
		lines []ReceiptLineForPDF,
	) ([]byte, error)
}
