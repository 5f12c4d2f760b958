package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// ReceiptPDFUseCase arma el comprobante PDF de una entrada de mercancía.
type ReceiptPDFUseCase struct {
	receipts  repository.GoodsReceiptRepository
	suppliers repository.SupplierRepository
	variants  repository.VariantRepository
	generator ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(
	receipts repository.GoodsReceiptRepository,
	suppliers repository.SupplierRepository,
	variants repository.VariantRepository,
	generator ReceiptPDFGenerator,
) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{receipts: receipts, suppliers: suppliers, variants: variants, generator: generator}
}

// Generate devuelve los bytes del PDF de la entrada indicada.
func (uc *ReceiptPDFUseCase) Generate(ctx context.Context, receiptID string) ([]byte, error) {
	receipt, err := uc.receipts.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.suppliers.GetByID(ctx, receipt.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		supplier = &entity.Supplier{ID: receipt.SupplierID, Name: receipt.SupplierID}
	}

	lines := make([]ReceiptLineForPDF, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		sku := l.VariantID
		if v, err := uc.variants.GetByID(ctx, l.VariantID); err == nil && v != nil && v.SKU != "" {
			sku = v.SKU
		}
		lines = append(lines, ReceiptLineForPDF{
			SKU:         sku,
			Quantity:    l.Quantity,
			ImportPrice: l.ImportPrice.StringFixed(2),
			LineTotal:   l.ImportPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).StringFixed(2),
		})
	}
	return uc.generator.GenerateReceiptPDF(ctx, receipt, supplier, lines)
}
