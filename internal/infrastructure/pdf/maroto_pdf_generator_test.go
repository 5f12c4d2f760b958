package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

func TestGenerateReceiptPDF_GeneraDocumentoValido(t *testing.T) {
	receipt := &entity.GoodsReceipt{
		ID:          "rcpt-1",
		SupplierID:  "sup-1",
		ImportDate:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(1600),
		Notes:       "Contenedor 12",
	}
	supplier := &entity.Supplier{ID: "sup-1", Name: "Textiles SAS", Email: "ventas@textiles.co"}
	lines := []inventory.ReceiptLineForPDF{
		{SKU: "CAM-M", Quantity: 10, ImportPrice: "100.00", LineTotal: "1000.00"},
		{SKU: "CAM-L", Quantity: 5, ImportPrice: "120.00", LineTotal: "600.00"},
	}

	out, err := NewMarotoPDFGenerator().GenerateReceiptPDF(context.Background(), receipt, supplier, lines)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_SinProveedorUsaID(t *testing.T) {
	receipt := &entity.GoodsReceipt{ID: "rcpt-2", SupplierID: "sup-x", ImportDate: time.Now()}

	out, err := NewMarotoPDFGenerator().GenerateReceiptPDF(context.Background(), receipt, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateReceiptPDF_EntradaNula(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateReceiptPDF(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"25000":      "25.000",
		"1000000":    "1.000.000",
		"999":        "999",
		"1234567.50": "1.234.567,50",
		"-4500.00":   "-4.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}
