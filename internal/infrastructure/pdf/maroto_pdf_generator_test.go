package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "S/ 0.00",
		"12.5":     "S/ 12.50",
		"1234.567": "S/ 1,234.57",
		"1000000":  "S/ 1,000,000.00",
		"-2500.1":  "S/ -2,500.10",
		"999.999":  "S/ 1,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestSalesReport_Totals(t *testing.T) {
	r := SalesReport{Sales: []entity.Sale{
		{Total: decimal.NewFromInt(10), SaleStatus: entity.SaleStatusPendiente},
		{Total: decimal.NewFromInt(5), SaleStatus: entity.SaleStatusAnulado},
		{Total: decimal.RequireFromString("2.5"), SaleStatus: entity.SaleStatusCancelado},
	}}

	total, valid, voided := r.Totals()
	assert.True(t, decimal.RequireFromString("12.5").Equal(total))
	assert.Equal(t, 2, valid)
	assert.Equal(t, 1, voided)
}

func TestGenerateSalesReport(t *testing.T) {
	g := NewMarotoPDFGenerator()
	doc, err := g.GenerateSalesReport(context.Background(), SalesReport{
		From: "2025-01-01",
		To:   "2025-01-31",
		Sales: []entity.Sale{
			{Date: "2025-01-05", DocumentType: entity.DocumentBoleta, DocumentNumber: "B001-12",
				ClientName: "Bodega Lucho", SaleStatus: entity.SaleStatusCancelado, Total: decimal.NewFromInt(150)},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateSalesReport_Vacio(t *testing.T) {
	doc, err := NewMarotoPDFGenerator().GenerateSalesReport(context.Background(), SalesReport{})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestRangeLabel(t *testing.T) {
	assert.Equal(t, "Todas las fechas", rangeLabel("", ""))
	assert.Equal(t, "Desde 2025-01-01", rangeLabel("2025-01-01", ""))
	assert.Equal(t, "2025-01-01 al 2025-01-31", rangeLabel("2025-01-01", "2025-01-31"))
}
