// Package pdf genera el reporte de ventas imprimible del panel.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Frutería Olga        │  Reporte de ventas + rango   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Comprobante | Cliente | Estado | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: ventas válidas / anuladas / TOTAL                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorVoided  = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// SalesReport datos del reporte. Las ventas ya vienen filtradas por rango.
type SalesReport struct {
	BusinessName string
	From, To     string
	Sales        []entity.Sale
}

// Totals resumen del reporte: suma de ventas no anuladas y conteos.
func (r SalesReport) Totals() (total decimal.Decimal, valid, voided int) {
	total = decimal.Zero
	for _, s := range r.Sales {
		if s.IsVoided() {
			voided++
			continue
		}
		valid++
		total = total.Add(s.Total)
	}
	return total, valid, voided
}

// MarotoPDFGenerator genera reportes usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalesReport(ctx context.Context, report SalesReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := nonEmpty(report.BusinessName, "Frutería Olga")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(name, report.From, report.To))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(report.Sales) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin ventas en el rango seleccionado.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(saleRows(report.Sales)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(name, from, to string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Panel administrativo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rangeLabel(from, to), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Comprobante", 2, align.Left),
		h("Cliente", 4, align.Left),
		h("Estado", 2, align.Center),
		h("Total", 2, align.Right),
	)
}

func saleRows(sales []entity.Sale) []core.Row {
	out := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		color := (*props.Color)(nil)
		if s.IsVoided() {
			color = colorVoided
		}
		cell := func(v string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color}))
		}
		out = append(out, row.New(6).Add(
			cell(s.Date, 2, align.Left),
			cell(documentLabel(s), 2, align.Left),
			cell(nonEmpty(s.ClientName, "—"), 4, align.Left),
			cell(s.SaleStatus, 2, align.Center),
			cell(FormatMoney(s.Total), 2, align.Right),
		))
	}
	return out
}

func totalsRow(report SalesReport) core.Row {
	total, valid, voided := report.Totals()
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Ventas válidas:", 1),
			label("Anuladas:", 6),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", valid), 1),
			value(fmt.Sprintf("%d", voided), 6),
			text.New(FormatMoney(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func rangeLabel(from, to string) string {
	switch {
	case from == "" && to == "":
		return "Todas las fechas"
	case from == "":
		return "Hasta " + to
	case to == "":
		return "Desde " + from
	default:
		return from + " al " + to
	}
}

func documentLabel(s entity.Sale) string {
	if s.DocumentNumber == "" {
		return nonEmpty(s.DocumentType, "—")
	}
	return strings.TrimSpace(s.DocumentType + " " + s.DocumentNumber)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea soles con separador de miles: 1234.5 → "S/ 1,234.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "S/ " + sign + string(buf) + "." + frac
}
