// Package analytics contiene el resumen comercial del panel de control.
package analytics

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fruteria-olga/panel/internal/application/dto"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

const dashboardTop = 5 // filas de los rankings de productos y clientes

// taxRate impuesto estimado sobre la venta total.
var taxRate = decimal.RequireFromString("0.015")

var monthLabels = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// StateReader fuente del estado (implementado por store.Store).
type StateReader interface {
	Snapshot() entity.State
}

// DashboardUseCase genera el resumen del panel a partir del estado en memoria.
type DashboardUseCase struct {
	state StateReader
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(state StateReader) *DashboardUseCase {
	return &DashboardUseCase{state: state, now: time.Now}
}

// GetSummary resumen del año indicado (0 = año en curso).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, year int) (*dto.DashboardSummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if year <= 0 {
		year = uc.now().Year()
	}
	summary := Summarize(uc.state.Snapshot(), year)
	return &summary, nil
}

// Summarize calcula KPIs, serie mensual del año y rankings.
func Summarize(st entity.State, year int) dto.DashboardSummaryDTO {
	conv := converter(st.Currency, st.ExchangeRate)
	out := dto.DashboardSummaryDTO{
		Year:          year,
		Currency:      displayCurrency(st.Currency),
		ClientCount:   len(st.Clients),
		ProductCount:  len(st.Products),
		SupplierCount: len(st.Suppliers),
		Monthly:       make([]dto.MonthlySalesDTO, 12),
	}
	for i := range out.Monthly {
		out.Monthly[i] = dto.MonthlySalesDTO{Month: i + 1, Label: monthLabels[i], Amount: decimal.Zero}
	}

	total, pending, collected := decimal.Zero, decimal.Zero, decimal.Zero
	byProduct := map[string]int{}
	byClient := map[string]decimal.Decimal{}

	for _, s := range st.Sales {
		switch s.DocStatus {
		case entity.DocStatusEmitido:
			out.DocsIssued++
		case entity.DocStatusPendiente:
			out.DocsPending++
		}
		switch s.SaleStatus {
		case entity.SaleStatusPendiente:
			pending = pending.Add(s.Total)
		case entity.SaleStatusCancelado:
			collected = collected.Add(s.Total)
		}
		if s.IsVoided() {
			continue
		}

		total = total.Add(s.Total)
		for _, it := range s.Items {
			out.ProductsSold += it.Quantity
			byProduct[it.ProductName] += it.Quantity
		}
		byClient[s.ClientName] = byClient[s.ClientName].Add(s.Total)

		if y, m, ok := yearMonth(s.Date); ok && y == year {
			out.Monthly[m-1].Amount = out.Monthly[m-1].Amount.Add(s.Total)
			out.Monthly[m-1].Count++
		}
	}

	out.TotalSales = conv(total)
	out.PendingSales = conv(pending)
	out.CollectedSales = conv(collected)
	out.EstimatedTax = conv(total.Mul(taxRate))
	for i := range out.Monthly {
		out.Monthly[i].Amount = conv(out.Monthly[i].Amount)
	}
	out.TopProducts = topProducts(byProduct)
	out.TopClients = topClients(byClient, conv)
	return out
}

func displayCurrency(c string) string {
	if c == entity.CurrencyUSD {
		return entity.CurrencyUSD
	}
	return entity.CurrencyPEN
}

// converter pasa montos en soles a la moneda de visualización (USD = soles / tipo de cambio).
func converter(currency string, rate decimal.Decimal) func(decimal.Decimal) decimal.Decimal {
	if currency != entity.CurrencyUSD || !rate.IsPositive() {
		return func(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
	}
	return func(d decimal.Decimal) decimal.Decimal { return d.DivRound(rate, 2) }
}

// yearMonth extrae año y mes de "YYYY-MM-DD" (acepta también el sufijo de hora).
func yearMonth(date string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(date), "-", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}

func topProducts(counts map[string]int) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(counts))
	for name, qty := range counts {
		out = append(out, dto.TopProductDTO{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > dashboardTop {
		out = out[:dashboardTop]
	}
	return out
}

func topClients(totals map[string]decimal.Decimal, conv func(decimal.Decimal) decimal.Decimal) []dto.TopClientDTO {
	out := make([]dto.TopClientDTO, 0, len(totals))
	for name, total := range totals {
		out = append(out, dto.TopClientDTO{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > dashboardTop {
		out = out[:dashboardTop]
	}
	for i := range out {
		out[i].Total = conv(out[i].Total)
	}
	return out
}
