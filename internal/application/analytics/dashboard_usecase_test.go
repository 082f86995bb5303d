package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteria-olga/panel/internal/application/analytics"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(date, client, status, doc string, total string, items ...entity.SaleItem) entity.Sale {
	return entity.Sale{
		Date: date, ClientName: client, SaleStatus: status, DocStatus: doc,
		Total: d(total), Items: items,
	}
}

func item(name string, qty int) entity.SaleItem {
	return entity.SaleItem{ProductName: name, Quantity: qty}
}

func sampleState() entity.State {
	return entity.State{
		Preferences: entity.Preferences{Currency: entity.CurrencyPEN, ExchangeRate: d("4")},
		Dataset: entity.Dataset{
			Products: []entity.Product{{ID: "p1"}, {ID: "p2"}},
			Clients:  []entity.Client{{ID: "c1"}},
			Sales: []entity.Sale{
				sale("2025-01-10", "Bodega Lucho", entity.SaleStatusPendiente, entity.DocStatusEmitido, "100", item("Mango", 10)),
				sale("2025-01-20", "Bodega Lucho", entity.SaleStatusCancelado, entity.DocStatusEmitido, "50", item("Piña", 3)),
				sale("2025-03-05", "Mercado Sur", entity.SaleStatusCancelado, entity.DocStatusPendiente, "200", item("Piña", 12)),
				sale("2025-03-06", "Anulador", entity.SaleStatusAnulado, entity.DocStatusPendiente, "999", item("Uva", 100)),
				sale("2024-12-31", "Mercado Sur", entity.SaleStatusCancelado, entity.DocStatusEmitido, "10", item("Mango", 1)),
			},
		},
	}
}

func TestSummarize_KPIs(t *testing.T) {
	s := analytics.Summarize(sampleState(), 2025)

	assert.Equal(t, "PEN", s.Currency)
	assert.True(t, d("360").Equal(s.TotalSales), s.TotalSales.String())
	assert.True(t, d("100").Equal(s.PendingSales))
	assert.True(t, d("260").Equal(s.CollectedSales))
	assert.True(t, d("5.4").Equal(s.EstimatedTax))
	assert.Equal(t, 26, s.ProductsSold)
	assert.Equal(t, 3, s.DocsIssued)
	assert.Equal(t, 2, s.DocsPending)
	assert.Equal(t, 2, s.ProductCount)
	assert.Equal(t, 1, s.ClientCount)
}

func TestSummarize_SerieMensualDelAnio(t *testing.T) {
	s := analytics.Summarize(sampleState(), 2025)

	require.Len(t, s.Monthly, 12)
	assert.Equal(t, "Ene", s.Monthly[0].Label)
	assert.True(t, d("150").Equal(s.Monthly[0].Amount))
	assert.Equal(t, 2, s.Monthly[0].Count)
	assert.True(t, d("200").Equal(s.Monthly[2].Amount))
	assert.Equal(t, 1, s.Monthly[2].Count)
	assert.Equal(t, 0, s.Monthly[11].Count)
}

func TestSummarize_RankingsSinAnuladas(t *testing.T) {
	s := analytics.Summarize(sampleState(), 2025)

	require.Len(t, s.TopProducts, 2)
	assert.Equal(t, "Piña", s.TopProducts[0].Name)
	assert.Equal(t, 15, s.TopProducts[0].Quantity)
	assert.Equal(t, "Mango", s.TopProducts[1].Name)

	require.Len(t, s.TopClients, 2)
	assert.Equal(t, "Mercado Sur", s.TopClients[0].Name)
	assert.True(t, d("210").Equal(s.TopClients[0].Total))
}

func TestSummarize_ConvierteADolares(t *testing.T) {
	st := sampleState()
	st.Currency = entity.CurrencyUSD

	s := analytics.Summarize(st, 2025)

	assert.Equal(t, "USD", s.Currency)
	assert.True(t, d("90").Equal(s.TotalSales))
	assert.True(t, d("37.5").Equal(s.Monthly[0].Amount))
	assert.True(t, d("52.5").Equal(s.TopClients[0].Total))
}

type stateStub struct{ st entity.State }

func (s stateStub) Snapshot() entity.State { return s.st }

func TestGetSummary_ContextoCancelado(t *testing.T) {
	uc := analytics.NewDashboardUseCase(stateStub{st: sampleState()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.GetSummary(ctx, 2025)
	assert.ErrorIs(t, err, context.Canceled)

	s, err := uc.GetSummary(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, s.Year)
}
