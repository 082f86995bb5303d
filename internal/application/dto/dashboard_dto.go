package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Los montos vienen en la moneda de visualización (Currency); las ventas anuladas no cuentan.
type DashboardSummaryDTO struct {
	Year     int    `json:"year"`
	Currency string `json:"currency"`

	TotalSales     decimal.Decimal `json:"totalSales"`     // ventas no anuladas
	PendingSales   decimal.Decimal `json:"pendingSales"`   // por cobrar
	CollectedSales decimal.Decimal `json:"collectedSales"` // cobradas
	EstimatedTax   decimal.Decimal `json:"estimatedTax"`   // 1.5% de TotalSales
	ProductsSold   int             `json:"productsSold"`

	ClientCount   int `json:"clientCount"`
	ProductCount  int `json:"productCount"`
	SupplierCount int `json:"supplierCount"`
	DocsIssued    int `json:"docsIssued"`
	DocsPending   int `json:"docsPending"`

	Monthly     []MonthlySalesDTO `json:"monthly"`
	TopProducts []TopProductDTO   `json:"topProducts"`
	TopClients  []TopClientDTO    `json:"topClients"`
}

// MonthlySalesDTO punto de la serie mensual.
type MonthlySalesDTO struct {
	Month  int             `json:"month"`
	Label  string          `json:"label"` // "Ene", "Feb", ...
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// TopProductDTO producto más vendido por cantidad.
type TopProductDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TopClientDTO cliente con mayor monto comprado.
type TopClientDTO struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}
