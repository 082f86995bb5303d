package entity

import "github.com/shopspring/decimal"

// Estados de cobro de una venta.
const (
	SaleStatusPendiente = "Pendiente"
	SaleStatusCancelado = "Cancelado" // cobrada
	SaleStatusAnulado   = "Anulado"   // anulada (soft-cancel)
)

// Tipos y estados de comprobante.
const (
	DocumentBoleta  = "Boleta"
	DocumentFactura = "Factura"

	DocStatusEmitido   = "Emitido"
	DocStatusPendiente = "Pendiente"
)

// Servicios facturables.
const (
	ServiceFrutas   = "Venta de Frutas"
	ServiceAlquiler = "Alquiler de Local"
)

// SaleItem línea de venta con copia del producto al momento de la transacción.
type SaleItem struct {
	ProductID   ID              `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// LineTotal quantity × unitPrice.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale venta con copia desnormalizada del cliente.
type Sale struct {
	ID              ID              `json:"id"`
	Date            string          `json:"date"` // YYYY-MM-DD
	GuideNumber     string          `json:"guideNumber"`
	ClientID        ID              `json:"clientId"`
	ClientDocType   string          `json:"clientDocType"`
	ClientDocNumber string          `json:"clientDocNumber"`
	ClientName      string          `json:"clientName"`
	Contact         string          `json:"contact"`
	Service         string          `json:"service"`
	DocumentType    string          `json:"documentType"`
	DocumentNumber  string          `json:"documentNumber"`
	DocStatus       string          `json:"docStatus"`
	SaleStatus      string          `json:"saleStatus"`
	Items           []SaleItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
}

// Recalculate fija el total de cada línea y el total de la venta (Σ quantity × unitPrice).
func (s *Sale) Recalculate() {
	total := decimal.Zero
	for i := range s.Items {
		s.Items[i].Total = s.Items[i].LineTotal()
		total = total.Add(s.Items[i].Total)
	}
	s.Total = total
}

// IsVoided indica si la venta fue anulada.
func (s Sale) IsVoided() bool { return s.SaleStatus == SaleStatusAnulado }

// Quantities suma las cantidades por producto (una venta puede repetir un producto en varias líneas).
func (s Sale) Quantities() map[ID]int {
	out := make(map[ID]int, len(s.Items))
	for _, it := range s.Items {
		out[IDFrom(it.ProductID)] += it.Quantity
	}
	return out
}
