package entity

import "github.com/shopspring/decimal"

// Estados de una compra.
const (
	PurchaseStatusCompletado = "Completado"
	PurchaseStatusAnulado    = "Anulado"
)

// PurchaseItem línea de compra: copia del producto más precio de venta sugerido y stock inicial.
type PurchaseItem struct {
	SaleItem
	Category     string          `json:"category"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	InitialStock int             `json:"initialStock"`
}

// Purchase compra a proveedor; incrementa stock al registrarse.
type Purchase struct {
	ID             ID              `json:"id"`
	Date           string          `json:"date"`
	SupplierID     ID              `json:"supplierId"`
	SupplierName   string          `json:"supplierName"`
	DocumentNumber string          `json:"documentNumber"`
	Items          []PurchaseItem  `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
}

// Recalculate fija el total de cada línea y el total de la compra.
func (p *Purchase) Recalculate() {
	total := decimal.Zero
	for i := range p.Items {
		p.Items[i].Total = p.Items[i].LineTotal()
		total = total.Add(p.Items[i].Total)
	}
	p.Total = total
}

// Quantities suma las cantidades por producto.
func (p Purchase) Quantities() map[ID]int {
	out := make(map[ID]int, len(p.Items))
	for _, it := range p.Items {
		out[IDFrom(it.ProductID)] += it.Quantity
	}
	return out
}
