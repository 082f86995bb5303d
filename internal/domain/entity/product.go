package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de venta.
const (
	UnitKilos  = "Kilos"
	UnitUnidad = "Unidad"
	UnitCaja   = "Caja"
)

// Product representa una fruta o artículo del inventario.
// Stock es entero y puede quedar negativo tras una venta: no se recorta.
type Product struct {
	ID         ID              `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Active     bool            `json:"active"`
	LastUpdate *time.Time      `json:"lastUpdate,omitempty"`
}

// ValidUnit indica si la unidad es una de Kilos, Unidad o Caja.
func ValidUnit(u string) bool {
	switch u {
	case UnitKilos, UnitUnidad, UnitCaja:
		return true
	}
	return false
}
