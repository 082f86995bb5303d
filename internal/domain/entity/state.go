package entity

import "github.com/shopspring/decimal"

// Monedas y temas soportados.
const (
	CurrencyPEN = "PEN"
	CurrencyUSD = "USD"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Dataset instantánea de todas las listas de entidades (blob del caché local).
type Dataset struct {
	Products  []Product         `json:"products"`
	Clients   []Client          `json:"clients"`
	Suppliers []Supplier        `json:"suppliers"`
	Sales     []Sale            `json:"sales"`
	Purchases []Purchase        `json:"purchases"`
	Users     []SystemUser      `json:"users"`
	Tasks     []OperationalTask `json:"tasks"`
}

// Empty indica que no hay ningún registro salvo, como mucho, el usuario semilla.
func (d Dataset) Empty() bool {
	if len(d.Products)+len(d.Clients)+len(d.Suppliers)+len(d.Sales)+len(d.Purchases)+len(d.Tasks) > 0 {
		return false
	}
	return len(d.Users) == 0 || (len(d.Users) == 1 && d.Users[0].IsMaster())
}

// Clone copia las listas (los elementos son valores; los slices internos de ventas se comparten).
func (d Dataset) Clone() Dataset {
	return Dataset{
		Products:  append([]Product{}, d.Products...),
		Clients:   append([]Client{}, d.Clients...),
		Suppliers: append([]Supplier{}, d.Suppliers...),
		Sales:     append([]Sale{}, d.Sales...),
		Purchases: append([]Purchase{}, d.Purchases...),
		Users:     append([]SystemUser{}, d.Users...),
		Tasks:     append([]OperationalTask{}, d.Tasks...),
	}
}

// IdentityConfig configuración de la API de consulta DNI/RUC.
type IdentityConfig struct {
	DNIURL string `json:"dniUrl"`
	RUCURL string `json:"rucUrl"`
	Token  string `json:"token"`
}

// Preferences ajustes persistidos por separado del dataset.
type Preferences struct {
	Theme        string          `json:"theme"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Identity     IdentityConfig  `json:"identity"`
}

// State agregado de la aplicación: preferencias, sesión y listas.
type State struct {
	Preferences
	User *SystemUser `json:"user"`
	Dataset
}
