package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse salida de GET /api/status.
type StatusResponse struct {
	Loading   bool            `json:"loading"`
	Connected bool            `json:"connected"`
	Tables    map[string]bool `json:"tables"`
}

// StateResponse instantánea completa para la UI (usuarios sin contraseña).
type StateResponse struct {
	Theme        string                   `json:"theme"`
	Currency     string                   `json:"currency"`
	ExchangeRate decimal.Decimal          `json:"exchangeRate"`
	Identity     entity.IdentityConfig    `json:"identity"`
	User         *UserResponse            `json:"user"`
	Connected    bool                     `json:"isCloudConnected"`
	Loading      bool                     `json:"isLoading"`
	Products     []entity.Product         `json:"products"`
	Clients      []entity.Client          `json:"clients"`
	Suppliers    []entity.Supplier        `json:"suppliers"`
	Sales        []entity.Sale            `json:"sales"`
	Purchases    []entity.Purchase        `json:"purchases"`
	Users        []UserResponse           `json:"users"`
	Tasks        []entity.OperationalTask `json:"tasks"`
}

// NewStateResponse arma la respuesta a partir del estado del store.
func NewStateResponse(st entity.State, connected, loading bool) StateResponse {
	out := StateResponse{
		Theme:        st.Theme,
		Currency:     st.Currency,
		ExchangeRate: st.ExchangeRate,
		Identity:     st.Identity,
		Connected:    connected,
		Loading:      loading,
		Products:     st.Products,
		Clients:      st.Clients,
		Suppliers:    st.Suppliers,
		Sales:        st.Sales,
		Purchases:    st.Purchases,
		Users:        NewUserList(st.Users),
		Tasks:        st.Tasks,
	}
	if st.User != nil {
		u := NewUserResponse(*st.User)
		out.User = &u
	}
	return out
}

// ThemeRequest entrada para PUT /api/preferences/theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// CurrencyRequest entrada para PUT /api/preferences/currency.
type CurrencyRequest struct {
	Currency string `json:"currency"`
}

// ExchangeRateRequest entrada para PUT /api/preferences/exchange-rate.
type ExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// IdentityRequest entrada para PUT /api/preferences/identity.
type IdentityRequest struct {
	DNIURL string `json:"dniUrl"`
	RUCURL string `json:"rucUrl"`
	Token  string `json:"token"`
}

// ToEntity recorta espacios de las URLs y el token.
func (r IdentityRequest) ToEntity() entity.IdentityConfig {
	return entity.IdentityConfig{
		DNIURL: strings.TrimSpace(r.DNIURL),
		RUCURL: strings.TrimSpace(r.RUCURL),
		Token:  strings.TrimSpace(r.Token),
	}
}
