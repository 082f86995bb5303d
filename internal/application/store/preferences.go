package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// Preferences preferencias actuales.
func (s *Store) Preferences() entity.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Preferences
}

// SetTheme cambia el tema (light|dark).
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != entity.ThemeLight && theme != entity.ThemeDark {
		return fmt.Errorf("tema %q: %w", theme, domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	s.cache.SaveTheme(ctx, theme)
	return nil
}

// ToggleTheme alterna entre claro y oscuro y devuelve el tema resultante.
func (s *Store) ToggleTheme(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := entity.ThemeDark
	if s.state.Theme == entity.ThemeDark {
		next = entity.ThemeLight
	}
	s.state.Theme = next
	s.cache.SaveTheme(ctx, next)
	return next
}

// SetCurrency cambia la moneda de visualización (PEN|USD).
func (s *Store) SetCurrency(ctx context.Context, currency string) error {
	if currency != entity.CurrencyPEN && currency != entity.CurrencyUSD {
		return fmt.Errorf("moneda %q: %w", currency, domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Currency = currency
	s.cache.SaveCurrency(ctx, currency)
	return nil
}

// SetExchangeRate fija el tipo de cambio PEN por USD; debe ser positivo.
func (s *Store) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("tipo de cambio %s: %w", rate, domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ExchangeRate = rate
	s.cache.SaveExchangeRate(ctx, rate)
	return nil
}

// SetIdentityConfig guarda la configuración de la API de consulta DNI/RUC.
func (s *Store) SetIdentityConfig(ctx context.Context, cfg entity.IdentityConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Identity = cfg
	s.cache.SaveIdentityConfig(ctx, cfg)
}
