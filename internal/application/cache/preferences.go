package cache

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// LoadPreferences lee cada preferencia por separado; una clave ausente o inválida conserva el valor de defaults.
func (c *Cache) LoadPreferences(ctx context.Context, defaults entity.Preferences) entity.Preferences {
	prefs := defaults

	if v, ok := c.read(ctx, KeyTheme); ok && (v == entity.ThemeLight || v == entity.ThemeDark) {
		prefs.Theme = v
	}
	if v, ok := c.read(ctx, KeyCurrency); ok && (v == entity.CurrencyPEN || v == entity.CurrencyUSD) {
		prefs.Currency = v
	}
	if v, ok := c.read(ctx, KeyExchangeRate); ok {
		if rate, err := decimal.NewFromString(v); err == nil && rate.IsPositive() {
			prefs.ExchangeRate = rate
		}
	}
	if v, ok := c.read(ctx, KeyIdentityAPI); ok {
		var id entity.IdentityConfig
		if err := json.Unmarshal([]byte(v), &id); err == nil {
			prefs.Identity = id
		}
	}
	return prefs
}

// SaveTheme persiste el tema (light|dark).
func (c *Cache) SaveTheme(ctx context.Context, theme string) {
	c.setRaw(ctx, KeyTheme, theme)
}

// SaveCurrency persiste la moneda de visualización.
func (c *Cache) SaveCurrency(ctx context.Context, currency string) {
	c.setRaw(ctx, KeyCurrency, currency)
}

// SaveExchangeRate persiste el tipo de cambio.
func (c *Cache) SaveExchangeRate(ctx context.Context, rate decimal.Decimal) {
	c.setRaw(ctx, KeyExchangeRate, rate.String())
}

// SaveIdentityConfig persiste la configuración de la API de consulta DNI/RUC.
func (c *Cache) SaveIdentityConfig(ctx context.Context, cfg entity.IdentityConfig) {
	c.write(ctx, KeyIdentityAPI, cfg)
}

func (c *Cache) setRaw(ctx context.Context, key, value string) {
	if err := c.kv.Set(ctx, key, value); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la preferencia")
	}
}
