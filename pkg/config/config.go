package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Remote   RemoteConfig
	HTTP     HTTPConfig
	JWT      JWTConfig
	Defaults DefaultsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de la base remota (PostgreSQL / Supabase).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig almacén clave-valor del caché local. URL vacía = almacén en memoria.
type RedisConfig struct {
	URL string
}

// CacheConfig límites del caché local.
type CacheConfig struct {
	MaxFieldBytes    int // campos de texto más largos se vacían antes de escribir (fotos base64)
	MemoryQuotaBytes int // cuota del almacén en memoria; 0 = sin límite
}

// RemoteConfig llamadas al gateway remoto lanzadas por las mutaciones.
type RemoteConfig struct {
	TimeoutSeconds int
	MaxInFlight    int
	RetrySeconds   int // reintento de conexión mientras el remoto esté caído; 0 = desactivado
}

// Timeout devuelve el timeout por llamada remota.
func (c RemoteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryInterval devuelve el intervalo de reconexión.
func (c RemoteConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetrySeconds) * time.Second
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig tokens de sesión del panel.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	// Ephemeral indica que el secreto se generó al arrancar; los tokens no sobreviven un reinicio.
	Ephemeral bool
}

// DefaultsConfig preferencias iniciales cuando el almacén local no tiene valor guardado.
type DefaultsConfig struct {
	Theme          string
	Currency       string
	ExchangeRate   string // decimal como texto, ej. "3.75"
	IdentityDNIURL string
	IdentityRUCURL string
	IdentityToken  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, REDIS_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "fruteria-olga"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "fruteria_olga"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		Cache: CacheConfig{
			MaxFieldBytes:    getInt(v, "CACHE_MAX_FIELD_BYTES", 20000),
			MemoryQuotaBytes: getInt(v, "CACHE_MEMORY_QUOTA_BYTES", 5*1024*1024),
		},
		Remote: RemoteConfig{
			TimeoutSeconds: getInt(v, "REMOTE_TIMEOUT_SECONDS", 15),
			MaxInFlight:    getInt(v, "REMOTE_MAX_IN_FLIGHT", 8),
			RetrySeconds:   getInt(v, "REMOTE_RETRY_SECONDS", 30),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "fruteria-olga"),
		},
		Defaults: DefaultsConfig{
			Theme:          getString(v, "DEFAULT_THEME", "light"),
			Currency:       getString(v, "DEFAULT_CURRENCY", "PEN"),
			ExchangeRate:   getString(v, "DEFAULT_EXCHANGE_RATE", "3.75"),
			IdentityDNIURL: getString(v, "IDENTITY_DNI_URL", ""),
			IdentityRUCURL: getString(v, "IDENTITY_RUC_URL", ""),
			IdentityToken:  getString(v, "IDENTITY_TOKEN", ""),
		},
	}

	if cfg.Remote.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("config: REMOTE_TIMEOUT_SECONDS debe ser positivo")
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if cfg.JWT.Secret == "" {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("config: JWT_SECRET es requerido en producción")
		}
		cfg.JWT.Secret = uuid.NewString() + uuid.NewString()
		cfg.JWT.Ephemeral = true
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
