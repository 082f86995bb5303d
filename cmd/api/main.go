package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/fruteria-olga/panel/docs"
	"github.com/fruteria-olga/panel/internal/application/analytics"
	"github.com/fruteria-olga/panel/internal/application/cache"
	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
	"github.com/fruteria-olga/panel/internal/infrastructure/memkv"
	infrapdf "github.com/fruteria-olga/panel/internal/infrastructure/pdf"
	"github.com/fruteria-olga/panel/internal/infrastructure/postgres"
	infraredis "github.com/fruteria-olga/panel/internal/infrastructure/redis"
	httpRouter "github.com/fruteria-olga/panel/internal/interfaces/http"
	"github.com/fruteria-olga/panel/pkg/config"
	"github.com/fruteria-olga/panel/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Frutería Olga API
// @version                     1.0
// @description                 API del panel administrativo de Frutería Olga: catálogo, ventas, compras, tareas operativas, usuarios y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token de sesión: "Bearer <token>"
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Montos como números JSON, no como texto.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	// Almacén local: Redis si hay REDIS_URL; si no, memoria con cuota.
	var kv repository.KVStore
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		kv = infraredis.NewKVStore(rdb, cfg.App.Name+":")
	} else {
		log.Warn().Msg("REDIS_URL vacío; el caché local vive en memoria y se pierde al reiniciar")
		kv = memkv.New(cfg.Cache.MemoryQuotaBytes)
	}
	localCache := cache.New(kv, cfg.Cache.MaxFieldBytes, log)

	// Base remota: el pool conecta bajo demanda, así que una base caída al arrancar se recupera sola.
	// Sólo una configuración inválida deja el panel sin remoto.
	gateway := repository.UnavailableGateway()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("configuración de PostgreSQL inválida; modo sin conexión")
	} else {
		defer pool.Close()
		gateway = postgres.NewGateway(pool)
	}

	rate, err := decimal.NewFromString(cfg.Defaults.ExchangeRate)
	if err != nil || !rate.IsPositive() {
		log.Warn().Str("value", cfg.Defaults.ExchangeRate).Msg("DEFAULT_EXCHANGE_RATE inválido; se usa 3.75")
		rate = decimal.RequireFromString("3.75")
	}

	st := store.New(store.Deps{
		Gateway: gateway,
		Cache:   localCache,
		Logger:  log,
		Defaults: entity.Preferences{
			Theme:        cfg.Defaults.Theme,
			Currency:     cfg.Defaults.Currency,
			ExchangeRate: rate,
			Identity: entity.IdentityConfig{
				DNIURL: cfg.Defaults.IdentityDNIURL,
				RUCURL: cfg.Defaults.IdentityRUCURL,
				Token:  cfg.Defaults.IdentityToken,
			},
		},
		RemoteTimeout: cfg.Remote.Timeout(),
		MaxInFlight:   cfg.Remote.MaxInFlight,
	})
	st.Bootstrap(ctx)

	retryCtx, stopRetry := context.WithCancel(ctx)
	defer stopRetry()
	go st.KeepConnected(retryCtx, cfg.Remote.RetryInterval())

	if cfg.JWT.Ephemeral {
		log.Warn().Msg("JWT_SECRET vacío; se usa un secreto temporal y las sesiones no sobreviven un reinicio")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Frutería Olga API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("documentación OpenAPI no encontrada; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "connected": st.IsCloudConnected()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:        st,
		DashboardUC:  analytics.NewDashboardUseCase(st),
		PDF:          infrapdf.NewMarotoPDFGenerator(),
		BusinessName: "Frutería Olga",
		Tokens: httpRouter.TokenConfig{
			Secret:            cfg.JWT.Secret,
			Issuer:            cfg.JWT.Issuer,
			ExpirationMinutes: cfg.JWT.Expiration,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	stopRetry()
	// Las llamadas remotas pendientes terminan solas (cada una con su timeout).
	st.Wait()

	log.Info().Msg("aplicación detenida")
}
