// migrate crea las tablas del panel en PostgreSQL y siembra la cuenta maestra.
//
// Uso: go run ./cmd/migrate
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*). Es idempotente: se puede
// ejecutar en cada despliegue.
package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/infrastructure/postgres"
	"github.com/fruteria-olga/panel/pkg/config"
	"github.com/fruteria-olga/panel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, postgres.NewTxRunner(pool))
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("scripts", applied).Msg("esquema al día")

	master := entity.SeedUser()
	hash, err := bcrypt.GenerateFromPassword([]byte(master.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de la cuenta maestra")
	}
	master.Password = string(hash)

	created, err := postgres.SeedMaster(ctx, pool, master)
	if err != nil {
		log.Fatal().Err(err).Msg("cuenta maestra")
	}
	if created {
		log.Info().Str("username", master.Username).Msg("cuenta maestra creada; cambie la contraseña al ingresar")
	} else {
		log.Info().Msg("la cuenta maestra ya existía")
	}
}
