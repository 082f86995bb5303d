package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations nombres de los scripts embebidos en orden de aplicación.
func Migrations() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Migrate aplica todos los scripts en una sola transacción. Los scripts son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, tx *TxRunner) ([]string, error) {
	names, err := Migrations()
	if err != nil {
		return nil, err
	}
	err = tx.Run(ctx, func(q Querier) error {
		for _, name := range names {
			script, err := migrationsFS.ReadFile(name)
			if err != nil {
				return fmt.Errorf("leer %s: %w", name, err)
			}
			if _, err := q.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("aplicar %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// SeedMaster inserta la cuenta maestra si no existe. Devuelve true si la creó.
func SeedMaster(ctx context.Context, q Querier, master entity.SystemUser) (bool, error) {
	_, insert, _, _ := newTable(q, userSpec).SQL()
	cmd, err := q.Exec(ctx, insert+" ON CONFLICT (id) DO NOTHING", userSpec.values(master)...)
	if err != nil {
		return false, fmt.Errorf("seed usuario maestro: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
