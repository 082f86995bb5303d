package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
)

// tableSpec describe el mapeo fila <-> entidad de una tabla. La primera columna es siempre "id".
type tableSpec[T any] struct {
	name    string
	columns []string
	orderBy string
	values  func(T) []any
	scan    func(pgx.Row) (T, error)
}

// Table adaptador CRUD genérico de una tabla remota (usable con pool o tx).
type Table[T any] struct {
	q    Querier
	spec tableSpec[T]

	listSQL   string
	insertSQL string
	updateSQL string
	deleteSQL string
}

var _ repository.Table[entity.Product] = (*Table[entity.Product])(nil)

func newTable[T any](q Querier, spec tableSpec[T]) *Table[T] {
	quoted := make([]string, len(spec.columns))
	placeholders := make([]string, len(spec.columns))
	sets := make([]string, 0, len(spec.columns)-1)
	for i, c := range spec.columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if i > 0 {
			sets = append(sets, fmt.Sprintf("%s = $%d", quoted[i], i+1))
		}
	}
	name := pgx.Identifier{spec.name}.Sanitize()
	cols := strings.Join(quoted, ", ")

	return &Table[T]{
		q:         q,
		spec:      spec,
		listSQL:   fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", cols, name, spec.orderBy),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, cols, strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", name, strings.Join(sets, ", ")),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1", name),
	}
}

// List devuelve todas las filas en el orden de la tabla.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := t.q.Query(ctx, t.listSQL)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.spec.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := t.spec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.spec.name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.spec.name, err)
	}
	return out, nil
}

// Insert inserta el registro completo.
func (t *Table[T]) Insert(ctx context.Context, record T) error {
	if _, err := t.q.Exec(ctx, t.insertSQL, t.spec.values(record)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: %w", t.spec.name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert %s: %w", t.spec.name, err)
	}
	return nil
}

// Update reemplaza todas las columnas del registro con ese id.
func (t *Table[T]) Update(ctx context.Context, id entity.ID, record T) error {
	args := t.spec.values(record)
	args[0] = id.String()
	cmd, err := t.q.Exec(ctx, t.updateSQL, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.spec.name, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update %s %s: %w", t.spec.name, id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina la fila con ese id.
func (t *Table[T]) Delete(ctx context.Context, id entity.ID) error {
	if _, err := t.q.Exec(ctx, t.deleteSQL, id.String()); err != nil {
		return fmt.Errorf("delete %s: %w", t.spec.name, err)
	}
	return nil
}

// Ping comprueba que la tabla responde.
func (t *Table[T]) Ping(ctx context.Context) error {
	var one int
	sql := fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", pgx.Identifier{t.spec.name}.Sanitize())
	if err := t.q.QueryRow(ctx, sql).Scan(&one); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ping %s: %w", t.spec.name, err)
	}
	return nil
}

// SQL expone las sentencias generadas (diagnóstico y tests).
func (t *Table[T]) SQL() (list, insert, update, del string) {
	return t.listSQL, t.insertSQL, t.updateSQL, t.deleteSQL
}
