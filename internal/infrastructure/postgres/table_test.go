package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

type execCall struct {
	sql  string
	args []any
}

// recordingQuerier registra los Exec; Query y QueryRow no se usan en estos tests.
type recordingQuerier struct {
	calls []execCall
	tag   pgconn.CommandTag
	err   error
}

func (r *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.calls = append(r.calls, execCall{sql: sql, args: args})
	return r.tag, r.err
}

func (r *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (r *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestTable_SQLGenerado(t *testing.T) {
	list, insert, update, del := newTable(&recordingQuerier{}, clientSpec).SQL()

	assert.Equal(t, `SELECT "id", "name", "docType", "docNumber", "contact", "address", "active" FROM "clients" ORDER BY "name"`, list)
	assert.Equal(t, `INSERT INTO "clients" ("id", "name", "docType", "docNumber", "contact", "address", "active") VALUES ($1, $2, $3, $4, $5, $6, $7)`, insert)
	assert.Equal(t, `UPDATE "clients" SET "name" = $2, "docType" = $3, "docNumber" = $4, "contact" = $5, "address" = $6, "active" = $7 WHERE id = $1`, update)
	assert.Equal(t, `DELETE FROM "clients" WHERE id = $1`, del)
}

func TestTable_VentasOrdenDescendente(t *testing.T) {
	list, _, _, _ := newTable(&recordingQuerier{}, saleSpec).SQL()
	assert.Contains(t, list, `ORDER BY "date" DESC`)
}

func TestTable_InsertArgumentos(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")}
	tbl := newTable(q, saleSpec)

	err := tbl.Insert(context.Background(), entity.Sale{ID: "s1", ClientID: "c1", Total: decimal.NewFromInt(5)})
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	args := q.calls[0].args
	require.Len(t, args, len(saleSpec.columns))
	assert.Equal(t, "s1", args[0])
	assert.Equal(t, "c1", args[3])
	assert.Equal(t, []entity.SaleItem{}, args[13])
}

func TestTable_InsertDuplicado(t *testing.T) {
	q := &recordingQuerier{err: &pgconn.PgError{Code: "23505"}}
	err := newTable(q, productSpec).Insert(context.Background(), entity.Product{ID: "p1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestTable_UpdateUsaIDExplicito(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	tbl := newTable(q, taskSpec)

	err := tbl.Update(context.Background(), "t9", entity.OperationalTask{ID: "otro"})
	require.NoError(t, err)
	assert.Equal(t, "t9", q.calls[0].args[0])
	assert.Equal(t, []string{}, q.calls[0].args[6])
}

func TestTable_UpdateSinFilas(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := newTable(q, userSpec).Update(context.Background(), "u1", entity.SystemUser{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTable_Delete(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	require.NoError(t, newTable(q, supplierSpec).Delete(context.Background(), "sp1"))
	assert.Equal(t, []any{"sp1"}, q.calls[0].args)
}

func TestSeedMaster_NoDuplica(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("INSERT 0 0")}

	created, err := SeedMaster(context.Background(), q, entity.SeedUser())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Contains(t, q.calls[0].sql, "ON CONFLICT (id) DO NOTHING")
	assert.Equal(t, "master-1", q.calls[0].args[0])
}

func TestMigrations_Embebidas(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_schema.sql", names[0])

	script, err := migrationsFS.ReadFile(names[0])
	require.NoError(t, err)
	for _, spec := range []string{productSpec.name, clientSpec.name, supplierSpec.name, saleSpec.name,
		purchaseSpec.name, userSpec.name, taskSpec.name} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+spec+" (")
	}
}
