package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/ercm/internal/storage"
)

const (
	listRecordsSQL = `SELECT doc FROM records WHERE collection = $1 ORDER BY seq`

	insertRecordSQL = `INSERT INTO records (collection, id, doc) VALUES ($1, $2, $3)`

	patchRecordSQL = `UPDATE records SET doc = doc || $3::jsonb
		WHERE collection = $1 AND id = $2`

	deleteRecordsSQL = `DELETE FROM records WHERE collection = $1 AND id = ANY($2)`

	sumFieldSQL = `SELECT COALESCE(SUM((doc->>$2)::numeric), 0)
		FROM records WHERE collection = $1`
)

// uniqueViolation is the SQLSTATE for duplicate primary keys.
const uniqueViolation = "23505"

var (
	_ storage.Backend = (*Backend)(nil)
	_ storage.Summer  = (*Backend)(nil)
)

// Backend implements storage.Backend backed by PostgreSQL.
type Backend struct {
	pool *pgxpool.Pool
}

// New returns a Backend that uses the given pool. The pool is closed by Close.
func New(pool *pgxpool.Pool) *Backend {
	return &Backend{pool: pool}
}

// Open connects to databaseURL and applies the schema.
func Open(ctx context.Context, databaseURL string) (*Backend, error) {
	pool, err := connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool), nil
}

func (b *Backend) ReadAll(ctx context.Context, c storage.Collection) ([]jx.Raw, error) {
	rows, err := b.pool.Query(ctx, listRecordsSQL, string(c))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c, err)
	}
	defer rows.Close()

	var docs []jx.Raw
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", c, err)
		}
		docs = append(docs, jx.Raw(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", c, err)
	}
	return docs, nil
}

func (b *Backend) Append(ctx context.Context, c storage.Collection, id string, doc jx.Raw) error {
	_, err := b.pool.Exec(ctx, insertRecordSQL, string(c), id, []byte(doc))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.Wrap(storage.ErrDuplicateID, id)
		}
		return fmt.Errorf("inserting into %s: %w", c, err)
	}
	return nil
}

func (b *Backend) EditFields(ctx context.Context, c storage.Collection, id string, fields []storage.FieldValue) error {
	patch, err := storage.PatchObject(jx.Raw(`{}`), fields)
	if err != nil {
		return err
	}
	tag, err := b.pool.Exec(ctx, patchRecordSQL, string(c), id, string(patch))
	if err != nil {
		return fmt.Errorf("patching %s %s: %w", c, id, err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (b *Backend) DeleteByIDs(ctx context.Context, c storage.Collection, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := b.pool.Exec(ctx, deleteRecordsSQL, string(c), ids)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", c, err)
	}
	return int(tag.RowsAffected()), nil
}

// Sum totals a numeric member of every record in c.
func (b *Backend) Sum(ctx context.Context, c storage.Collection, field string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := b.pool.QueryRow(ctx, sumFieldSQL, string(c), field).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing %s.%s: %w", c, field, err)
	}
	return total, nil
}

// Ping checks that the database is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}
