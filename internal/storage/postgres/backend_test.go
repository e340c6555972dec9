//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/ercm/internal/storage"
)

func setupBackend(t *testing.T) *Backend {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("ercm"),
		tcpostgres.WithUsername("ercm"),
		tcpostgres.WithPassword("ercm"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	b, err := Open(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Ping(ctx))

	for _, id := range []string{"o1", "o2", "o3"} {
		doc := jx.Raw(`{"id":"` + id + `","price":10.25,"description":"x"}`)
		require.NoError(t, b.Append(ctx, storage.Orders, id, doc))
	}
	require.ErrorIs(t, b.Append(ctx, storage.Orders, "o1", jx.Raw(`{"id":"o1"}`)), storage.ErrDuplicateID)

	t.Run("read in insertion order", func(t *testing.T) {
		docs, err := b.ReadAll(ctx, storage.Orders)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		for i, want := range []string{"o1", "o2", "o3"} {
			id, err := storage.RecordID(docs[i])
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}

		empty, err := b.ReadAll(ctx, storage.Users)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("edit fields", func(t *testing.T) {
		err := b.EditFields(ctx, storage.Orders, "o2", []storage.FieldValue{
			{Name: "description", Value: jx.Raw(`"edited"`)},
		})
		require.NoError(t, err)

		docs, err := b.ReadAll(ctx, storage.Orders)
		require.NoError(t, err)
		assert.Contains(t, string(docs[1]), `"edited"`)
		assert.Contains(t, string(docs[1]), `10.25`)

		err = b.EditFields(ctx, storage.Orders, "missing", nil)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("sum", func(t *testing.T) {
		total, err := b.Sum(ctx, storage.Orders, "price")
		require.NoError(t, err)
		assert.Equal(t, "30.75", total.String())
	})

	t.Run("delete", func(t *testing.T) {
		n, err := b.DeleteByIDs(ctx, storage.Orders, []string{"o1", "o3", "nope"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		docs, err := b.ReadAll(ctx, storage.Orders)
		require.NoError(t, err)
		require.Len(t, docs, 1)
	})
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, ensureSchema(ctx, b.pool))

	var name string
	require.NoError(t, b.pool.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&name))
	assert.Equal(t, "ercm", name)
}
