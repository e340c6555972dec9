package app

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
	"github.com/xenking/ercm/internal/storage/jsonfile"
	"github.com/xenking/ercm/pkg/health"
)

func resultsByName(results []health.Result) map[string]health.Result {
	m := make(map[string]health.Result, len(results))
	for _, r := range results {
		m[r.Name] = r
	}
	return m
}

func TestNewHealth(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := jsonfile.Open(dir)
	require.NoError(t, err)
	svc := NewServices(b, "")
	cfg := &Config{Storage: StorageConfig{Driver: DriverJSONFile, DataDir: dir}}

	results := resultsByName(NewHealth(cfg, svc).Run(ctx))
	assert.NoError(t, results["data_dir"].Err)
	assert.NoError(t, results["orders"].Err)
	assert.NoError(t, results["references"].Err)
	assert.EqualError(t, results["administrator"].Err, "no administrator account")
	assert.NotContains(t, results, "database")

	require.NoError(t, svc.Users.Create(ctx, &user.User{ID: "u1", Username: "admin", Password: "x", IsAdmin: true}))
	require.NoError(t, svc.Articles.Create(ctx, &article.Article{ID: "a1", Price: decimal.NewFromInt(1), MaxOrderLength: 10}))
	require.NoError(t, svc.Clients.Create(ctx, &client.Client{ID: "c1"}))
	require.NoError(t, svc.Orders.Create(ctx, &order.Order{
		ID:        "o1",
		ClientID:  "gone",
		Positions: []order.Position{{ArticleID: "a1", Amount: 1}, {ArticleID: "gone", Amount: 1}},
	}))

	all := NewHealth(cfg, svc).Run(ctx)
	results = resultsByName(all)
	assert.NoError(t, results["administrator"].Err)
	require.Error(t, results["references"].Err)
	assert.Contains(t, results["references"].Err.Error(), "1 orders reference missing clients, 1 positions")
	assert.True(t, health.Healthy(all))
}

func TestNewHealth_CorruptCollection(t *testing.T) {
	dir := t.TempDir()
	b, err := jsonfile.Open(dir)
	require.NoError(t, err)
	require.NoError(t, writeFile(b.Path("clients"), `{"not":"an array"}`))

	svc := NewServices(b, "")
	cfg := &Config{Storage: StorageConfig{Driver: DriverJSONFile, DataDir: dir}}
	all := NewHealth(cfg, svc).Run(context.Background())
	assert.Error(t, resultsByName(all)["clients"].Err)
	assert.False(t, health.Healthy(all))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
