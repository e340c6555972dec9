package storage_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
	"github.com/xenking/ercm/internal/storage"
	"github.com/xenking/ercm/internal/storage/jsonfile"
)

func newBackend(t *testing.T) *jsonfile.Backend {
	t.Helper()
	b, err := jsonfile.Open(t.TempDir())
	require.NoError(t, err)
	return b
}

func TestArticleRepository(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewArticleRepository(newBackend(t))

	a := &article.Article{
		ID:              "a1",
		Description:     "Schraube M4",
		Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Price:           decimal.RequireFromString("0.15"),
		DeliveryTime:    3,
		MinOrderLength:  10,
		MaxOrderLength:  1000,
		DiscountLength:  100,
		DiscountPercent: decimal.RequireFromString("2.5"),
	}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Schraube M4", got[0].Description)
	assert.True(t, got[0].Date.Equal(a.Date))
	assert.True(t, got[0].Price.Equal(a.Price))
	assert.Equal(t, 1000, got[0].MaxOrderLength)

	a.Price = decimal.RequireFromString("0.2")
	a.Description = "ignored"
	require.NoError(t, repo.Update(ctx, a, article.FieldPrice))

	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.2", got[0].Price.String())
	assert.Equal(t, "Schraube M4", got[0].Description)

	err = repo.Update(ctx, &article.Article{ID: "missing"}, article.FieldPrice)
	require.ErrorIs(t, err, article.ErrNotFound)

	require.ErrorIs(t, repo.Create(ctx, a), storage.ErrDuplicateID)
}

func TestClientRepository(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewClientRepository(newBackend(t))

	c := &client.Client{
		ID: "c1", Firstname: "Erika", Lastname: "Muster",
		Street: "Hauptstr.", HouseNo: "12a", City: "Furtwangen", Zip: "78120",
		Discount: decimal.NewFromInt(5),
	}
	require.NoError(t, repo.Create(ctx, c))

	c.City = "Villingen"
	c.Zip = "78048"
	require.NoError(t, repo.Update(ctx, c, client.FieldCity, client.FieldZip))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12a", got[0].HouseNo)
	assert.Equal(t, "Villingen", got[0].City)
	assert.Equal(t, "78048", got[0].Zip)
	assert.Equal(t, "5", got[0].Discount.String())

	require.NoError(t, repo.Delete(ctx, []string{"c1"}))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewUserRepository(newBackend(t))

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Username: "admin", Password: "pw", IsAdmin: true}))
	require.NoError(t, repo.Update(ctx, &user.User{ID: "u1", IsAdmin: false}, user.FieldIsAdmin))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin", got[0].Username)
	assert.False(t, got[0].IsAdmin)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewOrderRepository(newBackend(t))

	o := &order.Order{
		ID:                          "o1",
		OrderDate:                   time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC),
		DeliveryDate:                time.Date(2024, 3, 8, 1, 0, 0, 0, time.UTC),
		Price:                       decimal.RequireFromString("855"),
		PriceWithoutDiscount:        decimal.RequireFromString("1000"),
		PriceBeforeCustomerDiscount: decimal.RequireFromString("950"),
		ClientID:                    "c1",
		Positions: []order.Position{
			{ArticleID: "a1", Amount: 10, PositionPrice: decimal.RequireFromString("950")},
		},
		TotalDiscount: decimal.RequireFromString("14.5"),
		Description:   "Muster, 5.3.2024",
	}
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, o.Description, got.Description)
	require.Len(t, got.Positions, 1)
	assert.Equal(t, 10, got.Positions[0].Amount)
	assert.True(t, got.PriceBeforeCustomerDiscount.Equal(o.PriceBeforeCustomerDiscount))
	assert.True(t, got.DeliveryDate.Equal(o.DeliveryDate))

	o.Positions = append(o.Positions, order.Position{ArticleID: "a2", Amount: 1, PositionPrice: decimal.NewFromInt(3)})
	require.NoError(t, repo.Update(ctx, o, order.FieldPositions))

	got, err = repo.Get(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, got.Positions, 2)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestEncodeOrder(t *testing.T) {
	o := &order.Order{
		ID:        "o1",
		OrderDate: time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC),
		Price:     decimal.RequireFromString("12.50"),
	}
	got := string(storage.EncodeOrder(o))
	assert.Contains(t, got, `"id":"o1"`)
	assert.Contains(t, got, `"orderDate":"2024-03-05T01:00:00.000Z"`)
	assert.Contains(t, got, `"price":12.5`)
	assert.Contains(t, got, `"positions":[]`)
}

func TestDumpImport(t *testing.T) {
	ctx := context.Background()
	src := newBackend(t)
	require.NoError(t, src.Append(ctx, storage.Articles, "a1", []byte(`{"id":"a1","description":"Schraube"}`)))
	require.NoError(t, src.Append(ctx, storage.Users, "1", []byte(`{"id":1,"username":"admin"}`)))

	var buf bytes.Buffer
	require.NoError(t, storage.Dump(ctx, src, &buf))
	assert.JSONEq(t,
		`{"articles":[{"id":"a1","description":"Schraube"}],"clients":[],"orders":[],"users":[{"id":1,"username":"admin"}]}`,
		buf.String(),
	)

	dst := newBackend(t)
	res, err := storage.Import(ctx, dst, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added[storage.Articles])
	assert.Equal(t, 1, res.Added[storage.Users])

	res, err = storage.Import(ctx, dst, buf.Bytes())
	require.NoError(t, err)
	assert.Zero(t, res.Added[storage.Articles])
	assert.Equal(t, 1, res.Skipped[storage.Articles])

	users, err := dst.ReadAll(ctx, storage.Users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, `{"id":1,"username":"admin"}`, string(users[0]))

	_, err = storage.Import(ctx, dst, []byte(`{"articles":[{"description":"no id"}]}`))
	require.Error(t, err)
}

func TestImport_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad price", `{"articles":[{"id":"a1","price":1},{"id":"a2","price":"abc"}]}`, nil},
		{"min above max", `{"articles":[{"id":"a1","minOrderLength":9,"maxOrderLength":1}]}`, article.ErrInvalid},
		{"article discount above 100", `{"articles":[{"id":"a1","discountPercent":250}]}`, article.ErrInvalid},
		{"client discount above 100", `{"clients":[{"id":"c1","discount":101}]}`, client.ErrInvalid},
		{"bad order date", `{"orders":[{"id":"o1","orderDate":"yesterday"}]}`, nil},
		{"bad admin flag", `{"users":[{"id":"u1","username":"admin","isAdmin":"yes"}]}`, nil},
		{"valid before invalid", `{"clients":[{"id":"c1","discount":5}],"articles":[{"id":"a1","price":"x"}]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			_, err := storage.Import(ctx, b, []byte(tt.doc))
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}

			for _, c := range storage.Collections {
				docs, err := b.ReadAll(ctx, c)
				require.NoError(t, err)
				assert.Empty(t, docs, "%s written", c)
			}
		})
	}
}

func TestImport_LenientRecordsReadBack(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)
	_, err := storage.Import(ctx, b, []byte(
		`{"articles":[{"id":"a1","price":"2.50","deliveryTime":3.0,"discountLength":null,"maxOrderLength":5}]}`,
	))
	require.NoError(t, err)

	got, err := storage.NewArticleRepository(b).List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DeliveryTime)
	assert.Zero(t, got[0].DiscountLength)
}
