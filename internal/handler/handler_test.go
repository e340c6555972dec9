package handler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/console/consoletest"
	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
	"github.com/xenking/ercm/internal/storage"
	"github.com/xenking/ercm/internal/storage/jsonfile"
)

type fixture struct {
	handler  *Handler
	script   *consoletest.Script
	out      *bytes.Buffer
	articles *storage.ArticleRepository
	clients  *storage.ClientRepository
	orders   *storage.OrderRepository
	users    *storage.UserRepository
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture seeds admin/secret, bob/pw, one article and two clients.
func newFixture(t *testing.T, answers ...any) *fixture {
	t.Helper()
	ctx := context.Background()

	b, err := jsonfile.Open(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		script:   consoletest.New(answers...),
		out:      &bytes.Buffer{},
		articles: storage.NewArticleRepository(b),
		clients:  storage.NewClientRepository(b),
		orders:   storage.NewOrderRepository(b),
		users:    storage.NewUserRepository(b),
	}

	require.NoError(t, f.users.Create(ctx, &user.User{ID: "u1", Username: "admin", Password: "secret", IsAdmin: true}))
	require.NoError(t, f.users.Create(ctx, &user.User{ID: "u2", Username: "bob", Password: "pw"}))
	require.NoError(t, f.articles.Create(ctx, &article.Article{
		ID:              "a1",
		Description:     "Schraube",
		Date:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		Price:           d("100"),
		DeliveryTime:    3,
		MinOrderLength:  1,
		MaxOrderLength:  100,
		DiscountLength:  10,
		DiscountPercent: d("5"),
	}))
	require.NoError(t, f.clients.Create(ctx, &client.Client{ID: "c1", Firstname: "Erika", Lastname: "Muster", Discount: d("10")}))
	require.NoError(t, f.clients.Create(ctx, &client.Client{ID: "c2", Firstname: "Hans", Lastname: "Meier", Discount: d("20")}))

	format, err := console.NewFormat("de", order.DefaultDateLayout, "€")
	require.NoError(t, err)
	printer := console.NewPrinter(f.out, format)
	f.handler = NewHandler(
		console.NewAsker(f.script, printer),
		printer,
		user.NewService(f.users),
		f.articles,
		f.clients,
		order.NewService(f.orders, f.articles, f.clients, order.DefaultDateLayout),
	)
	return f
}

func (f *fixture) run(t *testing.T) {
	t.Helper()
	require.NoError(t, f.handler.Run(context.Background()))
	assert.Zero(t, f.script.Remaining(), "unplayed answers")
}

func TestRun_LoginRetry(t *testing.T) {
	f := newFixture(t,
		"admin", "wrong",
		"admin", "secret",
		"Abmelden",
	)
	f.run(t)

	assert.Contains(t, f.out.String(), "Benutzername oder Passwort nicht gefunden.")
	assert.Contains(t, f.out.String(), "Erfolgreich angemeldet")
}

func TestRun_EmptyLoginRetry(t *testing.T) {
	f := newFixture(t,
		"", "",
		"admin", "secret",
	)
	f.run(t)

	assert.Equal(t, 3, countOf(f.script.Asked(), "Benutzernamen eingeben:"))
}

func TestRun_CreateOrder(t *testing.T) {
	f := newFixture(t,
		"admin", "secret",
		"Bestellungsverwaltung",
		"Bestellung anlegen",
		"Erika Muster",
		"Schraube", "10", false,
		"Zurück zur Auswahl",
	)
	f.run(t)

	orders, err := f.orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "c1", o.ClientID)
	assert.True(t, d("1000").Equal(o.PriceWithoutDiscount))
	assert.True(t, d("950").Equal(o.PriceBeforeCustomerDiscount))
	assert.True(t, d("855").Equal(o.Price))
	assert.True(t, d("14.5").Equal(o.TotalDiscount))
	require.Len(t, o.Positions, 1)
	assert.Equal(t, "a1", o.Positions[0].ArticleID)
	assert.Equal(t, 10, o.Positions[0].Amount)

	today := time.Now().Format(order.DefaultDateLayout)
	assert.Equal(t, "Muster, "+today, o.Description)
	assert.Contains(t, f.out.String(), "Zusammenfassung der Bestellung")
}

func TestRun_CreateOrderForArticle(t *testing.T) {
	f := newFixture(t,
		"bob", "pw",
		"Artikelverwaltung",
		"Artikel nach Bezeichnung suchen",
		"Schraube",
		"Bestellung für diesen Artikel erfassen",
		"Hans Meier",
		"5", true,
		"Schraube", "2", false,
		"Zurück zur Auswahl",
	)
	f.run(t)

	orders, err := f.orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Positions, 2)
	assert.True(t, d("700").Equal(orders[0].PriceWithoutDiscount))
	assert.True(t, d("560").Equal(orders[0].Price))
}

func TestRun_EditOrderClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.handler.orders.Create(ctx, order.CreateRequest{
		ClientID: "c1",
		Lines:    []order.Line{{ArticleID: "a1", Quantity: 10}},
	})
	require.NoError(t, err)

	f.script = consoletest.New(
		"admin", "secret",
		"Bestellungsverwaltung",
		"Bestellung nach ID suchen",
		created.ID,
		"Kunde ändern",
		"Hans Meier",
	)
	f.handler.ask = console.NewAsker(f.script, f.handler.out)
	f.run(t)

	got, err := f.orders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "c2", got.ClientID)
	assert.True(t, d("760").Equal(got.Price))
	assert.True(t, d("24").Equal(got.TotalDiscount))
	assert.Contains(t, got.Description, "Meier, ")
}

func TestRun_NonAdminCannotDelete(t *testing.T) {
	f := newFixture(t,
		"bob", "pw",
		"Artikelverwaltung",
		"Artikel löschen",
	)
	f.run(t)

	assert.Contains(t, f.out.String(), "nur für Administratoren")
	articles, err := f.articles.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestRun_NonAdminCannotOpenUsers(t *testing.T) {
	f := newFixture(t,
		"bob", "pw",
		"Nutzerverwaltung",
		"Abmelden",
	)
	f.run(t)

	assert.Contains(t, f.out.String(), "nur für Administratoren")
}

func TestRun_DeleteClientsKeepsOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.handler.orders.Create(ctx, order.CreateRequest{
		ClientID: "c1",
		Lines:    []order.Line{{ArticleID: "a1", Quantity: 1}},
	})
	require.NoError(t, err)

	f.script = consoletest.New(
		"admin", "secret",
		"Kundenverwaltung",
		"Kunden löschen",
		[]string{"c1"}, true,
	)
	f.handler.ask = console.NewAsker(f.script, f.handler.out)
	f.run(t)

	clients, err := f.clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "c2", clients[0].ID)

	orders, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestRun_CreateArticle(t *testing.T) {
	f := newFixture(t,
		"admin", "secret",
		"Artikelverwaltung",
		"Artikel anlegen",
		"Mutter M4", "1.2.2024", "0,15", "3", "10", "5", "1000", "100", "2,5",
		false,
	)
	f.handler.newID = func() string { return "a2" }
	f.run(t)

	articles, err := f.articles.List(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	a, ok := article.Find(articles, "a2")
	require.True(t, ok)
	assert.Equal(t, "Mutter M4", a.Description)
	assert.True(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local).Equal(a.Date))
	assert.True(t, d("0.15").Equal(a.Price))
	assert.Equal(t, 10, a.MinOrderLength)
	assert.Equal(t, 1000, a.MaxOrderLength)
	assert.True(t, d("2.5").Equal(a.DiscountPercent))
	// max below min was rejected and asked again
	assert.Contains(t, f.out.String(), "zwischen 10 und")
}

func TestRun_EditClientDiscount(t *testing.T) {
	f := newFixture(t,
		"admin", "secret",
		"Kundenverwaltung",
		"Kunde nach ID suchen",
		"c1",
		"Kunde bearbeiten",
		"Kundenrabatt", "150", "12,5",
	)
	f.run(t)

	clients, err := f.clients.List(context.Background())
	require.NoError(t, err)
	c, ok := client.Find(clients, "c1")
	require.True(t, ok)
	assert.True(t, d("12.5").Equal(c.Discount))
	assert.Equal(t, "Erika", c.Firstname)
}

func TestRun_CreateUserRejectsTakenName(t *testing.T) {
	f := newFixture(t,
		"admin", "secret",
		"Nutzerverwaltung",
		"Benutzer anlegen",
		"ADMIN", "neu.user", "geheim", true,
	)
	f.run(t)

	assert.Contains(t, f.out.String(), "Dieser Benutzername ist bereits vergeben!")
	users, err := f.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "neu.user", users[2].Username)
	assert.True(t, users[2].IsAdmin)
}

func TestRun_StorageFailureReturnsHome(t *testing.T) {
	f := newFixture(t,
		"admin", "secret",
		"Artikelverwaltung",
		"Abmelden",
	)
	f.handler.articles = failingArticles{err: errors.New("disk on fire")}
	f.run(t)

	assert.Contains(t, f.out.String(), "disk on fire")
}

func TestDescribe(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want string
	}{
		{&order.OutOfRangeError{ArticleID: "a1", Quantity: 0, Min: 1, Max: 5}, "zwischen 1 und 5"},
		{&order.InvalidReferenceError{Kind: order.KindClient, ID: "c9"}, "Kunde c9"},
		{errors.Wrap(order.ErrEmptyPositions, "create"), "mindestens einen Artikel"},
		{article.ErrInvalidOrderRange, "Ungültige Eingabe"},
		{user.ErrForbidden, "Administratoren"},
	} {
		msg, ok := describe(tt.err)
		assert.True(t, ok, tt.err)
		assert.Contains(t, msg, tt.want)
	}

	_, ok := describe(errors.New("io"))
	assert.False(t, ok)
}

type failingArticles struct {
	article.Repository
	err error
}

func (f failingArticles) List(context.Context) ([]article.Article, error) { return nil, f.err }

func countOf(items []string, s string) int {
	n := 0
	for _, it := range items {
		if it == s {
			n++
		}
	}
	return n
}
