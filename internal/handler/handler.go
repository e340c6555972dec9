// Package handler implements the menu-driven console screens on top of the
// domain services.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
)

// Handler drives one operator session: login, the home menu and the
// management screens behind it.
type Handler struct {
	ask      *console.Asker
	out      *console.Printer
	users    *user.Service
	articles article.Repository
	clients  client.Repository
	orders   *order.Service
	newID    func() string

	session *user.User
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	ask *console.Asker,
	out *console.Printer,
	users *user.Service,
	articles article.Repository,
	clients client.Repository,
	orders *order.Service,
) *Handler {
	return &Handler{
		ask:      ask,
		out:      out,
		users:    users,
		articles: articles,
		clients:  clients,
		orders:   orders,
		newID:    uuid.NewString,
	}
}

// Run alternates between the login screen and the home menu until the
// operator cancels the login prompt.
func (h *Handler) Run(ctx context.Context) error {
	lg := zctx.From(ctx)
	for {
		u, err := h.login(ctx)
		if errors.Is(err, console.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		h.session = u
		lg.Info("Logged in", zap.String("user", u.Username), zap.Bool("admin", u.IsAdmin))
		err = h.home(ctx)
		lg.Info("Logged out", zap.String("user", u.Username))
		h.session = nil

		if err != nil {
			return err
		}
	}
}

func (h *Handler) login(ctx context.Context) (*user.User, error) {
	h.out.Title("Willkommen beim ERCM-System")
	h.out.Info("Bitte loggen Sie sich ein")
	for {
		name, err := h.ask.Input(ctx, "Benutzernamen eingeben:", "")
		if err != nil {
			return nil, err
		}
		password, err := h.ask.Password(ctx, "Passwort eingeben:")
		if err != nil {
			return nil, err
		}
		if name == "" || password == "" {
			continue
		}

		u, err := h.users.Authenticate(ctx, name, password)
		if errors.Is(err, user.ErrBadCredentials) {
			zctx.From(ctx).Debug("Login rejected", zap.String("user", name))
			h.out.Error("Benutzername oder Passwort nicht gefunden.")
			h.out.Info("Bitte loggen Sie sich erneut an.")
			continue
		}
		if err != nil {
			return nil, err
		}
		h.out.Success("Erfolgreich angemeldet")
		return u, nil
	}
}

func (h *Handler) home(ctx context.Context) error {
	return h.menu(ctx, "Was möchten Sie tun?", "Abmelden", static(
		action{"Artikelverwaltung", h.articleMenu},
		action{"Kundenverwaltung", h.clientMenu},
		action{"Bestellungsverwaltung", h.orderMenu},
		action{"Nutzerverwaltung", h.userMenu},
	))
}

// snapshot holds the collections as loaded at the start of a menu round.
type snapshot struct {
	articles []article.Article
	clients  []client.Client
	orders   []order.Order
}

func (h *Handler) load(ctx context.Context) (*snapshot, error) {
	var s snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.articles, err = h.articles.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.clients, err = h.clients.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.orders, err = h.orders.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "load collections")
	}
	return &s, nil
}

// action is one entry of a menu.
type action struct {
	title string
	run   func(ctx context.Context) error
}

// builder returns the actions of one menu round.
type builder func(ctx context.Context) ([]action, error)

func static(actions ...action) builder {
	return func(context.Context) ([]action, error) { return actions, nil }
}

// withSnapshot builds the actions from collections loaded fresh for every round.
func (h *Handler) withSnapshot(build func(s *snapshot) []action) builder {
	return func(ctx context.Context) ([]action, error) {
		s, err := h.load(ctx)
		if err != nil {
			return nil, err
		}
		return build(s), nil
	}
}

// menu shows a pick list of actions until the operator picks backTitle or
// cancels. Recoverable failures of an action are reported and the menu is
// shown again.
func (h *Handler) menu(ctx context.Context, title, backTitle string, build builder) error {
	for {
		actions, err := build(ctx)
		if err != nil {
			return h.report(ctx, err)
		}

		choices := make([]console.Choice, 0, len(actions)+1)
		for i, a := range actions {
			choices = append(choices, console.Choice{Title: a.title, Value: strconv.Itoa(i)})
		}
		choices = append(choices, console.Choice{Title: backTitle, Value: "back"})

		picked, err := h.ask.Select(ctx, title, choices)
		if errors.Is(err, console.ErrAborted) || (err == nil && picked == "back") {
			return nil
		}
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(picked)
		if err != nil || i < 0 || i >= len(actions) {
			continue
		}
		if err := h.report(ctx, actions[i].run(ctx)); err != nil {
			return err
		}
	}
}

// requireAdmin returns user.ErrForbidden unless the session belongs to an administrator.
func (h *Handler) requireAdmin() error {
	return user.RequireAdmin(h.session)
}

// today returns the current local date at midnight.
func (h *Handler) today() time.Time {
	t := h.orders.Today()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func logMutation(ctx context.Context, collection, op string, ids ...string) {
	zctx.From(ctx).Info("Records changed",
		zap.String("collection", collection),
		zap.String("op", op),
		zap.Strings("ids", ids),
	)
}
