package app

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
	"github.com/xenking/ercm/pkg/health"
)

const checkTimeout = 5 * time.Second

// NewHealth registers storage and data consistency checks for svc.
func NewHealth(cfg *Config, svc *Services) *health.Health {
	h := health.New()
	if cfg.Storage.Driver == DriverJSONFile {
		h.AddCheck("data_dir", time.Second, health.WritableDirCheck(cfg.Storage.DataDir))
	}
	if p, ok := svc.Backend.(health.Pinger); ok {
		h.AddCheck("database", checkTimeout, health.PingCheck(p))
	}
	h.AddCheck("articles", checkTimeout, func(ctx context.Context) error {
		_, err := svc.Articles.List(ctx)
		return err
	})
	h.AddCheck("clients", checkTimeout, func(ctx context.Context) error {
		_, err := svc.Clients.List(ctx)
		return err
	})
	h.AddCheck("orders", checkTimeout, func(ctx context.Context) error {
		_, err := svc.Orders.List(ctx)
		return err
	})
	h.AddCheck("users", checkTimeout, func(ctx context.Context) error {
		_, err := svc.Users.List(ctx)
		return err
	})
	h.AddWarning("references", checkTimeout, svc.checkReferences)
	h.AddWarning("administrator", checkTimeout, svc.checkAdministrator)
	return h
}

// checkReferences reports orders whose client or articles no longer exist.
// Deleting a client or article never touches its orders, so these are
// expected after deletions and only worth a warning.
func (s *Services) checkReferences(ctx context.Context) error {
	var (
		articles []article.Article
		clients  []client.Client
		orders   []order.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { articles, err = s.Articles.List(gctx); return err })
	g.Go(func() (err error) { clients, err = s.Clients.List(gctx); return err })
	g.Go(func() (err error) { orders, err = s.Orders.List(gctx); return err })
	if err := g.Wait(); err != nil {
		return err
	}

	var missingClients, missingArticles int
	for _, o := range orders {
		if _, ok := client.Find(clients, o.ClientID); !ok {
			missingClients++
		}
		for _, p := range o.Positions {
			if _, ok := article.Find(articles, p.ArticleID); !ok {
				missingArticles++
			}
		}
	}
	if missingClients > 0 || missingArticles > 0 {
		return errors.Errorf("%d orders reference missing clients, %d positions reference missing articles",
			missingClients, missingArticles)
	}
	return nil
}

// checkAdministrator reports a users collection nobody can administer.
func (s *Services) checkAdministrator(ctx context.Context) error {
	users, err := s.Users.List(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if user.RequireAdmin(&users[i]) == nil {
			return nil
		}
	}
	return errors.New("no administrator account")
}
