// Package app loads configuration and wires storage, domain services and the
// console screens together.
package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/console/tui"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
	"github.com/xenking/ercm/internal/handler"
	"github.com/xenking/ercm/internal/storage"
	"github.com/xenking/ercm/internal/storage/jsonfile"
	"github.com/xenking/ercm/internal/storage/postgres"
)

// Services bundles the repositories and domain services over one backend.
type Services struct {
	Backend  storage.Backend
	Articles *storage.ArticleRepository
	Clients  *storage.ClientRepository
	Orders   *storage.OrderRepository
	Users    *storage.UserRepository

	OrderService *order.Service
	UserService  *user.Service
}

// NewLogger returns a JSON logger writing to the configured file.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lg, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return lg, nil
}

// OpenBackend connects the configured storage driver.
func OpenBackend(ctx context.Context, cfg StorageConfig) (storage.Backend, error) {
	switch cfg.Driver {
	case DriverJSONFile:
		b, err := jsonfile.Open(cfg.DataDir)
		if err != nil {
			return nil, errors.Wrap(err, "open data dir")
		}
		return b, nil
	case DriverPostgres:
		b, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres")
		}
		return b, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Open connects the backend and builds the repositories and services on top of it.
func Open(ctx context.Context, cfg *Config) (*Services, error) {
	zctx.From(ctx).Info("Opening storage",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("data_dir", cfg.Storage.DataDir),
	)
	b, err := OpenBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	return NewServices(b, cfg.Locale.DateLayout), nil
}

// NewServices builds the repositories and services over b.
func NewServices(b storage.Backend, dateLayout string) *Services {
	s := &Services{
		Backend:  b,
		Articles: storage.NewArticleRepository(b),
		Clients:  storage.NewClientRepository(b),
		Orders:   storage.NewOrderRepository(b),
		Users:    storage.NewUserRepository(b),
	}
	s.OrderService = order.NewService(s.Orders, s.Articles, s.Clients, dateLayout)
	s.UserService = user.NewService(s.Users)
	return s
}

// Close releases the backend.
func (s *Services) Close() error {
	return s.Backend.Close()
}

// NewPrinter returns a Printer for the configured locale.
func NewPrinter(cfg LocaleConfig, w io.Writer) (*console.Printer, error) {
	format, err := console.NewFormat(cfg.Language, cfg.DateLayout, cfg.Currency)
	if err != nil {
		return nil, err
	}
	return console.NewPrinter(w, format), nil
}

// Run opens storage and runs one interactive session on in and out. It is the
// single wiring point for the console application.
func Run(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	lg := zctx.From(ctx)
	svc, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			lg.Error("Close storage", zap.Error(err))
		}
	}()

	printer, err := NewPrinter(cfg.Locale, out)
	if err != nil {
		return err
	}
	h := handler.NewHandler(
		console.NewAsker(tui.New(in, out), printer),
		printer,
		svc.UserService,
		svc.Articles,
		svc.Clients,
		svc.OrderService,
	)

	lg.Info("Session started")
	if err := h.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "session")
	}
	lg.Info("Session ended")
	return nil
}
