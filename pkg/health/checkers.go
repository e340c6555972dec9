package health

import (
	"context"
	"os"

	"github.com/go-faster/errors"
)

// Pinger is implemented by connections that can be pinged.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck returns a CheckFunc that pings p.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}

// WritableDirCheck returns a CheckFunc that reports unhealthy unless dir is a
// directory a file can be created in.
func WritableDirCheck(dir string) CheckFunc {
	return func(_ context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return errors.Wrap(err, "stat")
		}
		if !info.IsDir() {
			return errors.Errorf("%s is not a directory", dir)
		}
		f, err := os.CreateTemp(dir, ".health-*")
		if err != nil {
			return errors.Wrap(err, "create file")
		}
		name := f.Name()
		_ = f.Close()
		return os.Remove(name)
	}
}
