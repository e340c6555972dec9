package main

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/ercm/internal/app"
	"github.com/xenking/ercm/pkg/health"
)

func (c *cli) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that storage is reachable and the collections are readable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lg := zctx.From(ctx)
			svc, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			results := app.NewHealth(c.cfg, svc).Run(ctx)
			w := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err == nil {
					fmt.Fprintf(w, "ok    %-14s %s\n", r.Name, r.Duration.Round(time.Millisecond))
					continue
				}
				lg.Warn("Check failed",
					zap.String("check", r.Name),
					zap.Stringer("level", r.Level),
					zap.Error(r.Err),
				)
				fmt.Fprintf(w, "%-5s %-14s %v\n", label(r.Level), r.Name, r.Err)
			}
			if !health.Healthy(results) {
				return errors.New("unhealthy")
			}
			return nil
		},
	}
}

func label(l health.Level) string {
	if l == health.Warning {
		return "warn"
	}
	return "fail"
}
