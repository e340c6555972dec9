package main

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/ercm/internal/app"
)

// cli holds state shared by all subcommands once the root pre-run has loaded
// the configuration.
type cli struct {
	configPath string
	cfg        *app.Config
	lg         *zap.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "ercm",
		Short:         "Console for articles, clients, orders and users",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.lg != nil {
				_ = c.lg.Sync()
			}
		},
		RunE: c.runShell,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		c.shellCommand(),
		c.ordersCommand(),
		c.seedCommand(),
		c.backupCommand(),
		c.checkCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	lg, err := app.NewLogger(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	c.cfg = cfg
	c.lg = lg
	cmd.SetContext(zctx.Base(cmd.Context(), lg.With(zap.String("cmd", cmd.Name()))))
	return nil
}

func (c *cli) open(cmd *cobra.Command) (*app.Services, error) {
	return app.Open(cmd.Context(), c.cfg)
}

func (c *cli) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runShell,
	}
}

func (c *cli) runShell(cmd *cobra.Command, _ []string) error {
	return app.Run(cmd.Context(), c.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}
