package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/ercm/internal/storage"
)

func (c *cli) seedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import records from a seed or backup file",
		Long: "Import records from a JSON object keyed by collection name, " +
			"gzip-compressed when the file ends in .gz. Records with an existing id are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			data, err := readSeed(file)
			if err != nil {
				return err
			}
			svc, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			res, err := storage.Import(ctx, svc.Backend, data)
			if err != nil {
				return err
			}
			for _, coll := range storage.Collections {
				zctx.From(ctx).Info("Seeded collection",
					zap.String("collection", string(coll)),
					zap.Int("added", res.Added[coll]),
					zap.Int("skipped", res.Skipped[coll]),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d hinzugefügt, %d übersprungen\n", coll, res.Added[coll], res.Skipped[coll])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/seed.json", "seed file to import")
	return cmd
}

func readSeed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open seed file")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}
	return data, nil
}

func (c *cli) backupCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a gzip-compressed snapshot of all collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			if err := writeBackup(cmd, svc.Backend, out); err != nil {
				return err
			}
			zctx.From(ctx).Info("Backup written", zap.String("path", out))
			fmt.Fprintf(cmd.OutOrStdout(), "Sicherung gespeichert: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "ercm-backup.json.gz", "backup file to write")
	return cmd
}

func writeBackup(cmd *cobra.Command, b storage.Backend, path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create backup file")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "close backup file")
		}
	}()

	gz := pgzip.NewWriter(f)
	if err := storage.Dump(cmd.Context(), b, gz); err != nil {
		_ = gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "finish gzip")
	}
	return nil
}
