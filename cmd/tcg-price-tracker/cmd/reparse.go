package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var reparseCmd = &cobra.Command{
	Use:   "reparse",
	Short: "Reload the catalog and re-classify all stored listings",
	RunE:  runReparse,
}

func init() {
	rootCmd.AddCommand(reparseCmd)
}

func runReparse(_ *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	prov, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	eng := buildEngine(st, cfg, prov, log)
	if err := eng.ReloadCatalog(); err != nil {
		return err
	}
	return eng.RunReparse(ctx)
}
