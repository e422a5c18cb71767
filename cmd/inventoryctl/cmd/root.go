package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/inventory/internal/config"
	inventory "github.com/kailas-cloud/inventory/pkg/sdk"
)

var (
	envName  string
	language string
	verbose  bool
	cfg      config.Config
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inventoryctl",
	Short: "Search the inventory and run its reports from a terminal",
	Long: `inventoryctl runs the inventory list service's searches, reports and
vocabulary edits against the backend named in config/<env>.yaml.

Report files are written to the directory given by --out.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		if envName == "" {
			envName = config.GetEnv()
		}
		var err error
		cfg, err = config.Load(envName)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "config environment (default: $ENV or local)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "language of report headers and notices, e.g. de")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every SDK operation")
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openClient builds an SDK client from the loaded config.
func openClient(ctx context.Context) (*inventory.Client, error) {
	opts := []inventory.Option{
		inventory.WithBackend(cfg.Backend.URL, cfg.Backend.Tenant),
		inventory.WithToken(cfg.Backend.Token),
		inventory.WithTimeout(time.Duration(cfg.Backend.TimeoutSec) * time.Second),
		inventory.WithRateLimit(cfg.Backend.RatePerSec, cfg.Backend.Burst),
		inventory.WithPageSize(cfg.Backend.PageSize),
		inventory.WithMaxRecords(cfg.Reports.MaxRecords),
		inventory.WithLanguage(language),
		inventory.WithEnv(cfg.Env),
		inventory.WithLogger(logger),
	}
	switch cfg.Store.Driver {
	case "redis":
		opts = append(opts, inventory.WithRedis(cfg.Store.Addrs[0], cfg.Store.Password))
	case "valkey":
		opts = append(opts, inventory.WithValkey(cfg.Store.Addrs[0], cfg.Store.Password))
	}

	client, err := inventory.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}
