package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"dermayooth-storefront/internal/config"
	"dermayooth-storefront/internal/db"
	"dermayooth-storefront/internal/importer"
	"dermayooth-storefront/internal/logging"
	productrepo "dermayooth-storefront/internal/repository/product"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		filePath string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "importer",
		Short: "Import products from a catalog CSV export",
		Long: `Reads a CSV export with one product per row and upserts it into the
products table. Rows without a name that carry images add those images to
the product above them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if filePath == "" {
				return errors.New("--file is required")
			}
			return run(cmd.Context(), filePath, logLevel)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the product CSV export")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("importer %s\n", version)
		},
	})

	return cmd
}

func run(ctx context.Context, filePath, logLevel string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logger, err := logging.New(logLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger)).Run(ctx)
	if err != nil {
		return fmt.Errorf("import after %d products: %w", count, err)
	}

	logger.Info("import finished",
		zap.String("file", filePath),
		zap.Int("products", count),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)),
	)
	return nil
}
