package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dermayooth-storefront/internal/config"
	"dermayooth-storefront/internal/db"
	"dermayooth-storefront/internal/logging"
	"dermayooth-storefront/internal/migrate"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back the latest migration instead of applying")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if *down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatal("roll back migration", zap.Error(err))
		}
	} else if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatal("read schema version", zap.Error(err))
	}
	logger.Info("migrations done", zap.Bool("down", *down), zap.Uint("version", version), zap.Bool("dirty", dirty))
}
