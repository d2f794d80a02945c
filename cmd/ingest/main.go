package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"retail-metrics-lab/internal/config"
	"retail-metrics-lab/internal/ingestion"
	"retail-metrics-lab/internal/observability"
	"retail-metrics-lab/internal/storage/migrations"
	pgstore "retail-metrics-lab/internal/storage/postgres"
)

func main() {
	csvPath := flag.String("csv", "", "Path to the retail transactions CSV file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides environment)")
	migrate := flag.Bool("migrate", true, "Apply database migrations before ingesting")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (overrides environment, empty to disable)")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --csv is required")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dsn := cfg.Postgres.DSN()
	if *postgresDSN != "" {
		dsn = *postgresDSN
	}
	addr := cfg.Metrics.Addr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}

	ctx := context.Background()
	if err := run(ctx, logger, dsn, *csvPath, addr, *migrate); err != nil {
		logger.Fatal("ingestion failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, dsn, csvPath, metricsAddr string, migrate bool) error {
	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	obs := observability.NewMetrics("")
	if metricsAddr != "" {
		go serveMetrics(logger, metricsAddr, obs)
	}

	store := pgstore.NewTransactionStore(pool)
	loader := ingestion.NewLoader(store, logger).WithObservability(obs)

	n, err := loader.Load(ctx, file)
	if err != nil {
		return err
	}

	logger.Info("ingestion complete", zap.String("csv", csvPath), zap.Int("records", n))
	return nil
}

// serveMetrics exposes /metrics and /health while the run is in progress.
func serveMetrics(logger *zap.Logger, addr string, obs *observability.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", obs.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	logger.Info("metrics server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server failed", zap.Error(err))
	}
}
