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
	"retail-metrics-lab/internal/metrics"
	"retail-metrics-lab/internal/observability"
	"retail-metrics-lab/internal/pipeline"
	"retail-metrics-lab/internal/storage"
	chstore "retail-metrics-lab/internal/storage/clickhouse"
	"retail-metrics-lab/internal/storage/memory"
	"retail-metrics-lab/internal/storage/migrations"
	pgstore "retail-metrics-lab/internal/storage/postgres"
)

func main() {
	outputDir := flag.String("output-dir", "", "Output directory for generated files (overrides environment)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides environment)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (overrides environment)")
	useFixtures := flag.Bool("use-fixtures", false, "Use in-memory fixtures instead of databases")
	persistSnapshots := flag.Bool("persist-snapshots", true, "Persist view snapshots to ClickHouse (database mode only)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (overrides environment, empty to disable)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dir := cfg.Report.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}
	pgDSN := cfg.Postgres.DSN()
	if *postgresDSN != "" {
		pgDSN = *postgresDSN
	}
	chDSN := cfg.Clickhouse.DSN()
	if *clickhouseDSN != "" {
		chDSN = *clickhouseDSN
	}
	addr := cfg.Metrics.Addr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}

	ctx := context.Background()
	if err := run(ctx, logger, dir, pgDSN, chDSN, addr, *useFixtures, *persistSnapshots); err != nil {
		logger.Fatal("report generation failed", zap.Error(err))
	}

	fmt.Println("Report generated successfully:")
	fmt.Printf("  - %s/%s\n", dir, pipeline.ReportFileName)
	fmt.Printf("  - %s/*.csv (one file per view)\n", dir)
}

func run(ctx context.Context, logger *zap.Logger, outputDir, pgDSN, chDSN, metricsAddr string, useFixtures, persistSnapshots bool) error {
	var (
		store         storage.TransactionStore
		snapshotStore storage.ViewSnapshotStore
	)

	if useFixtures {
		memStore := memory.NewTransactionStore()
		if err := pipeline.LoadFixtures(ctx, memStore); err != nil {
			return fmt.Errorf("load fixtures: %w", err)
		}
		store = memStore
		snapshotStore = memory.NewViewSnapshotStore()
		logger.Info("using in-memory fixtures")
	} else {
		pool, err := pgstore.NewPool(ctx, pgDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()

		conn, err := migrations.RunClickhouseMigrations(ctx, chDSN)
		if err != nil {
			return fmt.Errorf("connect to clickhouse: %w", err)
		}
		defer conn.Close()

		store = pgstore.NewTransactionStore(pool)
		if persistSnapshots {
			snapshotStore = chstore.NewViewSnapshotStore(conn)
		}
		logger.Info("connected to databases")
	}

	obs := observability.NewMetrics("")
	if metricsAddr != "" {
		go serveMetrics(logger, metricsAddr, obs)
	}

	engine := metrics.NewEngine(store).WithObservability(obs)

	p := pipeline.NewReportPipeline(store, engine, outputDir).
		WithLogger(logger).
		WithObservability(obs)
	if snapshotStore != nil {
		p = p.WithSnapshotStore(snapshotStore)
	}

	return p.Run(ctx)
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
