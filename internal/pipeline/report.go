package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"retail-metrics-lab/internal/metrics"
	"retail-metrics-lab/internal/observability"
	"retail-metrics-lab/internal/reporting"
	"retail-metrics-lab/internal/storage"
)

// ReportFileName is the main Markdown report written by the pipeline.
const ReportFileName = "RETAIL_REPORT.md"

// ReportPipeline orchestrates report generation: compute every view,
// write the Markdown report and per-view CSVs, and optionally persist
// view snapshots to the analytical store.
type ReportPipeline struct {
	generator     *reporting.Generator
	snapshotStore storage.ViewSnapshotStore // optional
	logger        *zap.Logger
	obs           *observability.Metrics
	outputDir     string
	clock         func() time.Time
}

// NewReportPipeline creates a pipeline over a transaction store.
func NewReportPipeline(store storage.TransactionStore, engine *metrics.Engine, outputDir string) *ReportPipeline {
	return &ReportPipeline{
		generator: reporting.NewGenerator(store, engine),
		logger:    zap.NewNop(),
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// WithSnapshotStore enables snapshot persistence after report generation.
func (p *ReportPipeline) WithSnapshotStore(store storage.ViewSnapshotStore) *ReportPipeline {
	p.snapshotStore = store
	return p
}

// WithClock sets a custom clock function for deterministic output.
func (p *ReportPipeline) WithClock(clock func() time.Time) *ReportPipeline {
	p.clock = clock
	p.generator = p.generator.WithClock(clock)
	return p
}

// WithLogger sets the pipeline logger.
func (p *ReportPipeline) WithLogger(logger *zap.Logger) *ReportPipeline {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithObservability attaches Prometheus metrics.
func (p *ReportPipeline) WithObservability(obs *observability.Metrics) *ReportPipeline {
	p.obs = obs
	p.generator = p.generator.WithObservability(obs)
	return p
}

// Run executes the full pipeline and writes output files:
// - RETAIL_REPORT.md
// - one CSV per view
func (p *ReportPipeline) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	report, err := p.generator.Generate(ctx)
	if err != nil {
		return err
	}
	p.logger.Info("report generated",
		zap.Int("records", report.DataSummary.TotalRecords),
		zap.Time("generated_at", report.GeneratedAt))

	reportMD := reporting.RenderMarkdown(report)
	reportPath := filepath.Join(p.outputDir, ReportFileName)
	if err := os.WriteFile(reportPath, []byte(reportMD), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}

	for name, content := range reporting.CSVFiles(report) {
		path := filepath.Join(p.outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if p.snapshotStore != nil {
		snapshots := reporting.Snapshots(report)
		if len(snapshots) > 0 {
			if err := p.snapshotStore.InsertBulk(ctx, snapshots); err != nil {
				return fmt.Errorf("persist snapshots: %w", err)
			}
			if p.obs != nil {
				p.obs.SnapshotsPersisted.Add(float64(len(snapshots)))
			}
			p.logger.Info("snapshots persisted", zap.Int("rows", len(snapshots)))
		}
	}

	return nil
}
