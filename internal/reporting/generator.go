package reporting

import (
	"context"
	"fmt"
	"time"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/metrics"
	"retail-metrics-lab/internal/observability"
	"retail-metrics-lab/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	store  storage.TransactionStore
	engine *metrics.Engine
	obs    *observability.Metrics
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(store storage.TransactionStore, engine *metrics.Engine) *Generator {
	return &Generator{
		store:  store,
		engine: engine,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithObservability attaches Prometheus metrics to the generator.
func (g *Generator) WithObservability(obs *observability.Metrics) *Generator {
	g.obs = obs
	return g
}

// Generate produces a complete report: one pass for the data summary and
// one engine pass for every view.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	records, err := g.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	views, err := g.engine.ComputeAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute views: %w", err)
	}

	report := &Report{
		GeneratedAt: g.now(),
		DataSummary: buildDataSummary(records),
		Views:       *views,
	}

	if g.obs != nil {
		g.obs.ReportsGenerated.Inc()
	}
	return report, nil
}

// buildDataSummary computes dataset cardinalities and the date range.
func buildDataSummary(records []*domain.TransactionRecord) DataSummary {
	stores := make(map[string]struct{})
	products := make(map[string]struct{})
	categories := make(map[string]struct{})
	regions := make(map[string]struct{})

	summary := DataSummary{TotalRecords: len(records)}
	for i, t := range records {
		stores[t.StoreID] = struct{}{}
		products[t.ProductID] = struct{}{}
		categories[t.Category] = struct{}{}
		regions[t.Region] = struct{}{}

		if i == 0 {
			summary.DateRangeStart = t.Date
			summary.DateRangeEnd = t.Date
			continue
		}
		if t.Date.Before(summary.DateRangeStart) {
			summary.DateRangeStart = t.Date
		}
		if t.Date.After(summary.DateRangeEnd) {
			summary.DateRangeEnd = t.Date
		}
	}

	summary.UniqueStores = len(stores)
	summary.UniqueProducts = len(products)
	summary.UniqueCategories = len(categories)
	summary.UniqueRegions = len(regions)
	return summary
}
