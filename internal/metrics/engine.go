package metrics

import (
	"context"
	"time"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/observability"
	"retail-metrics-lab/internal/storage"
)

// View names, used for snapshot persistence and observability labels.
const (
	ViewProfitByCategory       = "profit_by_category"
	ViewProfitByCategoryRegion = "profit_by_category_region"
	ViewTurnoverByCategory     = "turnover_by_category"
	ViewTurnoverByStore        = "turnover_by_store"
	ViewSeasonalPerformance    = "seasonal_performance"
	ViewWeatherPerformance     = "weather_performance"
	ViewSlowMovers             = "slow_movers"
	ViewCapitalTieUp           = "capital_tie_up"
	ViewForecastAccuracy       = "forecast_accuracy"
	ViewPromotionSplit         = "promotion_split"
	ViewDiscountTiers          = "discount_tiers"
	ViewPricePosition          = "price_position"
	ViewTopPerformers          = "top_performers"
	ViewBottomPerformers       = "bottom_performers"
	ViewSummary                = "executive_summary"
)

// ViewSet holds every computed view from one pass over the fact table.
type ViewSet struct {
	ProfitByCategory       []CategoryProfit
	ProfitByCategoryRegion []RegionProfit
	TurnoverByCategory     []CategoryTurnover
	TurnoverByStore        []StoreTurnover
	SeasonalPerformance    []SeasonCategoryPerformance
	WeatherPerformance     []SeasonWeatherPerformance
	SlowMovers             []SlowMover
	CapitalTieUp           []CapitalTieUp
	ForecastAccuracy       []ForecastAccuracy
	PromotionSplit         []PromotionSplit
	DiscountTiers          []DiscountTierStats
	PricePosition          []PricePosition
	TopPerformers          []ProductPerformance
	BottomPerformers       []ProductPerformance
	Summary                []SummaryMetric
}

// Engine computes the reporting views from the stored fact table.
// Every view is an independent pure computation over the same relation;
// the engine never mutates stored records.
type Engine struct {
	store storage.TransactionStore
	obs   *observability.Metrics // optional
}

// NewEngine creates a new metrics engine over a transaction store.
func NewEngine(store storage.TransactionStore) *Engine {
	return &Engine{store: store}
}

// WithObservability attaches Prometheus metrics to view computation.
func (e *Engine) WithObservability(obs *observability.Metrics) *Engine {
	e.obs = obs
	return e
}

func (e *Engine) load(ctx context.Context) ([]*domain.TransactionRecord, error) {
	return e.store.GetAll(ctx)
}

// observe runs one view computation, recording duration and count.
func observeView[T any](e *Engine, view string, records []*domain.TransactionRecord, compute func([]*domain.TransactionRecord) []T) []T {
	start := time.Now()
	rows := compute(records)
	if e.obs != nil {
		e.obs.ViewComputeDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
		e.obs.ViewsComputed.WithLabelValues(view).Inc()
	}
	return rows
}

// ComputeAll loads the fact table once and evaluates every view.
func (e *Engine) ComputeAll(ctx context.Context) (*ViewSet, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	return &ViewSet{
		ProfitByCategory:       observeView(e, ViewProfitByCategory, records, computeProfitByCategory),
		ProfitByCategoryRegion: observeView(e, ViewProfitByCategoryRegion, records, computeProfitByCategoryRegion),
		TurnoverByCategory:     observeView(e, ViewTurnoverByCategory, records, computeTurnoverByCategory),
		TurnoverByStore:        observeView(e, ViewTurnoverByStore, records, computeTurnoverByStore),
		SeasonalPerformance:    observeView(e, ViewSeasonalPerformance, records, computeSeasonalPerformance),
		WeatherPerformance:     observeView(e, ViewWeatherPerformance, records, computeWeatherPerformance),
		SlowMovers:             observeView(e, ViewSlowMovers, records, computeSlowMovers),
		CapitalTieUp:           observeView(e, ViewCapitalTieUp, records, computeCapitalTieUp),
		ForecastAccuracy:       observeView(e, ViewForecastAccuracy, records, computeForecastAccuracy),
		PromotionSplit:         observeView(e, ViewPromotionSplit, records, computePromotionSplit),
		DiscountTiers:          observeView(e, ViewDiscountTiers, records, computeDiscountTiers),
		PricePosition:          observeView(e, ViewPricePosition, records, computePricePosition),
		TopPerformers:          observeView(e, ViewTopPerformers, records, computeTopPerformers),
		BottomPerformers:       observeView(e, ViewBottomPerformers, records, computeBottomPerformers),
		Summary:                observeView(e, ViewSummary, records, computeSummary),
	}, nil
}

// ProfitByCategory computes the profit-margin-by-category view.
func (e *Engine) ProfitByCategory(ctx context.Context) ([]CategoryProfit, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewProfitByCategory, records, computeProfitByCategory), nil
}

// ProfitByCategoryRegion computes the profit view split by region.
func (e *Engine) ProfitByCategoryRegion(ctx context.Context) ([]RegionProfit, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewProfitByCategoryRegion, records, computeProfitByCategoryRegion), nil
}

// TurnoverByCategory computes the inventory-turnover-by-category view.
func (e *Engine) TurnoverByCategory(ctx context.Context) ([]CategoryTurnover, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewTurnoverByCategory, records, computeTurnoverByCategory), nil
}

// TurnoverByStore computes the turnover view per store+category.
func (e *Engine) TurnoverByStore(ctx context.Context) ([]StoreTurnover, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewTurnoverByStore, records, computeTurnoverByStore), nil
}

// SeasonalPerformance computes the season×category view.
func (e *Engine) SeasonalPerformance(ctx context.Context) ([]SeasonCategoryPerformance, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewSeasonalPerformance, records, computeSeasonalPerformance), nil
}

// WeatherPerformance computes the season×weather view.
func (e *Engine) WeatherPerformance(ctx context.Context) ([]SeasonWeatherPerformance, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewWeatherPerformance, records, computeWeatherPerformance), nil
}

// SlowMovers computes the slow-moving/overstock detection view.
func (e *Engine) SlowMovers(ctx context.Context) ([]SlowMover, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewSlowMovers, records, computeSlowMovers), nil
}

// CapitalTieUp computes the tied-up-capital view.
func (e *Engine) CapitalTieUp(ctx context.Context) ([]CapitalTieUp, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewCapitalTieUp, records, computeCapitalTieUp), nil
}

// ForecastAccuracy computes the forecast-accuracy view.
func (e *Engine) ForecastAccuracy(ctx context.Context) ([]ForecastAccuracy, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewForecastAccuracy, records, computeForecastAccuracy), nil
}

// PromotionSplit computes the promotion-effectiveness view.
func (e *Engine) PromotionSplit(ctx context.Context) ([]PromotionSplit, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewPromotionSplit, records, computePromotionSplit), nil
}

// DiscountTiers computes the discount-depth view.
func (e *Engine) DiscountTiers(ctx context.Context) ([]DiscountTierStats, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewDiscountTiers, records, computeDiscountTiers), nil
}

// PricePosition computes the competitive-pricing view.
func (e *Engine) PricePosition(ctx context.Context) ([]PricePosition, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewPricePosition, records, computePricePosition), nil
}

// TopPerformers computes the top-10 view.
func (e *Engine) TopPerformers(ctx context.Context) ([]ProductPerformance, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewTopPerformers, records, computeTopPerformers), nil
}

// BottomPerformers computes the bottom-10 view.
func (e *Engine) BottomPerformers(ctx context.Context) ([]ProductPerformance, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewBottomPerformers, records, computeBottomPerformers), nil
}

// Summary computes the executive summary scalars.
func (e *Engine) Summary(ctx context.Context) ([]SummaryMetric, error) {
	records, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return observeView(e, ViewSummary, records, computeSummary), nil
}
