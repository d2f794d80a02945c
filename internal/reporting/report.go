package reporting

import (
	"time"

	"retail-metrics-lab/internal/metrics"
)

// Report is the complete analytical report over the fact table.
type Report struct {
	// Metadata
	GeneratedAt time.Time

	// Data Summary
	DataSummary DataSummary

	// Computed views
	Views metrics.ViewSet
}

// DataSummary describes the dataset the report was computed from.
type DataSummary struct {
	TotalRecords     int
	UniqueStores     int
	UniqueProducts   int
	UniqueCategories int
	UniqueRegions    int
	DateRangeStart   time.Time
	DateRangeEnd     time.Time
}
