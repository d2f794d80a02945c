package domain

// ViewSnapshot is one metric of one group of one computed view, flattened
// for the analytical store. A report run emits a batch of snapshots sharing
// the same ComputedAt timestamp, which makes successive runs comparable.
type ViewSnapshot struct {
	ViewName    string
	GroupKey    string // pipe-joined grouping dimensions, e.g. "Electronics|North"
	MetricName  string
	MetricValue float64
	ComputedAt  int64 // Unix ms
}
