package metrics

import "math"

// round2 rounds to 2 fractional digits. Applied only when finalizing rows;
// sorting and threshold checks always run on unrounded values.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round2Ptr rounds a nullable value in place, preserving nil.
func round2Ptr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := round2(*p)
	return &v
}

// ratio divides num by den, returning nil when the denominator is zero.
// Zero-guarded division yields an undefined value, never an error.
func ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}
