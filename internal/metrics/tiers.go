package metrics

// DiscountTier labels a discount depth bucket.
type DiscountTier string

// Discount tiers form a total partition of [0, 100]:
// exactly 0 / (0, 10] / (10, 20] / (20, 100].
const (
	TierNone   DiscountTier = "No Discount"
	TierLow    DiscountTier = "Low"
	TierMedium DiscountTier = "Medium"
	TierHigh   DiscountTier = "High"
)

// TierFor maps a discount percentage to its tier. Total over all valid
// discounts; boundaries closed at 0, 10 and 20.
func TierFor(discount float64) DiscountTier {
	switch {
	case discount == 0:
		return TierNone
	case discount <= 10:
		return TierLow
	case discount <= 20:
		return TierMedium
	default:
		return TierHigh
	}
}

// tierRank orders tiers by discount depth for deterministic output.
func tierRank(t DiscountTier) int {
	switch t {
	case TierNone:
		return 0
	case TierLow:
		return 1
	case TierMedium:
		return 2
	default:
		return 3
	}
}
