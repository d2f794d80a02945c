package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

// PricePosition is one row of the competitive-pricing view: how a
// category's prices sit against competitors in one region.
type PricePosition struct {
	Category string
	Region   string

	Transactions       int
	AvgPrice           float64
	AvgCompetitorPrice float64
	AvgPriceDelta      float64 // avg(price - competitor_pricing)
	AvgPremiumPct      float64 // avg of per-row (price-competitor)/competitor*100
}

// computePricePosition groups by category×region over rows with a known
// competitor price and actual sales (competitor_pricing > 0, units_sold > 0).
// The premium is an average of per-row ratios. Ordered by premium DESC,
// category ASC, region ASC.
func computePricePosition(records []*domain.TransactionRecord) []PricePosition {
	type key struct{ category, region string }
	type priceAcc struct {
		transactions  int
		sumPrice      float64
		sumCompetitor float64
		sumDelta      float64
		sumPremium    float64
	}

	acc := make(map[key]*priceAcc)
	for _, t := range records {
		if t.CompetitorPricing <= 0 || t.UnitsSold == 0 {
			continue
		}
		k := key{t.Category, t.Region}
		a, ok := acc[k]
		if !ok {
			a = &priceAcc{}
			acc[k] = a
		}

		delta := t.Price - t.CompetitorPricing
		a.transactions++
		a.sumPrice += t.Price
		a.sumCompetitor += t.CompetitorPricing
		a.sumDelta += delta
		a.sumPremium += delta / t.CompetitorPricing * 100
	}

	rows := make([]PricePosition, 0, len(acc))
	for k, a := range acc {
		n := float64(a.transactions)
		rows = append(rows, PricePosition{
			Category:           k.category,
			Region:             k.region,
			Transactions:       a.transactions,
			AvgPrice:           a.sumPrice / n,
			AvgCompetitorPrice: a.sumCompetitor / n,
			AvgPriceDelta:      a.sumDelta / n,
			AvgPremiumPct:      a.sumPremium / n,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgPremiumPct != rows[j].AvgPremiumPct {
			return rows[i].AvgPremiumPct > rows[j].AvgPremiumPct
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Region < rows[j].Region
	})

	for i := range rows {
		rows[i].AvgPrice = round2(rows[i].AvgPrice)
		rows[i].AvgCompetitorPrice = round2(rows[i].AvgCompetitorPrice)
		rows[i].AvgPriceDelta = round2(rows[i].AvgPriceDelta)
		rows[i].AvgPremiumPct = round2(rows[i].AvgPremiumPct)
	}
	return rows
}
