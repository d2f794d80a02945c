package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

// PromotionSplit is one row of the promotion-effectiveness view: each
// category appears twice, once per holiday_promotion value, so promoted
// and unpromoted demand can be compared side by side.
type PromotionSplit struct {
	Category         string
	HolidayPromotion bool

	Transactions int
	AvgUnitsSold float64
	AvgPrice     float64
	AvgDiscount  float64
	NetRevenue   float64
}

// DiscountTierStats is one row of the discount-depth view (category×tier).
type DiscountTierStats struct {
	Category string
	Tier     DiscountTier

	Transactions   int
	AvgUnitsSold   float64
	TotalUnitsSold int
	GrossRevenue   float64
	NetRevenue     float64
	ProfitMargin   float64
}

// computePromotionSplit groups every row (zero-sale rows included: a
// promotion that moved nothing is part of the comparison) by
// promotion flag×category. Ordered by category ASC, promoted rows first.
func computePromotionSplit(records []*domain.TransactionRecord) []PromotionSplit {
	type key struct {
		category string
		promoted bool
	}
	type promoAcc struct {
		transactions int
		units        int
		sumPrice     float64
		sumDiscount  float64
		net          float64
	}

	acc := make(map[key]*promoAcc)
	for _, t := range records {
		k := key{t.Category, t.HolidayPromotion}
		a, ok := acc[k]
		if !ok {
			a = &promoAcc{}
			acc[k] = a
		}
		a.transactions++
		a.units += t.UnitsSold
		a.sumPrice += t.Price
		a.sumDiscount += t.Discount
		a.net += t.NetRevenue()
	}

	rows := make([]PromotionSplit, 0, len(acc))
	for k, a := range acc {
		n := float64(a.transactions)
		rows = append(rows, PromotionSplit{
			Category:         k.category,
			HolidayPromotion: k.promoted,
			Transactions:     a.transactions,
			AvgUnitsSold:     float64(a.units) / n,
			AvgPrice:         a.sumPrice / n,
			AvgDiscount:      a.sumDiscount / n,
			NetRevenue:       a.net,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].HolidayPromotion && !rows[j].HolidayPromotion
	})

	for i := range rows {
		rows[i].AvgUnitsSold = round2(rows[i].AvgUnitsSold)
		rows[i].AvgPrice = round2(rows[i].AvgPrice)
		rows[i].AvgDiscount = round2(rows[i].AvgDiscount)
		rows[i].NetRevenue = round2(rows[i].NetRevenue)
	}
	return rows
}

// computeDiscountTiers groups revenue-carrying rows (units_sold > 0) by
// category×tier. Groups with zero gross revenue are excluded (margin
// denominator guard). Ordered by category ASC, tier depth ASC.
func computeDiscountTiers(records []*domain.TransactionRecord) []DiscountTierStats {
	type key struct {
		category string
		tier     DiscountTier
	}
	type tierAcc struct {
		transactions int
		units        int
		gross        float64
		net          float64
	}

	acc := make(map[key]*tierAcc)
	for _, t := range records {
		if t.UnitsSold == 0 {
			continue
		}
		k := key{t.Category, TierFor(t.Discount)}
		a, ok := acc[k]
		if !ok {
			a = &tierAcc{}
			acc[k] = a
		}
		a.transactions++
		a.units += t.UnitsSold
		a.gross += t.GrossRevenue()
		a.net += t.NetRevenue()
	}

	rows := make([]DiscountTierStats, 0, len(acc))
	for k, a := range acc {
		if a.gross == 0 {
			continue
		}
		rows = append(rows, DiscountTierStats{
			Category:       k.category,
			Tier:           k.tier,
			Transactions:   a.transactions,
			AvgUnitsSold:   float64(a.units) / float64(a.transactions),
			TotalUnitsSold: a.units,
			GrossRevenue:   a.gross,
			NetRevenue:     a.net,
			ProfitMargin:   a.net / a.gross * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return tierRank(rows[i].Tier) < tierRank(rows[j].Tier)
	})

	for i := range rows {
		rows[i].AvgUnitsSold = round2(rows[i].AvgUnitsSold)
		rows[i].GrossRevenue = round2(rows[i].GrossRevenue)
		rows[i].NetRevenue = round2(rows[i].NetRevenue)
		rows[i].ProfitMargin = round2(rows[i].ProfitMargin)
	}
	return rows
}
