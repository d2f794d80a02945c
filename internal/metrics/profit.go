package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

// CategoryProfit is one row of the profit-margin-by-category view.
type CategoryProfit struct {
	Category string

	Transactions   int
	TotalUnitsSold int
	GrossRevenue   float64
	DiscountAmount float64
	NetRevenue     float64
	AvgPrice       float64
	AvgDiscount    float64
	ProfitMargin   float64 // percent, net/gross*100
}

// RegionProfit is one row of the profit-margin-by-category-and-region view.
type RegionProfit struct {
	Category string
	Region   string

	Transactions   int
	TotalUnitsSold int
	GrossRevenue   float64
	DiscountAmount float64
	NetRevenue     float64
	AvgPrice       float64
	AvgDiscount    float64
	ProfitMargin   float64
}

type profitAccumulator struct {
	transactions int
	units        int
	gross        float64
	net          float64
	discountAmt  float64
	sumPrice     float64
	sumDiscount  float64
}

func (a *profitAccumulator) add(t *domain.TransactionRecord) {
	a.transactions++
	a.units += t.UnitsSold
	a.gross += t.GrossRevenue()
	a.net += t.NetRevenue()
	a.discountAmt += t.DiscountAmount()
	a.sumPrice += t.Price
	a.sumDiscount += t.Discount
}

// computeProfitByCategory groups revenue-carrying rows (units_sold > 0) by
// category. Groups with zero gross revenue cannot produce a margin
// denominator and are excluded rather than zero-filled.
// Ordered by profit margin DESC, category ASC.
func computeProfitByCategory(records []*domain.TransactionRecord) []CategoryProfit {
	acc := make(map[string]*profitAccumulator)
	for _, t := range records {
		if t.UnitsSold == 0 {
			continue
		}
		a, ok := acc[t.Category]
		if !ok {
			a = &profitAccumulator{}
			acc[t.Category] = a
		}
		a.add(t)
	}

	rows := make([]CategoryProfit, 0, len(acc))
	for category, a := range acc {
		if a.gross == 0 {
			continue
		}
		rows = append(rows, CategoryProfit{
			Category:       category,
			Transactions:   a.transactions,
			TotalUnitsSold: a.units,
			GrossRevenue:   a.gross,
			DiscountAmount: a.discountAmt,
			NetRevenue:     a.net,
			AvgPrice:       a.sumPrice / float64(a.transactions),
			AvgDiscount:    a.sumDiscount / float64(a.transactions),
			ProfitMargin:   a.net / a.gross * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProfitMargin != rows[j].ProfitMargin {
			return rows[i].ProfitMargin > rows[j].ProfitMargin
		}
		return rows[i].Category < rows[j].Category
	})

	for i := range rows {
		finalizeCategoryProfit(&rows[i])
	}
	return rows
}

// computeProfitByCategoryRegion is the category+region variant.
// Ordered by category ASC, then profit margin DESC, then region ASC.
func computeProfitByCategoryRegion(records []*domain.TransactionRecord) []RegionProfit {
	type key struct{ category, region string }

	acc := make(map[key]*profitAccumulator)
	for _, t := range records {
		if t.UnitsSold == 0 {
			continue
		}
		k := key{t.Category, t.Region}
		a, ok := acc[k]
		if !ok {
			a = &profitAccumulator{}
			acc[k] = a
		}
		a.add(t)
	}

	rows := make([]RegionProfit, 0, len(acc))
	for k, a := range acc {
		if a.gross == 0 {
			continue
		}
		rows = append(rows, RegionProfit{
			Category:       k.category,
			Region:         k.region,
			Transactions:   a.transactions,
			TotalUnitsSold: a.units,
			GrossRevenue:   a.gross,
			DiscountAmount: a.discountAmt,
			NetRevenue:     a.net,
			AvgPrice:       a.sumPrice / float64(a.transactions),
			AvgDiscount:    a.sumDiscount / float64(a.transactions),
			ProfitMargin:   a.net / a.gross * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if rows[i].ProfitMargin != rows[j].ProfitMargin {
			return rows[i].ProfitMargin > rows[j].ProfitMargin
		}
		return rows[i].Region < rows[j].Region
	})

	for i := range rows {
		rows[i].GrossRevenue = round2(rows[i].GrossRevenue)
		rows[i].DiscountAmount = round2(rows[i].DiscountAmount)
		rows[i].NetRevenue = round2(rows[i].NetRevenue)
		rows[i].AvgPrice = round2(rows[i].AvgPrice)
		rows[i].AvgDiscount = round2(rows[i].AvgDiscount)
		rows[i].ProfitMargin = round2(rows[i].ProfitMargin)
	}
	return rows
}

func finalizeCategoryProfit(r *CategoryProfit) {
	r.GrossRevenue = round2(r.GrossRevenue)
	r.DiscountAmount = round2(r.DiscountAmount)
	r.NetRevenue = round2(r.NetRevenue)
	r.AvgPrice = round2(r.AvgPrice)
	r.AvgDiscount = round2(r.AvgDiscount)
	r.ProfitMargin = round2(r.ProfitMargin)
}
