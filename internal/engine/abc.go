package engine

import (
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// ClassifyABC ranks products by revenue contribution over the lookback
// window and assigns Pareto classes: cumulative revenue share ≤ A threshold
// → A, ≤ B threshold → B, else C (boundaries inclusive).
//
// The ranking is fully deterministic: descending revenue, ties broken by
// ascending product ID. With zero revenue in the window the result is empty.
func ClassifyABC(lines []domain.TransactionLine, products []domain.Product, p Params) ([]domain.RevenueRankedProduct, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	from := cutoff(p.anchor(lines), p.LookbackDays)
	revenue, units := revenueByProduct(lines, from, p)

	var grandTotal float64
	ids := make([]int64, 0, len(revenue))
	for id, rev := range revenue {
		grandTotal += rev
		ids = append(ids, id)
	}
	if grandTotal <= 0 {
		return []domain.RevenueRankedProduct{}, nil
	}

	sort.Slice(ids, func(i, j int) bool {
		ri, rj := revenue[ids[i]], revenue[ids[j]]
		if ri != rj {
			return ri > rj
		}
		return ids[i] < ids[j]
	})

	byID := productIndex(products)
	result := make([]domain.RevenueRankedProduct, 0, len(ids))
	var running float64
	for rank, id := range ids {
		running += revenue[id]
		pct := running / grandTotal * 100

		var class string
		switch {
		case pct <= p.AThresholdPct:
			class = "A"
		case pct <= p.BThresholdPct:
			class = "B"
		default:
			class = "C"
		}

		prod := byID[id]
		result = append(result, domain.RevenueRankedProduct{
			ProductID:         id,
			SKU:               prod.SKU,
			ProductName:       prod.ProductName,
			QuantityOrdered:   units[id],
			TotalRevenue:      revenue[id],
			RevenueRank:       rank + 1,
			CumulativeRevenue: running,
			CumulativePct:     pct,
			ABCClass:          class,
		})
	}
	return result, nil
}
