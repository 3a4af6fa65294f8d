package engine

import (
	"math"
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// ComputeEOQ derives the Wilson economic order quantity per product:
//
//	EOQ = √(2DS/H)   D annual demand, S ordering cost, H holding cost/unit
//
// H is unit cost × holding cost rate. Products with zero annual demand or
// zero holding cost are excluded; the formula is undefined for them, and
// an undefined result is not a zero row.
func ComputeEOQ(lines []domain.TransactionLine, products []domain.Product, p Params) ([]domain.EOQResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	from := cutoff(p.anchor(lines), p.LookbackDays)
	annualDemand := unitsByProduct(lines, from, p)
	byID := productIndex(products)

	ids := make([]int64, 0, len(annualDemand))
	for id := range annualDemand {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]domain.EOQResult, 0, len(ids))
	for _, id := range ids {
		demand := annualDemand[id]
		if demand <= 0 {
			continue
		}
		prod, ok := byID[id]
		if !ok {
			continue
		}
		holding := prod.UnitCost * p.HoldingCostRate
		if holding <= 0 {
			continue
		}

		d := float64(demand)
		eoq := math.Round(math.Sqrt(2 * d * p.OrderingCost / holding))
		if eoq < 1 {
			eoq = 1
		}
		ordersPerYear := roundTo(d/eoq, 1)
		// A tiny demand against a huge EOQ can round order frequency down
		// to zero; the reorder interval is undefined then, not infinite.
		var daysBetween *float64
		if ordersPerYear > 0 {
			daysBetween = ptr(roundTo(365/ordersPerYear, 0))
		}

		result = append(result, domain.EOQResult{
			ProductID:         id,
			SKU:               prod.SKU,
			ProductName:       prod.ProductName,
			UnitCost:          prod.UnitCost,
			AnnualDemand:      demand,
			EOQ:               int(eoq),
			OrdersPerYear:     ordersPerYear,
			DaysBetweenOrders: daysBetween,
			OptimalAnnualCost: roundTo(math.Sqrt(2*d*p.OrderingCost*holding), 2),
		})
	}
	return result, nil
}
