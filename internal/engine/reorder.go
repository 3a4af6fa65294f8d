package engine

import (
	"math"
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// RecommendReorderPoints computes dynamic reorder points per stocked
// (warehouse, product) position from demand variability and lead-time
// variability:
//
//	safety stock = z × √(LT × σd² + d² × σLT²)
//	ROP          = d × LT + safety stock
//
// Demand statistics come from daily demand over the demand lookback window;
// positions with zero observed average daily demand are excluded; there is
// no demand signal to size against, and zero is not a substitute for one.
// Lead-time statistics come from the product's supplier's delivery history
// when it exists, otherwise from the product's configured lead time
// with the σ fallback multiplier.
func RecommendReorderPoints(lines []domain.TransactionLine, deliveries []domain.DeliveryRecord, snapshots []domain.InventorySnapshot, products []domain.Product, warehouses []domain.Warehouse, p Params) ([]domain.ReorderRecommendation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	from := cutoff(p.anchor(lines), p.DemandLookbackDays)
	demand := dailyDemandSeries(lines, from, p)
	leadObs := leadTimeObservations(deliveries)
	byID := productIndex(products)
	whByID := warehouseIndex(warehouses)

	snapByKey := make(map[warehouseProduct]domain.InventorySnapshot, len(snapshots))
	for _, s := range snapshots {
		snapByKey[warehouseProduct{s.WarehouseID, s.ProductID}] = s
	}

	keys := make([]warehouseProduct, 0, len(demand))
	for k := range demand {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WarehouseID != keys[j].WarehouseID {
			return keys[i].WarehouseID < keys[j].WarehouseID
		}
		return keys[i].ProductID < keys[j].ProductID
	})

	result := make([]domain.ReorderRecommendation, 0, len(keys))
	for _, k := range keys {
		series := demand[k]
		avgDemand := Mean(series)
		if avgDemand <= 0 {
			continue
		}
		snap, ok := snapByKey[k]
		if !ok {
			continue
		}
		prod, ok := byID[k.ProductID]
		if !ok {
			continue
		}

		sdDemand, ok := SampleStdDev(series)
		if !ok {
			sdDemand = avgDemand * p.DemandStdDevFallback
		}

		avgLead, sdLead := leadTimeForProduct(prod, leadObs, p)

		safety := p.ServiceLevelZ * math.Sqrt(avgLead*sdDemand*sdDemand+avgDemand*avgDemand*sdLead*sdLead)
		rop := avgDemand*avgLead + safety

		current := snap.ReorderPoint
		calculated := int(math.Round(rop))

		// The recommendation compares the rounded ROP, not the raw value,
		// so inputs landing exactly on a threshold stay "Optimal".
		recommendation := "Optimal"
		switch {
		case float64(calculated) > float64(current)*1.2:
			recommendation = "Increase ROP"
		case float64(calculated) < float64(current)*0.8:
			recommendation = "Decrease ROP"
		}

		result = append(result, domain.ReorderRecommendation{
			WarehouseID:     k.WarehouseID,
			WarehouseCode:   whByID[k.WarehouseID].WarehouseCode,
			ProductID:       k.ProductID,
			SKU:             prod.SKU,
			ProductName:     prod.ProductName,
			QuantityOnHand:  snap.QuantityOnHand,
			AvgDailyDemand:  avgDemand,
			AvgLeadTimeDays: avgLead,
			SafetyStock:     int(math.Round(safety)),
			CurrentROP:      current,
			CalculatedROP:   calculated,
			Recommendation:  recommendation,
		})
	}
	return result, nil
}

// leadTimeForProduct resolves (mean, stddev) lead time for a product:
// observed supplier history first, configured default otherwise. The
// fallback multiplier stands in for an undefined deviation in both cases.
func leadTimeForProduct(prod domain.Product, leadObs map[int64][]float64, p Params) (avg, sd float64) {
	if obs, ok := leadObs[prod.SupplierID]; ok && len(obs) > 0 {
		avg = Mean(obs)
		if v, ok := SampleStdDev(obs); ok {
			return avg, v
		}
		return avg, avg * p.LeadTimeStdDevFallback
	}
	avg = float64(prod.LeadTimeDays)
	return avg, avg * p.LeadTimeStdDevFallback
}
