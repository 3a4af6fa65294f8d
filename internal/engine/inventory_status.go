package engine

import (
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// InventoryStatus flags the health of every stock position: available
// quantity against the configured reorder point, stockout (available ≤ 0)
// and overstock (more than 90 days of supply at the product's average daily
// demand, clipped to 0.01 to keep the division defined).
func InventoryStatus(snapshots []domain.InventorySnapshot, lines []domain.TransactionLine, products []domain.Product, warehouses []domain.Warehouse, p Params) ([]domain.InventoryStatusRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	anchor := p.anchor(lines)
	from := cutoff(anchor, p.LookbackDays)
	units := unitsByProduct(lines, from, p)

	// Average daily demand over the observed span of the window.
	spanDays := p.LookbackDays
	if spanDays < 1 {
		spanDays = 1
	}
	avgDemand := make(map[int64]float64, len(units))
	for id, qty := range units {
		avgDemand[id] = float64(qty) / float64(spanDays)
	}

	byID := productIndex(products)
	whByID := warehouseIndex(warehouses)

	result := make([]domain.InventoryStatusRecord, 0, len(snapshots))
	for _, snap := range snapshots {
		prod, ok := byID[snap.ProductID]
		if !ok {
			continue
		}

		available := snap.QuantityOnHand - snap.QuantityReserved
		value := float64(snap.QuantityOnHand) * prod.UnitCost

		demand := avgDemand[snap.ProductID]
		if demand < 0.01 {
			demand = 0.01
		}
		daysOfSupply := roundTo(float64(available)/demand, 1)

		rec := domain.InventoryStatusRecord{
			WarehouseID:        snap.WarehouseID,
			WarehouseCode:      whByID[snap.WarehouseID].WarehouseCode,
			ProductID:          snap.ProductID,
			SKU:                prod.SKU,
			ProductName:        prod.ProductName,
			QuantityOnHand:     snap.QuantityOnHand,
			QuantityReserved:   snap.QuantityReserved,
			QuantityAvailable:  available,
			InventoryValue:     value,
			AnnualCarryingCost: roundTo(value*0.20, 2),
			AvgDailyDemand:     avgDemand[snap.ProductID],
			DaysOfSupply:       daysOfSupply,
			IsBelowReorder:     available < snap.ReorderPoint,
			IsStockout:         available <= 0,
			IsOverstock:        daysOfSupply > 90,
		}

		switch {
		case rec.IsStockout:
			rec.InventoryStatus = "Out of Stock"
		case rec.IsBelowReorder:
			rec.InventoryStatus = "Below Reorder Point"
		case rec.IsOverstock:
			rec.InventoryStatus = "Overstock"
		default:
			rec.InventoryStatus = "Healthy"
		}
		result = append(result, rec)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].WarehouseID != result[j].WarehouseID {
			return result[i].WarehouseID < result[j].WarehouseID
		}
		return result[i].ProductID < result[j].ProductID
	})
	return result, nil
}
