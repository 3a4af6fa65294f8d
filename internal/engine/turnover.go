package engine

import (
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// ComputeTurnover derives inventory turnover per stocked (warehouse,
// product) position: COGS over the lookback window divided by current
// on-hand inventory value. Current value stands in for average inventory, a
// deliberate simplification carried over from the reporting it replaces.
//
// Positions with zero on-hand quantity are excluded entirely. A position
// with stock but no sales gets ratio 0 and lands in "Dead Stock";
// DaysOnHand is nil for it rather than infinite.
func ComputeTurnover(lines []domain.TransactionLine, snapshots []domain.InventorySnapshot, products []domain.Product, warehouses []domain.Warehouse, p Params) ([]domain.TurnoverRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	from := cutoff(p.anchor(lines), p.LookbackDays)
	byID := productIndex(products)
	whByID := warehouseIndex(warehouses)

	// COGS per (warehouse, product): units sold × unit cost.
	soldUnits := make(map[warehouseProduct]int)
	for _, l := range lines {
		if p.excluded(l.Status) || l.OrderDate.Before(from) {
			continue
		}
		soldUnits[warehouseProduct{l.WarehouseID, l.ProductID}] += l.QuantityOrdered
	}

	result := make([]domain.TurnoverRecord, 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.QuantityOnHand <= 0 {
			continue
		}
		prod, ok := byID[snap.ProductID]
		if !ok {
			continue
		}

		value := float64(snap.QuantityOnHand) * prod.UnitCost
		cogs := float64(soldUnits[warehouseProduct{snap.WarehouseID, snap.ProductID}]) * prod.UnitCost

		var ratio float64
		if value > 0 {
			ratio = cogs / value
		}

		var daysOnHand *float64
		if ratio > 0 {
			d := 365 / ratio
			daysOnHand = &d
		}

		result = append(result, domain.TurnoverRecord{
			WarehouseID:      snap.WarehouseID,
			WarehouseCode:    whByID[snap.WarehouseID].WarehouseCode,
			ProductID:        snap.ProductID,
			SKU:              prod.SKU,
			ProductName:      prod.ProductName,
			QuantityOnHand:   snap.QuantityOnHand,
			InventoryValue:   value,
			COGS:             cogs,
			TurnoverRatio:    ratio,
			DaysOnHand:       daysOnHand,
			TurnoverCategory: TurnoverCategory(ratio),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].WarehouseID != result[j].WarehouseID {
			return result[i].WarehouseID < result[j].WarehouseID
		}
		return result[i].ProductID < result[j].ProductID
	})
	return result, nil
}

// CarryingCosts breaks down annual inventory carrying cost by warehouse and
// category at fixed component rates: capital 8%, storage 5%, insurance 3%,
// obsolescence 2%, handling 2%, 20% of inventory value in total.
func CarryingCosts(snapshots []domain.InventorySnapshot, products []domain.Product, categories []domain.Category, warehouses []domain.Warehouse, p Params) ([]domain.CarryingCostSummary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	byID := productIndex(products)
	catByID := categoryIndex(categories)
	whByID := warehouseIndex(warehouses)

	type bucket struct {
		warehouseID  int64
		categoryName string
		products     int
		units        int
		value        float64
	}
	type bucketKey struct {
		WarehouseID  int64
		CategoryName string
	}
	buckets := make(map[bucketKey]*bucket)
	for _, snap := range snapshots {
		prod, ok := byID[snap.ProductID]
		if !ok {
			continue
		}
		k := bucketKey{snap.WarehouseID, catByID[prod.CategoryID].CategoryName}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{warehouseID: k.WarehouseID, categoryName: k.CategoryName}
			buckets[k] = b
		}
		b.products++
		b.units += snap.QuantityOnHand
		b.value += float64(snap.QuantityOnHand) * prod.UnitCost
	}

	result := make([]domain.CarryingCostSummary, 0, len(buckets))
	for _, b := range buckets {
		wh := whByID[b.warehouseID]
		total := b.value * 0.20
		result = append(result, domain.CarryingCostSummary{
			WarehouseCode:       wh.WarehouseCode,
			WarehouseName:       wh.WarehouseName,
			CategoryName:        b.categoryName,
			ProductCount:        b.products,
			TotalUnits:          b.units,
			InventoryValue:      roundTo(b.value, 2),
			CapitalCost:         roundTo(b.value*0.08, 2),
			StorageCost:         roundTo(b.value*0.05, 2),
			InsuranceCost:       roundTo(b.value*0.03, 2),
			ObsolescenceCost:    roundTo(b.value*0.02, 2),
			HandlingCost:        roundTo(b.value*0.02, 2),
			TotalCarryingCost:   roundTo(total, 2),
			MonthlyCarryingCost: roundTo(total/12, 2),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].WarehouseCode != result[j].WarehouseCode {
			return result[i].WarehouseCode < result[j].WarehouseCode
		}
		return result[i].CategoryName < result[j].CategoryName
	})
	return result, nil
}
