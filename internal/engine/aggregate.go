package engine

import (
	"sort"
	"time"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// warehouseProduct keys per-location aggregates.
type warehouseProduct struct {
	WarehouseID int64
	ProductID   int64
}

// revenueByProduct sums quantity × unit price per product over the window,
// skipping excluded statuses. Products with no qualifying lines are absent.
func revenueByProduct(lines []domain.TransactionLine, from time.Time, p Params) (revenue map[int64]float64, units map[int64]int) {
	revenue = make(map[int64]float64)
	units = make(map[int64]int)
	for _, l := range lines {
		if p.excluded(l.Status) || l.OrderDate.Before(from) {
			continue
		}
		revenue[l.ProductID] += float64(l.QuantityOrdered) * l.UnitPrice
		units[l.ProductID] += l.QuantityOrdered
	}
	return revenue, units
}

// unitsByProduct sums ordered quantity per product over the window.
func unitsByProduct(lines []domain.TransactionLine, from time.Time, p Params) map[int64]int {
	units := make(map[int64]int)
	for _, l := range lines {
		if p.excluded(l.Status) || l.OrderDate.Before(from) {
			continue
		}
		units[l.ProductID] += l.QuantityOrdered
	}
	return units
}

// dailyDemandSeries groups qualifying lines into one demand observation per
// (warehouse, product, calendar day) and returns the per-key series of
// daily totals. Days without demand contribute no observation.
func dailyDemandSeries(lines []domain.TransactionLine, from time.Time, p Params) map[warehouseProduct][]float64 {
	type dayKey struct {
		WarehouseID int64
		ProductID   int64
		Day         string
	}
	daily := make(map[dayKey]float64)
	for _, l := range lines {
		if p.excluded(l.Status) || l.OrderDate.Before(from) {
			continue
		}
		k := dayKey{l.WarehouseID, l.ProductID, l.OrderDate.Format("2006-01-02")}
		daily[k] += float64(l.QuantityOrdered)
	}

	// Deterministic series order: sort the day keys before folding.
	keys := make([]dayKey, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.WarehouseID != b.WarehouseID {
			return a.WarehouseID < b.WarehouseID
		}
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		return a.Day < b.Day
	})

	series := make(map[warehouseProduct][]float64)
	for _, k := range keys {
		wp := warehouseProduct{k.WarehouseID, k.ProductID}
		series[wp] = append(series[wp], daily[k])
	}
	return series
}

// leadTimeObservations collects observed lead times (order date → actual
// delivery, in days) per supplier from delivered purchase orders. Orders
// without an actual delivery date contribute nothing.
func leadTimeObservations(deliveries []domain.DeliveryRecord) map[int64][]float64 {
	obs := make(map[int64][]float64)
	for _, d := range deliveries {
		if !domain.IsDelivered(d.Status) || d.ActualDeliveryDate == nil {
			continue
		}
		obs[d.SupplierID] = append(obs[d.SupplierID], float64(daysBetween(d.OrderDate, *d.ActualDeliveryDate)))
	}
	return obs
}

// daysBetween returns the whole number of days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func productIndex(products []domain.Product) map[int64]domain.Product {
	idx := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		idx[p.ProductID] = p
	}
	return idx
}

func warehouseIndex(warehouses []domain.Warehouse) map[int64]domain.Warehouse {
	idx := make(map[int64]domain.Warehouse, len(warehouses))
	for _, w := range warehouses {
		idx[w.WarehouseID] = w
	}
	return idx
}

func categoryIndex(categories []domain.Category) map[int64]domain.Category {
	idx := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		idx[c.CategoryID] = c
	}
	return idx
}
