package engine

import (
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// AnalyzeStockouts aggregates stockout events per (warehouse, product) and
// scores their severity:
//
//	severity = count×30 + avg duration days×10 + lost revenue/100
//
// Output is ordered by descending severity, ties by warehouse then product.
func AnalyzeStockouts(events []domain.StockoutEvent, products []domain.Product, warehouses []domain.Warehouse, p Params) ([]domain.StockoutImpact, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	type agg struct {
		count       int
		durationSum float64
		lostUnits   int
		lostRevenue float64
	}
	byKey := make(map[warehouseProduct]*agg)
	for _, e := range events {
		k := warehouseProduct{e.WarehouseID, e.ProductID}
		a, ok := byKey[k]
		if !ok {
			a = &agg{}
			byKey[k] = a
		}
		a.count++
		a.durationSum += float64(daysBetween(e.StartDate, e.EndDate))
		a.lostUnits += e.DemandDuringStockout
		a.lostRevenue += e.LostSalesAmount
	}

	byID := productIndex(products)
	whByID := warehouseIndex(warehouses)

	result := make([]domain.StockoutImpact, 0, len(byKey))
	for k, a := range byKey {
		avgDuration := a.durationSum / float64(a.count)
		severity := float64(a.count)*30 + avgDuration*10 + a.lostRevenue/100
		prod := byID[k.ProductID]
		result = append(result, domain.StockoutImpact{
			WarehouseID:      k.WarehouseID,
			WarehouseCode:    whByID[k.WarehouseID].WarehouseCode,
			ProductID:        k.ProductID,
			SKU:              prod.SKU,
			ProductName:      prod.ProductName,
			StockoutCount:    a.count,
			AvgDurationDays:  roundTo(avgDuration, 1),
			TotalLostUnits:   a.lostUnits,
			TotalLostRevenue: roundTo(a.lostRevenue, 2),
			SeverityScore:    roundTo(severity, 0),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SeverityScore != result[j].SeverityScore {
			return result[i].SeverityScore > result[j].SeverityScore
		}
		if result[i].WarehouseID != result[j].WarehouseID {
			return result[i].WarehouseID < result[j].WarehouseID
		}
		return result[i].ProductID < result[j].ProductID
	})
	return result, nil
}

// StockoutRootCauses returns the distribution of stockout events by root
// cause, ordered by descending occurrence count.
func StockoutRootCauses(events []domain.StockoutEvent) []domain.StockoutCause {
	type agg struct {
		count       int
		lostUnits   int
		lostRevenue float64
	}
	byCause := make(map[string]*agg)
	total := 0
	for _, e := range events {
		a, ok := byCause[e.RootCause]
		if !ok {
			a = &agg{}
			byCause[e.RootCause] = a
		}
		a.count++
		a.lostUnits += e.DemandDuringStockout
		a.lostRevenue += e.LostSalesAmount
		total++
	}
	if total == 0 {
		return []domain.StockoutCause{}
	}

	result := make([]domain.StockoutCause, 0, len(byCause))
	for cause, a := range byCause {
		result = append(result, domain.StockoutCause{
			RootCause:        cause,
			OccurrenceCount:  a.count,
			TotalLostUnits:   a.lostUnits,
			TotalLostRevenue: roundTo(a.lostRevenue, 2),
			PctOfStockouts:   roundTo(float64(a.count)/float64(total)*100, 2),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OccurrenceCount != result[j].OccurrenceCount {
			return result[i].OccurrenceCount > result[j].OccurrenceCount
		}
		return result[i].RootCause < result[j].RootCause
	})
	return result
}
