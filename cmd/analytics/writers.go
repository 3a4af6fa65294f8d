package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtInt(v int) string       { return strconv.Itoa(v) }
func fmtInt64(v int64) string   { return strconv.FormatInt(v, 10) }
func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
func fmtBool(v bool) string     { return strconv.FormatBool(v) }
func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func writeABC(path string, records []domain.RevenueRankedProduct) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.ProductID), r.SKU, r.ProductName,
			fmtInt(r.QuantityOrdered), fmtFloat(r.TotalRevenue),
			fmtInt(r.RevenueRank), fmtFloat(r.CumulativeRevenue),
			fmtFloat(r.CumulativePct), r.ABCClass,
		})
	}
	header := []string{
		"product_id", "sku", "product_name", "quantity_ordered", "total_revenue",
		"revenue_rank", "cumulative_revenue", "cumulative_pct", "abc_class",
	}
	return writeCSV(path, header, rows)
}

func writeTurnover(path string, records []domain.TurnoverRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.WarehouseID), r.WarehouseCode, fmtInt64(r.ProductID),
			r.SKU, r.ProductName, fmtInt(r.QuantityOnHand),
			fmtFloat(r.InventoryValue), fmtFloat(r.COGS), fmtFloat(r.TurnoverRatio),
			fmtFloatPtr(r.DaysOnHand), r.TurnoverCategory,
		})
	}
	header := []string{
		"warehouse_id", "warehouse_code", "product_id", "sku", "product_name",
		"quantity_on_hand", "inventory_value", "cogs", "inventory_turnover_ratio",
		"days_inventory_on_hand", "turnover_category",
	}
	return writeCSV(path, header, rows)
}

func writeReorder(path string, records []domain.ReorderRecommendation) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.WarehouseID), r.WarehouseCode, fmtInt64(r.ProductID),
			r.SKU, r.ProductName, fmtInt(r.QuantityOnHand),
			fmtFloat(r.AvgDailyDemand), fmtFloat(r.AvgLeadTimeDays),
			fmtInt(r.SafetyStock), fmtInt(r.CurrentROP),
			fmtInt(r.CalculatedROP), r.Recommendation,
		})
	}
	header := []string{
		"warehouse_id", "warehouse_code", "product_id", "sku", "product_name",
		"quantity_on_hand", "avg_daily_demand", "avg_lead_time_days",
		"safety_stock", "current_rop", "calculated_rop", "recommendation",
	}
	return writeCSV(path, header, rows)
}

func writeEOQ(path string, records []domain.EOQResult) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.ProductID), r.SKU, r.ProductName, fmtFloat(r.UnitCost),
			fmtInt(r.AnnualDemand), fmtInt(r.EOQ), fmtFloat(r.OrdersPerYear),
			fmtFloatPtr(r.DaysBetweenOrders), fmtFloat(r.OptimalAnnualCost),
		})
	}
	header := []string{
		"product_id", "sku", "product_name", "unit_cost", "annual_demand",
		"economic_order_quantity", "orders_per_year", "days_between_orders",
		"optimal_annual_cost",
	}
	return writeCSV(path, header, rows)
}

func writeSuppliers(path string, records []domain.SupplierScorecard) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.SupplierID), r.SupplierCode, r.SupplierName,
			fmtInt(r.TotalOrders), fmtFloatPtr(r.OnTimeRate), fmtFloatPtr(r.FillRate),
			fmtFloatPtr(r.AvgVarianceDays), fmtFloat(r.ConsistencyBonus),
			fmtFloatPtr(r.ReliabilityScore), r.ReliabilityTier,
		})
	}
	header := []string{
		"supplier_id", "supplier_code", "supplier_name", "total_orders",
		"on_time_rate", "fill_rate", "avg_delivery_variance_days",
		"consistency_bonus", "reliability_score", "reliability_tier",
	}
	return writeCSV(path, header, rows)
}

func writeLeadTimes(path string, records []domain.LeadTimeStats) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.SupplierID), r.SupplierCode, r.SupplierName,
			fmtInt(r.DeliveryCount), fmtFloat(r.AvgLeadTimeDays),
			fmtFloatPtr(r.StdLeadTimeDays), fmtInt(r.MinLeadTimeDays),
			fmtInt(r.MaxLeadTimeDays), fmtFloatPtr(r.CVPct), r.ReliabilityCategory,
		})
	}
	header := []string{
		"supplier_id", "supplier_code", "supplier_name", "delivery_count",
		"avg_lead_time", "std_lead_time", "min_lead_time", "max_lead_time",
		"cv_pct", "reliability_category",
	}
	return writeCSV(path, header, rows)
}

func writeStockouts(path string, records []domain.StockoutImpact) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.WarehouseID), r.WarehouseCode, fmtInt64(r.ProductID),
			r.SKU, r.ProductName, fmtInt(r.StockoutCount),
			fmtFloat(r.AvgDurationDays), fmtInt(r.TotalLostUnits),
			fmtFloat(r.TotalLostRevenue), fmtFloat(r.SeverityScore),
		})
	}
	header := []string{
		"warehouse_id", "warehouse_code", "product_id", "sku", "product_name",
		"stockout_count", "avg_duration_days", "total_lost_units",
		"total_lost_revenue", "severity_score",
	}
	return writeCSV(path, header, rows)
}

func writeStockoutCauses(path string, records []domain.StockoutCause) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.RootCause, fmtInt(r.OccurrenceCount), fmtInt(r.TotalLostUnits),
			fmtFloat(r.TotalLostRevenue), fmtFloat(r.PctOfStockouts),
		})
	}
	header := []string{
		"root_cause", "occurrence_count", "total_lost_units",
		"total_lost_revenue", "pct_of_stockouts",
	}
	return writeCSV(path, header, rows)
}

func writeCarryingCosts(path string, records []domain.CarryingCostSummary) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.WarehouseCode, r.WarehouseName, r.CategoryName,
			fmtInt(r.ProductCount), fmtInt(r.TotalUnits), fmtFloat(r.InventoryValue),
			fmtFloat(r.CapitalCost), fmtFloat(r.StorageCost), fmtFloat(r.InsuranceCost),
			fmtFloat(r.ObsolescenceCost), fmtFloat(r.HandlingCost),
			fmtFloat(r.TotalCarryingCost), fmtFloat(r.MonthlyCarryingCost),
		})
	}
	header := []string{
		"warehouse_code", "warehouse_name", "category_name", "product_count",
		"total_units", "inventory_value", "capital_cost", "storage_cost",
		"insurance_cost", "obsolescence_cost", "handling_cost",
		"total_carrying_cost", "monthly_carrying_cost",
	}
	return writeCSV(path, header, rows)
}

func writeInventoryStatus(path string, records []domain.InventoryStatusRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmtInt64(r.WarehouseID), r.WarehouseCode, fmtInt64(r.ProductID),
			r.SKU, r.ProductName, fmtInt(r.QuantityOnHand), fmtInt(r.QuantityReserved),
			fmtInt(r.QuantityAvailable), fmtFloat(r.InventoryValue),
			fmtFloat(r.AnnualCarryingCost), fmtFloat(r.AvgDailyDemand),
			fmtFloat(r.DaysOfSupply), fmtBool(r.IsBelowReorder), fmtBool(r.IsStockout),
			fmtBool(r.IsOverstock), r.InventoryStatus,
		})
	}
	header := []string{
		"warehouse_id", "warehouse_code", "product_id", "sku", "product_name",
		"quantity_on_hand", "quantity_reserved", "quantity_available",
		"inventory_value", "annual_carrying_cost", "avg_daily_demand",
		"days_of_supply", "is_below_reorder", "is_stockout", "is_overstock",
		"inventory_status",
	}
	return writeCSV(path, header, rows)
}

func writeForecast(path string, productIDs []int64, points map[int64][]domain.ForecastPoint) error {
	rows := make([][]string, 0)
	for _, id := range productIDs {
		for _, pt := range points[id] {
			rows = append(rows, []string{
				fmtInt64(id), pt.Date, fmtInt(pt.ForecastedQuantity), pt.Method,
			})
		}
	}
	header := []string{"product_id", "date", "forecasted_quantity", "method"}
	return writeCSV(path, header, rows)
}

func writeReport(dir string, report *domain.AnalyticsReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	steps := []struct {
		name  string
		write func(string) error
	}{
		{"abc_analysis.csv", func(p string) error { return writeABC(p, report.ABC) }},
		{"turnover.csv", func(p string) error { return writeTurnover(p, report.Turnover) }},
		{"reorder_points.csv", func(p string) error { return writeReorder(p, report.Reorder) }},
		{"eoq.csv", func(p string) error { return writeEOQ(p, report.EOQ) }},
		{"supplier_scorecards.csv", func(p string) error { return writeSuppliers(p, report.Suppliers) }},
		{"lead_times.csv", func(p string) error { return writeLeadTimes(p, report.LeadTimes) }},
		{"stockouts.csv", func(p string) error { return writeStockouts(p, report.Stockouts) }},
		{"stockout_causes.csv", func(p string) error { return writeStockoutCauses(p, report.StockoutCauses) }},
		{"carrying_costs.csv", func(p string) error { return writeCarryingCosts(p, report.CarryingCosts) }},
		{"inventory_status.csv", func(p string) error { return writeInventoryStatus(p, report.InventoryStatus) }},
	}
	for _, step := range steps {
		if err := step.write(filepath.Join(dir, step.name)); err != nil {
			return err
		}
	}
	return nil
}
