package domain

// Derived entities produced by the engine. All of them are value objects:
// built fresh on every computation run, never mutated afterwards, identified
// only by their key tuple.

// RevenueRankedProduct is one row of the ABC revenue classification.
type RevenueRankedProduct struct {
	ProductID         int64   `json:"product_id" db:"product_id"`
	SKU               string  `json:"sku" db:"sku"`
	ProductName       string  `json:"product_name" db:"product_name"`
	QuantityOrdered   int     `json:"quantity_ordered" db:"quantity_ordered"`
	TotalRevenue      float64 `json:"total_revenue" db:"total_revenue"`
	RevenueRank       int     `json:"revenue_rank" db:"revenue_rank"`
	CumulativeRevenue float64 `json:"cumulative_revenue" db:"cumulative_revenue"`
	CumulativePct     float64 `json:"cumulative_pct" db:"cumulative_pct"`
	ABCClass          string  `json:"abc_class" db:"abc_class"`
}

// TurnoverRecord reports how fast stock of a product moves at a warehouse.
// DaysOnHand is nil when the turnover ratio is zero (nothing sold).
type TurnoverRecord struct {
	WarehouseID      int64    `json:"warehouse_id" db:"warehouse_id"`
	WarehouseCode    string   `json:"warehouse_code" db:"warehouse_code"`
	ProductID        int64    `json:"product_id" db:"product_id"`
	SKU              string   `json:"sku" db:"sku"`
	ProductName      string   `json:"product_name" db:"product_name"`
	QuantityOnHand   int      `json:"quantity_on_hand" db:"quantity_on_hand"`
	InventoryValue   float64  `json:"inventory_value" db:"inventory_value"`
	COGS             float64  `json:"cogs" db:"cogs"`
	TurnoverRatio    float64  `json:"inventory_turnover_ratio" db:"inventory_turnover_ratio"`
	DaysOnHand       *float64 `json:"days_inventory_on_hand" db:"days_inventory_on_hand"`
	TurnoverCategory string   `json:"turnover_category" db:"turnover_category"`
}

// SupplierScorecard is the composite reliability score for one supplier.
// Rate and score fields are nil for active suppliers with no delivered
// orders in the window; such suppliers are tiered "Unrated".
type SupplierScorecard struct {
	SupplierID       int64    `json:"supplier_id" db:"supplier_id"`
	SupplierCode     string   `json:"supplier_code" db:"supplier_code"`
	SupplierName     string   `json:"supplier_name" db:"supplier_name"`
	TotalOrders      int      `json:"total_orders" db:"total_orders"`
	OnTimeRate       *float64 `json:"on_time_rate" db:"on_time_rate"`
	FillRate         *float64 `json:"fill_rate" db:"fill_rate"`
	AvgVarianceDays  *float64 `json:"avg_delivery_variance_days" db:"avg_delivery_variance_days"`
	ConsistencyBonus float64  `json:"consistency_bonus" db:"consistency_bonus"`
	ReliabilityScore *float64 `json:"reliability_score" db:"reliability_score"`
	ReliabilityTier  string   `json:"reliability_tier" db:"reliability_tier"`
}

// ReorderRecommendation compares a freshly calculated reorder point against
// the currently configured one.
type ReorderRecommendation struct {
	WarehouseID     int64   `json:"warehouse_id" db:"warehouse_id"`
	WarehouseCode   string  `json:"warehouse_code" db:"warehouse_code"`
	ProductID       int64   `json:"product_id" db:"product_id"`
	SKU             string  `json:"sku" db:"sku"`
	ProductName     string  `json:"product_name" db:"product_name"`
	QuantityOnHand  int     `json:"quantity_on_hand" db:"quantity_on_hand"`
	AvgDailyDemand  float64 `json:"avg_daily_demand" db:"avg_daily_demand"`
	AvgLeadTimeDays float64 `json:"avg_lead_time_days" db:"avg_lead_time_days"`
	SafetyStock     int     `json:"safety_stock" db:"safety_stock"`
	CurrentROP      int     `json:"current_rop" db:"current_rop"`
	CalculatedROP   int     `json:"calculated_rop" db:"calculated_rop"`
	Recommendation  string  `json:"recommendation" db:"recommendation"`
}

// EOQResult is the Wilson economic order quantity for one product.
type EOQResult struct {
	ProductID         int64   `json:"product_id" db:"product_id"`
	SKU               string  `json:"sku" db:"sku"`
	ProductName       string  `json:"product_name" db:"product_name"`
	UnitCost          float64 `json:"unit_cost" db:"unit_cost"`
	AnnualDemand      int     `json:"annual_demand" db:"annual_demand"`
	EOQ               int     `json:"economic_order_quantity" db:"economic_order_quantity"`
	OrdersPerYear     float64 `json:"orders_per_year" db:"orders_per_year"`
	DaysBetweenOrders *float64 `json:"days_between_orders" db:"days_between_orders"`
	OptimalAnnualCost float64 `json:"optimal_annual_cost" db:"optimal_annual_cost"`
}

// StockoutImpact aggregates stockout events for one product at a warehouse.
type StockoutImpact struct {
	WarehouseID      int64   `json:"warehouse_id" db:"warehouse_id"`
	WarehouseCode    string  `json:"warehouse_code" db:"warehouse_code"`
	ProductID        int64   `json:"product_id" db:"product_id"`
	SKU              string  `json:"sku" db:"sku"`
	ProductName      string  `json:"product_name" db:"product_name"`
	StockoutCount    int     `json:"stockout_count" db:"stockout_count"`
	AvgDurationDays  float64 `json:"avg_duration_days" db:"avg_duration_days"`
	TotalLostUnits   int     `json:"total_lost_units" db:"total_lost_units"`
	TotalLostRevenue float64 `json:"total_lost_revenue" db:"total_lost_revenue"`
	SeverityScore    float64 `json:"severity_score" db:"severity_score"`
}

// StockoutCause is the distribution of stockout events by root cause.
type StockoutCause struct {
	RootCause        string  `json:"root_cause" db:"root_cause"`
	OccurrenceCount  int     `json:"occurrence_count" db:"occurrence_count"`
	TotalLostUnits   int     `json:"total_lost_units" db:"total_lost_units"`
	TotalLostRevenue float64 `json:"total_lost_revenue" db:"total_lost_revenue"`
	PctOfStockouts   float64 `json:"pct_of_stockouts" db:"pct_of_stockouts"`
}

// CarryingCostSummary breaks annual carrying cost down for one
// warehouse/category bucket.
type CarryingCostSummary struct {
	WarehouseCode       string  `json:"warehouse_code" db:"warehouse_code"`
	WarehouseName       string  `json:"warehouse_name" db:"warehouse_name"`
	CategoryName        string  `json:"category_name" db:"category_name"`
	ProductCount        int     `json:"product_count" db:"product_count"`
	TotalUnits          int     `json:"total_units" db:"total_units"`
	InventoryValue      float64 `json:"inventory_value" db:"inventory_value"`
	CapitalCost         float64 `json:"capital_cost" db:"capital_cost"`
	StorageCost         float64 `json:"storage_cost" db:"storage_cost"`
	InsuranceCost       float64 `json:"insurance_cost" db:"insurance_cost"`
	ObsolescenceCost    float64 `json:"obsolescence_cost" db:"obsolescence_cost"`
	HandlingCost        float64 `json:"handling_cost" db:"handling_cost"`
	TotalCarryingCost   float64 `json:"total_carrying_cost" db:"total_carrying_cost"`
	MonthlyCarryingCost float64 `json:"monthly_carrying_cost" db:"monthly_carrying_cost"`
}

// LeadTimeStats summarizes observed lead-time behavior for one supplier.
// CVPct is nil when fewer than two deliveries exist or the mean is zero.
type LeadTimeStats struct {
	SupplierID          int64    `json:"supplier_id" db:"supplier_id"`
	SupplierCode        string   `json:"supplier_code" db:"supplier_code"`
	SupplierName        string   `json:"supplier_name" db:"supplier_name"`
	DeliveryCount       int      `json:"delivery_count" db:"delivery_count"`
	AvgLeadTimeDays     float64  `json:"avg_lead_time" db:"avg_lead_time"`
	StdLeadTimeDays     *float64 `json:"std_lead_time" db:"std_lead_time"`
	MinLeadTimeDays     int      `json:"min_lead_time" db:"min_lead_time"`
	MaxLeadTimeDays     int      `json:"max_lead_time" db:"max_lead_time"`
	CVPct               *float64 `json:"cv_pct" db:"cv_pct"`
	ReliabilityCategory string   `json:"reliability_category" db:"reliability_category"`
}

// ForecastPoint is one projected day of demand.
type ForecastPoint struct {
	Date               string `json:"date"`
	ForecastedQuantity int    `json:"forecasted_quantity"`
	Method             string `json:"method"`
}

// ForecastAccuracy reports how well a method predicted a held-out slice of
// history. MAPE is nil when no comparable days existed.
type ForecastAccuracy struct {
	Method        string   `json:"method"`
	MAPEPct       *float64 `json:"mape_pct"`
	AccuracyGrade string   `json:"accuracy_grade"`
}

// InventoryStatusRecord flags the health of one stock position.
type InventoryStatusRecord struct {
	WarehouseID        int64   `json:"warehouse_id" db:"warehouse_id"`
	WarehouseCode      string  `json:"warehouse_code" db:"warehouse_code"`
	ProductID          int64   `json:"product_id" db:"product_id"`
	SKU                string  `json:"sku" db:"sku"`
	ProductName        string  `json:"product_name" db:"product_name"`
	QuantityOnHand     int     `json:"quantity_on_hand" db:"quantity_on_hand"`
	QuantityReserved   int     `json:"quantity_reserved" db:"quantity_reserved"`
	QuantityAvailable  int     `json:"quantity_available" db:"quantity_available"`
	InventoryValue     float64 `json:"inventory_value" db:"inventory_value"`
	AnnualCarryingCost float64 `json:"annual_carrying_cost" db:"annual_carrying_cost"`
	AvgDailyDemand     float64 `json:"avg_daily_demand" db:"avg_daily_demand"`
	DaysOfSupply       float64 `json:"days_of_supply" db:"days_of_supply"`
	IsBelowReorder     bool    `json:"is_below_reorder" db:"is_below_reorder"`
	IsStockout         bool    `json:"is_stockout" db:"is_stockout"`
	IsOverstock        bool    `json:"is_overstock" db:"is_overstock"`
	InventoryStatus    string  `json:"inventory_status" db:"inventory_status"`
}

// AnalyticsReport is the composite output of a full engine run, served by
// the dashboard endpoint and cached as a unit.
type AnalyticsReport struct {
	ABC             []RevenueRankedProduct  `json:"abc"`
	Turnover        []TurnoverRecord        `json:"turnover"`
	Reorder         []ReorderRecommendation `json:"reorder"`
	EOQ             []EOQResult             `json:"eoq"`
	Suppliers       []SupplierScorecard     `json:"suppliers"`
	LeadTimes       []LeadTimeStats         `json:"lead_times"`
	Stockouts       []StockoutImpact        `json:"stockouts"`
	StockoutCauses  []StockoutCause         `json:"stockout_causes"`
	CarryingCosts   []CarryingCostSummary   `json:"carrying_costs"`
	InventoryStatus []InventoryStatusRecord `json:"inventory_status"`
}
