package domain

import "time"

// Product is a sellable item with its sourcing defaults.
type Product struct {
	ProductID    int64   `json:"product_id" db:"product_id"`
	SKU          string  `json:"sku" db:"sku"`
	ProductName  string  `json:"product_name" db:"product_name"`
	CategoryID   int64   `json:"category_id" db:"category_id"`
	SupplierID   int64   `json:"supplier_id" db:"supplier_id"`
	UnitCost     float64 `json:"unit_cost" db:"unit_cost"`
	UnitPrice    float64 `json:"unit_price" db:"unit_price"`
	LeadTimeDays int     `json:"lead_time_days" db:"lead_time_days"`
}

// Supplier represents a vendor that fulfils purchase orders.
type Supplier struct {
	SupplierID    int64   `json:"supplier_id" db:"supplier_id"`
	SupplierCode  string  `json:"supplier_code" db:"supplier_code"`
	SupplierName  string  `json:"supplier_name" db:"supplier_name"`
	QualityRating float64 `json:"quality_rating" db:"quality_rating"`
	IsActive      bool    `json:"is_active" db:"is_active"`
}

// Warehouse is a stocking location.
type Warehouse struct {
	WarehouseID   int64  `json:"warehouse_id" db:"warehouse_id"`
	WarehouseCode string `json:"warehouse_code" db:"warehouse_code"`
	WarehouseName string `json:"warehouse_name" db:"warehouse_name"`
}

// Category groups products for rollup reporting.
type Category struct {
	CategoryID   int64  `json:"category_id" db:"category_id"`
	CategoryName string `json:"category_name" db:"category_name"`
}

// TransactionLine is one sales-order line: a quantity of a product sold from
// a warehouse at a unit price on a date. Lines whose order status is in the
// cancelled set are excluded from every aggregation.
type TransactionLine struct {
	OrderID         int64     `json:"so_id" db:"so_id"`
	ProductID       int64     `json:"product_id" db:"product_id"`
	WarehouseID     int64     `json:"warehouse_id" db:"warehouse_id"`
	OrderDate       time.Time `json:"order_date" db:"order_date"`
	Status          string    `json:"status" db:"status"`
	QuantityOrdered int       `json:"quantity_ordered" db:"quantity_ordered"`
	QuantityShipped int       `json:"quantity_shipped" db:"quantity_shipped"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
}

// DeliveryRecord is a purchase order's delivery outcome: expected vs actual
// delivery dates. ActualDeliveryDate is nil until the order arrives.
type DeliveryRecord struct {
	POID                 int64      `json:"po_id" db:"po_id"`
	SupplierID           int64      `json:"supplier_id" db:"supplier_id"`
	OrderDate            time.Time  `json:"order_date" db:"order_date"`
	ExpectedDeliveryDate time.Time  `json:"expected_delivery_date" db:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date" db:"actual_delivery_date"`
	Status               string     `json:"status" db:"status"`
}

// PurchaseLine is one purchase-order line item with ordered vs received
// quantities, used for fill-rate computation.
type PurchaseLine struct {
	POID             int64   `json:"po_id" db:"po_id"`
	ProductID        int64   `json:"product_id" db:"product_id"`
	QuantityOrdered  int     `json:"quantity_ordered" db:"quantity_ordered"`
	QuantityReceived int     `json:"quantity_received" db:"quantity_received"`
	UnitCost         float64 `json:"unit_cost" db:"unit_cost"`
}

// InventorySnapshot is the current stock position of a product at a
// warehouse, including the configured reorder point being evaluated.
type InventorySnapshot struct {
	WarehouseID      int64 `json:"warehouse_id" db:"warehouse_id"`
	ProductID        int64 `json:"product_id" db:"product_id"`
	QuantityOnHand   int   `json:"quantity_on_hand" db:"quantity_on_hand"`
	QuantityReserved int   `json:"quantity_reserved" db:"quantity_reserved"`
	ReorderPoint     int   `json:"reorder_point" db:"reorder_point"`
	ReorderQuantity  int   `json:"reorder_quantity" db:"reorder_quantity"`
}

// StockoutEvent is a [start, end) interval during which a product was
// unavailable at a warehouse, with the demand and revenue lost meanwhile.
type StockoutEvent struct {
	StockoutID           int64     `json:"stockout_id" db:"stockout_id"`
	WarehouseID          int64     `json:"warehouse_id" db:"warehouse_id"`
	ProductID            int64     `json:"product_id" db:"product_id"`
	StartDate            time.Time `json:"stockout_start_date" db:"stockout_start_date"`
	EndDate              time.Time `json:"stockout_end_date" db:"stockout_end_date"`
	DemandDuringStockout int       `json:"demand_during_stockout" db:"demand_during_stockout"`
	LostSalesAmount      float64   `json:"lost_sales_amount" db:"lost_sales_amount"`
	RootCause            string    `json:"root_cause" db:"root_cause"`
}

// Dataset bundles every input table the engine consumes. The storage layer
// materializes it once per computation run; the engine never reads past it.
type Dataset struct {
	Products      []Product
	Suppliers     []Supplier
	Warehouses    []Warehouse
	Categories    []Category
	Lines         []TransactionLine
	Deliveries    []DeliveryRecord
	PurchaseLines []PurchaseLine
	Snapshots     []InventorySnapshot
	Stockouts     []StockoutEvent
}
