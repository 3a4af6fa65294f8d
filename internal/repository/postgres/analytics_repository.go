package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ksomisetty/scm-analytics/internal/domain"
	"golang.org/x/sync/errgroup"
)

type analyticsRepository struct {
	db   *sqlx.DB
	slot func(ctx context.Context, fn func() error) error
}

// NewAnalyticsRepository builds the Postgres-backed input loader on the
// pooled connection. Concurrent loads share the pool's bounded slots.
func NewAnalyticsRepository(db *DB) *analyticsRepository {
	return &analyticsRepository{db: db.DB, slot: db.withSlot}
}

// NewAnalyticsRepositoryFromSQLX wraps an externally-opened sqlx handle,
// e.g. the pgx-driver connection the batch CLI opens.
func NewAnalyticsRepositoryFromSQLX(db *sqlx.DB) *analyticsRepository {
	return &analyticsRepository{
		db:   db,
		slot: func(ctx context.Context, fn func() error) error { return fn() },
	}
}

const (
	productsQuery = `
        SELECT p.product_id, p.sku, p.product_name, p.category_id,
               COALESCE(p.supplier_id, 0) AS supplier_id,
               p.unit_cost, p.unit_price, p.lead_time_days
        FROM products p
    `

	suppliersQuery = `
        SELECT supplier_id, supplier_code, supplier_name,
               COALESCE(quality_rating, 0) AS quality_rating, is_active
        FROM suppliers
    `

	warehousesQuery = `
        SELECT warehouse_id, warehouse_code, warehouse_name
        FROM warehouses
    `

	categoriesQuery = `
        SELECT category_id, category_name
        FROM product_categories
    `

	linesQuery = `
        SELECT so.so_id, i.product_id, so.warehouse_id, so.order_date, so.status,
               i.quantity_ordered, COALESCE(i.quantity_shipped, 0) AS quantity_shipped,
               i.unit_price
        FROM sales_orders so
        JOIN sales_order_items i ON i.so_id = so.so_id
    `

	deliveriesQuery = `
        SELECT po_id, supplier_id, order_date, expected_delivery_date,
               actual_delivery_date, status
        FROM purchase_orders
    `

	purchaseLinesQuery = `
        SELECT po_id, product_id, quantity_ordered,
               COALESCE(quantity_received, 0) AS quantity_received, unit_cost
        FROM purchase_order_items
    `

	snapshotsQuery = `
        SELECT warehouse_id, product_id, quantity_on_hand, quantity_reserved,
               reorder_point, reorder_quantity
        FROM inventory
    `

	stockoutsQuery = `
        SELECT stockout_id, warehouse_id, product_id,
               stockout_start_date, stockout_end_date,
               demand_during_stockout, lost_sales_amount, root_cause
        FROM stockout_events
    `
)

// LoadDataset loads every input table the engine consumes. Tables are
// independent, so the loads run concurrently.
func (r *analyticsRepository) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(r.load(ctx, &ds.Products, productsQuery, "products"))
	g.Go(r.load(ctx, &ds.Suppliers, suppliersQuery, "suppliers"))
	g.Go(r.load(ctx, &ds.Warehouses, warehousesQuery, "warehouses"))
	g.Go(r.load(ctx, &ds.Categories, categoriesQuery, "categories"))
	g.Go(r.load(ctx, &ds.Lines, linesQuery, "sales order lines"))
	g.Go(r.load(ctx, &ds.Deliveries, deliveriesQuery, "purchase orders"))
	g.Go(r.load(ctx, &ds.PurchaseLines, purchaseLinesQuery, "purchase order items"))
	g.Go(r.load(ctx, &ds.Snapshots, snapshotsQuery, "inventory"))
	g.Go(r.load(ctx, &ds.Stockouts, stockoutsQuery, "stockout events"))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *analyticsRepository) load(ctx context.Context, dest interface{}, query, table string) func() error {
	return func() error {
		return r.slot(ctx, func() error {
			if err := r.db.SelectContext(ctx, dest, query); err != nil {
				return fmt.Errorf("failed to load %s: %w", table, err)
			}
			return nil
		})
	}
}
