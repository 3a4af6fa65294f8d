package service

import (
	"context"
	"testing"
	"time"

	"github.com/ksomisetty/scm-analytics/internal/config"
	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/stretchr/testify/assert"
)

type stubRepository struct {
	dataset *domain.Dataset
	calls   int
}

func (s *stubRepository) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	s.calls++
	return s.dataset, nil
}

type memoryCache struct {
	stored *domain.AnalyticsReport
	gets   int
	sets   int
}

func (m *memoryCache) GetReport(ctx context.Context, p engine.Params) (*domain.AnalyticsReport, bool, error) {
	m.gets++
	if m.stored == nil {
		return nil, false, nil
	}
	return m.stored, true, nil
}

func (m *memoryCache) SetReport(ctx context.Context, p engine.Params, report *domain.AnalyticsReport) error {
	m.sets++
	m.stored = report
	return nil
}

func (m *memoryCache) InvalidateAll(ctx context.Context) error {
	m.stored = nil
	return nil
}

func fixtureDataset() *domain.Dataset {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	actual := base.AddDate(0, 0, 5)
	return &domain.Dataset{
		Products: []domain.Product{
			{ProductID: 1, SKU: "SKU-A", ProductName: "Product A", CategoryID: 1, SupplierID: 1, UnitCost: 10, UnitPrice: 25, LeadTimeDays: 7},
		},
		Suppliers: []domain.Supplier{
			{SupplierID: 1, SupplierCode: "SUP-1", SupplierName: "Acme", IsActive: true},
		},
		Warehouses: []domain.Warehouse{
			{WarehouseID: 1, WarehouseCode: "WH-A", WarehouseName: "Alpha"},
		},
		Categories: []domain.Category{{CategoryID: 1, CategoryName: "Widgets"}},
		Lines: []domain.TransactionLine{
			{OrderID: 1, ProductID: 1, WarehouseID: 1, OrderDate: base, Status: domain.StatusDelivered, QuantityOrdered: 100, QuantityShipped: 100, UnitPrice: 25},
		},
		Deliveries: []domain.DeliveryRecord{
			{POID: 1, SupplierID: 1, OrderDate: base, ExpectedDeliveryDate: actual, ActualDeliveryDate: &actual, Status: domain.StatusDelivered},
		},
		PurchaseLines: []domain.PurchaseLine{
			{POID: 1, ProductID: 1, QuantityOrdered: 100, QuantityReceived: 100, UnitCost: 10},
		},
		Snapshots: []domain.InventorySnapshot{
			{WarehouseID: 1, ProductID: 1, QuantityOnHand: 50, QuantityReserved: 5, ReorderPoint: 20},
		},
		Stockouts: []domain.StockoutEvent{
			{StockoutID: 1, WarehouseID: 1, ProductID: 1, StartDate: base, EndDate: base.AddDate(0, 0, 2), DemandDuringStockout: 10, LostSalesAmount: 250, RootCause: "Supplier Delay"},
		},
	}
}

func TestComputeReportPopulatesEverySection(t *testing.T) {
	report, err := ComputeReport(context.Background(), fixtureDataset(), engine.DefaultParams())
	assert.NoError(t, err)

	assert.NotEmpty(t, report.ABC)
	assert.NotEmpty(t, report.Turnover)
	assert.NotEmpty(t, report.Reorder)
	assert.NotEmpty(t, report.EOQ)
	assert.NotEmpty(t, report.Suppliers)
	assert.NotEmpty(t, report.LeadTimes)
	assert.NotEmpty(t, report.Stockouts)
	assert.NotEmpty(t, report.StockoutCauses)
	assert.NotEmpty(t, report.CarryingCosts)
	assert.NotEmpty(t, report.InventoryStatus)
}

func TestReportCachesComputedResult(t *testing.T) {
	repo := &stubRepository{dataset: fixtureDataset()}
	cache := &memoryCache{}
	svc := NewAnalyticsService(repo, cache)

	first, err := svc.Report(context.Background(), engine.DefaultParams())
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Report(context.Background(), engine.DefaultParams())
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "a cache hit must not reload the dataset")
	assert.Equal(t, first, second)
}

func TestReportRejectsInvalidParams(t *testing.T) {
	repo := &stubRepository{dataset: fixtureDataset()}
	svc := NewAnalyticsService(repo, nil)

	p := engine.DefaultParams()
	p.ServiceLevelZ = -1
	_, err := svc.Report(context.Background(), p)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	assert.Equal(t, 0, repo.calls)
}

func TestParamsFromConfig(t *testing.T) {
	p := ParamsFromConfig(config.AnalyticsConfig{
		LookbackDays:  180,
		ServiceLevelZ: 2.33,
	})
	assert.Equal(t, 180, p.LookbackDays)
	assert.Equal(t, 2.33, p.ServiceLevelZ)
	// Unset fields keep the engine defaults.
	assert.Equal(t, 90, p.DemandLookbackDays)
	assert.Equal(t, 50.0, p.OrderingCost)
}
