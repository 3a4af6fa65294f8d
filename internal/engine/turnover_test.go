package engine

import (
	"testing"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeTurnover(t *testing.T) {
	products := []domain.Product{
		product(1, 10, 25, 7),
		product(2, 20, 50, 7),
	}
	warehouses := []domain.Warehouse{
		{WarehouseID: 1, WarehouseCode: "WH-A", WarehouseName: "Alpha"},
	}
	snapshots := []domain.InventorySnapshot{
		{WarehouseID: 1, ProductID: 1, QuantityOnHand: 10},
		{WarehouseID: 1, ProductID: 2, QuantityOnHand: 5},
	}
	lines := []domain.TransactionLine{
		line(1, 1, 10, 120, 25), // COGS 1200 against value 100
	}

	result, err := ComputeTurnover(lines, snapshots, products, warehouses, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 2)

	fast := result[0]
	assert.Equal(t, int64(1), fast.ProductID)
	assert.Equal(t, "WH-A", fast.WarehouseCode)
	assert.Equal(t, 100.0, fast.InventoryValue)
	assert.Equal(t, 1200.0, fast.COGS)
	assert.Equal(t, 12.0, fast.TurnoverRatio)
	assert.Equal(t, "Fast Moving", fast.TurnoverCategory)
	if assert.NotNil(t, fast.DaysOnHand) {
		assert.InDelta(t, 30.4167, *fast.DaysOnHand, 0.0001)
	}

	dead := result[1]
	assert.Equal(t, int64(2), dead.ProductID)
	assert.Equal(t, 0.0, dead.TurnoverRatio)
	assert.Equal(t, "Dead Stock", dead.TurnoverCategory)
	assert.Nil(t, dead.DaysOnHand, "nothing sold means days on hand is undefined, not infinite")
}

func TestComputeTurnoverExcludesEmptyPositions(t *testing.T) {
	products := []domain.Product{product(1, 10, 25, 7)}
	snapshots := []domain.InventorySnapshot{
		{WarehouseID: 1, ProductID: 1, QuantityOnHand: 0},
		{WarehouseID: 2, ProductID: 1, QuantityOnHand: -3},
	}

	result, err := ComputeTurnover(nil, snapshots, products, nil, DefaultParams())
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestCarryingCosts(t *testing.T) {
	products := []domain.Product{product(1, 10, 25, 7)}
	categories := []domain.Category{{CategoryID: 1, CategoryName: "Widgets"}}
	warehouses := []domain.Warehouse{
		{WarehouseID: 1, WarehouseCode: "WH-A", WarehouseName: "Alpha"},
	}
	snapshots := []domain.InventorySnapshot{
		{WarehouseID: 1, ProductID: 1, QuantityOnHand: 100}, // value 1000
	}

	result, err := CarryingCosts(snapshots, products, categories, warehouses, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	got := result[0]
	assert.Equal(t, "WH-A", got.WarehouseCode)
	assert.Equal(t, "Widgets", got.CategoryName)
	assert.Equal(t, 1, got.ProductCount)
	assert.Equal(t, 100, got.TotalUnits)
	assert.Equal(t, 1000.0, got.InventoryValue)
	assert.Equal(t, 80.0, got.CapitalCost)
	assert.Equal(t, 50.0, got.StorageCost)
	assert.Equal(t, 30.0, got.InsuranceCost)
	assert.Equal(t, 20.0, got.ObsolescenceCost)
	assert.Equal(t, 20.0, got.HandlingCost)
	assert.Equal(t, 200.0, got.TotalCarryingCost)
	assert.Equal(t, 16.67, got.MonthlyCarryingCost)
}

func TestCarryingCostsBucketsByWarehouseAndCategory(t *testing.T) {
	p1 := product(1, 10, 25, 7)
	p2 := product(2, 5, 12, 7)
	p2.CategoryID = 2
	categories := []domain.Category{
		{CategoryID: 1, CategoryName: "Widgets"},
		{CategoryID: 2, CategoryName: "Gears"},
	}
	warehouses := []domain.Warehouse{
		{WarehouseID: 1, WarehouseCode: "WH-A", WarehouseName: "Alpha"},
	}
	snapshots := []domain.InventorySnapshot{
		{WarehouseID: 1, ProductID: 1, QuantityOnHand: 10},
		{WarehouseID: 1, ProductID: 2, QuantityOnHand: 20},
	}

	result, err := CarryingCosts(snapshots, []domain.Product{p1, p2}, categories, warehouses, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	// Sorted by warehouse code, then category name.
	assert.Equal(t, "Gears", result[0].CategoryName)
	assert.Equal(t, "Widgets", result[1].CategoryName)
}
