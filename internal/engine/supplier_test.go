package engine

import (
	"testing"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func supplier(id int64, name string, active bool) domain.Supplier {
	return domain.Supplier{
		SupplierID:   id,
		SupplierCode: "SUP-" + name,
		SupplierName: name,
		IsActive:     active,
	}
}

func TestScoreSuppliers(t *testing.T) {
	// 10 delivered orders, 9 on time and 1 two days late:
	// on-time 90%, avg variance 0.2 days → bonus 20.
	// Fill: 95 of 100 units received → 95%.
	// score = 90 × 0.4 + 95 × 0.4 + 20 = 94.0, tier Gold (90/95).
	suppliers := []domain.Supplier{supplier(1, "Acme", true)}

	deliveries := make([]domain.DeliveryRecord, 0, 10)
	for i := 0; i < 9; i++ {
		deliveries = append(deliveries, delivery(int64(i+1), 1, i, i+5, intptr(i+5)))
	}
	deliveries = append(deliveries, delivery(10, 1, 20, 25, intptr(27)))

	purchaseLines := []domain.PurchaseLine{
		{POID: 1, ProductID: 1, QuantityOrdered: 60, QuantityReceived: 58},
		{POID: 10, ProductID: 1, QuantityOrdered: 40, QuantityReceived: 37},
	}

	result, err := ScoreSuppliers(deliveries, purchaseLines, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	got := result[0]
	assert.Equal(t, 10, got.TotalOrders)
	if assert.NotNil(t, got.OnTimeRate) {
		assert.Equal(t, 90.0, *got.OnTimeRate)
	}
	if assert.NotNil(t, got.FillRate) {
		assert.Equal(t, 95.0, *got.FillRate)
	}
	if assert.NotNil(t, got.AvgVarianceDays) {
		assert.Equal(t, 0.2, *got.AvgVarianceDays)
	}
	assert.Equal(t, 20.0, got.ConsistencyBonus)
	if assert.NotNil(t, got.ReliabilityScore) {
		assert.Equal(t, 94.0, *got.ReliabilityScore)
	}
	assert.Equal(t, "Gold", got.ReliabilityTier)
}

func TestScoreSuppliersHighFillStillGold(t *testing.T) {
	// Same delivery record, 97 of 100 units: score 90 × 0.4 + 97 × 0.4 + 20
	// = 94.8, and the tier stays Gold because on-time sits below 95.
	suppliers := []domain.Supplier{supplier(1, "Acme", true)}

	deliveries := make([]domain.DeliveryRecord, 0, 10)
	for i := 0; i < 9; i++ {
		deliveries = append(deliveries, delivery(int64(i+1), 1, i, i+5, intptr(i+5)))
	}
	deliveries = append(deliveries, delivery(10, 1, 20, 25, intptr(27)))

	purchaseLines := []domain.PurchaseLine{
		{POID: 1, ProductID: 1, QuantityOrdered: 100, QuantityReceived: 97},
	}

	result, err := ScoreSuppliers(deliveries, purchaseLines, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	got := result[0]
	if assert.NotNil(t, got.ReliabilityScore) {
		assert.Equal(t, 94.8, *got.ReliabilityScore)
		assert.GreaterOrEqual(t, *got.ReliabilityScore, 0.0)
		assert.LessOrEqual(t, *got.ReliabilityScore, 100.0)
	}
	assert.Equal(t, "Gold", got.ReliabilityTier)
}

func TestScoreSuppliersTierRequiresBothRates(t *testing.T) {
	// Perfect on-time but weak fill: 95/98 fails, 90/95 fails, 80/90 fails
	// on fill → Bronze despite 100% on-time.
	suppliers := []domain.Supplier{supplier(1, "Acme", true)}
	deliveries := []domain.DeliveryRecord{
		delivery(1, 1, 0, 5, intptr(5)),
		delivery(2, 1, 1, 6, intptr(6)),
	}
	purchaseLines := []domain.PurchaseLine{
		{POID: 1, ProductID: 1, QuantityOrdered: 100, QuantityReceived: 80},
	}

	result, err := ScoreSuppliers(deliveries, purchaseLines, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Bronze", result[0].ReliabilityTier)
}

func TestScoreSuppliersUnrated(t *testing.T) {
	// An active supplier without delivered orders still appears, with nil
	// rates rather than misleading zeros.
	suppliers := []domain.Supplier{
		supplier(1, "Acme", true),
		supplier(2, "Idle", true),
	}
	deliveries := []domain.DeliveryRecord{delivery(1, 1, 0, 5, intptr(5))}

	result, err := ScoreSuppliers(deliveries, nil, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 2)

	// Scored supplier sorts first, unrated last.
	assert.Equal(t, int64(1), result[0].SupplierID)
	assert.NotNil(t, result[0].ReliabilityScore)

	idle := result[1]
	assert.Equal(t, int64(2), idle.SupplierID)
	assert.Equal(t, 0, idle.TotalOrders)
	assert.Nil(t, idle.OnTimeRate)
	assert.Nil(t, idle.FillRate)
	assert.Nil(t, idle.ReliabilityScore)
	assert.Equal(t, "Unrated", idle.ReliabilityTier)
}

func TestScoreSuppliersKeepsOrderCountWithoutActualDates(t *testing.T) {
	// Delivered orders that never recorded an actual date count as orders
	// but cannot be rated.
	suppliers := []domain.Supplier{supplier(1, "Acme", true)}
	deliveries := []domain.DeliveryRecord{
		delivery(1, 1, 0, 5, nil),
		delivery(2, 1, 1, 6, nil),
	}

	result, err := ScoreSuppliers(deliveries, nil, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 2, result[0].TotalOrders)
	assert.Nil(t, result[0].OnTimeRate)
	assert.Equal(t, "Unrated", result[0].ReliabilityTier)
}

func TestScoreSuppliersIncludesInactiveWithHistory(t *testing.T) {
	suppliers := []domain.Supplier{supplier(1, "Former", false)}
	deliveries := []domain.DeliveryRecord{delivery(1, 1, 0, 5, intptr(5))}

	result, err := ScoreSuppliers(deliveries, nil, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].SupplierID)
}

func TestAnalyzeLeadTimes(t *testing.T) {
	suppliers := []domain.Supplier{supplier(1, "Acme", true)}
	deliveries := []domain.DeliveryRecord{
		delivery(1, 1, 0, 4, intptr(4)),    // lead 4
		delivery(2, 1, 10, 14, intptr(16)), // lead 6
	}

	result, err := AnalyzeLeadTimes(deliveries, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	got := result[0]
	assert.Equal(t, 2, got.DeliveryCount)
	assert.Equal(t, 5.0, got.AvgLeadTimeDays)
	assert.Equal(t, 4, got.MinLeadTimeDays)
	assert.Equal(t, 6, got.MaxLeadTimeDays)
	if assert.NotNil(t, got.StdLeadTimeDays) {
		assert.InDelta(t, 1.41, *got.StdLeadTimeDays, 0.001)
	}
	if assert.NotNil(t, got.CVPct) {
		assert.InDelta(t, 28.28, *got.CVPct, 0.001)
	}
	assert.Equal(t, "Variable", got.ReliabilityCategory)
}

func TestAnalyzeLeadTimesSingleDelivery(t *testing.T) {
	suppliers := []domain.Supplier{supplier(1, "Acme", true)}
	deliveries := []domain.DeliveryRecord{delivery(1, 1, 0, 4, intptr(4))}

	result, err := AnalyzeLeadTimes(deliveries, suppliers, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	got := result[0]
	assert.Equal(t, 1, got.DeliveryCount)
	assert.Nil(t, got.StdLeadTimeDays)
	assert.Nil(t, got.CVPct)
	assert.Equal(t, "Highly Reliable", got.ReliabilityCategory)
}

func TestAnalyzeLeadTimesSkipsUndelivered(t *testing.T) {
	pending := delivery(1, 1, 0, 4, nil)
	pending.Status = domain.StatusPending

	result, err := AnalyzeLeadTimes([]domain.DeliveryRecord{pending}, nil, DefaultParams())
	assert.NoError(t, err)
	assert.Empty(t, result)
}
