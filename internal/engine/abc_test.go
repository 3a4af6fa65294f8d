package engine

import (
	"testing"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyABCBoundaries(t *testing.T) {
	products := []domain.Product{
		product(1, 10, 8000, 7),
		product(2, 10, 1500, 7),
		product(3, 10, 500, 7),
	}
	lines := []domain.TransactionLine{
		line(1, 1, 10, 1, 8000),
		line(2, 1, 10, 1, 1500),
		line(3, 1, 10, 1, 500),
	}

	result, err := ClassifyABC(lines, products, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 3)

	// Cumulative shares land exactly on the 80 and 95 boundaries, which
	// are inclusive.
	assert.Equal(t, int64(1), result[0].ProductID)
	assert.Equal(t, 1, result[0].RevenueRank)
	assert.Equal(t, 80.0, result[0].CumulativePct)
	assert.Equal(t, "A", result[0].ABCClass)

	assert.Equal(t, int64(2), result[1].ProductID)
	assert.Equal(t, 95.0, result[1].CumulativePct)
	assert.Equal(t, "B", result[1].ABCClass)

	assert.Equal(t, int64(3), result[2].ProductID)
	assert.Equal(t, 100.0, result[2].CumulativePct)
	assert.Equal(t, "C", result[2].ABCClass)
}

func TestClassifyABCSkipsClassEntirely(t *testing.T) {
	// 8000 then 2000 in a 10000 total: the second product jumps the
	// cumulative share straight from 80 to 100 and lands in C, never B.
	products := []domain.Product{
		product(1, 10, 8000, 7),
		product(2, 10, 2000, 7),
	}
	lines := []domain.TransactionLine{
		line(1, 1, 10, 1, 8000),
		line(2, 1, 10, 1, 2000),
	}

	result, err := ClassifyABC(lines, products, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "A", result[0].ABCClass)
	assert.Equal(t, 100.0, result[1].CumulativePct)
	assert.Equal(t, "C", result[1].ABCClass)
}

func TestClassifyABCPartitionAndMonotonicity(t *testing.T) {
	var products []domain.Product
	var lines []domain.TransactionLine
	for i := int64(1); i <= 20; i++ {
		products = append(products, product(i, 10, float64(i*37), 7))
		lines = append(lines, line(i, 1, int(i%5), int(i%3)+1, float64(i*37)))
	}

	result, err := ClassifyABC(lines, products, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 20, "every product with revenue appears exactly once")

	prevPct := 0.0
	seen := map[int64]bool{}
	for i, r := range result {
		assert.Equal(t, i+1, r.RevenueRank)
		assert.False(t, seen[r.ProductID])
		seen[r.ProductID] = true
		assert.GreaterOrEqual(t, r.CumulativePct, prevPct, "cumulative share never decreases")
		prevPct = r.CumulativePct
		assert.Contains(t, []string{"A", "B", "C"}, r.ABCClass)
	}
	assert.InDelta(t, 100.0, result[len(result)-1].CumulativePct, 1e-9)
}

func TestClassifyABCTieBreakByProductID(t *testing.T) {
	products := []domain.Product{
		product(1, 10, 100, 7),
		product(2, 10, 100, 7),
	}
	lines := []domain.TransactionLine{
		line(2, 1, 10, 1, 100),
		line(1, 1, 10, 1, 100),
	}

	result, err := ClassifyABC(lines, products, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ProductID)
	assert.Equal(t, int64(2), result[1].ProductID)
}

func TestClassifyABCExcludesCancelledAndStale(t *testing.T) {
	products := []domain.Product{product(1, 10, 100, 7), product(2, 10, 100, 7)}
	cancelled := line(2, 1, 10, 5, 100)
	cancelled.Status = domain.StatusCancelled
	stale := line(2, 1, -400, 5, 100) // before the 365-day window

	lines := []domain.TransactionLine{
		line(1, 1, 10, 2, 100),
		cancelled,
		stale,
	}

	result, err := ClassifyABC(lines, products, DefaultParams())
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ProductID)
	assert.Equal(t, 200.0, result[0].TotalRevenue)
	assert.Equal(t, 2, result[0].QuantityOrdered)
}

func TestClassifyABCEmptyWhenNoRevenue(t *testing.T) {
	result, err := ClassifyABC(nil, nil, DefaultParams())
	assert.NoError(t, err)
	assert.Empty(t, result)

	free := []domain.TransactionLine{line(1, 1, 10, 5, 0)}
	result, err = ClassifyABC(free, []domain.Product{product(1, 10, 0, 7)}, DefaultParams())
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestClassifyABCDeterministic(t *testing.T) {
	products := []domain.Product{
		product(1, 10, 300, 7),
		product(2, 10, 200, 7),
		product(3, 10, 100, 7),
	}
	lines := []domain.TransactionLine{
		line(3, 1, 10, 1, 100),
		line(1, 1, 10, 1, 300),
		line(2, 1, 10, 1, 200),
	}

	first, err := ClassifyABC(lines, products, DefaultParams())
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ClassifyABC(lines, products, DefaultParams())
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyABCRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.AThresholdPct = 99
	_, err := ClassifyABC(nil, nil, p)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
