package engine

import (
	"testing"
	"time"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, daysBetween(day(3), day(3)))
	assert.Equal(t, 5, daysBetween(day(0), day(5)))
	assert.Equal(t, -2, daysBetween(day(5), day(3)))
}

func TestRevenueByProduct(t *testing.T) {
	p := DefaultParams()
	cancelled := line(1, 1, 5, 100, 10)
	cancelled.Status = domain.StatusCancelled

	lines := []domain.TransactionLine{
		line(1, 1, 5, 2, 10),
		line(1, 2, 6, 3, 10), // same product, other warehouse
		cancelled,
		line(2, 1, -10, 4, 5), // before the window
	}

	revenue, units := revenueByProduct(lines, day(0), p)
	assert.Equal(t, 50.0, revenue[1])
	assert.Equal(t, 5, units[1])
	assert.NotContains(t, revenue, int64(2))
}

func TestDailyDemandSeriesGroupsByDay(t *testing.T) {
	p := DefaultParams()
	lines := []domain.TransactionLine{
		line(1, 1, 0, 3, 10),
		line(1, 1, 0, 2, 10), // same day, summed
		line(1, 1, 2, 7, 10),
		line(1, 2, 0, 9, 10), // other warehouse, separate key
	}

	series := dailyDemandSeries(lines, day(0), p)
	assert.Equal(t, []float64{5, 7}, series[warehouseProduct{1, 1}])
	assert.Equal(t, []float64{9}, series[warehouseProduct{2, 1}])
}

func TestLeadTimeObservations(t *testing.T) {
	inTransit := delivery(3, 1, 0, 4, nil)
	cancelled := delivery(4, 1, 0, 4, intptr(4))
	cancelled.Status = domain.StatusCancelled

	obs := leadTimeObservations([]domain.DeliveryRecord{
		delivery(1, 1, 0, 4, intptr(4)),
		delivery(2, 1, 0, 4, intptr(7)),
		inTransit,
		cancelled,
	})
	assert.Equal(t, []float64{4, 7}, obs[1])
}

func TestStatusMatchingIsCaseInsensitive(t *testing.T) {
	p := DefaultParams()
	shouty := line(1, 1, 5, 2, 10)
	shouty.Status = "CANCELLED"

	revenue, _ := revenueByProduct([]domain.TransactionLine{shouty}, time.Time{}, p)
	assert.Empty(t, revenue)
}
