package engine

import (
	"math"
	"sort"
	"time"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

const dayFormat = "2006-01-02"

// dailyDemandForProduct builds the product's dense daily demand series:
// qualifying lines summed per calendar day over the observed date range,
// with zero-demand days filled in. Returns the series and its first day.
func dailyDemandForProduct(lines []domain.TransactionLine, productID int64, p Params) ([]float64, time.Time) {
	byDay := make(map[string]float64)
	var first, last time.Time
	for _, l := range lines {
		if l.ProductID != productID || p.excluded(l.Status) {
			continue
		}
		day := l.OrderDate.Truncate(24 * time.Hour)
		byDay[day.Format(dayFormat)] += float64(l.QuantityOrdered)
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	if len(byDay) == 0 {
		return nil, time.Time{}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	series := make([]float64, days)
	for i := 0; i < days; i++ {
		series[i] = byDay[first.AddDate(0, 0, i).Format(dayFormat)]
	}
	return series, first
}

// ForecastMovingAverage projects demand for a product by extending the
// trailing moving average of its daily demand series flat over the horizon.
// Windows shorter than the history shrink at the start of the series rather
// than dropping observations. An empty history yields an empty forecast.
func ForecastMovingAverage(lines []domain.TransactionLine, productID int64, window, horizonDays int, p Params) ([]domain.ForecastPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if window <= 0 || horizonDays < 0 {
		return nil, wrapInvalid("moving-average forecast: window must be positive and horizon non-negative")
	}

	series, first := dailyDemandForProduct(lines, productID, p)
	if len(series) == 0 {
		return []domain.ForecastPoint{}, nil
	}

	// Trailing mean over the last full (or truncated) window.
	start := len(series) - window
	if start < 0 {
		start = 0
	}
	level := Mean(series[start:])

	lastDay := first.AddDate(0, 0, len(series)-1)
	return flatForecast(lastDay, horizonDays, level, "Moving Average"), nil
}

// ForecastExponential projects demand using simple exponential smoothing
// seeded with the first observation:
//
//	s₀ = v₀,  sᵢ = α·vᵢ + (1-α)·sᵢ₋₁
func ForecastExponential(lines []domain.TransactionLine, productID int64, alpha float64, horizonDays int, p Params) ([]domain.ForecastPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if alpha <= 0 || alpha > 1 || horizonDays < 0 {
		return nil, wrapInvalid("exponential forecast: alpha must be in (0, 1] and horizon non-negative")
	}

	series, first := dailyDemandForProduct(lines, productID, p)
	if len(series) == 0 {
		return []domain.ForecastPoint{}, nil
	}

	level := series[0]
	for _, v := range series[1:] {
		level = alpha*v + (1-alpha)*level
	}

	lastDay := first.AddDate(0, 0, len(series)-1)
	return flatForecast(lastDay, horizonDays, level, "Exponential Smoothing"), nil
}

func flatForecast(lastDay time.Time, horizonDays int, level float64, method string) []domain.ForecastPoint {
	qty := int(math.Round(level))
	points := make([]domain.ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		points = append(points, domain.ForecastPoint{
			Date:               lastDay.AddDate(0, 0, i).Format(dayFormat),
			ForecastedQuantity: qty,
			Method:             method,
		})
	}
	return points
}

// MAPE returns the mean absolute percentage error between actual and
// forecast series, skipping zero actuals (their percentage error is
// undefined). ok is false when nothing could be compared.
func MAPE(actual, forecast []float64) (mape float64, ok bool) {
	n := len(actual)
	if len(forecast) < n {
		n = len(forecast)
	}
	var sum float64
	count := 0
	for i := 0; i < n; i++ {
		if actual[i] == 0 {
			continue
		}
		sum += math.Abs((actual[i] - forecast[i]) / actual[i])
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count) * 100, true
}

// EvaluateForecasts backtests both methods against the tail of the
// product's history: the series minus the holdout trains the forecast, the
// holdout scores it. Histories shorter than twice the holdout are not
// evaluated.
func EvaluateForecasts(lines []domain.TransactionLine, productID int64, window int, alpha float64, holdoutDays int, p Params) ([]domain.ForecastAccuracy, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if window <= 0 || alpha <= 0 || alpha > 1 || holdoutDays <= 0 {
		return nil, wrapInvalid("forecast evaluation: window, alpha and holdout must be positive, alpha at most 1")
	}

	series, _ := dailyDemandForProduct(lines, productID, p)
	if len(series) < 2*holdoutDays {
		return []domain.ForecastAccuracy{}, nil
	}

	train := series[:len(series)-holdoutDays]
	actual := series[len(series)-holdoutDays:]

	start := len(train) - window
	if start < 0 {
		start = 0
	}
	maLevel := Mean(train[start:])

	esLevel := train[0]
	for _, v := range train[1:] {
		esLevel = alpha*v + (1-alpha)*esLevel
	}

	results := make([]domain.ForecastAccuracy, 0, 2)
	for _, m := range []struct {
		method string
		level  float64
	}{
		{"Moving Average", maLevel},
		{"Exponential Smoothing", esLevel},
	} {
		forecast := make([]float64, holdoutDays)
		for i := range forecast {
			forecast[i] = m.level
		}
		acc := domain.ForecastAccuracy{Method: m.method, AccuracyGrade: "Unrated"}
		if mape, ok := MAPE(actual, forecast); ok {
			mape = roundTo(mape, 2)
			acc.MAPEPct = &mape
			acc.AccuracyGrade = ForecastAccuracyGrade(mape)
		}
		results = append(results, acc)
	}
	return results, nil
}

// ActiveProductIDs lists the distinct products present in qualifying lines.
func ActiveProductIDs(lines []domain.TransactionLine, p Params) []int64 {
	seen := make(map[int64]struct{})
	for _, l := range lines {
		if p.excluded(l.Status) {
			continue
		}
		seen[l.ProductID] = struct{}{}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
