package engine

// gradeStep is one rung of a threshold ladder: the first rung whose
// threshold the value meets wins.
type gradeStep struct {
	threshold float64
	label     string
}

// gradeAtLeast walks the ladder top-down and returns the first label whose
// threshold the value meets (v >= threshold), or fallback.
func gradeAtLeast(v float64, ladder []gradeStep, fallback string) string {
	for _, step := range ladder {
		if v >= step.threshold {
			return step.label
		}
	}
	return fallback
}

// gradeAtMost walks the ladder top-down and returns the first label whose
// ceiling the value stays under (v <= threshold), or fallback.
func gradeAtMost(v float64, ladder []gradeStep, fallback string) string {
	for _, step := range ladder {
		if v <= step.threshold {
			return step.label
		}
	}
	return fallback
}

var turnoverLadder = []gradeStep{
	{12, "Fast Moving"},
	{4, "Normal"},
	{1, "Slow Moving"},
}

var cvReliabilityLadder = []gradeStep{
	{10, "Highly Reliable"},
	{25, "Reliable"},
	{40, "Variable"},
}

var mapeLadder = []gradeStep{
	{10, "Excellent"},
	{20, "Good"},
	{30, "Fair"},
}

var fillRateLadder = []gradeStep{
	{98, "A"},
	{95, "B"},
	{90, "C"},
}

var performanceLadder = []gradeStep{
	{90, "Excellent"},
	{75, "Good"},
	{60, "Fair"},
}

// TurnoverCategory grades an inventory turnover ratio.
func TurnoverCategory(ratio float64) string {
	return gradeAtLeast(ratio, turnoverLadder, "Dead Stock")
}

// FillRateGrade assigns a letter grade to a fill-rate percentage.
func FillRateGrade(fillRatePct float64) string {
	return gradeAtLeast(fillRatePct, fillRateLadder, "D")
}

// ForecastAccuracyGrade grades a forecast by its MAPE percentage.
func ForecastAccuracyGrade(mapePct float64) string {
	return gradeAtMost(mapePct, mapeLadder, "Poor")
}

// PerformanceRating grades a composite reliability score.
func PerformanceRating(score float64) string {
	return gradeAtLeast(score, performanceLadder, "Needs Improvement")
}

// leadTimeReliability grades lead-time consistency by CV%. An undefined CV
// (single delivery) reads as consistent.
func leadTimeReliability(cvPct *float64) string {
	if cvPct == nil {
		return "Highly Reliable"
	}
	return gradeAtMost(*cvPct, cvReliabilityLadder, "Unreliable")
}

// consistencyBonus is the step function over |avg delivery variance days|
// that contributes up to 20 points of the reliability score.
func consistencyBonus(absAvgVarianceDays float64) float64 {
	switch {
	case absAvgVarianceDays <= 1:
		return 20
	case absAvgVarianceDays <= 3:
		return 15
	case absAvgVarianceDays <= 7:
		return 10
	default:
		return 5
	}
}
