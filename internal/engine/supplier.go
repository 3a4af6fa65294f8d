package engine

import (
	"math"
	"sort"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// ScoreSuppliers builds the composite reliability scorecard per supplier
// from delivered purchase orders in the lookback window:
//
//	score = on_time_rate × 0.4 + fill_rate × 0.4 + consistency bonus
//
// On-time rate counts only orders with a known actual delivery date in its
// denominator. Fill rate is received/ordered over the fill-rate window, 0
// when nothing was ordered. Tiers require both rates to clear their bar
// simultaneously. Every active supplier appears in the output; one with no
// delivered orders in-window keeps nil rates and the tier "Unrated".
func ScoreSuppliers(deliveries []domain.DeliveryRecord, purchaseLines []domain.PurchaseLine, suppliers []domain.Supplier, p Params) ([]domain.SupplierScorecard, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	anchor := p.deliveryAnchor(deliveries)
	scoreFrom := cutoff(anchor, p.LookbackDays)
	fillFrom := cutoff(anchor, p.FillRateLookbackDays)

	type deliveryAgg struct {
		total       int
		withActual  int
		onTime      int
		varianceSum float64
	}
	bySupplier := make(map[int64]*deliveryAgg)
	fillPO := make(map[int64]int64) // po_id → supplier, for fill-window orders

	for _, d := range deliveries {
		if !domain.IsDelivered(d.Status) || p.FillRateExcludedStatuses.Contains(d.Status) {
			continue
		}
		if !d.OrderDate.Before(fillFrom) {
			fillPO[d.POID] = d.SupplierID
		}
		if d.OrderDate.Before(scoreFrom) {
			continue
		}
		agg, ok := bySupplier[d.SupplierID]
		if !ok {
			agg = &deliveryAgg{}
			bySupplier[d.SupplierID] = agg
		}
		agg.total++
		if d.ActualDeliveryDate == nil {
			continue
		}
		agg.withActual++
		variance := daysBetween(d.ExpectedDeliveryDate, *d.ActualDeliveryDate)
		agg.varianceSum += float64(variance)
		if variance <= 0 {
			agg.onTime++
		}
	}

	type fillAgg struct{ ordered, received int }
	fills := make(map[int64]*fillAgg)
	for _, pl := range purchaseLines {
		supplierID, ok := fillPO[pl.POID]
		if !ok {
			continue
		}
		f, ok := fills[supplierID]
		if !ok {
			f = &fillAgg{}
			fills[supplierID] = f
		}
		f.ordered += pl.QuantityOrdered
		f.received += pl.QuantityReceived
	}

	// Left join: every active supplier appears, plus any supplier with
	// delivered orders in-window regardless of its active flag.
	roster := make([]domain.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if s.IsActive || bySupplier[s.SupplierID] != nil {
			roster = append(roster, s)
		}
	}

	result := make([]domain.SupplierScorecard, 0, len(roster))
	for _, s := range roster {
		card := domain.SupplierScorecard{
			SupplierID:      s.SupplierID,
			SupplierCode:    s.SupplierCode,
			SupplierName:    s.SupplierName,
			ReliabilityTier: "Unrated",
		}

		agg := bySupplier[s.SupplierID]
		if agg != nil {
			card.TotalOrders = agg.total
		}
		if agg == nil || agg.withActual == 0 {
			result = append(result, card)
			continue
		}

		onTime := float64(agg.onTime) / float64(agg.withActual) * 100
		avgVariance := agg.varianceSum / float64(agg.withActual)

		var fill float64
		if f := fills[s.SupplierID]; f != nil && f.ordered > 0 {
			fill = float64(f.received) / float64(f.ordered) * 100
		}

		bonus := consistencyBonus(math.Abs(avgVariance))
		score := onTime*0.4 + fill*0.4 + bonus

		card.OnTimeRate = ptr(roundTo(onTime, 2))
		card.FillRate = ptr(roundTo(fill, 2))
		card.AvgVarianceDays = ptr(roundTo(avgVariance, 1))
		card.ConsistencyBonus = bonus
		card.ReliabilityScore = ptr(roundTo(score, 1))
		card.ReliabilityTier = reliabilityTier(onTime, fill)
		result = append(result, card)
	}

	// Descending by score; unrated suppliers last; ties by supplier ID.
	sort.Slice(result, func(i, j int) bool {
		si, sj := result[i].ReliabilityScore, result[j].ReliabilityScore
		switch {
		case si != nil && sj != nil && *si != *sj:
			return *si > *sj
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		}
		return result[i].SupplierID < result[j].SupplierID
	})
	return result, nil
}

// reliabilityTier applies the priority-ordered two-condition ladder. Both
// conditions must hold at each rung; first match wins.
func reliabilityTier(onTimeRate, fillRate float64) string {
	switch {
	case onTimeRate >= 95 && fillRate >= 98:
		return "Platinum"
	case onTimeRate >= 90 && fillRate >= 95:
		return "Gold"
	case onTimeRate >= 80 && fillRate >= 90:
		return "Silver"
	default:
		return "Bronze"
	}
}

// AnalyzeLeadTimes summarizes observed lead-time behavior per supplier over
// delivered orders in the lookback window. Suppliers without deliveries do
// not appear. A single delivery leaves the deviation and CV undefined and
// the supplier reads as consistent.
func AnalyzeLeadTimes(deliveries []domain.DeliveryRecord, suppliers []domain.Supplier, p Params) ([]domain.LeadTimeStats, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	from := cutoff(p.deliveryAnchor(deliveries), p.LookbackDays)
	windowed := make([]domain.DeliveryRecord, 0, len(deliveries))
	for _, d := range deliveries {
		if !d.OrderDate.Before(from) {
			windowed = append(windowed, d)
		}
	}
	obs := leadTimeObservations(windowed)

	supByID := make(map[int64]domain.Supplier, len(suppliers))
	for _, s := range suppliers {
		supByID[s.SupplierID] = s
	}

	ids := make([]int64, 0, len(obs))
	for id := range obs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]domain.LeadTimeStats, 0, len(ids))
	for _, id := range ids {
		series := obs[id]
		minLead, maxLead := series[0], series[0]
		for _, v := range series[1:] {
			minLead = math.Min(minLead, v)
			maxLead = math.Max(maxLead, v)
		}

		stats := domain.LeadTimeStats{
			SupplierID:      id,
			SupplierCode:    supByID[id].SupplierCode,
			SupplierName:    supByID[id].SupplierName,
			DeliveryCount:   len(series),
			AvgLeadTimeDays: roundTo(Mean(series), 2),
			MinLeadTimeDays: int(minLead),
			MaxLeadTimeDays: int(maxLead),
		}
		if sd, ok := SampleStdDev(series); ok {
			stats.StdLeadTimeDays = ptr(roundTo(sd, 2))
		}
		if cv, ok := CoefficientOfVariation(series); ok {
			stats.CVPct = ptr(roundTo(cv, 2))
		}
		stats.ReliabilityCategory = leadTimeReliability(stats.CVPct)
		result = append(result, stats)
	}
	return result, nil
}

func ptr(v float64) *float64 { return &v }
