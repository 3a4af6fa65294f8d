package engine

import (
	"testing"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultParamsAreValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}

func TestValidateRejectsBadConstants(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative lookback", func(p *Params) { p.LookbackDays = -1 }},
		{"negative demand lookback", func(p *Params) { p.DemandLookbackDays = -1 }},
		{"negative fill-rate lookback", func(p *Params) { p.FillRateLookbackDays = -1 }},
		{"negative ordering cost", func(p *Params) { p.OrderingCost = -0.01 }},
		{"zero holding rate", func(p *Params) { p.HoldingCostRate = 0 }},
		{"zero z-score", func(p *Params) { p.ServiceLevelZ = 0 }},
		{"A threshold over 100", func(p *Params) { p.AThresholdPct = 101 }},
		{"B threshold zero", func(p *Params) { p.BThresholdPct = 0 }},
		{"A above B", func(p *Params) { p.AThresholdPct = 96 }},
		{"negative fallback", func(p *Params) { p.DemandStdDevFallback = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			err := p.Validate()
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestAnchorDefaultsToLatestOrderDate(t *testing.T) {
	p := DefaultParams()
	latest := p.anchor([]domain.TransactionLine{
		line(1, 1, 3, 1, 10),
		line(1, 1, 9, 1, 10),
		line(1, 1, 5, 1, 10),
	})
	assert.Equal(t, day(9), latest)

	p.AsOf = day(100)
	assert.Equal(t, day(100), p.anchor(nil))
}
