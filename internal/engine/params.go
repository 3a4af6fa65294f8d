// Package engine computes supply-chain analytics metrics as pure
// transformations over in-memory input tables. Every function reads an
// immutable snapshot and returns a fresh slice; rerunning with identical
// input yields identical output.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// ErrInvalidArgument marks caller misconfiguration: negative windows,
// negative cost constants, non-positive rates. Data edge cases (empty
// groups, zero denominators) never produce this error; they yield empty or
// partial results instead.
var ErrInvalidArgument = errors.New("invalid argument")

// Params carries every constant an engine call depends on. Nothing is
// hidden in package state so tests can vary constants freely.
type Params struct {
	// AsOf anchors the lookback windows. When zero, each function anchors
	// on the latest order date present in its input.
	AsOf time.Time

	LookbackDays         int // revenue, turnover, supplier scoring (default 365)
	DemandLookbackDays   int // daily demand statistics (default 90)
	FillRateLookbackDays int // fill-rate window (default 90)

	ServiceLevelZ   float64 // z-score for the target service level
	OrderingCost    float64 // fixed cost per order placement
	HoldingCostRate float64 // annual holding cost as a fraction of unit cost

	AThresholdPct float64 // cumulative-revenue boundary for class A
	BThresholdPct float64 // cumulative-revenue boundary for class B

	// ExcludedStatuses removes order lines from every aggregation.
	// Fill-rate additionally excludes FillRateExcludedStatuses.
	ExcludedStatuses         domain.StatusSet
	FillRateExcludedStatuses domain.StatusSet

	DemandStdDevFallback   float64 // σ_demand = mean × this when < 2 observations
	LeadTimeStdDevFallback float64 // σ_lead = mean × this when < 2 observations
}

// DefaultParams returns the production constants.
func DefaultParams() Params {
	return Params{
		LookbackDays:             365,
		DemandLookbackDays:       90,
		FillRateLookbackDays:     90,
		ServiceLevelZ:            1.65,
		OrderingCost:             50.0,
		HoldingCostRate:          0.25,
		AThresholdPct:            80,
		BThresholdPct:            95,
		ExcludedStatuses:         domain.NewStatusSet(domain.StatusCancelled),
		FillRateExcludedStatuses: domain.NewStatusSet(domain.StatusCancelled, domain.StatusPending),
		DemandStdDevFallback:     0.3,
		LeadTimeStdDevFallback:   0.2,
	}
}

// Validate fails loudly on caller misuse. It is the only error path in the
// engine.
func (p Params) Validate() error {
	switch {
	case p.LookbackDays < 0:
		return fmt.Errorf("%w: lookback days must not be negative, got %d", ErrInvalidArgument, p.LookbackDays)
	case p.DemandLookbackDays < 0:
		return fmt.Errorf("%w: demand lookback days must not be negative, got %d", ErrInvalidArgument, p.DemandLookbackDays)
	case p.FillRateLookbackDays < 0:
		return fmt.Errorf("%w: fill-rate lookback days must not be negative, got %d", ErrInvalidArgument, p.FillRateLookbackDays)
	case p.OrderingCost < 0:
		return fmt.Errorf("%w: ordering cost must not be negative, got %v", ErrInvalidArgument, p.OrderingCost)
	case p.HoldingCostRate <= 0:
		return fmt.Errorf("%w: holding cost rate must be positive, got %v", ErrInvalidArgument, p.HoldingCostRate)
	case p.ServiceLevelZ <= 0:
		return fmt.Errorf("%w: service level z-score must be positive, got %v", ErrInvalidArgument, p.ServiceLevelZ)
	case p.AThresholdPct <= 0 || p.AThresholdPct > 100:
		return fmt.Errorf("%w: A threshold must be in (0, 100], got %v", ErrInvalidArgument, p.AThresholdPct)
	case p.BThresholdPct <= 0 || p.BThresholdPct > 100:
		return fmt.Errorf("%w: B threshold must be in (0, 100], got %v", ErrInvalidArgument, p.BThresholdPct)
	case p.AThresholdPct >= p.BThresholdPct:
		return fmt.Errorf("%w: A threshold %v must be below B threshold %v", ErrInvalidArgument, p.AThresholdPct, p.BThresholdPct)
	case p.DemandStdDevFallback < 0 || p.LeadTimeStdDevFallback < 0:
		return fmt.Errorf("%w: std-dev fallback multipliers must not be negative", ErrInvalidArgument)
	}
	return nil
}

// wrapInvalid tags a message as caller misuse.
func wrapInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// excluded reports whether a line's status removes it from aggregation.
func (p Params) excluded(status string) bool {
	return p.ExcludedStatuses.Contains(status)
}

// cutoff returns the window start for a lookback anchored at asOf.
func cutoff(asOf time.Time, lookbackDays int) time.Time {
	return asOf.AddDate(0, 0, -lookbackDays)
}

// anchor resolves the window anchor: the configured AsOf, or the latest
// order date seen in the input when AsOf is unset.
func (p Params) anchor(lines []domain.TransactionLine) time.Time {
	if !p.AsOf.IsZero() {
		return p.AsOf
	}
	var latest time.Time
	for _, l := range lines {
		if l.OrderDate.After(latest) {
			latest = l.OrderDate
		}
	}
	return latest
}

// deliveryAnchor resolves the window anchor from purchase order dates.
func (p Params) deliveryAnchor(deliveries []domain.DeliveryRecord) time.Time {
	if !p.AsOf.IsZero() {
		return p.AsOf
	}
	var latest time.Time
	for _, d := range deliveries {
		if d.OrderDate.After(latest) {
			latest = d.OrderDate
		}
	}
	return latest
}
