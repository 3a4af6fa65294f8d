package service

import (
	"context"

	"github.com/ksomisetty/scm-analytics/internal/cache"
	"github.com/ksomisetty/scm-analytics/internal/config"
	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/ksomisetty/scm-analytics/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ParamsFromConfig overlays the configured constants onto the engine
// defaults. Zero values in the config keep the defaults.
func ParamsFromConfig(cfg config.AnalyticsConfig) engine.Params {
	p := engine.DefaultParams()
	if cfg.LookbackDays > 0 {
		p.LookbackDays = cfg.LookbackDays
	}
	if cfg.DemandLookbackDays > 0 {
		p.DemandLookbackDays = cfg.DemandLookbackDays
	}
	if cfg.FillRateLookbackDays > 0 {
		p.FillRateLookbackDays = cfg.FillRateLookbackDays
	}
	if cfg.ServiceLevelZ > 0 {
		p.ServiceLevelZ = cfg.ServiceLevelZ
	}
	if cfg.OrderingCost > 0 {
		p.OrderingCost = cfg.OrderingCost
	}
	if cfg.HoldingCostRate > 0 {
		p.HoldingCostRate = cfg.HoldingCostRate
	}
	return p
}

// AnalyticsService loads the input snapshot once and fans the metric
// computations out over it. The engine functions are pure, so independent
// metrics run concurrently; only true data dependencies impose ordering.
type AnalyticsService struct {
	repo  repository.AnalyticsRepository
	cache cache.ReportCache
}

func NewAnalyticsService(repo repository.AnalyticsRepository, cacheImpl cache.ReportCache) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &AnalyticsService{repo: repo, cache: cacheImpl}
}

// Report computes the full analytics report, serving from cache when the
// same parameter set was computed recently.
func (s *AnalyticsService) Report(ctx context.Context, p engine.Params) (*domain.AnalyticsReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if report, ok, err := s.cache.GetReport(ctx, p); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("analytics: cache get report failed")
	}

	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}

	report, err := ComputeReport(ctx, ds, p)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, p, report); err != nil {
		log.Warn().Err(err).Msg("analytics: cache set report failed")
	}
	return report, nil
}

// ComputeReport runs every metric over an already-materialized dataset.
// It is the single composition point: the API server, the ops trigger and
// the batch CLI all go through it.
func ComputeReport(ctx context.Context, ds *domain.Dataset, p engine.Params) (*domain.AnalyticsReport, error) {
	report := &domain.AnalyticsReport{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.ABC, err = engine.ClassifyABC(ds.Lines, ds.Products, p)
		return err
	})
	g.Go(func() (err error) {
		report.Turnover, err = engine.ComputeTurnover(ds.Lines, ds.Snapshots, ds.Products, ds.Warehouses, p)
		return err
	})
	g.Go(func() (err error) {
		report.Reorder, err = engine.RecommendReorderPoints(ds.Lines, ds.Deliveries, ds.Snapshots, ds.Products, ds.Warehouses, p)
		return err
	})
	g.Go(func() (err error) {
		report.EOQ, err = engine.ComputeEOQ(ds.Lines, ds.Products, p)
		return err
	})
	g.Go(func() (err error) {
		report.Suppliers, err = engine.ScoreSuppliers(ds.Deliveries, ds.PurchaseLines, ds.Suppliers, p)
		return err
	})
	g.Go(func() (err error) {
		report.LeadTimes, err = engine.AnalyzeLeadTimes(ds.Deliveries, ds.Suppliers, p)
		return err
	})
	g.Go(func() (err error) {
		report.Stockouts, err = engine.AnalyzeStockouts(ds.Stockouts, ds.Products, ds.Warehouses, p)
		if err == nil {
			report.StockoutCauses = engine.StockoutRootCauses(ds.Stockouts)
		}
		return err
	})
	g.Go(func() (err error) {
		report.CarryingCosts, err = engine.CarryingCosts(ds.Snapshots, ds.Products, ds.Categories, ds.Warehouses, p)
		return err
	})
	g.Go(func() (err error) {
		report.InventoryStatus, err = engine.InventoryStatus(ds.Snapshots, ds.Lines, ds.Products, ds.Warehouses, p)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// ABC computes only the revenue classification.
func (s *AnalyticsService) ABC(ctx context.Context, p engine.Params) ([]domain.RevenueRankedProduct, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ClassifyABC(ds.Lines, ds.Products, p)
}

// Turnover computes only the inventory turnover table.
func (s *AnalyticsService) Turnover(ctx context.Context, p engine.Params) ([]domain.TurnoverRecord, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ComputeTurnover(ds.Lines, ds.Snapshots, ds.Products, ds.Warehouses, p)
}

// Reorder computes only the reorder recommendations.
func (s *AnalyticsService) Reorder(ctx context.Context, p engine.Params) ([]domain.ReorderRecommendation, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.RecommendReorderPoints(ds.Lines, ds.Deliveries, ds.Snapshots, ds.Products, ds.Warehouses, p)
}

// EOQ computes only the economic order quantities.
func (s *AnalyticsService) EOQ(ctx context.Context, p engine.Params) ([]domain.EOQResult, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ComputeEOQ(ds.Lines, ds.Products, p)
}

// Suppliers computes only the supplier scorecards.
func (s *AnalyticsService) Suppliers(ctx context.Context, p engine.Params) ([]domain.SupplierScorecard, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ScoreSuppliers(ds.Deliveries, ds.PurchaseLines, ds.Suppliers, p)
}

// LeadTimes computes only the lead-time variability table.
func (s *AnalyticsService) LeadTimes(ctx context.Context, p engine.Params) ([]domain.LeadTimeStats, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.AnalyzeLeadTimes(ds.Deliveries, ds.Suppliers, p)
}

// Stockouts computes only the stockout impact table.
func (s *AnalyticsService) Stockouts(ctx context.Context, p engine.Params) ([]domain.StockoutImpact, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.AnalyzeStockouts(ds.Stockouts, ds.Products, ds.Warehouses, p)
}

// StockoutCauses computes only the root-cause breakdown.
func (s *AnalyticsService) StockoutCauses(ctx context.Context) ([]domain.StockoutCause, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.StockoutRootCauses(ds.Stockouts), nil
}

// CarryingCosts computes only the carrying cost summaries.
func (s *AnalyticsService) CarryingCosts(ctx context.Context, p engine.Params) ([]domain.CarryingCostSummary, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.CarryingCosts(ds.Snapshots, ds.Products, ds.Categories, ds.Warehouses, p)
}

// InventoryStatus computes only the per-item status flags.
func (s *AnalyticsService) InventoryStatus(ctx context.Context, p engine.Params) ([]domain.InventoryStatusRecord, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return engine.InventoryStatus(ds.Snapshots, ds.Lines, ds.Products, ds.Warehouses, p)
}

// Forecast projects daily demand for one product with both methods.
func (s *AnalyticsService) Forecast(ctx context.Context, productID int64, window int, alpha float64, horizonDays int, p engine.Params) (map[string][]domain.ForecastPoint, error) {
	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}

	ma, err := engine.ForecastMovingAverage(ds.Lines, productID, window, horizonDays, p)
	if err != nil {
		return nil, err
	}
	es, err := engine.ForecastExponential(ds.Lines, productID, alpha, horizonDays, p)
	if err != nil {
		return nil, err
	}
	return map[string][]domain.ForecastPoint{
		"moving_average":        ma,
		"exponential_smoothing": es,
	}, nil
}

// Invalidate drops every cached report.
func (s *AnalyticsService) Invalidate(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
