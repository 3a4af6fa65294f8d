package repository

import (
	"context"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// AnalyticsRepository materializes the engine's input tables from the
// backing store. The engine never touches the store directly; it consumes
// the already-loaded Dataset.
type AnalyticsRepository interface {
	LoadDataset(ctx context.Context) (*domain.Dataset, error)
}
