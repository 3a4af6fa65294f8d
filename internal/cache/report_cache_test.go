package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestBuildReportKeyIsStable(t *testing.T) {
	a := buildReportKey(engine.DefaultParams())
	b := buildReportKey(engine.DefaultParams())
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, reportKeyPrefix+":"))
}

func TestBuildReportKeyVariesWithParams(t *testing.T) {
	base := engine.DefaultParams()
	changed := engine.DefaultParams()
	changed.LookbackDays = 180

	assert.NotEqual(t, buildReportKey(base), buildReportKey(changed))
}

func TestStatusSetKeyIsOrderInsensitive(t *testing.T) {
	a := statusSetKey(domain.NewStatusSet("Cancelled", "Pending"))
	b := statusSetKey(domain.NewStatusSet("Pending", "Cancelled"))
	assert.Equal(t, a, b)
}

func TestNoopReportCache(t *testing.T) {
	c := NewNoopReportCache()

	report, ok, err := c.GetReport(context.Background(), engine.DefaultParams())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, report)

	assert.NoError(t, c.SetReport(context.Background(), engine.DefaultParams(), &domain.AnalyticsReport{}))
	assert.NoError(t, c.InvalidateAll(context.Background()))
}
