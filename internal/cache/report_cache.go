package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ksomisetty/scm-analytics/internal/config"
	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix  = "analytics:report"
	scanBatchSize    = 100
	defaultReportTTL = 5 * time.Minute
)

// ReportCache stores computed analytics reports keyed by the parameter set
// that produced them.
type ReportCache interface {
	GetReport(ctx context.Context, p engine.Params) (*domain.AnalyticsReport, bool, error)
	SetReport(ctx context.Context, p engine.Params, report *domain.AnalyticsReport) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, p engine.Params) (*domain.AnalyticsReport, bool, error) {
	key := buildReportKey(p)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.AnalyticsReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode analytics report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, p engine.Params, report *domain.AnalyticsReport) error {
	key := buildReportKey(p)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode analytics report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, scanBatchSize)
}

func (n *noopReportCache) GetReport(ctx context.Context, p engine.Params) (*domain.AnalyticsReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, p engine.Params, report *domain.AnalyticsReport) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(p engine.Params) string {
	parts := []string{
		fmt.Sprintf("as_of=%d", p.AsOf.Unix()),
		fmt.Sprintf("lookback=%d", p.LookbackDays),
		fmt.Sprintf("demand_lookback=%d", p.DemandLookbackDays),
		fmt.Sprintf("fill_lookback=%d", p.FillRateLookbackDays),
		fmt.Sprintf("z=%v", p.ServiceLevelZ),
		fmt.Sprintf("ordering_cost=%v", p.OrderingCost),
		fmt.Sprintf("holding_rate=%v", p.HoldingCostRate),
		fmt.Sprintf("a_pct=%v", p.AThresholdPct),
		fmt.Sprintf("b_pct=%v", p.BThresholdPct),
		"excluded=" + statusSetKey(p.ExcludedStatuses),
		"fill_excluded=" + statusSetKey(p.FillRateExcludedStatuses),
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(hash[:]))
}

func statusSetKey(set domain.StatusSet) string {
	statuses := make([]string, 0, len(set))
	for s := range set {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	return strings.Join(statuses, ",")
}
