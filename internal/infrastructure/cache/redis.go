package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/pkg/config"
	"github.com/hamagardy/mandoubi-api/pkg/logger"
)

// summaryTTL keeps cached dashboards fresh enough for same-day use while
// absorbing repeated loads.
const summaryTTL = 2 * time.Minute

var _ usecase.SummaryCache = (*SummaryCache)(nil)

// SummaryCache caches summary reports in Redis as JSON. Every failure path
// degrades to a miss: the report is recomputed and the API stays up without
// Redis.
type SummaryCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewSummaryCache connects to Redis. Returns nil (cache disabled) when no
// address is configured or the server is unreachable.
func NewSummaryCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *SummaryCache {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, summary cache disabled")
		_ = client.Close()
		return nil
	}
	return &SummaryCache{client: client, log: log}
}

// Get returns a cached report, or a miss on any error.
func (c *SummaryCache) Get(ctx context.Context, key string) (*dto.SummaryReport, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var report dto.SummaryReport
	if err := json.Unmarshal(raw, &report); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("summary cache: bad payload, dropping")
		c.client.Del(ctx, key)
		return nil, false
	}
	return &report, true
}

// Set stores a report, best-effort.
func (c *SummaryCache) Set(ctx context.Context, key string, report *dto.SummaryReport) {
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, summaryTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("summary cache: write failed")
	}
}

// Close releases the connection.
func (c *SummaryCache) Close() error {
	return c.client.Close()
}
