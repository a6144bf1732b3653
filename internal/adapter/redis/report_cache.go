package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/gomodule/redigo/redis"
)

const keyPrefix = "mileage:report:"

// ReportCache stores generated reports keyed by the hash of their input text.
type ReportCache struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewReportCache(pool *redis.Pool, ttl time.Duration) *ReportCache {
	return &ReportCache{
		pool: pool,
		ttl:  ttl,
	}
}

// Get returns the cached report for inputHash. A miss is (nil, nil).
func (c *ReportCache) Get(ctx context.Context, inputHash string) (*models.Report, error) {
	const op = "ReportCache.Get"

	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	data, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", keyPrefix+inputHash))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return &report, nil
}

// Set stores report under its input hash for the configured TTL.
func (c *ReportCache) Set(ctx context.Context, report *models.Report) error {
	const op = "ReportCache.Set"

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	args := redis.Args{keyPrefix + report.InputHash, data}
	if c.ttl > 0 {
		args = args.Add("PX", c.ttl.Milliseconds())
	}
	if _, err := redis.DoContext(conn, ctx, "SET", args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
