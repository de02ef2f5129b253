package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"adRecoDashboard/business/loader"
	"adRecoDashboard/pkg/logger"
)

const defaultRefreshTimeout = 5 * time.Minute

// Cache is the loader surface the refresher drives.
type Cache interface {
	Invalidate()
	Warm(ctx context.Context) (loader.WarmResult, error)
}

// CacheRefresher clears and re-warms the loader cache on a cron schedule.
type CacheRefresher struct {
	cron    *cron.Cron
	cache   Cache
	timeout time.Duration
}

// NewCacheRefresher parses spec (standard five-field cron or a descriptor
// such as "@hourly") and schedules the refresh job.
func NewCacheRefresher(spec string, cache Cache) (*CacheRefresher, error) {
	if cache == nil {
		return nil, errors.New("cache must not be nil")
	}

	r := &CacheRefresher{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		cache:   cache,
		timeout: defaultRefreshTimeout,
	}
	if _, err := r.cron.AddFunc(spec, r.Refresh); err != nil {
		return nil, fmt.Errorf("add cron: %w", err)
	}
	return r, nil
}

func (r *CacheRefresher) Start() {
	r.cron.Start()
	logger.Info("cache refresher started", "next_run", r.NextRun())
}

// Stop waits for a running refresh to finish.
func (r *CacheRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// NextRun returns the next scheduled refresh, zero before Start.
func (r *CacheRefresher) NextRun() time.Time {
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Refresh runs one invalidate-and-warm pass.
func (r *CacheRefresher) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	r.cache.Invalidate()
	res, err := r.cache.Warm(ctx)
	if err != nil {
		logger.Error("scheduled cache refresh failed", "error", err)
		return
	}

	logger.Info("scheduled cache refresh done",
		"clusters", len(res.Clusters),
		"missing", len(res.Missing),
		"duration", time.Since(start).String(),
	)
}
