package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/autoservice-booking-api/internal/models"
	"github.com/noah-isme/autoservice-booking-api/pkg/jobs"
)

// InvalidationJobType tags cache invalidation jobs on the queue.
const InvalidationJobType = "scheduling.cache.invalidate"

// CacheInvalidator drops cached scheduling results after reservation changes.
type CacheInvalidator struct {
	cache  *CacheService
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewCacheInvalidator wires the invalidator. queue may be nil, in which case
// invalidation runs inline.
func NewCacheInvalidator(cache *CacheService, queue *jobs.Queue, logger *zap.Logger) *CacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheInvalidator{cache: cache, queue: queue, logger: logger}
}

// UseQueue attaches the background queue once it has been built.
func (i *CacheInvalidator) UseQueue(queue *jobs.Queue) {
	i.queue = queue
}

// InvalidationPatterns lists the cache patterns touched by a reservation
// change on date for customerID.
func InvalidationPatterns(date time.Time, customerID string) []string {
	patterns := []string{
		makeCacheKey("slots") + ":*:*:" + cacheKeyPart(date.Format(models.DateLayout)) + ":*",
		makeCacheKey("suggest") + ":*",
	}
	if customerID != "" {
		// Slot lists on other dates carry the old preference scores.
		patterns = append(patterns,
			makeCacheKey("slots")+":*:*:*:"+cacheKeyPart(customerID),
			PreferenceCacheKey(customerID),
		)
	}
	return patterns
}

// ReservationChanged schedules invalidation for the affected keys.
func (i *CacheInvalidator) ReservationChanged(ctx context.Context, date time.Time, customerID string) {
	patterns := InvalidationPatterns(date, customerID)
	if i.queue.Running() {
		err := i.queue.Enqueue(jobs.Job{Type: InvalidationJobType, Payload: patterns})
		if err == nil {
			return
		}
		i.logger.Warn("invalidation queue unavailable, invalidating inline", zap.Error(err))
	}
	if err := i.invalidate(ctx, patterns); err != nil {
		i.logger.Warn("cache invalidation failed", zap.Strings("patterns", patterns), zap.Error(err))
	}
}

// Handler processes invalidation jobs from the queue.
func (i *CacheInvalidator) Handler() jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		if job.Type != InvalidationJobType {
			return fmt.Errorf("unexpected job type %q", job.Type)
		}
		patterns, ok := job.Payload.([]string)
		if !ok {
			return fmt.Errorf("invalidation payload must be []string, got %T", job.Payload)
		}
		return i.invalidate(ctx, patterns)
	}
}

func (i *CacheInvalidator) invalidate(ctx context.Context, patterns []string) error {
	for _, pattern := range patterns {
		if err := i.cache.Invalidate(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}
