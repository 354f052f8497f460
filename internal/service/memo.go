package service

import (
	"fmt"
	"strconv"
	"time"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/observability"

	"github.com/cespare/xxhash/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const defaultCacheTTL = 5 * time.Minute

// memo holds derived view models keyed by dataset version.
// Concurrent misses for the same key share one computation.
type memo struct {
	cache *cache.Cache
	group singleflight.Group
}

// newMemo creates the cache. A cleanup interval of zero disables the janitor goroutine;
// expired entries are then dropped lazily on read.
func newMemo(ttl, cleanup time.Duration) *memo {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if cleanup < 0 {
		cleanup = 0
	}
	return &memo{cache: cache.New(ttl, cleanup)}
}

func memoize[T any](m *memo, metric, key string, compute func() (T, error)) (T, error) {
	if v, ok := m.cache.Get(key); ok {
		observability.RecordCacheHit(metric)
		return v.(T), nil
	}
	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		if v, ok := m.cache.Get(key); ok {
			observability.RecordCacheHit(metric)
			return v, nil
		}
		started := time.Now()
		out, err := compute()
		if err != nil {
			return nil, err
		}
		observability.RecordRecompute(metric, time.Since(started))
		m.cache.SetDefault(key, out)
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// datasetVersion fingerprints everything a computation reads. Any write to a workout
// bumps its updatedAt, so the version changes with the data.
func datasetVersion(p preferences, records []domain.WorkoutRecord, schedule []domain.ScheduleDay, exercises []domain.Exercise) string {
	h := xxhash.New()
	fmt.Fprintf(h, "p|%s|%d|%d|%s\n", p.location.String(), p.weekStart, p.streak.MaxRestDaysPerWeek, p.streak.StreakType)
	for _, r := range records {
		var completion interface{}
		if r.CompletedAt != nil {
			completion = r.CompletedAt.Raw()
		}
		fmt.Fprintf(h, "w|%s|%d|%v\n", r.ID.Hex(), r.UpdatedAt.UnixNano(), completion)
	}
	for _, d := range schedule {
		template := ""
		if d.TemplateID != nil {
			template = d.TemplateID.Hex()
		}
		fmt.Fprintf(h, "s|%s|%s|%t|%d\n", d.Date, template, d.Completed, d.UpdatedAt.UnixNano())
	}
	for _, e := range exercises {
		fmt.Fprintf(h, "e|%s|%d\n", e.ID.Hex(), e.UpdatedAt.UnixNano())
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
