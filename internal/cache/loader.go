package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// StatsLoader serves stats from a StatsCache and collapses concurrent loads
// of the same version into one. Each version carries a generation that
// Invalidate bumps; a load only keeps its result cached if the generation
// did not move while it ran.
type StatsLoader struct {
	cache   StatsCache
	flight  singleflight.Group
	metrics *observability.Metrics
	logger  *zap.Logger

	mu          sync.Mutex
	generations map[uint]uint64
}

func NewStatsLoader(c StatsCache, metrics *observability.Metrics, logger *zap.Logger) *StatsLoader {
	if c == nil {
		c = NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsLoader{cache: c, metrics: metrics, logger: logger, generations: make(map[uint]uint64)}
}

// Load returns cached stats or calls load. Cache failures are logged and
// never fail the request.
func (l *StatsLoader) Load(ctx context.Context, formID uint, load func(context.Context) (*submission.Stats, error)) (*submission.Stats, error) {
	stats, err := l.cache.Get(ctx, formID)
	if err == nil {
		l.metrics.ObserveCache(true)
		return stats, nil
	}
	if !errors.Is(err, ErrMiss) {
		l.logger.Warn("stats cache read failed", zap.Uint("form_id", formID), zap.Error(err))
	}
	l.metrics.ObserveCache(false)

	v, err, _ := l.flight.Do(flightKey(formID), func() (any, error) {
		gen := l.generation(formID)
		fresh, err := load(ctx)
		if err != nil {
			return nil, err
		}
		l.store(ctx, formID, gen, fresh)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*submission.Stats), nil
}

// store caches fresh unless the version was invalidated since gen was read.
// The generation is checked again after the write: an Invalidate that lands
// between the two checks deletes the entry itself, one that lands after the
// second check is caught here.
func (l *StatsLoader) store(ctx context.Context, formID uint, gen uint64, fresh *submission.Stats) {
	if l.generation(formID) != gen {
		return
	}
	if err := l.cache.Set(ctx, fresh); err != nil {
		l.logger.Warn("stats cache write failed", zap.Uint("form_id", formID), zap.Error(err))
		return
	}
	if l.generation(formID) != gen {
		if err := l.cache.Invalidate(ctx, formID); err != nil {
			l.logger.Warn("stats cache invalidation failed", zap.Uint("form_id", formID), zap.Error(err))
		}
	}
}

func (l *StatsLoader) generation(formID uint) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[formID]
}

// Invalidate drops cached stats for the version. Loads already running keep
// their result for their own callers but no longer write it to the cache.
func (l *StatsLoader) Invalidate(ctx context.Context, formID uint) {
	l.mu.Lock()
	l.generations[formID]++
	l.mu.Unlock()

	l.flight.Forget(flightKey(formID))
	if err := l.cache.Invalidate(ctx, formID); err != nil {
		l.logger.Warn("stats cache invalidation failed", zap.Uint("form_id", formID), zap.Error(err))
	}
}

func flightKey(formID uint) string {
	return strconv.FormatUint(uint64(formID), 10)
}
