package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindgeo/pkg/cache"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/observability"
)

// Runner executes engine operations with caching, logging and hooks.
// Both CLI and API use it to avoid duplicating that plumbing.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// LayoutTTL and RecalcTTL bound cached results. Zero uses the cache
	// package defaults.
	LayoutTTL time.Duration
	RecalcTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		LayoutTTL: cache.LayoutTTL,
		RecalcTTL: cache.RecalcTTL,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Operation tracking
// =============================================================================

// span tracks one operation from start to completion.
type span struct {
	ctx    context.Context
	op     string
	start  time.Time
	stats  Stats
	logger *log.Logger
}

func (r *Runner) begin(ctx context.Context, op string, snap graph.Snapshot, opts *Options) *span {
	r.applyLogger(opts)
	s := &span{
		ctx:    ctx,
		op:     op,
		start:  time.Now(),
		logger: opts.Logger.With("op", op),
		stats: Stats{
			NodeCount: snap.NodeCount(),
			EdgeCount: snap.EdgeCount(),
		},
	}
	observability.Engine().OnOperationStart(ctx, op, s.stats.NodeCount)
	return s
}

// end reports warnings and completion. It returns the final stats.
func (s *span) end(warnings []Warning, err error) Stats {
	s.stats.Duration = time.Since(s.start)
	for _, w := range warnings {
		s.logger.Warn(w.Message, "code", w.Code)
		observability.Engine().OnWarning(s.ctx, s.op, w.Code)
	}
	observability.Engine().OnOperationComplete(s.ctx, s.op, s.stats.Duration, err)
	if err != nil {
		s.logger.Debug("operation failed", "error", err, "duration", s.stats.Duration)
	} else {
		s.logger.Debug("operation complete",
			"nodes", s.stats.NodeCount,
			"edges", s.stats.EdgeCount,
			"cache_hit", s.stats.CacheHit,
			"duration", s.stats.Duration)
	}
	return s.stats
}

// fail ends the span with err and returns it.
func (s *span) fail(err error) error {
	s.end(nil, err)
	return err
}

// checkSnapshot applies strict validation when requested.
func checkSnapshot(snap graph.Snapshot, opts *Options) error {
	if !opts.Strict {
		return nil
	}
	return snap.Validate()
}

// =============================================================================
// Caching
// =============================================================================

// cached loads the value stored under key, or computes and stores it.
// Cache failures are logged and otherwise ignored. A corrupt entry is
// recomputed.
func cached[T any](ctx context.Context, r *Runner, s *span, key string, refresh bool, ttl time.Duration, compute func() (T, error)) (T, bool, error) {
	hooks := observability.Cache()
	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Debug("cache read failed", "key", key, "error", err)
		case hit:
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				hooks.OnCacheHit(ctx, key)
				return v, true, nil
			}
			s.logger.Debug("discarding corrupt cache entry", "key", key)
		}
		hooks.OnCacheMiss(ctx, key)
	}

	v, err := compute()
	if err != nil {
		return v, false, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v, false, errors.Wrap(errors.ErrCodeInternal, err, "encode %s result", s.op)
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.Debug("cache write failed", "key", key, "error", err)
	} else {
		hooks.OnCacheSet(ctx, key, len(data))
	}
	return v, false, nil
}

// snapshotHash hashes snap for cache keys.
func snapshotHash(snap graph.Snapshot) (string, error) {
	h, err := cache.HashJSON(snap)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash snapshot")
	}
	return h, nil
}

func ttlOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
