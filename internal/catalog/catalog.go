// Package catalog builds the aggregated candidate snapshot that search and
// recommendations read from. A snapshot is the union of every configured
// source, normalized and enriched, optionally cached in Redis.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventscout/eventscout/internal/cache"
	"github.com/eventscout/eventscout/internal/event"
	"github.com/eventscout/eventscout/internal/source"
)

// Service assembles event snapshots from the configured sources.
type Service struct {
	sources []source.Source
	cache   *cache.SnapshotCache
	metrics *Metrics
	logger  *slog.Logger
}

// NewService creates a catalog service. cache may be nil, in which case every
// snapshot request rebuilds from the sources. metrics may be nil.
func NewService(sources []source.Source, snapCache *cache.SnapshotCache, metrics *Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sources: sources,
		cache:   snapCache,
		metrics: metrics,
		logger:  logger,
	}
}

// Snapshot returns the current candidate list, serving from cache when
// possible. A corrupt cache entry is treated as a miss.
func (s *Service) Snapshot(ctx context.Context) ([]event.Record, error) {
	if s.cache != nil {
		records, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "snapshot cache read failed, rebuilding", "error", err)
		}
		if ok {
			if s.metrics != nil {
				s.metrics.IncCacheHits()
			}
			return records, nil
		}
		if s.metrics != nil {
			s.metrics.IncCacheMisses()
		}
	}

	return s.Rebuild(ctx)
}

// Rebuild aggregates all sources into a fresh snapshot and stores it in the
// cache. Individual source failures are tolerated; the snapshot is built from
// whatever loaded.
func (s *Service) Rebuild(ctx context.Context) ([]event.Record, error) {
	start := time.Now()

	raw, failed := source.LoadAll(ctx, s.sources)
	if failed == len(s.sources) && len(s.sources) > 0 {
		return nil, fmt.Errorf("all %d sources failed to load", failed)
	}

	records := event.Aggregate(raw)
	for i := range records {
		event.ApplyEnrichment(&records[i])
	}

	if s.metrics != nil {
		s.metrics.IncSnapshotBuilds()
		s.metrics.AddSourceFailures(failed)
		s.metrics.SetRecordsAggregated(len(records))
		s.metrics.ObserveBuildDuration(time.Since(start).Seconds())
	}

	s.logger.InfoContext(ctx, "snapshot rebuilt",
		"records", len(records),
		"sources", len(s.sources),
		"failed_sources", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, records); err != nil {
			s.logger.WarnContext(ctx, "snapshot cache write failed", "error", err)
		}
	}

	return records, nil
}

// Invalidate drops the cached snapshot. Called after a submission so the next
// read picks up the new event.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "snapshot cache invalidation failed", "error", err)
	}
}
