package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/track-report/internal/logger"
	"github.com/yourusername/track-report/internal/metrics"
	"github.com/yourusername/track-report/internal/roster"
)

// Layer names where a document was found
type Layer string

const (
	LayerMemory  Layer = "memory"
	LayerDisk    Layer = "disk"
	LayerNetwork Layer = "network"
)

// CachedSource serves athlete documents from memory, then disk, then the upstream source.
// Documents fetched from upstream are written through to both caches.
type CachedSource struct {
	upstream DataSource
	disk     *FileCache
	memory   *cache.Cache
	ttl      time.Duration

	mu        sync.Mutex
	hitCount  uint64
	missCount uint64

	pipeline *logger.PipelineLogger
	audit    *logger.AuditLogger
}

// NewCachedSource creates a layered source. A nil upstream makes the source offline.
func NewCachedSource(upstream DataSource, disk *FileCache, ttl time.Duration, log *logrus.Logger) *CachedSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedSource{
		upstream: upstream,
		disk:     disk,
		memory:   cache.New(ttl, ttl*2),
		ttl:      ttl,
		pipeline: logger.NewPipelineLogger(log),
		audit:    logger.NewAuditLogger(log),
	}
}

// Fetch returns the raw document for an athlete and the layer that served it
func (s *CachedSource) Fetch(ctx context.Context, athlete roster.Athlete) ([]byte, Layer, error) {
	if data, found := s.memory.Get(athlete.ID); found {
		s.recordHit(true)
		metrics.RecordDocumentFetched(string(LayerMemory))
		return data.([]byte), LayerMemory, nil
	}
	s.recordHit(false)

	data, err := s.disk.Read(athlete.CompactName())
	switch {
	case err == nil:
		s.memory.Set(athlete.ID, data, s.ttl)
		metrics.RecordDocumentFetched(string(LayerDisk))
		return data, LayerDisk, nil
	case !errors.Is(err, ErrCacheMiss):
		return nil, "", err
	}

	data, err = s.download(ctx, athlete)
	if err != nil {
		return nil, "", err
	}
	return data, LayerNetwork, nil
}

// Refresh re-downloads a document, replacing both cache layers
func (s *CachedSource) Refresh(ctx context.Context, athlete roster.Athlete) ([]byte, error) {
	s.memory.Delete(athlete.ID)
	return s.download(ctx, athlete)
}

// Invalidate drops an athlete from both cache layers
func (s *CachedSource) Invalidate(athlete roster.Athlete) error {
	s.memory.Delete(athlete.ID)
	return s.disk.Remove(athlete.CompactName())
}

// Offline reports whether the source has no upstream
func (s *CachedSource) Offline() bool {
	return s.upstream == nil
}

// CheckUpstream returns ErrCircuitOpen when the upstream client has tripped its breaker
func (s *CachedSource) CheckUpstream(ctx context.Context) error {
	if s.upstream == nil {
		return nil
	}
	if b, ok := s.upstream.(interface{ CircuitOpen() bool }); ok && b.CircuitOpen() {
		return ErrCircuitOpen
	}
	return nil
}

// CheckDisk verifies the disk cache directory is usable
func (s *CachedSource) CheckDisk(ctx context.Context) error {
	return s.disk.Check()
}

// Stats returns memory cache statistics
func (s *CachedSource) Stats() (hits, misses uint64, ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hits = s.hitCount
	misses = s.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (s *CachedSource) download(ctx context.Context, athlete roster.Athlete) ([]byte, error) {
	if s.upstream == nil {
		return nil, fmt.Errorf("no cached document for %s in offline mode: %w", athlete.Name, ErrCacheMiss)
	}

	start := time.Now()
	data, err := s.upstream.FetchAthlete(ctx, athlete.ID)
	if err != nil {
		metrics.RecordFetchError(ErrorCode(err))
		return nil, err
	}
	if !json.Valid(data) {
		metrics.RecordFetchError(ErrCodeInvalidData)
		return nil, NewDataSourceError(s.upstream.Name(), ErrCodeInvalidData, "response is not JSON", nil)
	}
	s.pipeline.LogDocumentFetched(athlete.ID, s.upstream.Name(), len(data), time.Since(start))
	metrics.RecordDocumentFetched(string(LayerNetwork))

	if err := s.disk.Write(athlete.CompactName(), data); err != nil {
		return nil, err
	}
	s.audit.LogCacheWrite(athlete.ID, s.disk.Path(athlete.CompactName()), len(data))
	s.memory.Set(athlete.ID, data, s.ttl)
	return data, nil
}

func (s *CachedSource) recordHit(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hitCount++
	} else {
		s.missCount++
	}
}
