package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

type snapshotStore interface {
	SaveAll(ctx context.Context, buckets map[string]interface{}) error
	LoadAll(ctx context.Context) (map[string]json.RawMessage, error)
}

type snapshotSource[T any] interface {
	Export() T
	Import(T)
	Version() uint64
}

// SnapshotBucket binds a store to the name it is persisted under.
type SnapshotBucket struct {
	name    string
	export  func() interface{}
	restore func(json.RawMessage) error
	version func() uint64
}

// Bucket adapts any exportable store into a SnapshotBucket.
func Bucket[T any](name string, src snapshotSource[T]) SnapshotBucket {
	return SnapshotBucket{
		name:   name,
		export: func() interface{} { return src.Export() },
		restore: func(raw json.RawMessage) error {
			var value T
			if err := json.Unmarshal(raw, &value); err != nil {
				return err
			}
			src.Import(value)
			return nil
		},
		version: src.Version,
	}
}

// SnapshotService periodically flushes the mutation stores into the
// snapshot store and restores them on start. Buckets whose version has not
// moved since the last flush are skipped.
type SnapshotService struct {
	store     snapshotStore
	buckets   []SnapshotBucket
	scheduler scheduler
	interval  time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	flushed map[string]uint64
	ticker  *jobs.Handle
}

func NewSnapshotService(store snapshotStore, sched scheduler, interval time.Duration, logger *zap.Logger, buckets ...SnapshotBucket) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SnapshotService{
		store:     store,
		buckets:   buckets,
		scheduler: sched,
		interval:  interval,
		logger:    logger,
		flushed:   make(map[string]uint64),
	}
}

// Start restores persisted buckets and arms the periodic flush.
func (s *SnapshotService) Start(ctx context.Context) error {
	if err := s.Restore(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker == nil && s.scheduler != nil {
		s.ticker = s.scheduler.Every(s.interval, func() {
			if err := s.Flush(context.Background()); err != nil {
				s.logger.Error("snapshot flush failed", zap.Error(err))
			}
		})
	}
	return nil
}

// Stop disarms the periodic flush and writes a final snapshot.
func (s *SnapshotService) Stop(ctx context.Context) error {
	s.mu.Lock()
	ticker := s.ticker
	s.ticker = nil
	s.mu.Unlock()
	ticker.Cancel()
	return s.Flush(ctx)
}

// Restore imports every stored bucket. Unknown buckets are ignored.
func (s *SnapshotService) Restore(ctx context.Context) error {
	stored, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	restored := 0
	for _, b := range s.buckets {
		raw, ok := stored[b.name]
		if !ok {
			continue
		}
		if err := b.restore(raw); err != nil {
			return fmt.Errorf("restore %s: %w", b.name, err)
		}
		s.flushed[b.name] = b.version()
		restored++
	}
	s.logger.Info("snapshot restored", zap.Int("buckets", restored))
	return nil
}

// Flush persists the buckets that changed since the previous flush.
func (s *SnapshotService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := make(map[string]interface{})
	versions := make(map[string]uint64)
	for _, b := range s.buckets {
		v := b.version()
		if last, ok := s.flushed[b.name]; ok && last == v {
			continue
		}
		dirty[b.name] = b.export()
		versions[b.name] = v
	}
	if len(dirty) == 0 {
		return nil
	}
	if err := s.store.SaveAll(ctx, dirty); err != nil {
		return err
	}
	for name, v := range versions {
		s.flushed[name] = v
	}
	s.logger.Debug("snapshot flushed", zap.Int("buckets", len(dirty)))
	return nil
}
