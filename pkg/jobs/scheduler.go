package jobs

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Handle identifies a pending scheduled callback.
type Handle struct {
	id    uint64
	owner *Scheduler
	timer *time.Timer
	stop  chan struct{}
	once  sync.Once
}

// Cancel prevents the callback from running. It reports whether the callback
// was still pending.
func (h *Handle) Cancel() bool {
	if h == nil {
		return false
	}
	cancelled := false
	h.once.Do(func() {
		if h.timer != nil {
			cancelled = h.timer.Stop()
		} else {
			cancelled = true
		}
		close(h.stop)
		h.owner.forget(h.id)
	})
	return cancelled
}

// Scheduler owns deferred and recurring callbacks so they can all be
// cancelled on shutdown.
type Scheduler struct {
	logger *zap.Logger

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*Handle
	stopped bool
	wg      sync.WaitGroup
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger, pending: make(map[uint64]*Handle)}
}

// After runs fn once after d unless the returned handle is cancelled first.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	h, _ := s.register(func(h *Handle) {
		h.timer = time.AfterFunc(d, func() {
			fired := false
			h.once.Do(func() {
				fired = true
				close(h.stop)
				s.forget(h.id)
			})
			if fired {
				s.run(fn)
			}
		})
	})
	return h
}

// Every runs fn each interval until the handle is cancelled.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Handle {
	h, ok := s.register(nil)
	if !ok {
		return h
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				select {
				case <-h.stop:
					return
				default:
				}
				s.run(fn)
			}
		}
	}()
	return h
}

// Pending returns the number of callbacks that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending callback and waits for recurring loops to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	handles := make([]*Handle, 0, len(s.pending))
	for _, h := range s.pending {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
	s.wg.Wait()
}

// register publishes a new handle. start runs under the lock so the handle is
// fully built before Stop can observe it.
func (s *Scheduler) register(start func(h *Handle)) (*Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	h := &Handle{id: s.nextID, owner: s, stop: make(chan struct{})}
	if s.stopped {
		h.once.Do(func() { close(h.stop) })
		return h, false
	}
	if start != nil {
		start(h)
	}
	s.pending[h.id] = h
	return h, true
}

func (s *Scheduler) forget(id uint64) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

func (s *Scheduler) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled callback panicked", zap.Any("panic", r))
		}
	}()
	fn()
}
