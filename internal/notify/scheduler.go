package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"weak"

	"github.com/jmylchreest/windex/internal/weakref"
)

// ErrSchedulerStopped is returned when registering with a scheduler that is
// shutting down or stopped.
var ErrSchedulerStopped = errors.New("notification scheduler stopped")

// Default tuning values.
const (
	DefaultGap       = 10
	DefaultDebounce  = 200 * time.Millisecond
	DefaultDrainPoll = 10 * time.Millisecond
)

// Config tunes a Scheduler.
type Config struct {
	Gap       int
	Debounce  time.Duration
	DrainPoll time.Duration
}

// DefaultConfig returns the default scheduler tuning.
func DefaultConfig() Config {
	return Config{
		Gap:       DefaultGap,
		Debounce:  DefaultDebounce,
		DrainPoll: DefaultDrainPoll,
	}
}

func (c Config) normalized() Config {
	if c.Gap < 0 {
		c.Gap = 0
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.DrainPoll <= 0 {
		c.DrainPoll = DefaultDrainPoll
	}
	return c
}

// Dispatcher runs fn on the thread that owns the windows. The default runs
// fn inline on the scheduler goroutine.
type Dispatcher func(fn func())

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	dispatch Dispatcher
}

// WithDispatcher routes layout passes and auto-dismissals through d.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) {
		if d != nil {
			o.dispatch = d
		}
	}
}

// Scheduler lays out registered notifications after a quiet period.
// T is the window struct and P its pointer type.
type Scheduler[T any, P interface {
	*T
	Notification
}] struct {
	entries  *weakref.Collection[T]
	logger   *slog.Logger
	dispatch Dispatcher

	mu     sync.Mutex
	config Config
	timers map[*time.Timer]struct{}

	kickCh   chan struct{}
	expireCh chan weak.Pointer[T]
	stopCh   chan struct{}
	doneCh   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	draining  atomic.Bool
	stopped   atomic.Bool

	layouts atomic.Int64
}

// NewScheduler creates a scheduler. Call Start to begin processing.
func NewScheduler[T any, P interface {
	*T
	Notification
}](cfg Config, logger *slog.Logger, opts ...Option) *Scheduler[T, P] {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{dispatch: func(fn func()) { fn() }}
	for _, opt := range opts {
		opt(&o)
	}

	return &Scheduler[T, P]{
		entries:  weakref.New[T](),
		logger:   logger,
		dispatch: o.dispatch,
		config:   cfg.normalized(),
		timers:   make(map[*time.Timer]struct{}),
		kickCh:   make(chan struct{}, 1),
		expireCh: make(chan weak.Pointer[T], 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the scheduler goroutine. Calling it again is a no-op.
func (s *Scheduler[T, P]) Start() error {
	if s.stopped.Load() {
		return ErrSchedulerStopped
	}
	s.startOnce.Do(func() {
		s.started.Store(true)
		go s.run()
		s.logger.Debug("notification scheduler started")
	})
	return nil
}

// Stop halts the scheduler immediately. A pending layout is dropped and
// pending auto-dismissals are cancelled. Registered windows are left as they
// are.
func (s *Scheduler[T, P]) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.stopCh)

		s.mu.Lock()
		for t := range s.timers {
			t.Stop()
		}
		clear(s.timers)
		s.mu.Unlock()

		if s.started.Load() {
			<-s.doneCh
		}
		s.logger.Debug("notification scheduler stopped", "layouts", s.layouts.Load())
	})
}

// Shutdown stops accepting new notifications. Once every registered window
// has gone, it stops the scheduler and calls onComplete (if not nil) from a
// background goroutine.
func (s *Scheduler[T, P]) Shutdown(onComplete func()) {
	s.draining.Store(true)
	poll := s.Config().DrainPoll

	go func() {
		s.waitDrained(poll)
		s.Stop()
		if onComplete != nil {
			onComplete()
		}
	}()
}

// Draining reports whether Shutdown has been called.
func (s *Scheduler[T, P]) Draining() bool {
	return s.draining.Load()
}

// waitDrained polls until no live notification is registered or the
// scheduler is stopped.
func (s *Scheduler[T, P]) waitDrained(poll time.Duration) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for !s.entries.IsEmpty() {
		select {
		case <-ticker.C:
		case <-s.stopCh:
			return
		}
	}
}

// StartNotification shows n, registers it and schedules a re-layout. When
// d is positive, n is disposed and deregistered after d.
func (s *Scheduler[T, P]) StartNotification(n P, d time.Duration) error {
	if n == nil {
		return errors.New("notification cannot be nil")
	}
	if s.draining.Load() || s.stopped.Load() {
		return ErrSchedulerStopped
	}
	if err := n.Init(); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}

	s.Add(n)
	if d > 0 {
		s.expireAfter(n, d)
	}
	return nil
}

// Add registers n without showing it and schedules a re-layout.
func (s *Scheduler[T, P]) Add(n P) {
	if s.entries.PushBack((*T)(n)) {
		s.RequestLayout()
	}
}

// Remove deregisters n and schedules a re-layout.
func (s *Scheduler[T, P]) Remove(n P) bool {
	removed := s.entries.Remove((*T)(n))
	s.RequestLayout()
	return removed
}

// Contains reports whether n is registered.
func (s *Scheduler[T, P]) Contains(n P) bool {
	return s.entries.Contains((*T)(n))
}

// Notifications returns the live registered windows in registration order.
func (s *Scheduler[T, P]) Notifications() []P {
	live := s.entries.Snapshot()
	out := make([]P, len(live))
	for i, v := range live {
		out[i] = P(v)
	}
	return out
}

// Len returns the number of live registered windows.
func (s *Scheduler[T, P]) Len() int {
	return s.entries.Len()
}

// SetGap changes the spacing between stacked notifications.
func (s *Scheduler[T, P]) SetGap(px int) {
	s.mu.Lock()
	s.config.Gap = max(px, 0)
	s.mu.Unlock()
	s.RequestLayout()
}

// Gap returns the current spacing.
func (s *Scheduler[T, P]) Gap() int {
	return s.Config().Gap
}

// SetDebounce changes the quiet period. It applies from the next request.
// Non-positive values leave the current period in place.
func (s *Scheduler[T, P]) SetDebounce(d time.Duration) {
	s.mu.Lock()
	if d > 0 {
		s.config.Debounce = d
	}
	s.mu.Unlock()
	s.RequestLayout()
}

// Config returns the current tuning.
func (s *Scheduler[T, P]) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// UpdateConfig replaces the tuning and schedules a re-layout.
// This is called when the config file is hot-reloaded.
func (s *Scheduler[T, P]) UpdateConfig(cfg Config) {
	s.mu.Lock()
	old := s.config
	s.config = cfg.normalized()
	s.mu.Unlock()

	s.logger.Debug("notification scheduler config updated",
		"old_gap", old.Gap,
		"new_gap", cfg.Gap,
		"debounce", cfg.Debounce,
	)
	s.RequestLayout()
}

// RequestLayout (re)arms the debounce timer. Requests made before Start are
// kept until the scheduler runs.
func (s *Scheduler[T, P]) RequestLayout() {
	select {
	case s.kickCh <- struct{}{}:
	default:
	}
}

// Layouts returns the number of layout passes run so far.
func (s *Scheduler[T, P]) Layouts() int64 {
	return s.layouts.Load()
}

// run owns the debounce timer. At most one layout is pending at a time.
func (s *Scheduler[T, P]) run() {
	defer close(s.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-s.kickCh:
			d := s.Config().Debounce
			if timer == nil {
				timer = time.NewTimer(d)
			} else {
				timer.Reset(d)
			}
			fire = timer.C
			s.logger.Debug("layout rescheduled", "debounce", d)

		case <-fire:
			fire = nil
			s.dispatch(s.layout)

		case ref := <-s.expireCh:
			if v := ref.Value(); v != nil {
				s.dispatch(func() { s.expire(P(v)) })
			}

		case <-s.stopCh:
			return
		}
	}
}

// layout stacks every displayable, visible notification per anchor in
// registration order.
func (s *Scheduler[T, P]) layout() {
	gap := s.Gap()
	offsets := make(map[Anchor]int, 4)
	placed := 0

	for _, v := range s.entries.Snapshot() {
		n := P(v)
		if s.place(n, offsets, gap) {
			placed++
		}
	}

	s.layouts.Add(1)
	s.logger.Debug("notifications laid out", "placed", placed, "gap", gap)
}

func (s *Scheduler[T, P]) place(n P, offsets map[Anchor]int, gap int) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Warn("notification layout panicked", "panic", rec)
			ok = false
		}
	}()

	if !n.IsDisplayable() || !n.IsVisible() {
		return false
	}
	a := n.Anchor()
	n.PositionAt(offsets[a])
	offsets[a] += n.Height() + gap
	return true
}

func (s *Scheduler[T, P]) expireAfter(n P, d time.Duration) {
	ref := weak.Make((*T)(n))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, t)
		s.mu.Unlock()

		select {
		case s.expireCh <- ref:
		case <-s.stopCh:
		}
	})
	s.timers[t] = struct{}{}
}

func (s *Scheduler[T, P]) expire(n P) {
	if err := n.Dispose(); err != nil {
		s.logger.Warn("failed to dispose expired notification", "error", err)
	}
	s.Remove(n)
}
