package dom

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is the lifecycle state of an Indexer.
type State int

const (
	// StateNotStarted means Load has never been called.
	StateNotStarted State = iota
	// StateInProgress means an indexing run is walking the tree.
	StateInProgress
	// StateComplete means every branch of the latest run has finished.
	StateComplete
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateInProgress:
		return "in-progress"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// run is one indexing generation. Each run owns its own Index, so stragglers
// from a superseded run can never write into the current one.
type run struct {
	gen     atomic.Uint64
	index   *Index
	done    chan struct{}
	nodes   atomic.Int64
	started time.Time
	elapsed atomic.Int64 // nanoseconds, set when done closes
}

func (r *run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Stats describes the current indexing run.
type Stats struct {
	State      State
	Generation uint64
	Nodes      int64
	Names      int
	Elapsed    time.Duration
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// WithMaxBranches bounds the number of branches walked at once.
// Zero or less means one goroutine per branch.
func WithMaxBranches(n int) Option {
	return func(ix *Indexer) {
		ix.maxBranches = n
	}
}

// Indexer builds and refreshes an Index for one root node.
type Indexer struct {
	root        Node
	logger      *slog.Logger
	maxBranches int

	ctx    context.Context
	cancel context.CancelFunc

	current atomic.Pointer[run]
	gen     atomic.Uint64
}

// NewIndexer creates an indexer for root. Cancelling ctx, or calling Close,
// stops in-flight branch walks at the next node.
func NewIndexer(ctx context.Context, root Node, opts ...Option) *Indexer {
	ix := &Indexer{
		root:   root,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.ctx, ix.cancel = context.WithCancel(ctx)
	return ix
}

// Load starts indexing if it has never been started and returns immediately.
// Concurrent callers race on a single compare-and-swap; exactly one starts
// a run. Later calls are no-ops until Reload.
func (ix *Indexer) Load() error {
	if ix.ctx.Err() != nil {
		return ErrIndexerClosed
	}
	if ix.current.Load() != nil {
		return nil
	}

	r := ix.newRun()
	if !ix.current.CompareAndSwap(nil, r) {
		return nil
	}
	r.gen.Store(ix.gen.Add(1))
	go ix.execute(r)
	return nil
}

// Reload discards the current index and starts a fresh run. In-flight
// branches of the previous run are not cancelled; they finish writing into
// the discarded index.
func (ix *Indexer) Reload() error {
	if ix.ctx.Err() != nil {
		return ErrIndexerClosed
	}

	r := ix.newRun()
	r.gen.Store(ix.gen.Add(1))
	ix.current.Store(r)
	go ix.execute(r)
	return nil
}

// CompleteLoad blocks until the latest run has finished. If a Reload lands
// while waiting, it keeps waiting for the newer run.
func (ix *Indexer) CompleteLoad(ctx context.Context) error {
	for {
		r := ix.current.Load()
		if r == nil {
			return ErrNotIndexed
		}
		select {
		case <-r.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		if ix.current.Load() == r {
			return nil
		}
	}
}

// IsLoad reports whether the latest run has completed.
func (ix *Indexer) IsLoad() bool {
	r := ix.current.Load()
	return r != nil && r.finished()
}

// IsInitialized reports whether Load has been called at least once.
func (ix *Indexer) IsInitialized() bool {
	return ix.current.Load() != nil
}

// State returns the current state.
func (ix *Indexer) State() State {
	r := ix.current.Load()
	switch {
	case r == nil:
		return StateNotStarted
	case r.finished():
		return StateComplete
	default:
		return StateInProgress
	}
}

// Index returns the index of the latest run. Before Load it is empty.
func (ix *Indexer) Index() *Index {
	if r := ix.current.Load(); r != nil {
		return r.index
	}
	return NewIndex()
}

// Stats returns counters for the latest run.
func (ix *Indexer) Stats() Stats {
	r := ix.current.Load()
	if r == nil {
		return Stats{State: StateNotStarted}
	}
	st := Stats{
		State:      ix.State(),
		Generation: r.gen.Load(),
		Nodes:      r.nodes.Load(),
		Names:      len(r.index.Names()),
	}
	if st.State == StateComplete {
		st.Elapsed = time.Duration(r.elapsed.Load())
	} else {
		st.Elapsed = time.Since(r.started)
	}
	return st
}

// Close cancels branch walks. Subsequent Load and Reload calls fail.
func (ix *Indexer) Close() {
	ix.cancel()
}

// newRun prepares a generation with the root already registered, so the
// root is visible as soon as the run is published.
func (ix *Indexer) newRun() *run {
	r := &run{
		index:   NewIndex(),
		done:    make(chan struct{}),
		started: time.Now(),
	}
	if ix.root != nil {
		r.index.Add(RootKey, ix.root)
		r.nodes.Add(1)
	}
	return r
}

// execute walks every direct child of the root in its own goroutine and
// closes r.done once all of them have returned.
func (ix *Indexer) execute(r *run) {
	defer func() {
		r.elapsed.Store(int64(time.Since(r.started)))
		close(r.done)
	}()

	if ix.root == nil {
		return
	}

	ix.logger.Debug("indexing started", "generation", r.gen.Load())

	children, err := ix.childrenOf(ix.root)
	if err != nil {
		ix.logger.Debug("root children unavailable, indexing root only",
			"generation", r.gen.Load(),
			"error", err,
		)
		return
	}

	var g errgroup.Group
	if ix.maxBranches > 0 {
		g.SetLimit(ix.maxBranches)
	}
	for _, child := range children {
		g.Go(func() error {
			ix.walk(r, child)
			return nil
		})
	}
	_ = g.Wait()

	ix.logger.Debug("indexing finished",
		"generation", r.gen.Load(),
		"nodes", r.nodes.Load(),
		"elapsed", time.Since(r.started),
	)
}

// walk visits n and its descendants depth-first, pre-order.
func (ix *Indexer) walk(r *run, n Node) {
	if n == nil || ix.ctx.Err() != nil {
		return
	}

	if name, ok := ix.nameOf(n); ok && strings.TrimSpace(name) != "" {
		r.index.Add(name, n)
	}
	r.nodes.Add(1)

	children, err := ix.childrenOf(n)
	if err != nil {
		ix.logger.Debug("treating node as leaf", "generation", r.gen.Load(), "error", err)
		return
	}
	for _, child := range children {
		ix.walk(r, child)
	}
}

// nameOf reads a node's name, tolerating a panicking implementation.
func (ix *Indexer) nameOf(n Node) (name string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ix.logger.Debug("node name panicked", "panic", rec)
			ok = false
		}
	}()
	return n.Name(), true
}

// childrenOf enumerates a container's children, converting a panic from the
// toolkit into an error.
func (ix *Indexer) childrenOf(n Node) (children []Node, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			children, err = nil, fmt.Errorf("children enumeration panicked: %v", rec)
		}
	}()
	if !n.IsContainer() {
		return nil, nil
	}
	return n.Children()
}
