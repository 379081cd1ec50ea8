package dom

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNode is a minimal mutable Node.
type testNode struct {
	mu       sync.Mutex
	name     string
	kids     []Node
	err      error
	panics   bool
	gate     chan struct{} // when set, Children blocks until closed
	visits   atomic.Int32
	leafOnly bool
}

func node(name string, kids ...Node) *testNode {
	return &testNode{name: name, kids: kids}
}

func leaf(name string) *testNode {
	return &testNode{name: name, leafOnly: true}
}

func (n *testNode) Name() string { return n.name }

func (n *testNode) IsContainer() bool { return !n.leafOnly }

func (n *testNode) Children() ([]Node, error) {
	n.visits.Add(1)
	if n.gate != nil {
		<-n.gate
	}
	if n.panics {
		panic("widget exploded")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	return append([]Node(nil), n.kids...), nil
}

func (n *testNode) setKids(kids ...Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kids = kids
}

func loadAndWait(t *testing.T, ix *Indexer) {
	t.Helper()
	require.NoError(t, ix.Load())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ix.CompleteLoad(ctx))
}

func TestIndexer_EndToEnd(t *testing.T) {
	a := leaf("x")
	b := leaf("x")
	d := leaf("y")
	c := node("", d)
	r := node("main", a, b, c)

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	loadAndWait(t, ix)

	idx := ix.Index()
	assert.ElementsMatch(t, []Node{a, b}, idx.Get("x"))
	assert.Equal(t, []Node{d}, idx.Get("y"))
	assert.Empty(t, idx.Get("z"))
	assert.Equal(t, []Node{r}, idx.Get(RootKey))
	assert.True(t, ix.IsLoad())
	assert.Equal(t, StateComplete, ix.State())
}

func TestIndexer_RootVisibleImmediately(t *testing.T) {
	gate := make(chan struct{})
	r := node("main", leaf("a"))
	r.gate = gate

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()

	assert.False(t, ix.IsInitialized())
	assert.Equal(t, StateNotStarted, ix.State())
	require.NoError(t, ix.Load())

	assert.True(t, ix.IsInitialized())
	assert.Equal(t, []Node{r}, ix.Index().Get(RootKey))
	assert.False(t, ix.IsLoad())
	assert.Equal(t, StateInProgress, ix.State())

	close(gate)
	require.NoError(t, ix.CompleteLoad(context.Background()))
	assert.True(t, ix.IsLoad())
}

func TestIndexer_ConcurrentLoadRunsOnce(t *testing.T) {
	r := node("main", leaf("a"), leaf("b"))
	ix := NewIndexer(context.Background(), r)
	defer ix.Close()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ix.Load())
		}()
	}
	wg.Wait()
	require.NoError(t, ix.CompleteLoad(context.Background()))

	assert.Equal(t, int32(1), r.visits.Load())
	assert.Equal(t, uint64(1), ix.Stats().Generation)
	assert.Len(t, ix.Index().Get("a"), 1)
}

func TestIndexer_Completeness(t *testing.T) {
	// Wide and deep tree: 8 branches, each a chain of 50 named nodes.
	var branches []Node
	var all []Node
	for b := range 8 {
		var chain Node = leaf(fmt.Sprintf("b%d-n49", b))
		all = append(all, chain)
		for i := 48; i >= 0; i-- {
			n := node(fmt.Sprintf("b%d-n%d", b, i), chain)
			all = append(all, n)
			chain = n
		}
		branches = append(branches, chain)
	}
	r := node("main", branches...)

	ix := NewIndexer(context.Background(), r, WithMaxBranches(3))
	defer ix.Close()
	loadAndWait(t, ix)

	for _, n := range all {
		got := ix.Index().Get(n.Name())
		require.Len(t, got, 1, n.Name())
		assert.Same(t, n, got[0])
	}
	assert.Equal(t, int64(len(all)+1), ix.Stats().Nodes)
}

func TestIndexer_DepthFirstWithinBranch(t *testing.T) {
	first := node("dup", leaf("dup"))
	second := leaf("dup")
	branch := node("", first, second)
	r := node("main", branch)

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	loadAndWait(t, ix)

	got := ix.Index().Get("dup")
	require.Len(t, got, 3)
	assert.Same(t, first, got[0])
	assert.Same(t, second, got[2])
}

func TestIndexer_BadSubtreeIsLeaf(t *testing.T) {
	broken := node("broken", leaf("hidden"))
	broken.err = errors.New("cannot enumerate")
	panicky := node("panicky", leaf("also-hidden"))
	panicky.panics = true
	r := node("main", broken, panicky, leaf("fine"))

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	loadAndWait(t, ix)

	idx := ix.Index()
	assert.Len(t, idx.Get("broken"), 1)
	assert.Len(t, idx.Get("panicky"), 1)
	assert.Len(t, idx.Get("fine"), 1)
	assert.Empty(t, idx.Get("hidden"))
	assert.Empty(t, idx.Get("also-hidden"))
}

func TestIndexer_BlankNamesSkipped(t *testing.T) {
	r := node("main", leaf(""), leaf("   "), leaf("ok"))
	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	loadAndWait(t, ix)

	assert.ElementsMatch(t, []string{RootKey, "ok"}, ix.Index().Names())
	assert.Equal(t, 2, ix.Index().Len())
}

func TestIndexer_ReloadClearsStaleEntries(t *testing.T) {
	old := leaf("old")
	keep := leaf("keep")
	r := node("main", old, keep)

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	loadAndWait(t, ix)
	require.Len(t, ix.Index().Get("old"), 1)

	fresh := leaf("fresh")
	r.setKids(keep, fresh)
	require.NoError(t, ix.Reload())
	require.NoError(t, ix.CompleteLoad(context.Background()))

	assert.Empty(t, ix.Index().Get("old"))
	assert.Equal(t, []Node{keep}, ix.Index().Get("keep"))
	assert.Equal(t, []Node{fresh}, ix.Index().Get("fresh"))
	assert.Equal(t, []Node{r}, ix.Index().Get(RootKey))
	assert.Equal(t, uint64(2), ix.Stats().Generation)
}

func TestIndexer_ReloadDuringRun(t *testing.T) {
	gate := make(chan struct{})
	slow := node("slow", leaf("straggler"))
	slow.gate = gate
	r := node("main", slow)

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	require.NoError(t, ix.Load())
	stale := ix.Index()
	require.Eventually(t, func() bool {
		return slow.visits.Load() == 1
	}, 2*time.Second, time.Millisecond)

	r.setKids(leaf("new"))
	require.NoError(t, ix.Reload())
	require.NoError(t, ix.CompleteLoad(context.Background()))

	// The first run is still blocked; its writes land in the stale index.
	close(gate)
	assert.Eventually(t, func() bool {
		return len(stale.Get("straggler")) == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.Empty(t, ix.Index().Get("straggler"))
	assert.Len(t, ix.Index().Get("new"), 1)
}

func TestIndexer_CompleteLoadBeforeLoad(t *testing.T) {
	ix := NewIndexer(context.Background(), node("main"))
	defer ix.Close()
	assert.ErrorIs(t, ix.CompleteLoad(context.Background()), ErrNotIndexed)
}

func TestIndexer_CompleteLoadHonoursContext(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	r := node("main", leaf("a"))
	r.gate = gate

	ix := NewIndexer(context.Background(), r)
	defer ix.Close()
	require.NoError(t, ix.Load())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, ix.CompleteLoad(ctx), context.DeadlineExceeded)
}

func TestIndexer_ClosedRejectsLoad(t *testing.T) {
	ix := NewIndexer(context.Background(), node("main"))
	ix.Close()
	assert.ErrorIs(t, ix.Load(), ErrIndexerClosed)
	assert.ErrorIs(t, ix.Reload(), ErrIndexerClosed)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not-started", StateNotStarted.String())
	assert.Equal(t, "in-progress", StateInProgress.String())
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestElementNotFoundError(t *testing.T) {
	var err error = &ElementNotFoundError{Name: "z"}
	assert.ErrorIs(t, err, ErrElementNotFound)
	assert.Contains(t, err.Error(), "'z'")
}
