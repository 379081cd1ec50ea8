package weakref

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	pad  [8]int64
}

func newItem(name string) *item {
	return &item{name: name}
}

// pushTransient pushes an item that nothing else references.
//
//go:noinline
func pushTransient(c *Collection[item], name string) {
	c.PushFront(newItem(name))
}

func names(items []*item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func TestCollection_PushFrontOrder(t *testing.T) {
	c := New[item]()
	a, b, cc := newItem("a"), newItem("b"), newItem("c")

	c.PushFront(a)
	c.PushFront(b)
	c.PushFront(cc)

	assert.Equal(t, []string{"c", "b", "a"}, names(c.Snapshot()))
	assert.Equal(t, 3, c.Len())
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
	runtime.KeepAlive(cc)
}

func TestCollection_NilIgnored(t *testing.T) {
	c := New[item]()
	assert.False(t, c.PushFront(nil))
	assert.False(t, c.PushBack(nil))
	assert.False(t, c.Remove(nil))
	assert.True(t, c.IsEmpty())
}

func TestCollection_DeadEntriesVanish(t *testing.T) {
	c := New[item]()
	a := newItem("a")
	c.PushFront(a)
	pushTransient(c, "b")
	cc := newItem("c")
	c.PushFront(cc)

	runtime.GC()
	runtime.GC()

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "a", c.PeekAt(1).name)
	assert.Equal(t, "c", c.PopFront().name)
	assert.Equal(t, "a", c.PopFront().name)
	assert.Nil(t, c.PopFront())
	runtime.KeepAlive(a)
	runtime.KeepAlive(cc)
}

func TestCollection_RemoveFirstOccurrence(t *testing.T) {
	c := New[item]()
	a, b := newItem("a"), newItem("b")
	c.PushBack(a)
	c.PushBack(b)
	c.PushBack(a)

	assert.True(t, c.Remove(a))
	assert.Equal(t, []string{"b", "a"}, names(c.Snapshot()))
	assert.True(t, c.Remove(a))
	assert.False(t, c.Remove(a))
	assert.Equal(t, []string{"b"}, names(c.Snapshot()))
	runtime.KeepAlive(b)
}

func TestCollection_InsertAt(t *testing.T) {
	c := New[item]()
	a, b, x := newItem("a"), newItem("b"), newItem("x")
	c.PushFront(a)
	c.PushFront(b)

	c.InsertAt(1, x)
	assert.Equal(t, []string{"b", "x", "a"}, names(c.Snapshot()))

	y := newItem("y")
	c.InsertAt(99, y)
	assert.Equal(t, []string{"b", "x", "a", "y"}, names(c.Snapshot()))
	runtime.KeepAlive([]*item{a, b, x, y})
}

func TestCollection_PopUntil(t *testing.T) {
	c := New[item]()
	a, b, cc := newItem("a"), newItem("b"), newItem("c")
	c.PushFront(a)
	c.PushFront(b)
	c.PushFront(cc)

	t.Run("no match rolls back", func(t *testing.T) {
		got := c.PopUntil(func(it *item) bool { return it.name == "zzz" }, nil)
		assert.Nil(t, got)
		assert.Equal(t, []string{"c", "b", "a"}, names(c.Snapshot()))
	})

	t.Run("match is last", func(t *testing.T) {
		got := c.PopUntil(func(it *item) bool { return it.name == "b" }, nil)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"c", "b"}, names(got))
		assert.Equal(t, []string{"a"}, names(c.Snapshot()))
	})
	runtime.KeepAlive([]*item{a, b, cc})
}

func TestCollection_PopUntilSkipsRejected(t *testing.T) {
	c := New[item]()
	a, b, cc := newItem("a"), newItem("b"), newItem("c")
	c.PushFront(a)
	c.PushFront(b)
	c.PushFront(cc)

	got := c.PopUntil(
		func(it *item) bool { return it.name == "a" },
		func(it *item) bool { return it.name != "b" },
	)
	assert.Equal(t, []string{"c", "a"}, names(got))
	assert.True(t, c.IsEmpty())
	runtime.KeepAlive([]*item{a, b, cc})
}

func TestCollection_PopUntilDropsRejectedWithoutMatch(t *testing.T) {
	c := New[item]()
	a, b, cc := newItem("a"), newItem("b"), newItem("c")
	c.PushFront(a)
	c.PushFront(b)
	c.PushFront(cc)

	got := c.PopUntil(
		func(it *item) bool { return it.name == "zzz" },
		func(it *item) bool { return it.name != "b" },
	)
	assert.Nil(t, got)
	assert.Equal(t, []string{"c", "a"}, names(c.Snapshot()))
	runtime.KeepAlive([]*item{a, b, cc})
}

func TestCollection_PopUntilPredicateReentry(t *testing.T) {
	c := New[item]()
	a, b := newItem("a"), newItem("b")
	c.PushFront(a)
	c.PushFront(b)

	done := make(chan []*item, 1)
	go func() {
		done <- c.PopUntil(
			func(it *item) bool { return c.Len() > 0 && it.name == "a" },
			func(it *item) bool { return c.Contains(it) },
		)
	}()

	select {
	case got := <-done:
		assert.Equal(t, []string{"b", "a"}, names(got))
		assert.True(t, c.IsEmpty())
	case <-time.After(time.Second):
		t.Fatal("PopUntil blocked while its predicate read the collection")
	}
	runtime.KeepAlive([]*item{a, b})
}

func TestCollection_PopUntilRetriesAfterChange(t *testing.T) {
	c := New[item]()
	a, b, x := newItem("a"), newItem("b"), newItem("x")
	c.PushFront(a)
	c.PushFront(b)

	pushed := false
	got := c.PopUntil(func(it *item) bool {
		if !pushed {
			pushed = true
			c.PushFront(x)
		}
		return it.name == "a"
	}, nil)

	assert.Equal(t, []string{"x", "b", "a"}, names(got))
	assert.True(t, c.IsEmpty())
	runtime.KeepAlive([]*item{a, b, x})
}

func TestCollection_ConcurrentPushPop(t *testing.T) {
	c := New[item]()
	keep := make([]*item, 200)
	for i := range keep {
		keep[i] = newItem("n")
	}

	var wg sync.WaitGroup
	for i := range keep {
		wg.Add(1)
		go func(it *item) {
			defer wg.Done()
			c.PushFront(it)
		}(keep[i])
	}
	wg.Wait()
	assert.Equal(t, len(keep), c.Len())

	var popped sync.Map
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				it := c.PopFront()
				if it == nil {
					return
				}
				_, dup := popped.LoadOrStore(it, true)
				assert.False(t, dup)
			}
		}()
	}
	wg.Wait()
	assert.True(t, c.IsEmpty())
	runtime.KeepAlive(keep)
}
