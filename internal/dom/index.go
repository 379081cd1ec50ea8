// Package dom indexes a component tree into a name-keyed lookup table.
// Indexing walks each branch of the root concurrently and exposes a
// non-blocking Load alongside a blocking CompleteLoad.
package dom

import (
	"slices"
	"sort"
	"strings"
	"sync"
)

// RootKey is the reserved name the indexed root is always stored under.
const RootKey = "root"

// Node is an element of the tree being indexed.
// Implementations are supplied by the UI toolkit.
type Node interface {
	// Name returns the node's lookup name. Blank names are not indexed.
	Name() string
	// Children enumerates direct children. An error makes the node a leaf.
	Children() ([]Node, error)
	// IsContainer reports whether Children should be consulted at all.
	IsContainer() bool
}

// bucket is an append-only list of nodes sharing one name.
type bucket struct {
	mu    sync.RWMutex
	nodes []Node
}

func (b *bucket) add(n Node) {
	b.mu.Lock()
	b.nodes = append(b.nodes, n)
	b.mu.Unlock()
}

func (b *bucket) snapshot() []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.nodes)
}

// Index maps names to the nodes discovered under them.
// It is safe for concurrent inserts from many goroutines and concurrent
// reads; readers always receive a copy of a bucket.
type Index struct {
	buckets sync.Map // string -> *bucket
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add appends n to the bucket for name. Blank names are ignored.
func (ix *Index) Add(name string, n Node) bool {
	if strings.TrimSpace(name) == "" || n == nil {
		return false
	}
	b, ok := ix.buckets.Load(name)
	if !ok {
		b, _ = ix.buckets.LoadOrStore(name, &bucket{})
	}
	b.(*bucket).add(n)
	return true
}

// Get returns the nodes stored under name, or an empty slice.
func (ix *Index) Get(name string) []Node {
	b, ok := ix.buckets.Load(name)
	if !ok {
		return []Node{}
	}
	return b.(*bucket).snapshot()
}

// Names returns every indexed name in sorted order.
func (ix *Index) Names() []string {
	var names []string
	ix.buckets.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Len returns the total number of indexed entries across all buckets.
func (ix *Index) Len() int {
	total := 0
	ix.buckets.Range(func(_, v any) bool {
		b := v.(*bucket)
		b.mu.RLock()
		total += len(b.nodes)
		b.mu.RUnlock()
		return true
	})
	return total
}

// Snapshot copies the whole index into a plain map.
func (ix *Index) Snapshot() map[string][]Node {
	out := make(map[string][]Node)
	ix.buckets.Range(func(k, v any) bool {
		out[k.(string)] = v.(*bucket).snapshot()
		return true
	})
	return out
}
