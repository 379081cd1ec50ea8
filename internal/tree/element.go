// Package tree provides a concrete, in-memory component tree.
// It stands in for toolkit widgets in the CLI and in tests.
package tree

import (
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/windex/internal/dom"
)

// Element kinds. Containers may hold children; leaves never do.
const (
	KindPanel  = "panel"
	KindButton = "button"
	KindLabel  = "label"
	KindField  = "field"
)

// Validation errors.
var (
	ErrEmptyKind     = errors.New("kind cannot be empty")
	ErrLeafChildren  = errors.New("leaf element cannot have children")
	ErrCycleDetected = errors.New("element cannot be its own descendant")
)

// Element is a named node in a component tree.
type Element struct {
	ID   string
	Kind string

	mu          sync.RWMutex
	name        string
	children    []*Element
	childrenErr error
}

// NewElement creates an element with a generated ULID.
func NewElement(kind, name string) *Element {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	idStr := ""
	if err == nil {
		idStr = id.String()
	}
	return &Element{ID: idStr, Kind: kind, name: name}
}

// Panel creates a container element holding children.
func Panel(name string, children ...*Element) *Element {
	e := NewElement(KindPanel, name)
	e.children = children
	return e
}

// Leaf creates a non-container element.
func Leaf(kind, name string) *Element {
	return NewElement(kind, name)
}

// Name implements dom.Node.
func (e *Element) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// SetName renames the element. Takes effect on the next index run.
func (e *Element) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// IsContainer implements dom.Node.
func (e *Element) IsContainer() bool {
	return e.Kind == KindPanel
}

// Children implements dom.Node.
func (e *Element) Children() ([]dom.Node, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.childrenErr != nil {
		return nil, e.childrenErr
	}
	out := make([]dom.Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out, nil
}

// Elements returns the direct children as elements.
func (e *Element) Elements() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.children)
}

// Add appends children to a container.
func (e *Element) Add(children ...*Element) error {
	if !e.IsContainer() {
		return ErrLeafChildren
	}
	for _, c := range children {
		if c == e || c.contains(e) {
			return ErrCycleDetected
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = append(e.children, children...)
	return nil
}

// Remove detaches a direct child. Reports whether it was found.
func (e *Element) Remove(child *Element) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.Index(e.children, child)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	return true
}

// FailChildren makes Children return err, simulating a misbehaving widget.
func (e *Element) FailChildren(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.childrenErr = err
}

// Walk visits e and all descendants depth-first, pre-order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Elements() {
		c.Walk(fn)
	}
}

// Count returns the number of elements in the subtree rooted at e.
func (e *Element) Count() int {
	n := 0
	e.Walk(func(*Element) { n++ })
	return n
}

// Validate checks kinds and leaf constraints across the subtree.
func (e *Element) Validate() error {
	var err error
	e.Walk(func(el *Element) {
		if err != nil {
			return
		}
		if el.Kind == "" {
			err = fmt.Errorf("element %q: %w", el.Name(), ErrEmptyKind)
			return
		}
		if !el.IsContainer() && len(el.Elements()) > 0 {
			err = fmt.Errorf("element %q: %w", el.Name(), ErrLeafChildren)
		}
	})
	return err
}

// String returns a short description for logs and CLI output.
func (e *Element) String() string {
	name := e.Name()
	if name == "" {
		name = "<unnamed>"
	}
	return e.Kind + ":" + name
}

func (e *Element) contains(target *Element) bool {
	found := false
	e.Walk(func(el *Element) {
		if el == target {
			found = true
		}
	})
	return found
}
