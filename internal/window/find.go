package window

import (
	"context"

	"github.com/jmylchreest/windex/internal/dom"
	"github.com/jmylchreest/windex/internal/lifecycle"
)

// FindAllByID returns every component named name. It fails with
// dom.ErrNotIndexed before Init, and otherwise waits for the running index
// pass to finish. An unknown name yields an empty slice.
func (w *Window) FindAllByID(ctx context.Context, name string) ([]dom.Node, error) {
	return lifecycle.Call(w.exec, "findAllById", func() ([]dom.Node, error) {
		return w.findAll(ctx, name)
	})
}

// FindByID returns the first component named name, failing with
// *dom.ElementNotFoundError when there is none.
func (w *Window) FindByID(ctx context.Context, name string) (dom.Node, error) {
	return lifecycle.Call(w.exec, "findById", func() (dom.Node, error) {
		nodes, err := w.findAll(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			return nil, &dom.ElementNotFoundError{Name: name}
		}
		return nodes[0], nil
	})
}

func (w *Window) findAll(ctx context.Context, name string) ([]dom.Node, error) {
	if !w.indexer.IsInitialized() {
		return nil, dom.ErrNotIndexed
	}
	if !w.indexer.IsLoad() {
		if err := w.indexer.CompleteLoad(ctx); err != nil {
			return nil, err
		}
	}
	return w.indexer.Index().Get(name), nil
}

// ReloadDomElements discards the component index and rebuilds it.
func (w *Window) ReloadDomElements() error {
	return w.indexer.Reload()
}

// IndexStats returns counters for the current index pass.
func (w *Window) IndexStats() dom.Stats {
	return w.indexer.Stats()
}

// Index returns the current component index.
func (w *Window) Index() *dom.Index {
	return w.indexer.Index()
}
