package window

import (
	"fmt"
	"reflect"

	"github.com/jmylchreest/windex/internal/lifecycle"
)

// PutInClient stores value under key. Unless replace is set, an existing
// value is kept and false is returned.
func (w *Window) PutInClient(key string, value any, replace bool) bool {
	if replace {
		w.client.Store(key, value)
		return true
	}
	_, loaded := w.client.LoadOrStore(key, value)
	return !loaded
}

// GetFromClient returns the value stored under key, or def.
func (w *Window) GetFromClient(key string, def any) any {
	if v, ok := w.client.Load(key); ok && v != nil {
		return v
	}
	return def
}

// RemoveFromClient deletes key.
func (w *Window) RemoveFromClient(key string) {
	w.client.Delete(key)
}

// ClientValue returns the value under key as a T, or def when key is
// absent. A value of another type fails with *InvalidSharedStateError,
// routed through w's funnel as "getFromClient".
func ClientValue[T any](w *Window, key string, def T) (T, error) {
	return lifecycle.Call(w.exec, "getFromClient", func() (T, error) {
		v, ok := w.client.Load(key)
		if !ok || v == nil {
			return def, nil
		}
		typed, ok := v.(T)
		if !ok {
			var zero T
			return zero, &InvalidSharedStateError{
				Key:   key,
				Value: v,
				Want:  reflect.TypeFor[T]().String(),
			}
		}
		return typed, nil
	})
}

// InvalidSharedStateError is returned when a client value has an unexpected type.
type InvalidSharedStateError struct {
	Key   string
	Value any
	Want  string
}

func (e *InvalidSharedStateError) Error() string {
	return fmt.Sprintf("client value %q is %T, not %s", e.Key, e.Value, e.Want)
}
