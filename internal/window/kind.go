package window

import (
	"fmt"
	"strings"
)

// Kind selects which capabilities a Window carries.
type Kind int

const (
	// KindActivity is a top-level window that may minimize to the tray.
	KindActivity Kind = iota
	// KindDialog is a modal window owned by another window.
	KindDialog
	// KindFragment is an embedded view with its own lifecycle.
	KindFragment
	// KindTransient is an undecorated popup.
	KindTransient
	// KindNotification is a transient popup stacked by a notify.Scheduler.
	KindNotification
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindActivity:
		return "activity"
	case KindDialog:
		return "dialog"
	case KindFragment:
		return "fragment"
	case KindTransient:
		return "transient"
	case KindNotification:
		return "notification"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindActivity, KindDialog, KindFragment, KindTransient, KindNotification} {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return KindActivity, fmt.Errorf("invalid window kind: %q", s)
}

// Trayable reports whether windows of this kind can use the system tray.
func (k Kind) Trayable() bool {
	return k == KindActivity
}

// Anchored reports whether windows of this kind are positioned by anchor.
func (k Kind) Anchored() bool {
	return k == KindNotification
}

// IsKind returns a predicate for winctx.Stack.PopUntil.
func IsKind(k Kind) func(*Window) bool {
	return func(w *Window) bool {
		return w.Kind() == k
	}
}
