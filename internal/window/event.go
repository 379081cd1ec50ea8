package window

import "time"

// EventKind is a toolkit window event.
type EventKind int

const (
	EventOpened EventKind = iota
	EventClosing
	EventFocusGained
	EventFocusLost
)

// Action returns the lifecycle action name the event is funnelled under.
func (k EventKind) Action() string {
	switch k {
	case EventOpened:
		return "onLoad"
	case EventClosing:
		return "onClose"
	case EventFocusGained:
		return "onFocus"
	case EventFocusLost:
		return "onLostFocus"
	default:
		return "unknown"
	}
}

// String returns the string representation of EventKind.
func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventClosing:
		return "closing"
	case EventFocusGained:
		return "focus-gained"
	case EventFocusLost:
		return "focus-lost"
	default:
		return "unknown"
	}
}

// Event is delivered by the toolkit through Window.HandleEvent.
type Event struct {
	Kind EventKind
	At   time.Time
}

// NewEvent stamps an event with the current time.
func NewEvent(kind EventKind) Event {
	return Event{Kind: kind, At: time.Now()}
}
