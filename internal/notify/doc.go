// Package notify keeps transient notification windows stacked without
// overlap at one of four screen anchors.
//
// Registrations, removals and gap changes do not re-layout immediately.
// Each one (re)arms a single debounce timer, and the layout pass runs once
// the registry has been quiet for the debounce window, reading the gap and
// membership current at that moment. Notifications are held by weak
// reference, so a window dropped elsewhere falls out of the layout.
package notify
