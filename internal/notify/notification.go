package notify

//go:generate mockgen -source=notification.go -destination=mocks/mock_notification.go -package=mock_notify

// Notification is a transient window managed by a Scheduler.
type Notification interface {
	// Init shows the window. It is called once by StartNotification.
	Init() error
	// Dispose closes the window.
	Dispose() error
	IsDisplayable() bool
	IsVisible() bool
	Anchor() Anchor
	Height() int
	// PositionAt moves the window to offset pixels along its anchor's
	// stacking axis.
	PositionAt(offset int)
}
