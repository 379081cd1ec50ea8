package window

// Tray is the system tray of the desktop session.
type Tray interface {
	// Supported reports whether the session has a tray at all.
	Supported() bool
	Add(icon, tooltip string) error
	Remove(icon string)
}

// TrayConfig controls how an activity window uses the tray.
type TrayConfig struct {
	Enabled bool
	// RemoveOnRestore drops the icon when the window is restored from the tray.
	RemoveOnRestore bool
	// AlwaysVisible adds the icon at init and never removes it.
	AlwaysVisible bool
	Icon          string
}

// TrayEventKind is a mouse interaction with the tray icon.
type TrayEventKind int

const (
	TrayMouseClicked TrayEventKind = iota
	TrayMousePressed
	TrayMouseReleased
	TrayMouseEntered
	TrayMouseExited
	TrayMouseWheelMoved
	TrayMouseDragged
	TrayMouseMoved
)

// Action returns the lifecycle action name the event is funnelled under.
func (k TrayEventKind) Action() string {
	switch k {
	case TrayMouseClicked:
		return "trayMouseClicked"
	case TrayMousePressed:
		return "trayMousePressed"
	case TrayMouseReleased:
		return "trayMouseReleased"
	case TrayMouseEntered:
		return "trayMouseEntered"
	case TrayMouseExited:
		return "trayMouseExited"
	case TrayMouseWheelMoved:
		return "trayMouseWheelMoved"
	case TrayMouseDragged:
		return "trayMouseDragged"
	case TrayMouseMoved:
		return "trayMouseMoved"
	default:
		return "trayUnknown"
	}
}

// Mouse buttons.
const (
	ButtonNone = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// TrayEvent is delivered by the toolkit through Window.HandleTrayEvent.
type TrayEvent struct {
	Kind   TrayEventKind
	Button int
}

// TrayAvailable reports whether the tray can be used by w.
func (w *Window) TrayAvailable() bool {
	return w.kind.Trayable() &&
		w.tray != nil &&
		w.trayCfg.Enabled &&
		w.trayCfg.Icon != "" &&
		w.tray.Supported()
}

// TrayIconShown reports whether w currently has an icon in the tray.
func (w *Window) TrayIconShown() bool {
	return w.trayIcon.Load()
}

// HandleTrayEvent runs the tray hook through the funnel. Without a hook, a
// left click restores from the tray.
func (w *Window) HandleTrayEvent(e TrayEvent) error {
	return w.exec.ExecuteNamed(e.Kind.Action(), func() error {
		if w.hooks.OnTray != nil {
			return w.hooks.OnTray(w, e)
		}
		if e.Kind == TrayMouseClicked && e.Button == ButtonLeft {
			w.RestoreFromTray()
		}
		return nil
	})
}

// RestoreFromTray shows every live window on the stack again.
func (w *Window) RestoreFromTray() {
	if w.trayCfg.RemoveOnRestore {
		w.removeTrayIcon()
	}
	for _, other := range w.siblings() {
		if err := other.surface.Show(); err != nil {
			w.logger.Debug("failed to restore window", "target", other.id, "error", err)
		}
	}
}

// MinimizeToTray adds the tray icon and hides every live window on the
// stack. Nothing is hidden when the icon could not be added.
func (w *Window) MinimizeToTray() {
	if !w.addTrayIcon(!w.trayCfg.AlwaysVisible) {
		return
	}
	for _, other := range w.siblings() {
		other.surface.Hide()
	}
}

// siblings returns the windows sharing w's stack, or only w without one.
func (w *Window) siblings() []*Window {
	if w.stack == nil {
		return []*Window{w}
	}
	return w.stack.Windows()
}

func (w *Window) setupTray() {
	if !w.TrayAvailable() {
		return
	}
	if w.trayCfg.AlwaysVisible {
		w.addTrayIcon(true)
	}
}

// addTrayIcon reports whether the icon is in the tray afterwards. A failure
// goes to the error handler only when report is set.
func (w *Window) addTrayIcon(report bool) bool {
	if !w.TrayAvailable() {
		return false
	}
	if w.trayIcon.Load() {
		return true
	}

	if err := w.tray.Add(w.trayCfg.Icon, w.title); err != nil {
		if report {
			if herr := w.exec.ExecuteNamed("safelyAddTrayIcon", func() error { return err }); herr != nil {
				w.logger.Warn("tray icon unavailable", "error", herr)
			}
		} else {
			w.logger.Debug("tray icon unavailable", "error", err)
		}
		return false
	}
	w.trayIcon.Store(true)
	return true
}

func (w *Window) removeTrayIcon() {
	if w.tray == nil || w.trayCfg.AlwaysVisible {
		return
	}
	if w.trayIcon.CompareAndSwap(true, false) {
		w.tray.Remove(w.trayCfg.Icon)
	}
}
