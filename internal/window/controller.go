package window

// Controller receives a window's lifecycle after the window's own hooks.
type Controller interface {
	OnInit(w *Window) error
	OnLoad(w *Window) error
	OnClose(w *Window) error
	OnLostFocus(w *Window) error
	OnReceiveEvent(w *Window, args any) error
}

// ControllerFactory builds the controller for a window at construction.
type ControllerFactory func(w *Window) Controller

// BaseController implements Controller with no-ops. Embed it to override
// only the callbacks you need.
type BaseController struct{}

func (BaseController) OnInit(*Window) error              { return nil }
func (BaseController) OnLoad(*Window) error              { return nil }
func (BaseController) OnClose(*Window) error             { return nil }
func (BaseController) OnLostFocus(*Window) error         { return nil }
func (BaseController) OnReceiveEvent(*Window, any) error { return nil }

// Controller returns the window's controller, or nil.
func (w *Window) Controller() Controller {
	return w.controller
}

// SendEvent delivers args to the controller through the funnel.
func (w *Window) SendEvent(args any) error {
	return w.exec.ExecuteNamed("onReceiveEvent", func() error {
		if w.controller == nil {
			return ErrNoController
		}
		return w.controller.OnReceiveEvent(w, args)
	})
}
