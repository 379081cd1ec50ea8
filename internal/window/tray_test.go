package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/windex/internal/headless"
)

func trayConfig() TrayConfig {
	return TrayConfig{Enabled: true, RemoveOnRestore: true, Icon: "windex"}
}

func TestTray_Available(t *testing.T) {
	tr := headless.NewTray(true)

	act, _ := newTestWindow(t, KindActivity, newSampleTree().r, WithTray(tr, trayConfig()))
	assert.True(t, act.TrayAvailable())

	dlg, _ := newTestWindow(t, KindDialog, newSampleTree().r, WithTray(tr, trayConfig()))
	assert.False(t, dlg.TrayAvailable())

	cfg := trayConfig()
	cfg.Enabled = false
	off, _ := newTestWindow(t, KindActivity, newSampleTree().r, WithTray(tr, cfg))
	assert.False(t, off.TrayAvailable())

	unsupported, _ := newTestWindow(t, KindActivity, newSampleTree().r,
		WithTray(headless.NewTray(false), trayConfig()))
	assert.False(t, unsupported.TrayAvailable())
}

func TestTray_CloseMinimizesAndClickRestores(t *testing.T) {
	tr := headless.NewTray(true)
	stack := NewStack(nil)
	act, actSurface := newTestWindow(t, KindActivity, newSampleTree().r,
		WithTray(tr, trayConfig()), WithStack(stack), WithTitle("Main"))
	frag, fragSurface := newTestWindow(t, KindFragment, newSampleTree().r, WithStack(stack))
	require.NoError(t, act.Init())
	require.NoError(t, frag.Init())

	require.NoError(t, act.HandleEvent(NewEvent(EventClosing)))
	assert.True(t, act.TrayIconShown())
	assert.Equal(t, []string{"windex"}, tr.Icons())
	assert.Equal(t, "Main", tr.Tooltip("windex"))
	assert.False(t, actSurface.IsVisible())
	assert.False(t, fragSurface.IsVisible())

	// Only a left click restores.
	require.NoError(t, act.HandleTrayEvent(TrayEvent{Kind: TrayMouseClicked, Button: ButtonRight}))
	assert.False(t, actSurface.IsVisible())

	require.NoError(t, act.HandleTrayEvent(TrayEvent{Kind: TrayMouseClicked, Button: ButtonLeft}))
	assert.True(t, actSurface.IsVisible())
	assert.True(t, fragSurface.IsVisible())
	assert.False(t, act.TrayIconShown())
	assert.Empty(t, tr.Icons())
}

func TestTray_AlwaysVisible(t *testing.T) {
	tr := headless.NewTray(true)
	cfg := trayConfig()
	cfg.AlwaysVisible = true
	w, _ := newTestWindow(t, KindActivity, newSampleTree().r, WithTray(tr, cfg))
	require.NoError(t, w.Init())

	assert.Equal(t, []string{"windex"}, tr.Icons())
	w.RestoreFromTray()
	assert.Equal(t, []string{"windex"}, tr.Icons())

	require.NoError(t, w.Dispose())
	assert.Equal(t, []string{"windex"}, tr.Icons())
}

func TestTray_DisposeRemovesIcon(t *testing.T) {
	tr := headless.NewTray(true)
	w, _ := newTestWindow(t, KindActivity, newSampleTree().r, WithTray(tr, trayConfig()))
	require.NoError(t, w.Init())

	w.MinimizeToTray()
	require.Len(t, tr.Icons(), 1)
	require.NoError(t, w.Dispose())
	assert.Empty(t, tr.Icons())
}

func TestTray_AddFailureReported(t *testing.T) {
	tr := headless.NewTray(true)
	tr.Reject(true)

	var actions []string
	w, s := newTestWindow(t, KindActivity, newSampleTree().r,
		WithTray(tr, trayConfig()),
		WithErrorHandler(func(action string, err error) error {
			actions = append(actions, action)
			return nil
		}))
	require.NoError(t, w.Init())

	w.MinimizeToTray()
	assert.Equal(t, []string{"safelyAddTrayIcon"}, actions)
	assert.True(t, s.IsVisible())
	assert.False(t, w.TrayIconShown())
}

func TestTray_Hook(t *testing.T) {
	var got []TrayEventKind
	w, _ := newTestWindow(t, KindActivity, newSampleTree().r,
		WithTray(headless.NewTray(true), trayConfig()),
		WithHooks(Hooks{OnTray: func(_ *Window, e TrayEvent) error {
			got = append(got, e.Kind)
			return nil
		}}))

	require.NoError(t, w.HandleTrayEvent(TrayEvent{Kind: TrayMouseEntered}))
	require.NoError(t, w.HandleTrayEvent(TrayEvent{Kind: TrayMouseWheelMoved}))
	assert.Equal(t, []TrayEventKind{TrayMouseEntered, TrayMouseWheelMoved}, got)
	assert.Equal(t, "trayMouseWheelMoved", TrayMouseWheelMoved.Action())
}
