package window

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/windex/internal/headless"
	"github.com/jmylchreest/windex/internal/notify"
	"github.com/jmylchreest/windex/internal/tree"
)

func TestNotificationWindows_Stacked(t *testing.T) {
	sched := NewScheduler(notify.Config{Gap: 10, Debounce: 20 * time.Millisecond, DrainPoll: 5 * time.Millisecond}, nil)
	require.NoError(t, sched.Start())
	t.Cleanup(sched.Stop)

	var surfaces []*headless.Surface
	var windows []*Window
	for i := range 2 {
		s := headless.NewSurface(tree.Panel("note"), 300, 100)
		w, err := New(KindNotification, s,
			WithScheduler(sched),
			WithAnchor(notify.AnchorTopLeft),
			WithScreen(1920, 1080, 20),
			WithTitle("note"),
		)
		require.NoError(t, err)
		require.NoError(t, sched.StartNotification(w, 0), i)
		surfaces = append(surfaces, s)
		windows = append(windows, w)
	}

	assert.Eventually(t, func() bool {
		_, y0 := surfaces[0].Position()
		_, y1 := surfaces[1].Position()
		return y0 == 20 && y1 == 130
	}, 2*time.Second, 5*time.Millisecond)
	runtime.KeepAlive(windows)
}

func TestNotificationWindows_AutoDismiss(t *testing.T) {
	sched := NewScheduler(notify.Config{Gap: 10, Debounce: 10 * time.Millisecond, DrainPoll: 5 * time.Millisecond}, nil)
	require.NoError(t, sched.Start())
	t.Cleanup(sched.Stop)

	s := headless.NewSurface(tree.Panel("note"), 300, 100)
	w, err := New(KindNotification, s, WithScheduler(sched), WithScreen(1920, 1080, 20))
	require.NoError(t, err)
	require.NoError(t, sched.StartNotification(w, 30*time.Millisecond))
	assert.True(t, s.IsVisible())

	assert.Eventually(t, func() bool {
		return w.IsDisposed() && !sched.Contains(w)
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, s.IsDisplayable())
}
