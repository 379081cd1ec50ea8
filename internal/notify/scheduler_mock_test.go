package notify_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jmylchreest/windex/internal/notify"
	mock_notify "github.com/jmylchreest/windex/internal/notify/mocks"
)

func expectNote(m *mock_notify.MockNotification, a notify.Anchor, height int, visible bool) {
	m.EXPECT().IsDisplayable().Return(true).AnyTimes()
	m.EXPECT().IsVisible().Return(visible).AnyTimes()
	m.EXPECT().Anchor().Return(a).AnyTimes()
	m.EXPECT().Height().Return(height).AnyTimes()
}

func TestScheduler_GroupsByAnchor(t *testing.T) {
	ctrl := gomock.NewController(t)

	top1 := mock_notify.NewMockNotification(ctrl)
	top2 := mock_notify.NewMockNotification(ctrl)
	bottom := mock_notify.NewMockNotification(ctrl)
	hidden := mock_notify.NewMockNotification(ctrl)

	expectNote(top1, notify.AnchorTopLeft, 50, true)
	expectNote(top2, notify.AnchorTopLeft, 60, true)
	expectNote(bottom, notify.AnchorBottomRight, 100, true)
	expectNote(hidden, notify.AnchorTopLeft, 70, false)

	top1.EXPECT().PositionAt(0).Times(1)
	top2.EXPECT().PositionAt(55).Times(1)
	bottom.EXPECT().PositionAt(0).Times(1)
	hidden.EXPECT().PositionAt(gomock.Any()).Times(0)

	s := notify.NewScheduler[mock_notify.MockNotification](
		notify.Config{Gap: 5, Debounce: 50 * time.Millisecond}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	s.Add(top1)
	s.Add(hidden)
	s.Add(bottom)
	s.Add(top2)

	require.Eventually(t, func() bool { return s.Layouts() == 1 }, 2*time.Second, 5*time.Millisecond)
	runtime.KeepAlive([]any{top1, top2, bottom, hidden})
}

func TestScheduler_StartNotificationDisposesOnExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock_notify.NewMockNotification(ctrl)
	expectNote(n, notify.AnchorBottomLeft, 40, true)
	n.EXPECT().PositionAt(gomock.Any()).AnyTimes()

	gomock.InOrder(
		n.EXPECT().Init().Return(nil),
		n.EXPECT().Dispose().Return(nil),
	)

	s := notify.NewScheduler[mock_notify.MockNotification](
		notify.Config{Debounce: 10 * time.Millisecond}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.NoError(t, s.StartNotification(n, 20*time.Millisecond))
	require.Eventually(t, func() bool { return s.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
	runtime.KeepAlive(n)
}
