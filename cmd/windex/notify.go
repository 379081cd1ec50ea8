package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/windex/internal/headless"
	"github.com/jmylchreest/windex/internal/notify"
	"github.com/jmylchreest/windex/internal/tree"
	"github.com/jmylchreest/windex/internal/window"
)

var notifyOpts struct {
	count    int
	gap      int
	anchor   string
	duration time.Duration
	debounce time.Duration
	timeout  time.Duration
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Stack headless notification windows and print their placement",
	Long: `Open a number of headless notification windows, wait for the debounced
layout pass and print where each one was placed.

Without --duration the notifications are closed right after printing. With
--duration they are left to expire, and windex waits for the scheduler to
drain before exiting.`,
	Args: cobra.NoArgs,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)

	notifyCmd.Flags().IntVarP(&notifyOpts.count, "count", "n", 3,
		"Number of notifications to open")
	notifyCmd.Flags().IntVar(&notifyOpts.gap, "gap", -1,
		"Pixels between notifications (default from config)")
	notifyCmd.Flags().StringVar(&notifyOpts.anchor, "anchor", "",
		"Screen corner: top-left, top-right, bottom-left, bottom-right (default from config)")
	notifyCmd.Flags().DurationVarP(&notifyOpts.duration, "duration", "d", 0,
		"Auto-dismiss after this long (0 closes after printing)")
	notifyCmd.Flags().DurationVar(&notifyOpts.debounce, "debounce", 0,
		"Quiet period before a layout pass (default from config)")
	notifyCmd.Flags().DurationVar(&notifyOpts.timeout, "timeout", 10*time.Second,
		"Maximum time to wait for layout and drain")
}

func runNotify(cmd *cobra.Command, args []string) error {
	if notifyOpts.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", notifyOpts.count)
	}
	if notifyOpts.gap >= 0 {
		cfg.Notifications.Gap = notifyOpts.gap
	}
	if notifyOpts.anchor != "" {
		cfg.Notifications.Anchor = notifyOpts.anchor
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), notifyOpts.timeout)
	defer cancel()

	r, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer r.Close()
	r.Scheduler().SetDebounce(notifyOpts.debounce)

	n := r.Config().Notifications
	surfaces := make([]*headless.Surface, 0, notifyOpts.count)
	windows := make([]*window.Window, 0, notifyOpts.count)
	for i := range notifyOpts.count {
		title := fmt.Sprintf("notification-%d", i+1)
		s := headless.NewSurface(tree.Panel(title, tree.Leaf(tree.KindLabel, "body")), n.Width, n.Height)
		w, err := r.ShowNotificationFor(s, notifyOpts.duration, window.WithTitle(title))
		if err != nil {
			return err
		}
		surfaces = append(surfaces, s)
		windows = append(windows, w)
	}

	started := time.Now()
	if err := waitForLayout(ctx, r.Scheduler()); err != nil {
		return err
	}

	rows := make([][]string, len(windows))
	for i, w := range windows {
		x, y := surfaces[i].Position()
		rows[i] = []string{w.Title(), w.Anchor().String(), fmt.Sprint(x), fmt.Sprint(y)}
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderRows([]string{"TITLE", "ANCHOR", "X", "Y"}, rows))
	fmt.Fprintln(out)
	fmt.Fprintln(out, label("Layout passes", humanize.Comma(r.Scheduler().Layouts())))

	if notifyOpts.duration <= 0 {
		for _, w := range windows {
			if err := w.Dispose(); err != nil {
				return err
			}
		}
	}
	if err := r.Shutdown(ctx); err != nil {
		return fmt.Errorf("notifications did not drain: %w", err)
	}
	runtime.KeepAlive(windows)
	fmt.Fprintln(out, label("Drained after", time.Since(started).Round(time.Millisecond)))
	return nil
}

// waitForLayout blocks until the scheduler has run at least one layout pass.
func waitForLayout(ctx context.Context, s *window.Scheduler) error {
	poll := time.NewTicker(notify.DefaultDrainPoll)
	defer poll.Stop()
	for s.Layouts() == 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("no layout pass: %w", ctx.Err())
		case <-poll.C:
		}
	}
	return nil
}
