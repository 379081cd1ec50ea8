package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/windex/internal/app"
	"github.com/jmylchreest/windex/internal/headless"
	"github.com/jmylchreest/windex/internal/tree"
	"github.com/jmylchreest/windex/internal/window"
	"github.com/jmylchreest/windex/internal/winctx"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Walk through the window context stack",
	Long: `Open an activity, a fragment and a dialog on the context stack, then pop
back to the activity, push the popped windows back, and show that a
disposed window can no longer be reattached.`,
	Args: cobra.NoArgs,
	RunE: runStack,
}

func init() {
	rootCmd.AddCommand(stackCmd)
}

func runStack(cmd *cobra.Command, args []string) error {
	r, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer r.Close()

	out := cmd.OutOrStdout()
	open := func(k window.Kind, title string) (*window.Window, error) {
		s := headless.NewSurface(tree.Panel(title), 400, 300)
		w, err := r.NewWindow(k, s, window.WithTitle(title))
		if err != nil {
			return nil, err
		}
		return w, w.Init()
	}

	// The stack holds windows weakly; these locals keep them alive.
	mainWin, err := open(window.KindActivity, "main")
	if err != nil {
		return err
	}
	listWin, err := open(window.KindFragment, "list")
	if err != nil {
		return err
	}
	dlg, err := open(window.KindDialog, "confirm")
	if err != nil {
		return err
	}
	printStack(out, "opened", r)

	popped := r.Stack().PopUntil(window.IsKind(window.KindActivity))
	fmt.Fprintln(out, label("popped", joinWindows(popped)))
	printStack(out, "after pop", r)

	r.Stack().ReattachStack(popped)
	printStack(out, "reattached", r)

	if err := dlg.Dispose(); err != nil {
		return err
	}
	printStack(out, "disposed confirm", r)

	if err := dlg.ReattachToContext(0); errors.Is(err, winctx.ErrReattachRejected) {
		fmt.Fprintln(out, label("reattach confirm", errorStyle.Render("rejected")))
	} else if err != nil {
		return err
	}
	runtime.KeepAlive(mainWin)
	runtime.KeepAlive(listWin)
	return nil
}

func printStack(w io.Writer, step string, r *app.Runtime) {
	fmt.Fprintln(w, headerStyle.Render(step))
	fmt.Fprintln(w, "  "+label("top", joinWindows(r.Stack().Windows())))
	if prev := r.Stack().PeekLast(); prev != nil {
		fmt.Fprintln(w, "  "+label("previous", prev))
	}
}

func joinWindows(ws []*window.Window) string {
	if len(ws) == 0 {
		return "(empty)"
	}
	names := make([]string, len(ws))
	for i, w := range ws {
		names[i] = w.String()
	}
	return strings.Join(names, " > ")
}
