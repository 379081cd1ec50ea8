package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/windex/internal/app"
	"github.com/jmylchreest/windex/internal/dom"
	"github.com/jmylchreest/windex/internal/headless"
	"github.com/jmylchreest/windex/internal/tree"
	"github.com/jmylchreest/windex/internal/window"
)

var indexOpts struct {
	timeout time.Duration
}

var indexCmd = &cobra.Command{
	Use:   "index FILE",
	Short: "Index a component tree and print every name",
	Long: `Load a component tree from a YAML file, index it the way a window does
on init, and print each indexed name with the number of components under it.

The tree file looks like:

  name: main
  children:
    - name: ok
      kind: button
    - children:
        - name: email
          kind: field`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().DurationVar(&indexOpts.timeout, "timeout", 10*time.Second,
		"Maximum time to wait for indexing")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), indexOpts.timeout)
	defer cancel()

	w, r, err := openTree(ctx, args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	// Waits for the index pass.
	if _, err := w.FindAllByID(ctx, dom.RootKey); err != nil {
		return err
	}

	idx := w.Index()
	var rows [][]string
	for _, name := range idx.Names() {
		nodes := idx.Get(name)
		first := fmt.Sprint(nodes[0])
		rows = append(rows, []string{name, humanize.Comma(int64(len(nodes))), first})
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderRows([]string{"NAME", "COUNT", "FIRST"}, rows))

	st := w.IndexStats()
	fmt.Fprintln(out)
	fmt.Fprintln(out, label("Components", humanize.Comma(st.Nodes)))
	fmt.Fprintln(out, label("Names", humanize.Comma(int64(st.Names))))
	fmt.Fprintln(out, label("Elapsed", st.Elapsed.Round(time.Microsecond)))
	return nil
}

// openTree loads a tree file into an initialized activity window.
func openTree(ctx context.Context, path string) (*window.Window, *app.Runtime, error) {
	root, err := tree.Load(path)
	if err != nil {
		return nil, nil, err
	}

	r, err := newRuntime(ctx)
	if err != nil {
		return nil, nil, err
	}

	n := r.Config().Notifications
	s := headless.NewSurface(root, n.Width, n.Height)
	w, err := r.NewWindow(window.KindActivity, s, window.WithTitle(root.Name()))
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	if err := w.Init(); err != nil {
		r.Close()
		return nil, nil, err
	}
	return w, r, nil
}
