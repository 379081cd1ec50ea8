package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/windex/internal/dom"
	"github.com/jmylchreest/windex/internal/tree"
)

var findOpts struct {
	all     bool
	timeout time.Duration
}

var findCmd = &cobra.Command{
	Use:   "find FILE NAME",
	Short: "Look up components by name",
	Long: `Load a component tree from a YAML file and look up components by name.

Prints the first match, or every match with --all. Exits non-zero when
nothing matches.`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().BoolVarP(&findOpts.all, "all", "a", false,
		"Print every component with the name")
	findCmd.Flags().DurationVar(&findOpts.timeout, "timeout", 10*time.Second,
		"Maximum time to wait for indexing")
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), findOpts.timeout)
	defer cancel()

	w, r, err := openTree(ctx, args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	name := args[1]
	var nodes []dom.Node
	if findOpts.all {
		nodes, err = w.FindAllByID(ctx, name)
		if err == nil && len(nodes) == 0 {
			err = &dom.ElementNotFoundError{Name: name}
		}
	} else {
		var n dom.Node
		n, err = w.FindByID(ctx, name)
		nodes = []dom.Node{n}
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, n := range nodes {
		if el, ok := n.(*tree.Element); ok {
			fmt.Fprintf(out, "%s %s\n", el, labelStyle.Render(el.ID))
			continue
		}
		fmt.Fprintln(out, n.Name())
	}
	return nil
}
