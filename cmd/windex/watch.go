package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/windex/internal/app"
	"github.com/jmylchreest/windex/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the configuration whenever the file changes",
	Long: `Start the runtime and watch the config file. Each valid change is applied
to the notification scheduler and printed; invalid files are reported and
the previous configuration is kept. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	r, err := newRuntime(ctx, app.WithConfigListener(func(c *config.Config) {
		fmt.Fprintf(out, "%s gap=%d debounce=%s anchor=%s\n",
			headerStyle.Render("applied"),
			c.Notifications.Gap,
			c.Notifications.Debounce.Duration(),
			c.Notifications.Anchor,
		)
	}))
	if err != nil {
		return err
	}
	defer r.Close()

	cw, err := r.WatchConfig(configPath())
	if err != nil {
		return err
	}
	cw.SetErrorCallback(func(err error) {
		fmt.Fprintln(out, errorStyle.Render("rejected"), err)
	})
	defer cw.Stop()

	fmt.Fprintln(out, label("watching", configPath()))
	<-ctx.Done()
	return nil
}
