package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made by other processes",
	Long: `Watch reloads the notebook whenever another process changes it and prints
one line per change until interrupted. With --pattern it reports raw store
events for the matching keys instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		nb, err := openNotebook()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", nb.Path)

		if watchPattern != "" {
			w, ok := nb.Store.(core.Watchable)
			if !ok {
				return fmt.Errorf("store %T does not support watching", nb.Store)
			}
			events, err := w.Watch(ctx, watchPattern)
			if err != nil {
				return fmt.Errorf("failed to watch: %w", err)
			}
			for event := range events {
				fmt.Fprintln(out, event)
			}
			return nil
		}

		src := jotlifecycle.NewSource(nb.Notebook)
		if err := src.Start(ctx); err != nil {
			return fmt.Errorf("failed to watch: %w", err)
		}
		for event := range src.Events() {
			state := nb.State().(core.ManagerState)
			fmt.Fprintf(out, "%s  notes=%d pinned=%d\n", event, state.Notes, state.Pinned)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Report raw events for keys matching this glob")
}
