package main

import (
	"os"
	"os/signal"

	"supaview/internal/ui"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the table in an interactive terminal view",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// Log lines would tear the alternate screen, so only log_file gets them.
		a, err := newApp(ctx, appOptions{silenceStdout: true})
		if err != nil {
			return err
		}
		defer a.Close()

		return ui.StartRowsView(ctx, a.component)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
