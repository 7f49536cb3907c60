package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"supaview/internal/display"

	"github.com/spf13/cobra"
)

var rowsOutput string

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Fetch the table once and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rowsOutput != "table" && rowsOutput != "json" {
			return fmt.Errorf("unsupported output %q (use table or json)", rowsOutput)
		}

		a, err := newApp(cmd.Context(), appOptions{silenceStdout: true})
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := fetchOnce(cmd.Context(), a.component)
		if err != nil {
			return err
		}
		if state.Phase == display.PhaseError {
			return errors.New(state.Err)
		}

		if rowsOutput == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(state.Rows)
		}
		return printRows(cmd.OutOrStdout(), a.component.Renderer(), state)
	},
}

// fetchOnce mounts c and waits for the read to settle.
func fetchOnce(ctx context.Context, c *display.Component) (display.State, error) {
	if err := c.Mount(ctx); err != nil {
		return display.State{}, err
	}
	defer c.Unmount()

	select {
	case <-c.Done():
	case <-ctx.Done():
		return display.State{}, ctx.Err()
	}
	state := c.State()
	if !state.Terminal() {
		return state, context.Canceled
	}
	return state, nil
}

func printRows(out io.Writer, r *display.Renderer, state display.State) error {
	if state.Empty() {
		_, err := fmt.Fprintln(out, r.EmptyMessage())
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED AT")
	fmt.Fprintln(w, "--\t----\t----------")
	for _, row := range state.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.ID, row.Name, r.FormatTime(row.CreatedAt))
	}
	return w.Flush()
}

func init() {
	rowsCmd.Flags().StringVarP(&rowsOutput, "output", "o", "table", "Output format (table, json)")
	rootCmd.AddCommand(rowsCmd)
}
