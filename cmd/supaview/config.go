package main

import (
	"fmt"
	"text/tabwriter"

	"supaview/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "KEY\tVALUE")
		fmt.Fprintln(w, "---\t-----")
		fmt.Fprintf(w, "supabase.url\t%s\n", orUnset(cfg.Supabase.URL))
		fmt.Fprintf(w, "supabase.anon_key\t%s\n", orUnset(config.MaskSecret(cfg.Supabase.AnonKey)))
		fmt.Fprintf(w, "persist_session\t%t\n", cfg.Supabase.PersistSession)
		fmt.Fprintf(w, "timeout\t%s\n", cfg.Supabase.Timeout)
		fmt.Fprintf(w, "source\t%s\n", cfg.Source)
		fmt.Fprintf(w, "table\t%s\n", cfg.Table)
		if cfg.DatabaseURL != "" {
			fmt.Fprintf(w, "database_url\t%s\n", "[REDACTED]")
		}
		fmt.Fprintf(w, "addr\t%s\n", cfg.Addr)
		fmt.Fprintf(w, "timezone\t%s\n", orDefault(cfg.Timezone, "Local"))
		fmt.Fprintf(w, "time_format\t%s\n", cfg.TimeFormat)
		fmt.Fprintf(w, "verbose\t%t\n", cfg.Verbose)
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(w, "config_file\t%s\n", used)
		}
		return nil
	},
}

func orUnset(s string) string { return orDefault(s, "(unset)") }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	rootCmd.AddCommand(configCmd)
}
