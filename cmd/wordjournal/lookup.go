package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordjournal/internal/app"
	"github.com/heartmarshall/wordjournal/internal/config"
)

// openApp loads configuration and wires a warmed engine. Logs go to stderr so
// they never mix with command output.
func openApp(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := app.NewLogger(cfg.Log)
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Warm(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("warm: %w", err)
	}
	logger.Debug("lookup engine ready", slog.Any("sources", a.Lookup.Sources()))
	return a, nil
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <word or phrase...>",
		Short: "Look up a word or phrase",
		Example: `  wordjournal lookup serendipity
  wordjournal lookup break a leg
  wordjournal lookup --json mammologists`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			purge, _ := cmd.Flags().GetBool("refresh")
			query := strings.Join(args, " ")
			if purge {
				if _, err := a.Lookup.Purge(cmd.Context(), query); err != nil {
					return err
				}
			}

			result, err := a.Lookup.Lookup(cmd.Context(), query)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return render(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Bool("refresh", false, "Drop any cached definition before looking up")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Complete a prefix from the bundled dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			words := a.Bundled.Suggest(args[0], limit)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"words": words})
			}
			for _, w := range words {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), w); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum number of suggestions")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
