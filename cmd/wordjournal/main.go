// Command wordjournal looks up English words and phrases. It runs as an HTTP
// service (serve) or answers a single query on the terminal (lookup).
//
// Exit codes: 0 = success, 1 = error, 2 = word not found.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordjournal/internal/app"
	"github.com/heartmarshall/wordjournal/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, domain.ErrNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordjournal",
		Short: "Word lookup engine",
		Long: `wordjournal resolves English words and phrases to structured definitions.

It consults a local cache, the system dictionary, a bundled dictionary and
public online dictionaries, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (default: $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newServeCmd(),
		newLookupCmd(),
		newSuggestCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP lookup API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return app.Run(cmd.Context(), configPath)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"version": app.Version,
					"commit":  app.Commit,
					"built":   app.BuildTime,
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wordjournal %s\n", app.BuildVersion())
			return err
		},
	}
}
