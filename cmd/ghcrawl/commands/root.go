package commands

import (
	"context"
	"fmt"
	"ghcrawl/lib/telemetry"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "ghcrawl",
	Short: "ghcrawl crawls a GitHub account's repository listing into dated CSV and markdown files.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		tel, err := telemetry.SetupFromEnv(cmd.Context(), "ghcrawl")
		if err != nil {
			if !os.IsNotExist(err) {
				fatal("failed to setup telemetry", err)
			}
			// running without a telemetry.json5 is fine
			return
		}
		cobra.OnFinalize(func() {
			err := tel.Shutdown(context.Background())
			if err != nil {
				slog.Warn("failed to shutdown telemetry", "err", err)
			}
		})
		telemetry.InstrumentPerfStats(cmd.Context())
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
