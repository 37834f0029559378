package commands

import (
	"ghcrawl/lib/timezone"
	"os"
	"path/filepath"

	"ghcrawl/services/repocrawl"

	"github.com/spf13/cobra"
)

var reportCsv *string
var reportOut *string

func init() {
	reportCsv = reportCmd.Flags().String("csv", "", "The crawl CSV to report on. Defaults to today's file in the output directory.")
	reportOut = reportCmd.Flags().String("out", ".", "The directory to write the per-language project files to.")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--csv <path/to/crawl.csv>] [--out <dir>]",
	Short: "Summarizes a finished crawl and writes per-language project files.",
	Run: func(cmd *cobra.Command, args []string) {
		csvPath := *reportCsv
		if csvPath == "" {
			csvPath = filepath.Join(*reportOut, repocrawl.DatedFilename(timezone.Now(), "csv"))
		}

		err := repocrawl.Report(csvPath, *reportOut, os.Stdout)
		if err != nil {
			fatal("report failed", err)
		}
	},
}
