package commands

import (
	"fmt"
	"ghcrawl/lib/configuration"
	"ghcrawl/lib/scrapers/github"
	"ghcrawl/lib/timezone"
	"log/slog"
	"path/filepath"
	"time"

	"ghcrawl/services/repocrawl"
	"ghcrawl/services/repocrawl/db"

	"github.com/spf13/cobra"
)

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
	BaseUrl  string `json:"base_url"`
}

var crawlOut *string
var crawlDb *string
var crawlConfig *string

func init() {
	crawlOut = crawlCmd.Flags().String("out", ".", "The directory to write the dated CSV and markdown files to.")
	crawlDb = crawlCmd.Flags().String("db", "", "Optionally archive crawled records into this sqlite database.")
	crawlConfig = crawlCmd.Flags().String("config", "config.json5", "The config file holding credentials.")
	rootCmd.AddCommand(crawlCmd)
}

func newFileSinks(dir string, day time.Time) (repocrawl.MultiSink, error) {
	csvSink, err := repocrawl.NewCSVSink(filepath.Join(dir, repocrawl.DatedFilename(day, "csv")))
	if err != nil {
		return nil, fmt.Errorf("open csv destination: %w", err)
	}
	mdSink, err := repocrawl.NewMarkdownSink(filepath.Join(dir, repocrawl.DatedFilename(day, "md")))
	if err != nil {
		csvSink.Close()
		return nil, fmt.Errorf("open markdown destination: %w", err)
	}
	return repocrawl.MultiSink{csvSink, mdSink}, nil
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--out <dir>] [--db <path/to/archive.db>]",
	Short: "Logs into the account from the config and crawls its repository listing.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configuration.ReadConfig[Config](*crawlConfig)
		if err != nil {
			fatal("failed to read config", err)
		}
		if cfg.Username == "" || cfg.Password == "" {
			fatal("config is missing credentials", fmt.Errorf("username and password are required"))
		}

		client, err := github.NewClient(cmd.Context(), github.ClientOptions{
			BaseUrl: cfg.BaseUrl,
		})
		if err != nil {
			fatal("failed to initialize client", err)
		}

		day := timezone.Now()
		sink, err := newFileSinks(*crawlOut, day)
		if err != nil {
			fatal("failed to open output destinations", err)
		}
		defer sink.Close()

		if *crawlDb != "" {
			archive, err := db.Open(*crawlDb)
			if err != nil {
				fatal("failed to open archive database", err)
			}
			defer archive.Close()
			sink = append(sink, repocrawl.NewDBSink(db.New(archive), day))
		}

		slog.Info("crawling repositories", "username", cfg.Username)

		t1 := time.Now()
		stats, err := repocrawl.Crawl(cmd.Context(), client, cfg.Username, cfg.Password, sink)
		if err != nil {
			fatal("crawl failed", err)
		}
		t2 := time.Now()

		slog.Info("crawl finished",
			"pages", stats.Pages,
			"records", stats.Records,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
