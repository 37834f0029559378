package repocrawl

import (
	"encoding/csv"
	"fmt"
	"ghcrawl/lib/scrapers/github"
	"ghcrawl/lib/timezone"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type reportBucket struct {
	Filename  string
	Languages []string
}

var reportBuckets = []reportBucket{
	{"Python-Projects.md", []string{"Python", "Jupyter Notebook"}},
	{"Kotlin-Projects.md", []string{"Kotlin"}},
	{"PHP-Projects.md", []string{"PHP"}},
	{"Front-End-Projects.md", []string{"HTML", "CSS", "Javascript"}},
}

func readCrawlCSV(path string) ([]github.Repo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if !slices.Equal(header, csvColumns) {
		return nil, fmt.Errorf("%s does not look like a crawl output file, header: %v", path, header)
	}

	var repos []github.Repo
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		updatedAt, err := time.Parse(time.RFC3339, row[2])
		if err != nil {
			slog.Warn("skipping row with unparseable timestamp", "title", row[0], "updated", row[2])
			continue
		}
		repos = append(repos, github.Repo{
			Title:       row[0],
			Description: row[1],
			UpdatedAt:   updatedAt,
			Language:    row[3],
			Link:        row[4],
		})
	}
	return repos, nil
}

func writeBucketFile(path string, repos []github.Repo, now time.Time) error {
	var out strings.Builder
	for _, repo := range repos {
		out.WriteString(markdownBlock(repo, now))
	}
	return os.WriteFile(path, []byte(out.String()), 0644)
}

// Report re-reads a finished crawl's CSV, sorts it by language and
// update time descending, prints a per-language summary table to w and
// writes the bucketed project files into outDir. Bucket files are
// rewritten from scratch on every report, unlike the crawl sinks.
func Report(csvPath, outDir string, w io.Writer) error {
	repos, err := readCrawlCSV(csvPath)
	if err != nil {
		return err
	}

	slices.SortFunc(repos, func(a, b github.Repo) int {
		if c := strings.Compare(b.Language, a.Language); c != 0 {
			return c
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	counts := map[string]int{}
	var languages []string
	for _, repo := range repos {
		lang := repo.Language
		if lang == "" {
			lang = "(none)"
		}
		if counts[lang] == 0 {
			languages = append(languages, lang)
		}
		counts[lang]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Language", "Repositories"})
	for _, lang := range languages {
		t.AppendRow(table.Row{lang, counts[lang]})
	}
	t.AppendFooter(table.Row{"Total", len(repos)})
	t.Render()

	now := timezone.Now()
	for _, bucket := range reportBuckets {
		var bucketed []github.Repo
		for _, repo := range repos {
			if slices.Contains(bucket.Languages, repo.Language) {
				bucketed = append(bucketed, repo)
			}
		}

		path := filepath.Join(outDir, bucket.Filename)
		err = writeBucketFile(path, bucketed, now)
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Info("wrote project bucket", "file", path, "repos", len(bucketed))
	}

	return nil
}
