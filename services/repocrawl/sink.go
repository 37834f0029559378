package repocrawl

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"ghcrawl/lib/scrapers/github"
	"ghcrawl/lib/timezone"
	"os"
	"time"

	"ghcrawl/services/repocrawl/db"
)

// A Sink receives records one at a time, in crawl order. Sinks are
// append-only: they never read back or rewrite prior content. The
// orchestrator is the only caller; sinks need not be safe for
// concurrent use.
type Sink interface {
	Append(ctx context.Context, repo github.Repo) error
	Close() error
}

// DatedFilename stamps the output name with the run's start date, e.g.
// "[2024-01-10] github_repo.csv".
func DatedFilename(day time.Time, ext string) string {
	return fmt.Sprintf("[%s] github_repo.%s", day.Format("2006-01-02"), ext)
}

var csvColumns = []string{"Title", "Description", "Updated", "Language", "Link"}

type CSVSink struct {
	file *os.File
	w    *csv.Writer
}

// NewCSVSink opens path for appending. The header row is written only
// when the file did not already exist, so a crawl interrupted and
// rerun on the same day keeps a single header.
func NewCSVSink(path string) (*CSVSink, error) {
	_, statErr := os.Stat(path)
	needHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	s := &CSVSink{
		file: file,
		w:    csv.NewWriter(file),
	}
	if needHeader {
		err = s.w.Write(csvColumns)
		if err == nil {
			s.w.Flush()
			err = s.w.Error()
		}
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *CSVSink) Append(ctx context.Context, repo github.Repo) error {
	err := s.w.Write([]string{
		repo.Title,
		repo.Description,
		repo.UpdatedAt.Format(time.RFC3339),
		repo.Language,
		repo.Link,
	})
	if err != nil {
		return err
	}
	// flush per record so that a crash between records never loses a
	// record that was already handed to the sink
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	return errors.Join(s.w.Error(), s.file.Close())
}

// markdownBlock renders the narrative four-line block for one record.
// The relative age is always recomputed against now at render time.
func markdownBlock(repo github.Repo, now time.Time) string {
	return fmt.Sprintf(
		"# [%s](%s)\n###### Language: %s\n###### Updated: %s\n### %s\n",
		repo.Title,
		repo.Link,
		repo.Language,
		timezone.RelativeAge(now, repo.UpdatedAt),
		repo.Description,
	)
}

type MarkdownSink struct {
	file *os.File
}

func NewMarkdownSink(path string) (*MarkdownSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &MarkdownSink{file: file}, nil
}

func (s *MarkdownSink) Append(ctx context.Context, repo github.Repo) error {
	_, err := s.file.WriteString(markdownBlock(repo, timezone.Now()))
	if err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *MarkdownSink) Close() error {
	return s.file.Close()
}

// DBSink archives every record into the sqlite crawl archive.
type DBSink struct {
	qry       *db.Queries
	crawledAt int64
}

func NewDBSink(queries *db.Queries, crawlStart time.Time) *DBSink {
	return &DBSink{
		qry:       queries,
		crawledAt: crawlStart.Unix(),
	}
}

func (s *DBSink) Append(ctx context.Context, repo github.Repo) error {
	return s.qry.NoteRepo(ctx, db.NoteRepoParams{
		CrawledAt:   s.crawledAt,
		Title:       repo.Title,
		Description: repo.Description,
		UpdatedAt:   repo.UpdatedAt.Format(time.RFC3339),
		Language:    repo.Language,
		Link:        repo.Link,
	})
}

func (s *DBSink) Close() error {
	return nil
}

// MultiSink fans a record out to every destination in order. The first
// write failure aborts; a record is either written to a destination
// completely or not at all.
type MultiSink []Sink

func (m MultiSink) Append(ctx context.Context, repo github.Repo) error {
	for _, sink := range m {
		err := sink.Append(ctx, repo)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close() error {
	var errlist []error
	for _, sink := range m {
		err := sink.Close()
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}
