package repocrawl

import (
	"context"
	"ghcrawl/lib/scrapers/github"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T, title string) github.Repo {
	t.Helper()
	updatedAt, err := time.Parse(time.RFC3339, "2024-01-08T09:30:00+08:00")
	require.NoError(t, err)
	return github.Repo{
		Title:       title,
		Description: "No Description",
		UpdatedAt:   updatedAt,
		Language:    "Go",
		Link:        "https://github.com/octocat/" + title,
	}
}

func TestDatedFilename(t *testing.T) {
	day := time.Date(2024, time.January, 10, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "[2024-01-10] github_repo.csv", DatedFilename(day, "csv"))
	require.Equal(t, "[2024-01-10] github_repo.md", DatedFilename(day, "md"))
}

func TestCSVSinkHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	ctx := context.Background()

	sink, err := NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(ctx, testRepo(t, "first")))
	require.NoError(t, sink.Close())

	// reopening on the same day appends without a second header
	sink, err = NewCSVSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(ctx, testRepo(t, "second")))
	require.NoError(t, sink.Append(ctx, testRepo(t, "third")))
	require.NoError(t, sink.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, 1, strings.Count(string(contents), "Title,Description,Updated,Language,Link"))
	require.Equal(t, "first,No Description,2024-01-08T09:30:00+08:00,Go,https://github.com/octocat/first", lines[1])
	require.Equal(t, "second,No Description,2024-01-08T09:30:00+08:00,Go,https://github.com/octocat/second", lines[2])
}

func TestMarkdownBlock(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2024-01-10T12:00:00+08:00")
	require.NoError(t, err)

	block := markdownBlock(testRepo(t, "crawler-lab"), now)
	require.Equal(t,
		"# [crawler-lab](https://github.com/octocat/crawler-lab)\n"+
			"###### Language: Go\n"+
			"###### Updated: 2 day(s) 2 hour(s) and 30 minute(s) ago\n"+
			"### No Description\n",
		block,
	)
}

func TestMarkdownSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	ctx := context.Background()

	sink, err := NewMarkdownSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(ctx, testRepo(t, "first")))
	require.NoError(t, sink.Close())

	sink, err = NewMarkdownSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Append(ctx, testRepo(t, "second")))
	require.NoError(t, sink.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(contents), "# ["))
	require.Less(t,
		strings.Index(string(contents), "first"),
		strings.Index(string(contents), "second"),
	)
}
