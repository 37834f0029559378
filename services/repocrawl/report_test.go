package repocrawl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	csvPath := filepath.Join(dir, "crawl.csv")
	sink, err := NewCSVSink(csvPath)
	require.NoError(t, err)

	py := testRepo(t, "zophie")
	py.Language = "Python"
	notebook := testRepo(t, "plots")
	notebook.Language = "Jupyter Notebook"
	kt := testRepo(t, "droid")
	kt.Language = "Kotlin"
	goRepo := testRepo(t, "crawler-lab")

	require.NoError(t, sink.Append(ctx, py))
	require.NoError(t, sink.Append(ctx, notebook))
	require.NoError(t, sink.Append(ctx, kt))
	require.NoError(t, sink.Append(ctx, goRepo))
	require.NoError(t, sink.Close())

	var summary strings.Builder
	err = Report(csvPath, dir, &summary)
	require.NoError(t, err)

	require.Contains(t, summary.String(), "Python")
	require.Contains(t, summary.String(), "Kotlin")
	require.Contains(t, summary.String(), "Total")

	pyContents, err := os.ReadFile(filepath.Join(dir, "Python-Projects.md"))
	require.NoError(t, err)
	require.Contains(t, string(pyContents), "zophie")
	require.Contains(t, string(pyContents), "plots")
	require.NotContains(t, string(pyContents), "droid")

	ktContents, err := os.ReadFile(filepath.Join(dir, "Kotlin-Projects.md"))
	require.NoError(t, err)
	require.Contains(t, string(ktContents), "droid")

	// buckets with no matching language still produce an empty file
	phpContents, err := os.ReadFile(filepath.Join(dir, "PHP-Projects.md"))
	require.NoError(t, err)
	require.Empty(t, phpContents)
}

func TestReportRejectsForeignCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0644))

	err := Report(path, dir, &strings.Builder{})
	require.Error(t, err)
}
