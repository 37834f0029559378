package repocrawl

import (
	"context"
	"fmt"
	"ghcrawl/lib/scrapers/github"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/repocrawl")

type Stats struct {
	Pages   int
	Records int
}

// Crawl logs into the account, then walks the paginated repository
// listing strictly sequentially: every record on a page is handed to
// the sink, in DOM order, before the next page is fetched. Any fetch,
// page-shape or write failure aborts the run; records already flushed
// by the sink stay durable.
func Crawl(ctx context.Context, client *github.Client, username, password string, sink Sink) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	var stats Stats

	err := client.Login(ctx, username, password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return stats, fmt.Errorf("login: %w", err)
	}

	pageUrl := client.RepositoriesURL(username)
	for pageUrl != "" {
		page, err := client.ReposPage(ctx, pageUrl)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "listing fetch failed")
			return stats, fmt.Errorf("fetch %s: %w", pageUrl, err)
		}

		for _, repo := range page.Repos {
			err = sink.Append(ctx, repo)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "record write failed")
				return stats, fmt.Errorf("write record %q: %w", repo.Title, err)
			}
			stats.Records++
		}

		stats.Pages++
		slog.InfoContext(ctx, "crawled listing page",
			"url", pageUrl,
			"records", len(page.Repos),
			"has_next", page.NextURL != "",
		)
		pageUrl = page.NextURL
	}

	return stats, nil
}
