package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"ghcrawl/lib/htmlutil"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrUnexpectedPageShape = fmt.Errorf("listing page is missing its repository list, the markup changed or the session is not authenticated")

// fragment-level conditions, logged and skipped without failing the page
var errMissingTitle = errors.New("fragment is missing a title")
var errMissingLink = errors.New("fragment is missing a repository link")
var errMissingTimestamp = errors.New("fragment is missing an update timestamp")

const NoDescription = "No Description"

type Repo struct {
	Title       string
	Description string
	UpdatedAt   time.Time
	Language    string
	Link        string
}

// Page is one fetched slice of the repository listing. NextURL is
// empty when pagination is exhausted.
type Page struct {
	Repos   []Repo
	NextURL string
}

const listSelector = "#user-repositories-list"
const fragmentSelector = "ul li div.col-10.col-lg-9.d-inline-block"
const paginationSelector = "div.paginate-container a"

// ReposPage fetches one listing page and extracts its repository
// fragments in DOM order, plus the URL of the following page when a
// control labeled exactly "Next" is present.
func (c *Client) ReposPage(ctx context.Context, pageUrl string) (Page, error) {
	ctx, span := tracer.Start(ctx, "client:ReposPage")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing page")
		return Page{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing page html")
		return Page{}, err
	}

	// the url actually reached, after redirects, for resolving the
	// relative pagination href
	reached := c.BaseUrl
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		reached = res.RawResponse.Request.URL
	}

	return parseReposPage(ctx, doc, reached)
}

func parseReposPage(ctx context.Context, doc *goquery.Document, reached *url.URL) (Page, error) {
	listing := doc.Find(listSelector)
	if listing.Length() == 0 {
		return Page{}, ErrUnexpectedPageShape
	}

	var page Page
	listing.Find(fragmentSelector).Each(func(i int, fragment *goquery.Selection) {
		repo, err := extractRepo(fragment)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed repository fragment", "index", i, "err", err)
			return
		}
		page.Repos = append(page.Repos, repo)
	})

	// only the anchor in the leading control position counts; a page
	// whose first pagination anchor reads anything but "Next" is the
	// last page
	anchors := htmlutil.GetAnchors(doc.Find(paginationSelector))
	if len(anchors) > 0 && anchors[0].Name == "Next" && anchors[0].Href != "" {
		next, err := reached.Parse(anchors[0].Href)
		if err == nil {
			page.NextURL = next.String()
		} else {
			slog.WarnContext(ctx, "failed to resolve next page url", "href", anchors[0].Href, "err", err)
		}
	}

	return page, nil
}

func extractRepo(fragment *goquery.Selection) (Repo, error) {
	titleAnchor := fragment.Find("h3 a")
	title := strings.TrimSpace(titleAnchor.Text())
	if title == "" {
		return Repo{}, errMissingTitle
	}

	href := titleAnchor.AttrOr("href", "")
	if href == "" {
		return Repo{}, errMissingLink
	}

	datetime, ok := fragment.Find("relative-time").Attr("datetime")
	if !ok {
		return Repo{}, errMissingTimestamp
	}
	updatedAt, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		return Repo{}, fmt.Errorf("%w: %s", errMissingTimestamp, err)
	}

	description := NoDescription
	if descNode := fragment.Find("p[itemprop=description]"); descNode.Length() > 0 {
		description = strings.TrimSpace(descNode.Text())
	}

	language := strings.TrimSpace(fragment.Find("span[itemprop=programmingLanguage]").Text())

	return Repo{
		Title:       title,
		Description: description,
		UpdatedAt:   updatedAt,
		Language:    language,
		Link:        Host + href,
	}, nil
}
