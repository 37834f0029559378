package github

import (
	"bytes"
	"context"
	"fmt"
	"ghcrawl/lib/telemetry"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/github")

// Host is the prefix used to absolutize repository links scraped from
// listing pages.
const Host = "https://github.com"

var ErrAuthTokenMissing = fmt.Errorf("could not find authenticity token on the login page")

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = Host
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/github/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// Login performs the form login handshake: fetch the login page, pull
// the anti-forgery token out of its hidden input, then submit the
// credentials to the form's action endpoint. The session lives in the
// client's cookie jar afterwards.
//
// A wrong password is not detected here; the first listing fetch will
// fail with ErrUnexpectedPageShape when the session never became
// authenticated.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/login")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	tokenInput := doc.Find("input[name=authenticity_token]")
	token := tokenInput.AttrOr("value", "")
	if token == "" {
		span.SetStatus(codes.Error, ErrAuthTokenMissing.Error())
		return ErrAuthTokenMissing
	}
	action := tokenInput.Closest("form").AttrOr("action", "/session")

	_, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"authenticity_token": token,
			"login":              username,
			"password":           password,
		}).
		Post(action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	return nil
}

// RepositoriesURL is the post-login entry point: the account's own
// source-repository listing.
func (c *Client) RepositoriesURL(username string) string {
	return fmt.Sprintf("/%s?tab=repositories&type=source", username)
}
