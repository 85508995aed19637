package fixtures

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/agentstation/feet/pkg/constants"
	"github.com/agentstation/feet/pkg/errors"
	"github.com/agentstation/feet/pkg/logging"
	"github.com/agentstation/feet/pkg/roster"
)

// Selectors of the competitions and grades pages.
const (
	gradesLinkSelector = `a[href*="junior-domestic"]`
	gradeLinkSelector  = `ul.sc-12ty7r5-0.hrILMC.sc-1vy00ws-2.dBMkSW a[href*="saturday"]`
)

// Client fetches grade pages from the fixtures site.
type Client struct {
	http            *http.Client
	competitionsURL string
	userAgent       string
	attempts        int
	backoff         time.Duration
	maxPageSize     int64
	logger          *zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCompetitionsURL sets the page that grade pages are discovered from.
func WithCompetitionsURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.competitionsURL = u
		}
	}
}

// WithRetry sets the number of attempts per page and the base backoff.
// The wait before attempt n+1 is n times backoff. Values <= 0 keep the defaults.
func WithRetry(attempts int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithMaxPageSize sets the largest page body accepted. Values <= 0 keep the default.
func WithMaxPageSize(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPageSize = n
		}
	}
}

// WithClientLogger sets the logger, overriding the one carried by the context.
func WithClientLogger(logger *zerolog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a Client for the association's competitions page.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:            &http.Client{Timeout: constants.FetchTimeout},
		competitionsURL: constants.CompetitionsURL,
		userAgent:       constants.UserAgent,
		attempts:        constants.MaxRetries,
		backoff:         constants.RetryBackoff,
		maxPageSize:     constants.MaxPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompetitionsURL returns the page grade pages are discovered from.
func (c *Client) CompetitionsURL() string {
	return c.competitionsURL
}

func (c *Client) log(ctx context.Context) *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// Fetch returns the body of u, retrying transport failures and retryable
// status codes with linear backoff.
func (c *Client) Fetch(ctx context.Context, u string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		body, err := c.fetchOnce(ctx, u)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var fe *errors.FetchError
		if !errors.As(err, &fe) || !fe.Retryable() || attempt == c.attempts {
			break
		}

		delay := min(time.Duration(attempt)*c.backoff, constants.MaxRetryBackoff)
		c.log(ctx).Warn().
			Err(err).
			Str("url", u).
			Int("attempt", attempt).
			Int("max_attempts", c.attempts).
			Dur("backoff", delay).
			Msg("Fetch failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.NewFetchError(u, 0, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.NewFetchError(u, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxPageSize))
		return nil, errors.NewFetchError(u, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxPageSize+1))
	if err != nil {
		return nil, errors.NewFetchError(u, 0, err)
	}
	if int64(len(body)) > c.maxPageSize {
		return nil, errors.NewFetchError(u, resp.StatusCode, errors.ErrPageTooLarge)
	}

	c.log(ctx).Debug().Str("url", u).Int("bytes", len(body)).Msg("Fetched page")
	return body, nil
}

func (c *Client) document(ctx context.Context, u string) (*goquery.Document, error) {
	body, err := c.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapParse("html", u, err)
	}
	return doc, nil
}

func resolve(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}

// GradesURL returns the grades page of the Saturday junior domestic
// competition: the last junior domestic link on the competitions page.
func (c *Client) GradesURL(ctx context.Context) (string, error) {
	doc, err := c.document(ctx, c.competitionsURL)
	if err != nil {
		return "", err
	}
	href, ok := doc.Find(gradesLinkSelector).Last().Attr("href")
	if !ok {
		return "", errors.NewNotFoundError("grades link", c.competitionsURL)
	}
	return resolve(c.competitionsURL, href)
}

// GradeURLs returns the fixture page of every Saturday grade.
func (c *Client) GradeURLs(ctx context.Context) ([]string, error) {
	gradesURL, err := c.GradesURL(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := c.document(ctx, gradesURL)
	if err != nil {
		return nil, err
	}

	var urls []string
	var resolveErr error
	doc.Find(gradeLinkSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		u, err := resolve(gradesURL, href)
		if err != nil {
			resolveErr = fmt.Errorf("grade link %q: %w", href, err)
			return false
		}
		if !slices.Contains(urls, u) {
			urls = append(urls, u)
		}
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	if len(urls) == 0 {
		return nil, errors.NewNotFoundError("grade links", gradesURL)
	}

	c.log(ctx).Info().Int("grades", len(urls)).Str("url", gradesURL).Msg("Discovered grade pages")
	return urls, nil
}

// Pages fetches and parses every grade page.
func (c *Client) Pages(ctx context.Context) ([]*Page, error) {
	urls, err := c.GradeURLs(ctx)
	if err != nil {
		return nil, err
	}

	pages := make([]*Page, 0, len(urls))
	for _, u := range urls {
		body, err := c.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		page, err := ParseGradePage(bytes.NewReader(body), u)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Scrape fetches every grade page and builds the roster and skip-list.
func (c *Client) Scrape(ctx context.Context) (*roster.Roster, []string, error) {
	pages, err := c.Pages(ctx)
	if err != nil {
		return nil, nil, err
	}
	return BuildRoster(pages)
}

// Download saves every grade page into dir for LoadDir and returns the paths written.
func (c *Client) Download(ctx context.Context, dir string) ([]string, error) {
	urls, err := c.GradeURLs(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	paths := make([]string, 0, len(urls))
	for i, u := range urls {
		body, err := c.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		p := filepath.Join(dir, pageName(i, u))
		if err := os.WriteFile(p, body, constants.FilePermissions); err != nil {
			return nil, errors.WrapIO("write", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// pageName keeps saved pages in discovery order.
func pageName(i int, u string) string {
	name := "grade"
	if parsed, err := url.Parse(u); err == nil {
		if base := path.Base(parsed.Path); base != "/" && base != "." {
			name = base
		}
	}
	return fmt.Sprintf("%02d-%s%s", i+1, name, PageExt)
}
