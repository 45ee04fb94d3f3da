// Package fetch implements the Fetcher interface over a cookie session.
// One HTTPFetcher is one browser-like session: cookies set by a login
// response are sent on every later request. Requests are sequential and
// never retried.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/coursebuild/core"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "coursebuild/1.0"
)

// StatusError reports a non-2xx response. The body is still available in
// Result for callers that want to inspect it.
type StatusError struct {
	URL        string
	StatusCode int
	Result     *core.FetchResult
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Options configures an HTTPFetcher. Zero values select defaults.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64 // 0 = unlimited
}

// HTTPFetcher fetches pages via HTTP with a persistent cookie jar.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// New creates an HTTPFetcher with its own cookie session.
func New(opts Options) (*HTTPFetcher, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout, Jar: jar},
		userAgent: userAgent,
		limiter:   rate.NewLimiter(limit, 1),
	}, nil
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return f.do(req)
}

// PostForm submits form values and returns the page the server lands on
// after redirects.
func (f *HTTPFetcher) PostForm(ctx context.Context, target string, form url.Values) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *HTTPFetcher) do(req *http.Request) (*core.FetchResult, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("waiting to fetch %s: %w", req.URL, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	result := &core.FetchResult{
		URL:        req.URL.String(),
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: result.URL, StatusCode: resp.StatusCode, Result: result}
	}
	return result, nil
}
