// Package moodle drives an authenticated Moodle session: login, course
// section extraction and activity extraction. All requests go through one
// Session sequentially; a failed login aborts, a failed page degrades to a
// placeholder paragraph.
package moodle

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/extract"
	"github.com/gaurav-prasanna/coursebuild/logger"
)

var (
	// ErrLoginFailed is returned when Moodle does not accept the credentials.
	ErrLoginFailed = errors.New("moodle login failed")
	// ErrNoActivities is returned when a course lists no activity links.
	ErrNoActivities = errors.New("no activities found")
)

// Session is a cookie-carrying HTTP session.
type Session interface {
	core.Fetcher
	PostForm(ctx context.Context, url string, form url.Values) (*core.FetchResult, error)
}

// Client talks to one Moodle site.
type Client struct {
	base      *url.URL
	session   Session
	extractor *extract.HTMLExtractor
	log       *logger.Logger
}

// NewClient creates a Client for the site at baseURL.
func NewClient(baseURL string, session Session, log *logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		base:      base,
		session:   session,
		extractor: extract.New(),
		log:       log,
	}, nil
}

// LoginURL is the site's login form.
func (c *Client) LoginURL() string {
	return c.page(nil, "login", "index.php")
}

// CourseURL is the course home page listing all sections.
func (c *Client) CourseURL(courseID string) string {
	return c.page(url.Values{"id": {courseID}}, "course", "view.php")
}

// GradebookURL is the gradebook setup page listing every graded activity.
func (c *Client) GradebookURL(courseID string) string {
	return c.page(url.Values{"id": {courseID}}, "grade", "edit", "tree", "index.php")
}

func (c *Client) page(query url.Values, elem ...string) string {
	u := c.base.JoinPath(elem...)
	u.RawQuery = query.Encode()
	return u.String()
}

// Login authenticates the session. The login page's logintoken, when
// present, is posted back with the credentials.
//
// Moodle answers a bad login with 200 and the login form again, so failure
// is detected heuristically: the final URL still mentions "login" or the
// page says "Invalid login".
func (c *Client) Login(ctx context.Context, username, password string) error {
	loginURL := c.LoginURL()

	page, err := c.session.Fetch(ctx, loginURL)
	if err != nil {
		return fmt.Errorf("loading login page: %w", err)
	}

	form := url.Values{"username": {username}, "password": {password}}
	doc, err := c.extractor.Parse(page.HTML)
	if err != nil {
		return fmt.Errorf("reading login page: %w", err)
	}
	if token, ok := doc.Find(`input[name="logintoken"]`).First().Attr("value"); ok {
		form.Set("logintoken", token)
	}

	res, err := c.session.PostForm(ctx, loginURL, form)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	if strings.Contains(res.FinalURL, "login") || strings.Contains(res.HTML, "Invalid login") {
		c.log.Warn("login rejected", "final_url", res.FinalURL)
		return ErrLoginFailed
	}

	c.log.Info("logged in", "site", c.base.Host)
	return nil
}

// fetchPage returns the page body, or ok=false when it could not be
// fetched. Only context cancellation is reported as an error.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (string, bool, error) {
	res, err := c.session.Fetch(ctx, pageURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		c.log.Warn("fetch failed", "url", pageURL, "error", err)
		return "", false, nil
	}
	return res.HTML, true, nil
}
