// Package crawl — URL rules for Moodle activity links.
// Resolves hrefs against the Moodle base URL and recognises the activity
// modules the extractor understands.
package crawl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
)

var activityPathRegex = regexp.MustCompile(`^/mod/(hsuforum|assign)/view\.php$`)

// IsSameHost checks if the given URL is served by host.
func IsSameHost(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == host
}

// IsModuleLink reports whether rawURL points into Moodle's /mod/ tree.
func IsModuleLink(rawURL string) bool {
	return strings.Contains(rawURL, "/mod/")
}

// KindOf classifies an activity URL by its module path.
func KindOf(rawURL string) core.ActivityKind {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return core.ActivityOther
	}
	m := activityPathRegex.FindStringSubmatch(parsed.Path)
	if m == nil {
		return core.ActivityOther
	}
	if m[1] == "hsuforum" {
		return core.ActivityForum
	}
	return core.ActivityAssignment
}

// IsSectionActivity reports whether rawURL is a forum or assignment view
// page with a numeric id on host.
func IsSectionActivity(rawURL string, host string) bool {
	if !IsSameHost(rawURL, host) {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !activityPathRegex.MatchString(parsed.Path) {
		return false
	}
	id := parsed.Query().Get("id")
	if id == "" {
		return false
	}
	for _, ch := range id {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// ResolveURL resolves a potentially relative href against base.
// Non-navigable hrefs (mailto, javascript, fragments) resolve to "".
func ResolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return NormalizeURL(parsed.String())
	}
	return NormalizeURL(base.ResolveReference(parsed).String())
}

// NormalizeURL strips fragments for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	return parsed.String()
}
