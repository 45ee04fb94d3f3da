// Package crawl discovers activity links on Moodle pages.
// Two sources are supported: the activities inside one course section and
// the grade items listed on the gradebook setup page. Discovery only reads
// already-fetched documents; fetching stays with the caller.
package crawl

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/coursebuild/core"
)

const untitledActivity = "Untitled Activity"

var (
	activityTitleRegex = regexp.MustCompile(`Activity\s+\d+\.\d+`)
	numberRegex        = regexp.MustCompile(`\d+`)

	linkSelector      = cascadia.MustCompile("a[href]")
	instanceName      = cascadia.MustCompile("span.instancename")
	gradeItemSelector = cascadia.MustCompile("a.gradeitemheader")
)

// SectionActivities returns the forum and assignment links inside a course
// section whose titles look like "Activity X.Y", ordered by the numbers in
// their titles.
func SectionActivities(section *goquery.Selection, base *url.URL) []core.Activity {
	queue := NewQueue[core.Activity]()

	section.FindMatcher(linkSelector).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		resolved := ResolveURL(href, base)
		if resolved == "" || !IsSectionActivity(resolved, base.Host) {
			return
		}

		title := activityTitle(link)
		if !activityTitleRegex.MatchString(title) {
			return
		}
		queue.Add(resolved, core.Activity{Title: title, URL: resolved, Kind: KindOf(resolved)})
	})

	activities := queue.All()
	slices.SortStableFunc(activities, func(a, b core.Activity) int {
		return slices.Compare(titleNumbers(a.Title), titleNumbers(b.Title))
	})
	return activities
}

// GradebookActivities returns every a.gradeitemheader link on the gradebook
// setup page, de-duplicated in page order.
func GradebookActivities(doc *goquery.Document, base *url.URL) []core.Activity {
	queue := NewQueue[core.Activity]()

	doc.FindMatcher(gradeItemSelector).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		resolved := ResolveURL(href, base)
		if resolved == "" {
			return
		}
		queue.Add(resolved, core.Activity{
			Title: collapse(link.Text()),
			URL:   resolved,
			Kind:  KindOf(resolved),
		})
	})
	return queue.All()
}

// FirstModuleLink returns the first link into /mod/ on the page.
func FirstModuleLink(doc *goquery.Document, base *url.URL) (string, bool) {
	var found string
	doc.FindMatcher(linkSelector).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if !IsModuleLink(href) {
			return true
		}
		found = ResolveURL(href, base)
		return found == ""
	})
	return found, found != ""
}

// activityTitle reads the span.instancename inside the link, or beside it.
func activityTitle(link *goquery.Selection) string {
	name := link.FindMatcher(instanceName).First()
	if name.Length() == 0 {
		name = link.Parent().FindMatcher(instanceName).First()
	}
	if name.Length() == 0 {
		return untitledActivity
	}
	return collapse(name.Text())
}

func titleNumbers(title string) []int {
	var nums []int
	for _, m := range numberRegex.FindAllString(title, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
