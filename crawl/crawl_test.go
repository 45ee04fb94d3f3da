package crawl

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base, _ = url.Parse("https://online.example.edu/course/view.php?id=7")

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, core.ActivityForum, KindOf("https://h/mod/hsuforum/view.php?id=1"))
	assert.Equal(t, core.ActivityAssignment, KindOf("/mod/assign/view.php?id=2"))
	assert.Equal(t, core.ActivityOther, KindOf("/mod/quiz/view.php?id=3"))
}

func TestIsSameHost(t *testing.T) {
	assert.True(t, IsSameHost("https://online.example.edu/course/view.php?id=1", "online.example.edu"))
	assert.False(t, IsSameHost("https://online.example.edu:8443/course/view.php", "online.example.edu"))
	assert.False(t, IsSameHost("/course/view.php", "online.example.edu"))
	assert.False(t, IsSameHost("://bad", "online.example.edu"))
}

func TestIsSectionActivity(t *testing.T) {
	host := "online.example.edu"
	tests := map[string]bool{
		"https://online.example.edu/mod/hsuforum/view.php?id=12": true,
		"https://online.example.edu/mod/assign/view.php?id=9":    true,
		"https://online.example.edu/mod/assign/view.php?id=x9":   false,
		"https://online.example.edu/mod/assign/view.php":         false,
		"https://online.example.edu/mod/page/view.php?id=4":      false,
		"https://elsewhere.edu/mod/assign/view.php?id=9":         false,
	}
	for raw, want := range tests {
		assert.Equal(t, want, IsSectionActivity(raw, host), raw)
	}
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://online.example.edu/mod/assign/view.php?id=3", ResolveURL("/mod/assign/view.php?id=3#top", base))
	assert.Equal(t, "", ResolveURL("mailto:a@b.c", base))
	assert.Equal(t, "", ResolveURL("#frag", base))
	assert.Equal(t, "", ResolveURL("  ", base))
}

func TestQueue(t *testing.T) {
	q := NewQueue[string]()
	assert.True(t, q.Add("a", "first"))
	assert.False(t, q.Add("a", "again"))
	assert.True(t, q.Add("b", "second"))

	assert.Equal(t, 2, q.Len())
	var got []string
	for q.HasNext() {
		got = append(got, q.Next())
	}
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestSectionActivities(t *testing.T) {
	doc := parse(t, `<li id="section-1">
<div><a href="/mod/assign/view.php?id=30"><span class="instancename">Activity 1.10 Paper</span></a></div>
<div><a href="/mod/hsuforum/view.php?id=20"><span class="instancename">Activity 1.2 Discussion</span></a></div>
<div><span class="instancename">Activity 1.1 Intro</span><a href="https://online.example.edu/mod/hsuforum/view.php?id=10">open</a></div>
<div><a href="/mod/hsuforum/view.php?id=20"><span class="instancename">Activity 1.2 Discussion</span></a></div>
<div><a href="/mod/assign/view.php?id=40"><span class="instancename">Reading Check</span></a></div>
<div><a href="/mod/page/view.php?id=50"><span class="instancename">Activity 1.3 Page</span></a></div>
</li>`)

	got := SectionActivities(doc.Find("li"), base)
	require.Len(t, got, 3)
	assert.Equal(t, core.Activity{
		Title: "Activity 1.1 Intro",
		URL:   "https://online.example.edu/mod/hsuforum/view.php?id=10",
		Kind:  core.ActivityForum,
	}, got[0])
	assert.Equal(t, "Activity 1.2 Discussion", got[1].Title)
	assert.Equal(t, "Activity 1.10 Paper", got[2].Title)
	assert.Equal(t, core.ActivityAssignment, got[2].Kind)
}

func TestGradebookActivities(t *testing.T) {
	doc := parse(t, `<table>
<tr><td><a class="gradeitemheader" href="/mod/assign/view.php?id=1"> Essay  One </a></td></tr>
<tr><td><a class="gradeitemheader" href="/mod/quiz/view.php?id=2">Quiz</a></td></tr>
<tr><td><a class="gradeitemheader" href="/mod/assign/view.php?id=1">Essay One</a></td></tr>
<tr><td><a class="gradeitemheader">No link</a></td></tr>
</table>`)

	got := GradebookActivities(doc, base)
	require.Len(t, got, 2)
	assert.Equal(t, "Essay One", got[0].Title)
	assert.Equal(t, core.ActivityAssignment, got[0].Kind)
	assert.Equal(t, "https://online.example.edu/mod/quiz/view.php?id=2", got[1].URL)
	assert.Equal(t, core.ActivityOther, got[1].Kind)
}

func TestFirstModuleLink(t *testing.T) {
	doc := parse(t, `<a href="/grade/report">r</a><a href="/mod/forum/view.php?id=5">f</a><a href="/mod/assign/view.php?id=6">a</a>`)
	link, ok := FirstModuleLink(doc, base)
	require.True(t, ok)
	assert.Equal(t, "https://online.example.edu/mod/forum/view.php?id=5", link)

	_, ok = FirstModuleLink(parse(t, `<a href="/course">c</a>`), base)
	assert.False(t, ok)
}
