package heading

import (
	"testing"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *document.Document {
	t.Helper()
	doc, err := document.Parse(raw)
	require.NoError(t, err)
	return doc
}

func mustTemplate(t *testing.T, raw string) Template {
	t.Helper()
	tpl, err := BuildTemplate(mustParse(t, raw), LastWins)
	require.NoError(t, err)
	return tpl
}

func TestIsWeekHeader(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Week 1: Intro", true},
		{"week 10 - overview", true},
		{"  Week 2:", true},
		{"WEEK 3 -", true},
		{"week 4:", true},
		{"Weekly review", false},
		{"Week: intro", false},
		{"Week 1 Intro", false},
		{"The Week 1: intro", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWeekHeader(tt.text))
		})
	}
}

func TestClassify(t *testing.T) {
	tpl := Template{
		"overview":         "h3",
		"what's next?":     "h4",
		"week 1: overview": "h3",
	}

	tests := []struct {
		name    string
		text    string
		wantTag string
		wantOK  bool
	}{
		{"week header", "Week 5: Ethics", "h1", true},
		{"week header beats template", "Week 1: Overview", "h1", true},
		{"template match", "  Overview ", "h3", true},
		{"curly quote template match", "What’s Next?", "h4", true},
		{"no match", "Some paragraph", "", false},
		{"empty", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := Classify(tt.text, tpl)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}

func TestBuildTemplate_Policies(t *testing.T) {
	raw := `<h3>Resources</h3><h4>Resources</h4><h2></h2><p>Overview</p>`

	last, err := BuildTemplate(mustParse(t, raw), LastWins)
	require.NoError(t, err)
	assert.Equal(t, Template{"resources": "h4"}, last)

	first, err := BuildTemplate(mustParse(t, raw), FirstWins)
	require.NoError(t, err)
	assert.Equal(t, Template{"resources": "h3"}, first)

	_, err = BuildTemplate(mustParse(t, raw), RejectConflicts)
	assert.ErrorIs(t, err, ErrConflictingHeading)
}

func TestBuildTemplate_RejectConflictsAllowsSameTagDuplicates(t *testing.T) {
	tpl, err := BuildTemplate(mustParse(t, DefaultTemplate), RejectConflicts)
	require.NoError(t, err)
	assert.Equal(t, "h3", tpl["introduction"])
	assert.Equal(t, "h4", tpl["this week's learning goals"])
	assert.Equal(t, "h4", tpl["what's next?"])
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("first")
	require.NoError(t, err)
	assert.Equal(t, FirstWins, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, LastWins, p)

	_, err = ParsePolicy("random")
	assert.Error(t, err)
}

func TestRetag_RenamesInPlace(t *testing.T) {
	design := mustParse(t, `<p class="c1">Overview</p><p>Week 2 - Detail</p><h2 id="r">Resources</h2><p>Just text</p>`)
	tpl := mustTemplate(t, `<h3>Overview</h3><h4>Resources</h4>`)

	renamed := Retag(design, tpl)
	assert.Equal(t, 3, renamed)

	out, err := design.HTML()
	require.NoError(t, err)
	assert.Equal(t, `<h3 class="c1">Overview</h3><h1>Week 2 - Detail</h1><h4 id="r">Resources</h4><p>Just text</p>`, out)
}

func TestRetag_Idempotent(t *testing.T) {
	raw := `<p>Week 1: Start</p><p>Overview</p><p>body</p><h2>Key Topics for the Week</h2><ul><li>x</li></ul><p>What’s Next?</p>`
	tpl := mustTemplate(t, DefaultTemplate)

	design := mustParse(t, raw)
	Retag(design, tpl)
	once, err := design.HTML()
	require.NoError(t, err)

	again := Retag(design, tpl)
	twice, err := design.HTML()
	require.NoError(t, err)

	assert.Zero(t, again)
	assert.Equal(t, once, twice)

	reparsed := mustParse(t, once)
	Retag(reparsed, tpl)
	thrice, err := reparsed.HTML()
	require.NoError(t, err)
	assert.Equal(t, once, thrice)
}

func TestRetag_EndToEndScenario(t *testing.T) {
	design := mustParse(t, `<h1>Week 1: Overview</h1><h3>Overview</h3><p>text</p><h1>Week 2 - Detail</h1>`)
	tpl := mustTemplate(t, `<h3>Overview</h3>`)

	Retag(design, tpl)

	out, err := design.HTML()
	require.NoError(t, err)
	assert.Equal(t, `<h1>Week 1: Overview</h1><h3>Overview</h3><p>text</p><h1>Week 2 - Detail</h1>`, out)
}

func TestFormat(t *testing.T) {
	res, err := Format(
		`<p>Week 1: Don’t Panic</p><p>Overview</p><ul><li>a</li></ul><ul><li>b</li></ul>`,
		DefaultTemplate,
		Options{MergeLists: true},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Retagged)
	assert.Equal(t, 1, res.ListsMerged)
	assert.NotContains(t, res.HTML, "’")
	assert.Contains(t, res.HTML, "<h1>Week 1: Don't Panic</h1>")
	assert.Contains(t, res.HTML, "<h3>Overview</h3>")
	assert.Contains(t, res.HTML, "<ul><li>a</li><li>b</li></ul>")
}

func TestFormat_KeepsLeadingStyleAndMeta(t *testing.T) {
	res, err := Format(
		`<style>.c1{color:red}</style><meta charset="utf-8"><p class="c1">Overview</p><p>body</p>`,
		DefaultTemplate,
		Options{},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Retagged)
	assert.Equal(t, `<style>.c1{color:red}</style><meta charset="utf-8"/><h3 class="c1">Overview</h3><p>body</p>`, res.HTML)
}

func TestFormat_MissingInput(t *testing.T) {
	_, err := Format("", DefaultTemplate, Options{})
	assert.ErrorIs(t, err, core.ErrMissingInput)

	_, err = Format("<p>x</p>", "  ", Options{})
	assert.ErrorIs(t, err, core.ErrMissingInput)
}
