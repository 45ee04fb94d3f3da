package slots

import (
	"testing"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoWeekPlan = `<h1>Week 1: Intro</h1>
<h3>Overview</h3><p>O1</p>
<h4>This Week's Learning Goals</h4><ul><li>g</li></ul>
<h4>Key Topics for the Week</h4><p>T</p>
<h4>Resources</h4><p>R1</p><p>R2</p>
<h4>Significance</h4><p>S</p>
<h4>What's Next?</h4><p>N</p>
<h3>Introduction</h3><p>discussion</p>
<h1>Week 2 -   More</h1>
<h3>Overview</h3><p>O2</p>`

func extract(t *testing.T, raw string) []core.Week {
	t.Helper()
	doc, err := document.Parse(raw)
	require.NoError(t, err)
	weeks, err := ExtractWeeks(doc)
	require.NoError(t, err)
	return weeks
}

func TestExtractWeeks(t *testing.T) {
	weeks := extract(t, twoWeekPlan)
	require.Len(t, weeks, 2)

	w1 := weeks[0]
	assert.Equal(t, "Week 1: Intro", w1.Label)
	assert.Equal(t, "<p>O1</p>", w1.Overview)
	assert.Equal(t, "<ul><li>g</li></ul>", w1.LearningGoals)
	assert.Equal(t, "<p>T</p>", w1.KeyTopics)
	assert.Equal(t, "<p>R1</p><p>R2</p>", w1.Resources)
	assert.Equal(t, "<p>S</p>", w1.Significance)
	assert.Equal(t, "<p>N</p>", w1.WhatsNext)

	w2 := weeks[1]
	assert.Equal(t, "Week 2 - More", w2.Label)
	assert.Equal(t, "<p>O2</p>", w2.Overview)
	assert.Empty(t, w2.LearningGoals)
	assert.Empty(t, w2.WhatsNext)
}

func TestExtractWeeks_StopRuleExcludesNextHeading(t *testing.T) {
	weeks := extract(t, `<h1>Week 1:</h1><h3>Overview</h3><p>o</p><h4>LG</h4><p>l</p><h4>KT</h4><p>k</p><h4>Resources</h4><p>r</p><div>d</div><h3>Other</h3><p>after</p>`)
	require.Len(t, weeks, 1)

	assert.Equal(t, "<p>r</p><div>d</div>", weeks[0].Resources)
	assert.NotContains(t, weeks[0].Resources, "Other")
	assert.NotContains(t, weeks[0].Resources, "after")
}

func TestExtractWeeks_MissingHeadingEmptiesRestOfWeek(t *testing.T) {
	weeks := extract(t, `<h1>Week 1: A</h1><h4>Resources</h4><p>x</p><h1>Week 2: B</h1><h3>Overview</h3><p>o2</p>`)
	require.Len(t, weeks, 2)

	for _, id := range core.SectionOrder {
		assert.Empty(t, weeks[0].Section(id), "week 1 %s", id)
	}
	assert.Equal(t, "<p>o2</p>", weeks[1].Overview)
}

func TestExtractWeeks_SiblingBounded(t *testing.T) {
	weeks := extract(t, `<h1>Week 1: A</h1><div><h3>Overview</h3><p>inside</p></div><p>outside</p>`)
	require.Len(t, weeks, 1)
	assert.Equal(t, "<p>inside</p>", weeks[0].Overview)
}

func TestExtractWeeks_NoWeeks(t *testing.T) {
	assert.Empty(t, extract(t, `<h3>Overview</h3><p>x</p>`))
}

func TestLenientFiller(t *testing.T) {
	weeks := []core.Week{{Overview: "<p>Hi</p>"}}
	tpl := "A [contentOverview1] B [contentOverview2] C [contentWLG1] D"

	out, err := LenientFiller{}.Fill(tpl, weeks)
	require.NoError(t, err)
	assert.Equal(t, "A <p>Hi</p> B [contentOverview2] C  D", out)
}

func TestLenientFiller_AllSlots(t *testing.T) {
	weeks := []core.Week{
		{Overview: "o1", LearningGoals: "g1", KeyTopics: "t1", Resources: "r1", Significance: "s1", WhatsNext: "n1"},
		{Overview: "o2"},
	}
	tpl := "[contentOverview1]|[contentWLG1]|[contentTopics1]|[contentResources1]|[contentSignificance1]|[contentWhatsNext1]|[contentOverview2]"

	out, err := LenientFiller{}.Fill(tpl, weeks)
	require.NoError(t, err)
	assert.Equal(t, "o1|g1|t1|r1|s1|n1|o2", out)
}

func TestLenientFiller_FragmentsAreNotResubstituted(t *testing.T) {
	weeks := []core.Week{{Overview: "see [contentWLG1]", LearningGoals: "goals"}}

	out, err := LenientFiller{}.Fill("[contentOverview1] / [contentWLG1]", weeks)
	require.NoError(t, err)
	assert.Equal(t, "see [contentWLG1] / goals", out)
}

func TestStrictFiller(t *testing.T) {
	t.Run("unfilled placeholders", func(t *testing.T) {
		out, err := StrictFiller{}.Fill("[contentOverview1][contentOverview2]", []core.Week{{Overview: "x"}})
		assert.ErrorIs(t, err, ErrUnfilledSlots)
		assert.Contains(t, err.Error(), "[contentOverview2]")
		assert.Equal(t, "x[contentOverview2]", out)
	})

	t.Run("unused weeks", func(t *testing.T) {
		_, err := StrictFiller{}.Fill("[contentOverview1]", []core.Week{{}, {}})
		assert.ErrorIs(t, err, ErrUnusedWeeks)
	})

	t.Run("zero-padded week index", func(t *testing.T) {
		out, err := StrictFiller{}.Fill("[contentOverview1][contentOverview01]", []core.Week{{Overview: "x"}})
		assert.ErrorIs(t, err, ErrUnfilledSlots)
		assert.Contains(t, err.Error(), "[contentOverview01]")
		assert.Equal(t, "x[contentOverview01]", out)
	})

	t.Run("exact match", func(t *testing.T) {
		out, err := StrictFiller{}.Fill("[contentTopics1]", []core.Week{{KeyTopics: "t"}})
		require.NoError(t, err)
		assert.Equal(t, "t", out)
	})
}

func TestPlaceholdersAndUnfilled(t *testing.T) {
	tpl := "[contentWLG2] x [contentOverview1] [contentWLG2] [contentOther1] [contentWhatsNext10]"

	assert.Equal(t, []string{"[contentWLG2]", "[contentOverview1]", "[contentWhatsNext10]"}, Placeholders(tpl))
	assert.Equal(t, []string{"[contentWLG2]", "[contentWhatsNext10]"}, Unfilled(tpl, 1))
	assert.Empty(t, Unfilled(tpl, 10))
	assert.Equal(t, []string{"[contentWLG02]"}, Unfilled("[contentWLG2][contentWLG02]", 2))
}

func TestToken(t *testing.T) {
	assert.Equal(t, "[contentWLG2]", Token("WLG", 2))
}

func TestMerge(t *testing.T) {
	tpl := `<div>[contentOverview1]</div><div>[contentResources1]</div><div>[contentOverview2]</div><div>[contentOverview3]</div>`

	res, err := Merge(twoWeekPlan, tpl, LenientFiller{})
	require.NoError(t, err)

	assert.Len(t, res.Weeks, 2)
	assert.Equal(t, `<div><p>O1</p></div><div><p>R1</p><p>R2</p></div><div><p>O2</p></div><div>[contentOverview3]</div>`, res.HTML)
	assert.Equal(t, []string{"[contentOverview3]"}, res.Unfilled)
}

func TestMerge_MissingInput(t *testing.T) {
	_, err := Merge(twoWeekPlan, "", LenientFiller{})
	assert.ErrorIs(t, err, core.ErrMissingInput)

	_, err = Merge("", "[contentOverview1]", LenientFiller{})
	assert.ErrorIs(t, err, core.ErrMissingInput)
}
