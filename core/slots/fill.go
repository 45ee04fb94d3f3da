package slots

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
)

var (
	// ErrUnfilledSlots means the template has placeholders for weeks that
	// were not extracted from the plan.
	ErrUnfilledSlots = errors.New("template placeholders left unfilled")
	// ErrUnusedWeeks means weeks were extracted that the template has no
	// placeholders for.
	ErrUnusedWeeks = errors.New("extracted weeks have no placeholders")
)

// slotNames maps each section to the name used in its placeholder token.
var slotNames = []struct {
	id   core.SectionID
	slot string
}{
	{core.SectionOverview, "Overview"},
	{core.SectionLearningGoals, "WLG"},
	{core.SectionKeyTopics, "Topics"},
	{core.SectionResources, "Resources"},
	{core.SectionSignificance, "Significance"},
	{core.SectionWhatsNext, "WhatsNext"},
}

var placeholderRegex = regexp.MustCompile(`\[content(Overview|WLG|Topics|Resources|Significance|WhatsNext)(\d+)\]`)

// Token returns the placeholder for a slot name and 1-based week index,
// e.g. Token("WLG", 2) == "[contentWLG2]".
func Token(slot string, week int) string {
	return fmt.Sprintf("[content%s%d]", slot, week)
}

// Placeholders returns the distinct placeholder tokens in template, in
// order of first appearance.
func Placeholders(template string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range placeholderRegex.FindAllString(template, -1) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

// Unfilled returns the template placeholders that substitution leaves in
// place when weekCount weeks are available: out-of-range week indexes and
// non-canonical spellings such as [contentOverview01].
func Unfilled(template string, weekCount int) []string {
	var out []string
	for _, tok := range Placeholders(template) {
		m := placeholderRegex.FindStringSubmatch(tok)
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > weekCount || tok != Token(m[1], n) {
			out = append(out, tok)
		}
	}
	return out
}

// LenientFiller substitutes every token it has content for and leaves the
// rest verbatim. It never fails.
type LenientFiller struct{}

// Fill implements core.SlotFiller.
func (LenientFiller) Fill(template string, weeks []core.Week) (string, error) {
	return substitute(template, weeks), nil
}

// StrictFiller substitutes like LenientFiller but reports mismatches
// between the template's placeholders and the extracted weeks. The filled
// text is returned alongside the error.
type StrictFiller struct{}

// Fill implements core.SlotFiller.
func (StrictFiller) Fill(template string, weeks []core.Week) (string, error) {
	out := substitute(template, weeks)

	if left := Unfilled(template, len(weeks)); len(left) > 0 {
		return out, fmt.Errorf("%w: %s", ErrUnfilledSlots, strings.Join(left, ", "))
	}

	var unused []string
	for i := range weeks {
		if !hasWeekTokens(template, i+1) {
			unused = append(unused, strconv.Itoa(i+1))
		}
	}
	if len(unused) > 0 {
		return out, fmt.Errorf("%w: week %s", ErrUnusedWeeks, strings.Join(unused, ", "))
	}
	return out, nil
}

// substitute replaces all tokens in a single pass, so fragments that
// happen to contain token text are never substituted again.
func substitute(template string, weeks []core.Week) string {
	pairs := make([]string, 0, len(weeks)*len(slotNames)*2)
	for i := range weeks {
		for _, s := range slotNames {
			pairs = append(pairs, Token(s.slot, i+1), weeks[i].Section(s.id))
		}
	}
	if len(pairs) == 0 {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func hasWeekTokens(template string, week int) bool {
	for _, s := range slotNames {
		if strings.Contains(template, Token(s.slot, week)) {
			return true
		}
	}
	return false
}
