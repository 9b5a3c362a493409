package matching

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"

	"github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
)

// Engine decides whether a text satisfies a filter.
//
// Matching is lexical substring containment on lower-cased text: a keyword
// "java" is found inside "javascript". Groups are AND'ed, keywords inside a
// group are OR'ed, and synonym variants of a keyword are OR'ed.
type Engine struct {
	expander *Expander
}

// NewEngine creates a match engine backed by expander.
func NewEngine(expander *Expander) *Engine {
	return &Engine{expander: expander}
}

// Expander returns the synonym expander used by the engine.
func (e *Engine) Expander() *Expander {
	return e.expander
}

// Matches reports whether every group of filter has a keyword variant
// occurring in text. A filter without groups matches any text.
func (e *Engine) Matches(text string, filter domain.Filter) bool {
	lowered := lowerText(text)
	for _, group := range filter.Groups {
		if !e.groupMatches(lowered, group) {
			return false
		}
	}
	return true
}

func (e *Engine) groupMatches(lowered string, group domain.Group) bool {
	for _, keyword := range group {
		for _, variant := range e.expander.Expand(keyword) {
			if variant != "" && strings.Contains(lowered, variant) {
				return true
			}
		}
	}
	return false
}

// MatchedVariants returns every keyword variant of filter that occurs in
// text, across all groups, without duplicates.
func (e *Engine) MatchedVariants(text string, filter domain.Filter) []string {
	lowered := lowerText(text)
	var found []string
	for _, group := range filter.Groups {
		for _, keyword := range group {
			found = append(found, lo.Filter(e.expander.Expand(keyword), func(variant string, _ int) bool {
				return variant != "" && strings.Contains(lowered, variant)
			})...)
		}
	}
	return lo.Uniq(found)
}

// Highlight HTML-escapes text and wraps every case-insensitive occurrence
// of the given variants in <b> tags. Variants are matched against the raw
// text, so they never land inside an escape sequence.
func Highlight(text string, variants []string) string {
	text = norm.NFC.String(text)
	patterns := lo.FilterMap(variants, func(v string, _ int) (string, bool) {
		return regexp.QuoteMeta(norm.NFC.String(v)), v != ""
	})
	if len(patterns) == 0 {
		return html.EscapeString(text)
	}
	// longest first so that "full stack" wins over "stack"
	sort.SliceStable(patterns, func(i, j int) bool {
		return len(patterns[i]) > len(patterns[j])
	})
	re, err := regexp.Compile("(?i)" + strings.Join(patterns, "|"))
	if err != nil {
		return html.EscapeString(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString("<b>")
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString("</b>")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

func lowerText(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}
