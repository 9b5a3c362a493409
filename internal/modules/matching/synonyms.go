package matching

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

// DefaultSynonyms maps a normalised keyword to its equivalent surface forms.
// Expansion is one level deep: synonyms of synonyms are not followed.
var DefaultSynonyms = map[string][]string{
	"питон":        {"python"},
	"дистанционно": {"удаленно", "удалённо", "remote"},
	"удалённо":     {"удаленно", "дистанционно", "remote"},
	"удаленно":     {"удалённо", "дистанционно", "remote"},
	"без опыта":    {"junior", "начинающий", "intern"},
	"офис":         {"офисе", "офиса"},
	"гибрид":       {"гибридно", "hybrid"},
	"стажировка":   {"internship", "стажёр"},
	"зарплата":     {"оплата", "salary", "зп"},
	"fullstack":    {"full stack", "фулстек"},
	"backend":      {"бэкенд", "бекенд"},
	"frontend":     {"фронтенд"},
}

// Normalize composes, lower-cases and trims s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// Expander expands keywords into their synonym sets.
// It is immutable after construction and safe for concurrent use.
type Expander struct {
	table map[string][]string
}

// NewExpander builds an expander from DefaultSynonyms overlaid with extra.
// Entries in extra replace built-in entries with the same key.
func NewExpander(extra map[string][]string) *Expander {
	table := make(map[string][]string, len(DefaultSynonyms)+len(extra))
	for _, source := range []map[string][]string{DefaultSynonyms, extra} {
		for word, synonyms := range source {
			key := Normalize(word)
			if key == "" {
				continue
			}
			table[key] = lo.Uniq(lo.FilterMap(synonyms, func(s string, _ int) (string, bool) {
				s = Normalize(s)
				return s, s != "" && s != key
			}))
		}
	}
	return &Expander{table: table}
}

// Expand returns the normalised word followed by its synonyms.
// Unknown words expand to themselves only.
func (e *Expander) Expand(word string) []string {
	w := Normalize(word)
	return lo.Uniq(append([]string{w}, e.table[w]...))
}
