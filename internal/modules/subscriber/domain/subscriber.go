package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// MaxFilters is the number of filters a subscriber may hold.
const MaxFilters = 10

// MaxWordsPerFilter bounds the word count asked for when creating a filter.
const MaxWordsPerFilter = 10

// Subscriber is a user receiving notifications
type Subscriber struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Filters   []Filter  `json:"filters"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter matches a text when every group matches.
type Filter struct {
	Groups []Group `json:"groups"`
}

// Group matches when any of its keywords matches.
type Group []string

// NewFilter builds a filter with one single-keyword group per word.
func NewFilter(words ...string) Filter {
	return Filter{Groups: lo.Map(words, func(w string, _ int) Group {
		return Group{w}
	})}
}

// Words returns the first keyword of every group, in order.
func (f Filter) Words() []string {
	return lo.FilterMap(f.Groups, func(g Group, _ int) (string, bool) {
		return lo.FirstOr(g, ""), len(g) > 0
	})
}

// String renders the filter the way it is shown to the subscriber.
func (f Filter) String() string {
	return strings.Join(f.Words(), ", ")
}

// AppendWindow appends filter to filters and keeps only the newest max entries.
func AppendWindow(filters []Filter, filter Filter, max int) []Filter {
	out := append(append([]Filter{}, filters...), filter)
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}
