package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reshetovitsme/devradar/internal/modules/subscriber/domain"
)

func TestEngine_Matches(t *testing.T) {
	engine := NewEngine(NewExpander(nil))

	tests := []struct {
		name   string
		text   string
		filter domain.Filter
		want   bool
	}{
		{
			name:   "single group hit",
			text:   "Looking for a Python developer",
			filter: domain.NewFilter("python"),
			want:   true,
		},
		{
			name:   "single group miss",
			text:   "Looking for a Go developer",
			filter: domain.NewFilter("python"),
			want:   false,
		},
		{
			name:   "all groups must match",
			text:   "Python developer, office only",
			filter: domain.NewFilter("python", "remote"),
			want:   false,
		},
		{
			name:   "groups satisfied through synonyms",
			text:   "Ищем Python разработчика, удаленно",
			filter: domain.Filter{Groups: []domain.Group{{"python"}, {"удалённо"}}},
			want:   true,
		},
		{
			name:   "synonym key in filter, surface form in text",
			text:   "Вакансия: нужен PYTHON",
			filter: domain.NewFilter("питон"),
			want:   true,
		},
		{
			name:   "any keyword of a group",
			text:   "Senior Golang engineer",
			filter: domain.Filter{Groups: []domain.Group{{"rust", "golang"}}},
			want:   true,
		},
		{
			name:   "keyword absent from synonym table",
			text:   "Kubernetes operator wanted",
			filter: domain.NewFilter("kubernetes"),
			want:   true,
		},
		{
			name:   "substring inside a longer word",
			text:   "JavaScript frontend",
			filter: domain.NewFilter("java"),
			want:   true,
		},
		{
			name:   "empty filter matches any text",
			text:   "anything",
			filter: domain.Filter{},
			want:   true,
		},
		{
			name:   "empty keyword never matches",
			text:   "anything",
			filter: domain.NewFilter(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Matches(tt.text, tt.filter))
		})
	}
}

func TestEngine_MatchedVariants(t *testing.T) {
	engine := NewEngine(NewExpander(nil))
	filter := domain.Filter{Groups: []domain.Group{{"python"}, {"удалённо"}, {"питон"}}}

	got := engine.MatchedVariants("Python dev, удаленно или remote", filter)
	assert.Equal(t, []string{"python", "удаленно", "remote"}, got)

	assert.Empty(t, engine.MatchedVariants("nothing here", filter))
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		variants []string
		want     string
	}{
		{
			name:     "case-insensitive wrap keeps original casing",
			text:     "Ищем Python разработчика, Удаленно",
			variants: []string{"python", "удаленно"},
			want:     "Ищем <b>Python</b> разработчика, <b>Удаленно</b>",
		},
		{
			name:     "html is escaped",
			text:     "<script>go & python</script>",
			variants: []string{"python"},
			want:     "&lt;script&gt;go &amp; <b>python</b>&lt;/script&gt;",
		},
		{
			name:     "longest variant wins",
			text:     "full stack role",
			variants: []string{"stack", "full stack"},
			want:     "<b>full stack</b> role",
		},
		{
			name:     "regexp metacharacters are literal",
			text:     "C++ and C#",
			variants: []string{"c++"},
			want:     "<b>C++</b> and C#",
		},
		{
			name:     "entity names in variants do not touch escapes",
			text:     "R&D team, senior QA & devops",
			variants: []string{"amp"},
			want:     "R&amp;D team, senior QA &amp; devops",
		},
		{
			name:     "tag names in variants do not touch escapes",
			text:     "Go <senior>",
			variants: []string{"lt", "gt"},
			want:     "Go &lt;senior&gt;",
		},
		{
			name:     "variant with special characters is escaped inside the tag",
			text:     "Join our R&D lab <remote>",
			variants: []string{"r&d", "remote"},
			want:     "Join our <b>R&amp;D</b> lab &lt;<b>remote</b>&gt;",
		},
		{
			name:     "no variants",
			text:     "a < b",
			variants: nil,
			want:     "a &lt; b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.variants))
		})
	}
}
