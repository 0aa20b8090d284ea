package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubjectConventional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
		body    string
		want    Conventional
	}{
		{
			name:    "simple feat",
			subject: "feat: add widget",
			want:    Conventional{Type: "feat", Description: "add widget"},
		},
		{
			name:    "scoped fix",
			subject: "fix(parser): handle empty input",
			want:    Conventional{Type: "fix", Scope: "parser", Description: "handle empty input"},
		},
		{
			name:    "bang marks breaking",
			subject: "feat!: drop legacy API",
			want:    Conventional{Type: "feat", Breaking: true, Description: "drop legacy API"},
		},
		{
			name:    "breaking change footer",
			subject: "fix: patch the thing",
			body:    "BREAKING CHANGE: removes the old flag",
			want: Conventional{
				Type:        "fix",
				Description: "patch the thing",
				Breaking:    true,
				Footers:     []Footer{{Token: "BREAKING CHANGE", Value: "removes the old flag"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseSubject(tt.subject, tt.body)
			c, ok := got.(Conventional)
			require.Truef(t, ok, "ParseSubject() = %#v, want Conventional", got)
			assert.Equal(t, tt.want.Type, c.Type)
			assert.Equal(t, tt.want.Scope, c.Scope)
			assert.Equal(t, tt.want.Breaking, c.Breaking)
			assert.Equal(t, tt.want.Description, c.Description)
		})
	}
}

func TestParseSubjectMerge(t *testing.T) {
	t.Parallel()

	got := ParseSubject("Merge branch 'develop' into staging", "")
	m, ok := got.(Merge)
	require.Truef(t, ok, "ParseSubject() = %#v, want Merge", got)
	assert.Equal(t, "develop", m.FromBranch)
	assert.Equal(t, "staging", m.IntoBranch)

	got = ParseSubject("Merge branch 'ryans-fix'", "")
	m, ok = got.(Merge)
	require.Truef(t, ok, "ParseSubject() = %#v, want Merge", got)
	assert.Equal(t, "ryans-fix", m.FromBranch)
	assert.Empty(t, m.IntoBranch)
}

func TestParseSubjectUnconventional(t *testing.T) {
	t.Parallel()

	for _, subject := range []string{"whoops", "wip stuff", "", "Initial commit"} {
		got := ParseSubject(subject, "")
		assert.Equalf(t, KindUnconventional, got.Kind(), "ParseSubject(%q) = %#v, want Unconventional", subject, got)
	}
}

func TestCategoryForType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    Conventional
		want Category
	}{
		{Conventional{Type: "feat"}, CategoryFeat},
		{Conventional{Type: "fix"}, CategoryFixPerf},
		{Conventional{Type: "perf"}, CategoryFixPerf},
		{Conventional{Type: "chore"}, CategoryOther},
		{Conventional{Type: "docs"}, CategoryOther},
		{Conventional{Type: "feat", Breaking: true}, CategoryBreaking},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, tt.c.Category(), "Category(%+v)", tt.c)
	}
}
