package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyValueLines(t *testing.T) {
	reply := `Here are the summaries:

JOURNAL: Daily reflections about work and health.
**PROJECTS**: Side projects, mostly Go services.
- CAREER: Resume drafts: v1 and v2
not a pair
EMPTY:
`
	got := KeyValueLines(reply)
	assert.Equal(t, []KeyValue{
		{Key: "JOURNAL", Value: "Daily reflections about work and health."},
		{Key: "PROJECTS", Value: "Side projects, mostly Go services."},
		{Key: "CAREER", Value: "Resume drafts: v1 and v2"},
	}, got)
}

func TestKeyValueMap(t *testing.T) {
	m := KeyValueMap("A: one\nB: two\nA: three")
	assert.Equal(t, map[string]string{"A": "three", "B": "two"}, m)
	assert.Empty(t, KeyValueMap("no structure at all"))
}

func TestNumberedList(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"plain", "1. Career growth\n2. Health\n3. Family", []string{"Career growth", "Health", "Family"}},
		{"preamble and parens", "Themes:\n1) Learning Go\n\n2. **Running**\nthanks", []string{"Learning Go", "Running"}},
		{"indented", "  10. Tenth", []string{"Tenth"}},
		{"none", "Career, Health", nil},
		{"empty item", "1. \n2. Real", []string{"Real"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NumberedList(tt.reply))
		})
	}
}

func TestLabeledList(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"trailing line", "Summary text.\n\nThemes: work, health; travel.", []string{"work", "health", "travel"}},
		{"bold label", "text\n**Themes:** focus, rest", []string{"focus", "rest"}},
		{"case-insensitive", "themes: one", []string{"one"}},
		{"missing", "just a summary", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabeledList(tt.reply, "Themes"))
		})
	}
}

func TestWithoutLabeledLine(t *testing.T) {
	assert.Equal(t, "Summary text.", WithoutLabeledLine("Summary text.\n\nThemes: a, b", "Themes"))
	assert.Equal(t, "Only text", WithoutLabeledLine("  Only text  ", "Themes"))
}

func TestMatchCategory(t *testing.T) {
	known := []string{"CAREER", "HEALTH", "JOURNAL", "Side Projects"}

	tests := []struct {
		reply string
		want  string
	}{
		{"CAREER", "CAREER"},
		{"career.", "CAREER"},
		{"**HEALTH**", "HEALTH"},
		{"Category: JOURNAL", "JOURNAL"},
		{"I think this belongs in side projects", "Side Projects"},
		{"FINANCES", "FINANCES"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchCategory(tt.reply, known))
		})
	}
}
