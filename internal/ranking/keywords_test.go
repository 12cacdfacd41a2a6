package ranking

import (
	"reflect"
	"testing"
)

func TestQueryAnalyzer_Keywords(t *testing.T) {
	qa := NewQueryAnalyzer(DefaultRankingConfig())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"stop words and short tokens dropped", "What did I decide about isolation?", []string{"decide", "isolation?"}},
		{"only stop words", "what is this", nil},
		{"lower-cased", "Marathon TRAINING plan", []string{"marathon", "training", "plan"}},
		{"three letters dropped", "the gym run", nil},
		{"repeated words kept", "goal goal", []string{"goal", "goal"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qa.Keywords(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestQueryAnalyzer_CustomStopWords(t *testing.T) {
	cfg := &RankingConfig{StopWords: []string{"Notes"}}
	cfg.ApplyDefaults()
	qa := NewQueryAnalyzer(cfg)

	got := qa.Keywords("notes about what")
	want := []string{"about", "what"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
}
