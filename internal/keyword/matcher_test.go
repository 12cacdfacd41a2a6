package keyword

import (
	"errors"
	"testing"

	"github.com/hyperjump/vaultwise/internal/models"
)

func TestMatcher_Count(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		regex   bool
		text    string
		want    int
	}{
		{"case insensitive", "isolation", false, "Isolation and ISOLATION and isolation", 3},
		{"substring occurrences", "plan", false, "plans planned planning", 3},
		{"no match", "budget", false, "nothing here", 0},
		{"metacharacters literal", "c++", false, "I wrote c++ and C++ today, not c", 2},
		{"dot literal", "v1.2", false, "v1.2 but not v132", 1},
		{"regex mode alternation", "run|walk", true, "run, walk, Run", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.keyword, tt.regex)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := m.Count(tt.text); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestNew_invalidInput(t *testing.T) {
	tests := []struct {
		keyword string
		regex   bool
	}{
		{"", false},
		{"   ", false},
		{"(unclosed", true},
		{"a*", true},
	}
	for _, tt := range tests {
		_, err := New(tt.keyword, tt.regex)
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("New(%q, %v) error = %v, want ErrInvalidInput", tt.keyword, tt.regex, err)
		}
	}
}

func TestMatcher_Lines(t *testing.T) {
	m := MustNew("focus")
	text := "Morning: low focus\nlunch\n  Afternoon focus better  \nFOCUS at night\n"
	got := m.Lines(text, 2)
	if len(got) != 2 {
		t.Fatalf("Lines: got %d lines, want 2: %v", len(got), got)
	}
	if got[0] != "Morning: low focus" || got[1] != "Afternoon focus better" {
		t.Errorf("Lines: got %v", got)
	}
	if all := m.Lines(text, 0); len(all) != 3 {
		t.Errorf("Lines(0): got %d lines, want 3", len(all))
	}
}

func TestMatcher_Contains(t *testing.T) {
	m := MustNew("Goal")
	if !m.Contains("my goals for 2025") {
		t.Error("expected match")
	}
	if m.Contains("nothing") {
		t.Error("unexpected match")
	}
	if m.Keyword() != "Goal" {
		t.Errorf("Keyword() = %q", m.Keyword())
	}
}
