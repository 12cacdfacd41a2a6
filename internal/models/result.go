package models

import "time"

// CategorizeResult is the outcome of categorizing a single note.
type CategorizeResult struct {
	NotePath string `json:"note_path"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// FolderSummary is the narrative summary of one folder's notes.
type FolderSummary struct {
	FolderPath   string   `json:"folder_path"`
	NoteCount    int      `json:"note_count"`
	SampledNotes int      `json:"sampled_notes"`
	Summary      string   `json:"summary"`
	Themes       []string `json:"themes,omitempty"`
}

// KeywordMatch is one note that mentions an analyzed keyword.
type KeywordMatch struct {
	NoteTitle string `json:"note_title"`
	Snippet   string `json:"snippet"`
	Date      string `json:"date,omitempty"`
	Mentions  int    `json:"mentions"`
}

// PatternAnalysis describes how a keyword is used across a folder over time.
type PatternAnalysis struct {
	Keyword          string         `json:"keyword"`
	FolderPath       string         `json:"folder_path"`
	TotalMentions    int            `json:"total_mentions"`
	NotesWithKeyword int            `json:"notes_with_keyword"`
	TotalNotes       int            `json:"total_notes"`
	FirstMention     string         `json:"first_mention,omitempty"`
	LastMention      string         `json:"last_mention,omitempty"`
	PeakPeriod       string         `json:"peak_period,omitempty"`
	Trend            string         `json:"trend,omitempty"`
	Examples         []KeywordMatch `json:"examples"`
	AIInsights       string         `json:"ai_insights,omitempty"`
}

// QAResult is the answer to a free-text question over a vault.
type QAResult struct {
	Question          string   `json:"question"`
	Answer            string   `json:"answer"`
	SourcesUsed       int      `json:"sources_used"`
	Sources           []string `json:"sources"`
	UsedFallback      bool     `json:"used_fallback"`
	ContextSizeTokens int      `json:"context_size_tokens"`
}

// FolderStats is the note count of one top-level folder.
type FolderStats struct {
	Name       string `json:"name"`
	NoteCount  int    `json:"note_count"`
	Percentage int    `json:"percentage"`
}

// MonthlyActivity is the number of notes last modified in a month (YYYY-MM).
type MonthlyActivity struct {
	Month     string `json:"month"`
	NoteCount int    `json:"note_count"`
}

// VaultReport is the vault-wide statistics and AI insight report.
type VaultReport struct {
	ID              string            `json:"id"`
	VaultPath       string            `json:"vault_path"`
	GeneratedAt     time.Time         `json:"generated_at"`
	TotalNotes      int               `json:"total_notes"`
	TotalFolders    int               `json:"total_folders"`
	FolderBreakdown []FolderStats     `json:"folder_breakdown"`
	MonthlyActivity []MonthlyActivity `json:"monthly_activity"`
	FolderSummaries map[string]string `json:"folder_summaries"`
	TopThemes       []string          `json:"top_themes"`
	Suggestions     []string          `json:"suggestions"`
}
