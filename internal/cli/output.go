// Package cli renders assistant results for the terminal and runs the interactive menu.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// snippetLen caps example snippets in text output.
const snippetLen = 100

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	rule         = strings.Repeat("=", 80)
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Write renders v to w. v must be one of the assistant result types or a category list.
func Write(w io.Writer, v interface{}, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	switch r := v.(type) {
	case *models.CategorizeResult:
		writeCategorize(w, r)
	case *models.FolderSummary:
		writeSummary(w, r)
	case *models.PatternAnalysis:
		writePattern(w, r)
	case *models.QAResult:
		writeAnswer(w, r)
	case *models.VaultReport:
		writeReport(w, r)
	case []models.VaultCategory:
		writeCategories(w, r)
	default:
		return fmt.Errorf("no text format for %T", v)
	}
	return nil
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w, headingStyle.Render(s))
}

func writeCategorize(w io.Writer, r *models.CategorizeResult) {
	fmt.Fprintf(w, "\n%s %s\n", labelStyle.Render("Note:"), filepath.Base(r.NotePath))
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Category:"), r.Category)
}

func writeSummary(w io.Writer, r *models.FolderSummary) {
	fmt.Fprintf(w, "\n%s %s\n", labelStyle.Render("Folder:"), filepath.Base(r.FolderPath))
	notes := fmt.Sprintf("%d", r.NoteCount)
	if r.SampledNotes > 0 && r.SampledNotes < r.NoteCount {
		notes = fmt.Sprintf("%d (sampled %d)", r.NoteCount, r.SampledNotes)
	}
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Notes analyzed:"), notes)
	heading(w, "Summary")
	fmt.Fprintf(w, "%s\n", r.Summary)
	if len(r.Themes) > 0 {
		fmt.Fprintf(w, "\n%s %s\n", labelStyle.Render("Themes:"), strings.Join(r.Themes, ", "))
	}
	fmt.Fprintln(w)
}

func writePattern(w io.Writer, r *models.PatternAnalysis) {
	fmt.Fprintln(w)
	heading(w, fmt.Sprintf("Pattern Analysis: %q", r.Keyword))
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Folder:"), filepath.Base(r.FolderPath))
	heading(w, "Statistics")
	fmt.Fprintf(w, "   Total mentions: %d\n", r.TotalMentions)
	fmt.Fprintf(w, "   Notes containing keyword: %d/%d\n", r.NotesWithKeyword, r.TotalNotes)
	if r.FirstMention != "" {
		fmt.Fprintln(w)
		heading(w, "Timeline")
		fmt.Fprintf(w, "   First mention: %s\n", r.FirstMention)
		fmt.Fprintf(w, "   Last mention: %s\n", r.LastMention)
		fmt.Fprintf(w, "   Peak period: %s\n", r.PeakPeriod)
		fmt.Fprintf(w, "   Trend: %s\n", r.Trend)
	}
	if len(r.Examples) > 0 {
		fmt.Fprintln(w)
		heading(w, "Example snippets")
		for i, ex := range r.Examples {
			date := ex.Date
			if date == "" {
				date = "undated"
			}
			fmt.Fprintf(w, "   %d. [%s] %s\n", i+1, date, ex.NoteTitle)
			fmt.Fprintf(w, "      %q\n", utils.Truncate(ex.Snippet, snippetLen))
		}
	}
	if r.AIInsights != "" {
		fmt.Fprintln(w)
		heading(w, "AI Insights")
		fmt.Fprintf(w, "   %s\n", r.AIInsights)
	}
	fmt.Fprintln(w)
}

func writeAnswer(w io.Writer, r *models.QAResult) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Question:"), r.Question)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	heading(w, "Answer")
	fmt.Fprintf(w, "%s\n\n", r.Answer)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Sources used: %d notes", r.SourcesUsed)
	if r.UsedFallback {
		fmt.Fprint(w, " (no keyword matches, most recent notes)")
	}
	fmt.Fprintln(w)
	for _, s := range r.Sources {
		fmt.Fprintf(w, "   - %s\n", s)
	}
	if r.ContextSizeTokens > 0 {
		fmt.Fprintf(w, "Context size: ~%d tokens\n", r.ContextSizeTokens)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

func writeReport(w io.Writer, r *models.VaultReport) {
	fmt.Fprintln(w)
	heading(w, "Vault Report")
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Vault:"), r.VaultPath)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Generated:"), r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "%s %d notes in %d folders\n\n", labelStyle.Render("Total:"), r.TotalNotes, r.TotalFolders)

	heading(w, "Folders")
	for _, f := range r.FolderBreakdown {
		fmt.Fprintf(w, "   %-24s %5d  (%d%%)\n", f.Name, f.NoteCount, f.Percentage)
	}

	if len(r.MonthlyActivity) > 0 {
		fmt.Fprintln(w)
		heading(w, "Monthly activity")
		for _, m := range r.MonthlyActivity {
			fmt.Fprintf(w, "   %s  %d\n", m.Month, m.NoteCount)
		}
	}

	if len(r.FolderSummaries) > 0 {
		fmt.Fprintln(w)
		heading(w, "Folder summaries")
		names := make([]string, 0, len(r.FolderSummaries))
		for name := range r.FolderSummaries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "   %s: %s\n", labelStyle.Render(name), r.FolderSummaries[name])
		}
	}

	if len(r.TopThemes) > 0 {
		fmt.Fprintln(w)
		heading(w, "Top themes")
		for i, t := range r.TopThemes {
			fmt.Fprintf(w, "   %d. %s\n", i+1, t)
		}
	}

	if len(r.Suggestions) > 0 {
		fmt.Fprintln(w)
		heading(w, "Suggestions")
		for _, s := range r.Suggestions {
			fmt.Fprintf(w, "   - %s\n", s)
		}
	}
	fmt.Fprintln(w)
}

func writeCategories(w io.Writer, cats []models.VaultCategory) {
	fmt.Fprintln(w)
	heading(w, fmt.Sprintf("%d categories", len(cats)))
	for _, c := range cats {
		fmt.Fprintf(w, "   %s: %s\n", labelStyle.Render(c.Name), c.Description)
	}
	fmt.Fprintln(w)
}
