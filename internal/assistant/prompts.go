package assistant

import (
	"fmt"
	"strings"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// DefaultCategories are offered when the vault has no category folders.
var DefaultCategories = []models.VaultCategory{
	{Name: "CAREER", Description: "job search, professional development, work"},
	{Name: "HEALTH", Description: "fitness, mental health, wellness"},
	{Name: "JOURNAL", Description: "daily reflections, personal thoughts"},
	{Name: "BUSINESS", Description: "ventures, ideas, entrepreneurship"},
	{Name: "FINANCES", Description: "budget, investments, money"},
	{Name: "KNOWLEDGE", Description: "learning, books, courses"},
	{Name: "PROJECTS", Description: "active projects, portfolio"},
	{Name: "VISION", Description: "goals, life planning, future"},
}

func categorizePrompt(categories []models.VaultCategory, content string) string {
	var sb strings.Builder
	sb.WriteString("You are analyzing personal notes from an Obsidian vault.\n\n")
	sb.WriteString("Available categories:\n")
	for _, c := range categories {
		if c.Description != "" {
			fmt.Fprintf(&sb, "- %s (%s)\n", c.Name, c.Description)
		} else {
			fmt.Fprintf(&sb, "- %s\n", c.Name)
		}
	}
	sb.WriteString("\nBased on this note, return ONLY the category name (exactly as listed above):\n\n")
	sb.WriteString(content)
	return sb.String()
}

func summarizePrompt(folderName string, totalNotes int, notes []models.VaultFile) string {
	var sb strings.Builder
	if len(notes) < totalNotes {
		fmt.Fprintf(&sb, "You are analyzing %d representative notes (of %d) from an Obsidian vault folder called %q.\n\n",
			len(notes), totalNotes, folderName)
	} else {
		fmt.Fprintf(&sb, "You are analyzing %d personal notes from an Obsidian vault folder called %q.\n\n", len(notes), folderName)
	}
	sb.WriteString("Notes:\n")
	for _, n := range notes {
		fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", n.Title, n.Content)
	}
	sb.WriteString(`Provide a 200-word summary covering:
- Main themes and recurring topics
- Time period or date range (if mentioned in notes)
- Key insights, patterns, or notable moments
- Overall tone and sentiment
- Any significant trends or changes over time

Write the summary in a narrative style, as if explaining to the note author what their folder contains. Be specific and reference concrete details from the notes.

After the summary, add one final line starting with "Themes:" followed by 3-5 comma-separated themes.

Summary (200 words):`)
	return sb.String()
}

func insightPrompt(keyword string, matches []models.KeywordMatch, trend string, examples int) string {
	if trend == "" {
		trend = "Unknown"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the usage pattern of the keyword %q in personal notes.\n\n", keyword)
	fmt.Fprintf(&sb, "Found %d mentions across different notes.\n", len(matches))
	fmt.Fprintf(&sb, "Trend: %s\n\n", trend)
	sb.WriteString("Example snippets:\n")
	for i, m := range matches {
		if i >= examples {
			break
		}
		date := m.Date
		if date == "" {
			date = "undated"
		}
		fmt.Fprintf(&sb, "[%s] %s: %q\n", date, m.NoteTitle, m.Snippet)
	}
	fmt.Fprintf(&sb, `
Provide a 3-sentence insight about:
1. What this keyword reveals about the person's focus/concerns
2. How the usage pattern (%s) is significant
3. Any notable patterns in the context of usage

Insight:`, trend)
	return sb.String()
}

func qaContext(notes []models.VaultFile, noteChars int) string {
	var sb strings.Builder
	sb.WriteString("Here are the relevant notes from the vault:\n\n")
	for i, n := range notes {
		fmt.Fprintf(&sb, "--- Note %d: %s ---\n", i+1, n.Title)
		sb.WriteString(utils.Head(n.Content, noteChars))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func qaPrompt(noteContext, question string) string {
	return fmt.Sprintf(`You are an intelligent assistant helping to answer questions about a personal knowledge vault (Obsidian notes).

Context from vault:
%s
Question: %s

Instructions:
- Answer based ONLY on the provided notes
- Be specific and cite note titles when relevant
- If the answer isn't in the notes, say "I don't have enough information in your vault to answer this."
- Be concise but thorough
- Use a friendly, helpful tone

Answer:`, noteContext, question)
}

// folderSample is one folder's representative notes for the report.
type folderSample struct {
	name  string
	total int
	notes []models.VaultFile
}

func folderSummariesPrompt(samples []folderSample, noteChars int) string {
	var sb strings.Builder
	sb.WriteString("You are analyzing a personal knowledge vault (Obsidian notes). Below are representative samples from each folder.\n\n")
	sb.WriteString("Here are representative notes from each folder in the vault:\n\n")
	for _, s := range samples {
		fmt.Fprintf(&sb, "=== %s (%d total notes, %d sampled) ===\n\n", s.name, s.total, len(s.notes))
		for _, n := range s.notes {
			fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", n.Title, utils.Head(n.Content, noteChars))
		}
	}
	sb.WriteString(`For each folder, provide a 2-3 sentence thematic summary. What are the main topics and themes?

Format your response as:
FOLDER_NAME: summary here
FOLDER_NAME: summary here
...

Be concise, specific, and insightful.`)
	return sb.String()
}

func themesPrompt(notes []models.VaultFile, noteChars int) string {
	var sb strings.Builder
	sb.WriteString("You are analyzing a personal knowledge vault. Based on these representative notes, identify the top 5-7 overarching themes across the entire vault.\n\n")
	sb.WriteString("Here are representative notes from across the vault:\n\n")
	for _, n := range notes {
		fmt.Fprintf(&sb, "--- %s (%s) ---\n%s\n\n", n.Title, n.TopFolder, utils.Head(n.Content, noteChars))
	}
	sb.WriteString(`List the main themes as a numbered list. Be specific and insightful.

Format:
1. Theme description
2. Theme description
...`)
	return sb.String()
}
