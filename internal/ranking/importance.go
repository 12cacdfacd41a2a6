package ranking

import (
	"regexp"
	"time"

	"github.com/hyperjump/vaultwise/internal/models"
)

var (
	wikiLinkPattern = regexp.MustCompile(`\[\[.*?\]\]`)
	goalPattern     = regexp.MustCompile(`(?i)goal|important|key|critical|vision|plan`)
)

const day = 24 * time.Hour

// Importance scores a note independently of any query: longer, recently edited,
// well-linked notes that talk about goals or plans score higher.
func Importance(f models.VaultFile, now time.Time) float64 {
	score := float64(f.Size) / 100

	age := now.Sub(f.ModTime)
	switch {
	case age < 30*day:
		score += 50
	case age < 90*day:
		score += 25
	}

	score += 10 * float64(LinkCount(f.Content))

	if goalPattern.MatchString(f.Content) {
		score += 20
	}
	return score
}

// LinkCount returns the number of [[wiki-links]] in text.
func LinkCount(text string) int {
	return len(wikiLinkPattern.FindAllStringIndex(text, -1))
}
