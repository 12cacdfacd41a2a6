// Package ranking scores vault notes for relevance to a question and for query-independent importance.
package ranking

import (
	"sort"
	"strings"

	"github.com/hyperjump/vaultwise/internal/keyword"
	"github.com/hyperjump/vaultwise/internal/models"
)

// Scorer ranks notes by weighted keyword occurrence.
type Scorer struct {
	config   *RankingConfig
	analyzer *QueryAnalyzer
}

// NewScorer creates a Scorer with the given configuration.
func NewScorer(config *RankingConfig) *Scorer {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	return &Scorer{config: config, analyzer: NewQueryAnalyzer(config)}
}

// GetConfig returns the ranking configuration.
func (s *Scorer) GetConfig() *RankingConfig {
	return s.config
}

// Keywords returns the scoring keywords for a question.
func (s *Scorer) Keywords(question string) []string {
	return s.analyzer.Keywords(question)
}

type scoringTerm struct {
	text    string
	matcher *keyword.Matcher
}

func (s *Scorer) terms(keywords []string) []scoringTerm {
	terms := make([]scoringTerm, 0, len(keywords))
	for _, kw := range keywords {
		m, err := keyword.New(kw, s.config.KeywordRegex)
		if err != nil {
			// Only possible in regex mode; a token that is not a valid pattern cannot score.
			continue
		}
		terms = append(terms, scoringTerm{text: strings.ToLower(kw), matcher: m})
	}
	return terms
}

// Score returns the relevance of f for the given keywords: TitleWeight when the keyword
// appears in the title plus BodyWeight per occurrence in the body.
func (s *Scorer) Score(keywords []string, f models.VaultFile) int {
	return s.score(s.terms(keywords), f)
}

func (s *Scorer) score(terms []scoringTerm, f models.VaultFile) int {
	title := strings.ToLower(f.Title)
	score := 0
	for _, t := range terms {
		inTitle := strings.Contains(title, t.text)
		if s.config.KeywordRegex {
			inTitle = t.matcher.Contains(title)
		}
		if inTitle {
			score += s.config.TitleWeight
		}
		score += s.config.BodyWeight * t.matcher.Count(f.Content)
	}
	return score
}

// Rank scores every file against question and returns those scoring above zero,
// highest first. Ties keep the input order.
func (s *Scorer) Rank(question string, files []models.VaultFile) []models.ScoredFile {
	terms := s.terms(s.Keywords(question))
	if len(terms) == 0 {
		return nil
	}
	results := make([]models.ScoredFile, 0, len(files))
	for _, f := range files {
		if score := s.score(terms, f); score > 0 {
			results = append(results, models.ScoredFile{VaultFile: f, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// SelectRelevant returns at most maxResults of the files most relevant to question.
// A maxResults of 0 or less uses the configured default.
func (s *Scorer) SelectRelevant(question string, files []models.VaultFile, maxResults int) []models.ScoredFile {
	if maxResults <= 0 {
		maxResults = s.config.MaxResults
	}
	return TopN(s.Rank(question, files), maxResults)
}

// TopN returns the first n results.
func TopN(results []models.ScoredFile, n int) []models.ScoredFile {
	if n >= len(results) {
		return results
	}
	return results[:n]
}

// Fallback returns the first n files, used when nothing scores above zero so that a
// question is always answered from some context.
func Fallback(files []models.VaultFile, n int) []models.VaultFile {
	if n <= 0 || n >= len(files) {
		return files
	}
	return files[:n]
}
