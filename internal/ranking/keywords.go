package ranking

import (
	"strings"
	"unicode/utf8"
)

// QueryAnalyzer turns a free-text question into scoring keywords.
type QueryAnalyzer struct {
	minLen    int
	stopWords map[string]struct{}
}

// NewQueryAnalyzer creates a QueryAnalyzer from config.
func NewQueryAnalyzer(config *RankingConfig) *QueryAnalyzer {
	stop := make(map[string]struct{}, len(config.StopWords))
	for _, w := range config.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &QueryAnalyzer{minLen: config.MinKeywordLength, stopWords: stop}
}

// Keywords lower-cases query, splits it on whitespace and drops short tokens and stop words.
// Punctuation is kept and repeated words are kept, so they count once per repetition.
func (qa *QueryAnalyzer) Keywords(query string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(word) < qa.minLen {
			continue
		}
		if _, stop := qa.stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
