// Package keyword provides case-insensitive keyword matching over note text.
package keyword

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperjump/vaultwise/internal/models"
)

// Matcher finds case-insensitive occurrences of one keyword. Keywords are literal text
// unless the matcher was built in regex mode.
type Matcher struct {
	keyword string
	re      *regexp.Regexp
}

// New compiles keyword into a Matcher. When regex is false, regular-expression
// metacharacters in keyword are matched literally.
func New(keyword string, regex bool) (*Matcher, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is empty", models.ErrInvalidInput)
	}
	pattern := regexp.QuoteMeta(keyword)
	if regex {
		pattern = keyword
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid keyword pattern %q: %v", models.ErrInvalidInput, keyword, err)
	}
	// A pattern that matches the empty string would count every position in the text.
	if re.MatchString("") {
		return nil, fmt.Errorf("%w: keyword pattern %q matches empty text", models.ErrInvalidInput, keyword)
	}
	return &Matcher{keyword: keyword, re: re}, nil
}

// MustNew is like New but panics on error. Intended for literal keywords known to be valid.
func MustNew(keyword string) *Matcher {
	m, err := New(keyword, false)
	if err != nil {
		panic(err)
	}
	return m
}

// Keyword returns the keyword the matcher was built from.
func (m *Matcher) Keyword() string {
	return m.keyword
}

// Count returns the number of non-overlapping occurrences of the keyword in text.
func (m *Matcher) Count(text string) int {
	return len(m.re.FindAllStringIndex(text, -1))
}

// Contains reports whether text mentions the keyword at least once.
func (m *Matcher) Contains(text string) bool {
	return m.re.MatchString(text)
}

// Lines returns up to max trimmed lines of text that mention the keyword, in order.
// A max of 0 or less returns every matching line.
func (m *Matcher) Lines(text string, max int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if !m.re.MatchString(line) {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
		if max > 0 && len(lines) >= max {
			break
		}
	}
	return lines
}
