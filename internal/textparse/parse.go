// Package textparse extracts structure from free-text model replies.
//
// Every parser is tolerant: lines that do not fit the expected shape are dropped and
// no parser returns an error. A reply that ignores the requested format yields an
// empty result rather than a failure.
package textparse

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	keyValuePattern = regexp.MustCompile(`^(.+?):\s*(.+)$`)
	numberedPattern = regexp.MustCompile(`^\d+[.)]\s*`)
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_-]+`)
)

// KeyValue is one "key: value" pair in reply order.
type KeyValue struct {
	Key   string
	Value string
}

// cleanLine strips list bullets and markdown emphasis or heading markers around a line.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#>-*• \t")
	return strings.TrimSpace(line)
}

func stripEmphasis(s string) string {
	return strings.TrimSpace(strings.Trim(s, "*_`\""))
}

// KeyValueLines parses lines shaped like "KEY: value". Keys and values are trimmed and
// stripped of markdown emphasis. Later duplicates of a key are kept in order.
func KeyValueLines(reply string) []KeyValue {
	var out []KeyValue
	for _, raw := range strings.Split(reply, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		m := keyValuePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := stripEmphasis(m[1])
		value := stripEmphasis(m[2])
		if key == "" || value == "" {
			continue
		}
		out = append(out, KeyValue{Key: key, Value: value})
	}
	return out
}

// KeyValueMap is KeyValueLines collapsed to a map; the last value for a key wins.
func KeyValueMap(reply string) map[string]string {
	out := make(map[string]string)
	for _, kv := range KeyValueLines(reply) {
		out[kv.Key] = kv.Value
	}
	return out
}

// NumberedList returns the text of every "N. item" or "N) item" line, in order.
func NumberedList(reply string) []string {
	var items []string
	for _, raw := range strings.Split(reply, "\n") {
		line := strings.TrimSpace(raw)
		loc := numberedPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if item := stripEmphasis(line[loc[1]:]); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// LabeledList finds the first line starting with label (case-insensitive, e.g. "Themes")
// followed by a colon and splits the rest on commas or semicolons.
func LabeledList(reply, label string) []string {
	prefix := strings.ToLower(label) + ":"
	for _, raw := range strings.Split(reply, "\n") {
		line := stripEmphasis(cleanLine(raw))
		lower := strings.ToLower(line)
		if !strings.HasPrefix(lower, prefix) {
			// Handles "**Themes:** a, b" where the colon sits inside the emphasis.
			if !strings.HasPrefix(strings.ReplaceAll(lower, "*", ""), prefix) {
				continue
			}
			line = strings.ReplaceAll(line, "*", "")
		}
		rest := line[len(prefix):]
		var items []string
		for _, part := range strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ';' }) {
			if item := stripEmphasis(strings.TrimRight(strings.TrimSpace(part), ".")); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return nil
}

// WithoutLabeledLine returns reply with the first line starting with label removed.
func WithoutLabeledLine(reply, label string) string {
	prefix := strings.ToLower(label) + ":"
	lines := strings.Split(reply, "\n")
	for i, raw := range lines {
		lower := strings.ToLower(strings.ReplaceAll(cleanLine(raw), "*", ""))
		if strings.HasPrefix(lower, prefix) {
			lines = append(lines[:i], lines[i+1:]...)
			return strings.TrimSpace(strings.Join(lines, "\n"))
		}
	}
	return strings.TrimSpace(reply)
}

// MatchCategory picks the known category a reply names. An exact case-insensitive match
// of the trimmed reply wins; otherwise the first word of the reply matching a known name
// is used. When nothing matches, the reply's first word is returned as-is so callers still
// get the model's answer. An empty reply returns "".
func MatchCategory(reply string, known []string) string {
	trimmed := stripEmphasis(strings.TrimSpace(reply))
	if trimmed == "" {
		return ""
	}
	byLower := make(map[string]string, len(known))
	for _, k := range known {
		byLower[strings.ToLower(k)] = k
	}
	if k, ok := byLower[strings.ToLower(strings.TrimRightFunc(trimmed, unicode.IsPunct))]; ok {
		return k
	}

	words := wordPattern.FindAllString(trimmed, -1)
	for _, w := range words {
		if k, ok := byLower[strings.ToLower(w)]; ok {
			return k
		}
	}
	// Multi-word category names.
	lower := strings.ToLower(trimmed)
	for _, k := range known {
		if strings.Contains(k, " ") && strings.Contains(lower, strings.ToLower(k)) {
			return k
		}
	}
	if len(words) > 0 {
		return words[0]
	}
	return trimmed
}
