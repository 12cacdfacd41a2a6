package assistant

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperjump/vaultwise/internal/config"
	"github.com/hyperjump/vaultwise/internal/llm"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func writeNote(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	if !mtime.IsZero() {
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
}

func newTestAssistant(client llm.Client, cfg config.AssistantConfig) *Assistant {
	return New(client, "test-model", WithConfig(cfg), WithClock(func() time.Time { return testNow }))
}

// routeByPrompt answers prompts by the first marker they contain.
func routeByPrompt(routes map[string]string) func(string) (string, error) {
	return func(prompt string) (string, error) {
		for marker, reply := range routes {
			if strings.Contains(prompt, marker) {
				return reply, nil
			}
		}
		return "", llm.ErrMock
	}
}

const (
	markerDescribe   = "describe what this folder contains"
	markerCategorize = "return ONLY the category name"
	markerSummary    = "Provide a 200-word summary"
	markerInsight    = "Provide a 3-sentence insight"
	markerAnswer     = "Answer based ONLY on the provided notes"
	markerFolders    = "2-3 sentence thematic summary"
	markerThemes     = "overarching themes"
)
