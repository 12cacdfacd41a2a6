package assistant

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/vaultwise/internal/config"
	"github.com/hyperjump/vaultwise/internal/llm"
	"github.com/hyperjump/vaultwise/internal/models"
)

func TestSummarizeFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "JOURNAL")
	writeNote(t, filepath.Join(dir, "a.md"), "Started running.", time.Time{})
	writeNote(t, filepath.Join(dir, "b.md"), "Ran 5k.", time.Time{})
	writeNote(t, filepath.Join(dir, "c.md"), "Rest day.", time.Time{})
	writeNote(t, filepath.Join(dir, "nested", "d.md"), "NESTED CONTENT", time.Time{})

	client := llm.NewMockClient("You have been running a lot.\n\nThemes: running, rest")
	a := newTestAssistant(client, config.AssistantConfig{})

	res, err := a.SummarizeFolder(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NoteCount)
	assert.Equal(t, 3, res.SampledNotes)
	assert.Equal(t, "You have been running a lot.", res.Summary)
	assert.Equal(t, []string{"running", "rest"}, res.Themes)

	prompt := client.Calls()[0].Prompt
	assert.Contains(t, prompt, `folder called "JOURNAL"`)
	assert.Contains(t, prompt, "--- b ---\nRan 5k.")
	assert.NotContains(t, prompt, "NESTED CONTENT")
}

func TestSummarizeFolder_Empty(t *testing.T) {
	dir := t.TempDir()
	client := llm.NewMockClient()
	a := newTestAssistant(client, config.AssistantConfig{})

	res, err := a.SummarizeFolder(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NoteCount)
	assert.Equal(t, EmptyFolderSummary, res.Summary)
	assert.Zero(t, client.CallCount())
}

func TestSummarizeFolder_SamplesLargeFolders(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 25; i++ {
		writeNote(t, filepath.Join(dir, fmt.Sprintf("note-%02d.md", i)), fmt.Sprintf("entry %d", i), testNow.AddDate(0, 0, -i))
	}
	client := llm.NewMockClient("summary")
	a := newTestAssistant(client, config.AssistantConfig{SummaryMaxNotes: 10})

	res, err := a.SummarizeFolder(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 25, res.NoteCount)
	assert.Equal(t, 10, res.SampledNotes)
	assert.Nil(t, res.Themes)

	prompt := client.Calls()[0].Prompt
	assert.Equal(t, 10, strings.Count(prompt, "--- note-"))
	assert.Contains(t, prompt, "10 representative notes (of 25)")
	// The newest notes are always part of the sample.
	assert.Contains(t, prompt, "--- note-00 ---")
}

func TestSummarizeFolder_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	writeNote(t, file, "x", time.Time{})

	a := newTestAssistant(llm.NewMockClient(), config.AssistantConfig{})
	_, err := a.SummarizeFolder(context.Background(), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.True(t, strings.HasPrefix(err.Error(), "summarization failed: "))

	_, err = a.SummarizeFolder(context.Background(), file)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	a = newTestAssistant(&llm.MockClient{Err: llm.ErrMock}, config.AssistantConfig{})
	_, err = a.SummarizeFolder(context.Background(), dir)
	assert.ErrorIs(t, err, models.ErrExternalService)
}
