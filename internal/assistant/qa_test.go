package assistant

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/vaultwise/internal/config"
	"github.com/hyperjump/vaultwise/internal/llm"
	"github.com/hyperjump/vaultwise/internal/models"
)

func qaVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "HEALTH", "marathon.md"), "Marathon training: long runs on Sunday.", testNow.AddDate(0, -3, 0))
	writeNote(t, filepath.Join(root, "HEALTH", "sleep.md"), "Sleep eight hours before a marathon.", testNow.AddDate(0, -2, 0))
	writeNote(t, filepath.Join(root, "CAREER", "review.md"), "Performance review went well.", testNow.AddDate(0, 0, -1))
	writeNote(t, filepath.Join(root, "inbox.md"), "Buy groceries.", testNow.AddDate(0, 0, -10))
	return root
}

func TestAnswerQuestion_Relevant(t *testing.T) {
	root := qaVault(t)
	client := llm.NewMockClient("Long runs on Sunday (marathon).")
	a := newTestAssistant(client, config.AssistantConfig{})

	res, err := a.AnswerQuestion(context.Background(), root, "  How is my marathon going? ", 0)
	require.NoError(t, err)

	assert.Equal(t, "How is my marathon going?", res.Question)
	assert.Equal(t, "Long runs on Sunday (marathon).", res.Answer)
	assert.False(t, res.UsedFallback)
	assert.Equal(t, 2, res.SourcesUsed)
	assert.Equal(t, []string{"HEALTH/marathon.md", "HEALTH/sleep.md"}, res.Sources)
	assert.Positive(t, res.ContextSizeTokens)

	prompt := client.Calls()[0].Prompt
	assert.Contains(t, prompt, "--- Note 1: marathon ---\nMarathon training")
	assert.Contains(t, prompt, "Question: How is my marathon going?")
	assert.NotContains(t, prompt, "groceries")
}

func TestAnswerQuestion_MaxNotes(t *testing.T) {
	root := qaVault(t)
	a := newTestAssistant(llm.NewMockClient("ok"), config.AssistantConfig{})

	res, err := a.AnswerQuestion(context.Background(), root, "marathon", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SourcesUsed)
	assert.Equal(t, "HEALTH/marathon.md", res.Sources[0])
}

func TestAnswerQuestion_FallbackToRecent(t *testing.T) {
	root := qaVault(t)
	client := llm.NewMockClient("I don't have enough information in your vault to answer this.")
	a := newTestAssistant(client, config.AssistantConfig{QAFallbackNotes: 2})

	res, err := a.AnswerQuestion(context.Background(), root, "what is this", 0)
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, 2, res.SourcesUsed)
	assert.Equal(t, []string{"CAREER/review.md", "inbox.md"}, res.Sources)
}

func TestAnswerQuestion_CapsNoteLength(t *testing.T) {
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "long.md"), "budget "+strings.Repeat("x", 5000), testNow)
	client := llm.NewMockClient("ok")
	a := newTestAssistant(client, config.AssistantConfig{QANoteChars: 100})

	_, err := a.AnswerQuestion(context.Background(), root, "budget", 0)
	require.NoError(t, err)
	prompt := client.Calls()[0].Prompt
	assert.Contains(t, prompt, strings.Repeat("x", 93))
	assert.NotContains(t, prompt, strings.Repeat("x", 94))
}

func TestAnswerQuestion_Errors(t *testing.T) {
	empty := t.TempDir()
	root := qaVault(t)

	tests := []struct {
		name     string
		vault    string
		question string
		client   *llm.MockClient
		wantErr  error
	}{
		{"empty question", root, "   ", llm.NewMockClient(), models.ErrInvalidInput},
		{"missing vault", filepath.Join(empty, "nope"), "q", llm.NewMockClient(), models.ErrNotFound},
		{"empty vault", empty, "anything", llm.NewMockClient(), models.ErrEmptyResult},
		{"no vault path", "", "anything", llm.NewMockClient(), models.ErrInvalidInput},
		{"service failure", root, "marathon", &llm.MockClient{Err: llm.ErrMock}, models.ErrExternalService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssistant(tt.client, config.AssistantConfig{})
			_, err := a.AnswerQuestion(context.Background(), tt.vault, tt.question, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, strings.HasPrefix(err.Error(), "q&a failed: "), err.Error())
		})
	}
}

func TestAnswerQuestion_Canceled(t *testing.T) {
	root := qaVault(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := newTestAssistant(llm.NewMockClient("never"), config.AssistantConfig{})

	_, err := a.AnswerQuestion(ctx, root, "marathon", 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, models.ErrExternalService)
}
