package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/vaultwise/internal/assistant"
	"github.com/hyperjump/vaultwise/internal/llm"
	"github.com/hyperjump/vaultwise/internal/models"
)

func writeNote(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeNote(t, filepath.Join(root, "JOURNAL", "2025-01-05.md"), "Went running in the park.")
	writeNote(t, filepath.Join(root, "JOURNAL", "2025-02-10.md"), "Running again, felt great.")
	writeNote(t, filepath.Join(root, "CAREER", "resume.md"), "Resume draft for the new role.")
	return root
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("content is %T", res.Content[0])
	return ""
}

func TestNew_RegistersTools(t *testing.T) {
	s := New(NewTools(assistant.New(llm.NewMockClient(), "m"), "", nil))
	tools := s.ListTools()
	for _, name := range []string{"categorize_note", "summarize_folder", "analyze_pattern", "ask_vault", "vault_report", "list_categories"} {
		assert.Contains(t, tools, name)
	}
}

func TestHandleAsk_DefaultVault(t *testing.T) {
	root := testVault(t)
	client := llm.NewMockClient("Twice.")
	tools := NewTools(assistant.New(client, "m"), root, nil)

	res, err := tools.HandleAsk(context.Background(), call("ask_vault", map[string]interface{}{
		"question":  "how often was I running?",
		"max_notes": float64(1),
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var qa models.QAResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &qa))
	assert.Equal(t, "Twice.", qa.Answer)
	assert.Equal(t, 1, qa.SourcesUsed)
}

func TestHandleAnalyze_WithoutAI(t *testing.T) {
	root := testVault(t)
	client := llm.NewMockClient()
	tools := NewTools(assistant.New(client, "m"), root, nil)

	res, err := tools.HandleAnalyze(context.Background(), call("analyze_pattern", map[string]interface{}{
		"folder":     filepath.Join(root, "JOURNAL"),
		"keyword":    "running",
		"include_ai": false,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var pa models.PatternAnalysis
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &pa))
	assert.Equal(t, 2, pa.NotesWithKeyword)
	assert.Zero(t, client.CallCount())
}

func TestHandleCategories(t *testing.T) {
	root := testVault(t)
	tools := NewTools(assistant.New(&llm.MockClient{Default: "Personal notes"}, "m"), root, nil)

	res, err := tools.HandleCategories(context.Background(), call("list_categories", nil))
	require.NoError(t, err)
	var cats []models.VaultCategory
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &cats))
	require.Len(t, cats, 2)
	assert.Equal(t, "Personal notes", cats[0].Description)
}

func TestHandlers_ToolErrors(t *testing.T) {
	root := testVault(t)
	tools := NewTools(assistant.New(llm.NewMockClient(), "m"), root, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		handle  func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]interface{}
		wantMsg string
	}{
		{"missing note", tools.HandleCategorize, nil, "note"},
		{"missing keyword", tools.HandleAnalyze, map[string]interface{}{"folder": root}, "keyword"},
		{"missing folder", tools.HandleSummarize, map[string]interface{}{"folder": filepath.Join(root, "nope")}, "not found"},
		{"empty question", tools.HandleAsk, map[string]interface{}{"question": " "}, "invalid input"},
		{"not markdown", tools.HandleCategorize, map[string]interface{}{"note": filepath.Join(root, "JOURNAL")}, "invalid input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handle(ctx, call("x", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.True(t, strings.Contains(text(t, res), tt.wantMsg), text(t, res))
		})
	}
}
