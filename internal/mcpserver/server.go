// Package mcpserver exposes the vault operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// Version is reported to MCP clients.
var Version = "dev"

// Service is the set of vault operations exposed as tools.
type Service interface {
	Categorize(ctx context.Context, vaultPath, notePath string) (*models.CategorizeResult, error)
	SummarizeFolder(ctx context.Context, folder string) (*models.FolderSummary, error)
	AnalyzePattern(ctx context.Context, folder, keyword string, includeAI bool) (*models.PatternAnalysis, error)
	AnswerQuestion(ctx context.Context, vaultPath, question string, maxNotes int) (*models.QAResult, error)
	GenerateReport(ctx context.Context, vaultPath string) (*models.VaultReport, error)
	Categories(ctx context.Context, vaultPath string, refresh bool) ([]models.VaultCategory, error)
}

// Tools holds the tool handlers.
type Tools struct {
	svc          Service
	defaultVault string
	logger       *zap.Logger
}

// NewTools creates the tool handlers. defaultVault is used when a call omits the vault argument.
func NewTools(svc Service, defaultVault string, logger *zap.Logger) *Tools {
	return &Tools{svc: svc, defaultVault: defaultVault, logger: utils.OrNop(logger)}
}

// New creates an MCP server with every vault tool registered.
func New(t *Tools) *server.MCPServer {
	s := server.NewMCPServer(
		"vaultwise",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	t.Register(s)
	return s
}

// Serve runs the MCP server on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// Register adds the vault tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("categorize_note",
		mcp.WithDescription("Assign a markdown note to one of the vault's top-level folder categories"),
		mcp.WithString("note", mcp.Required(), mcp.Description("Path to the markdown note")),
		mcp.WithString("vault", mcp.Description("Vault root; defaults to the configured vault")),
	), t.HandleCategorize)

	s.AddTool(mcp.NewTool("summarize_folder",
		mcp.WithDescription("Summarize the markdown notes directly inside a folder"),
		mcp.WithString("folder", mcp.Required(), mcp.Description("Folder path")),
	), t.HandleSummarize)

	s.AddTool(mcp.NewTool("analyze_pattern",
		mcp.WithDescription("Track how a keyword is used across a folder over time"),
		mcp.WithString("folder", mcp.Required(), mcp.Description("Folder path")),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Keyword to track, case-insensitive")),
		mcp.WithBoolean("include_ai", mcp.Description("Ask the model for a short insight (default true)")),
	), t.HandleAnalyze)

	s.AddTool(mcp.NewTool("ask_vault",
		mcp.WithDescription("Answer a question using the most relevant notes in the vault"),
		mcp.WithString("question", mcp.Required(), mcp.Description("Free-text question")),
		mcp.WithString("vault", mcp.Description("Vault root; defaults to the configured vault")),
		mcp.WithNumber("max_notes", mcp.Description("Maximum notes to use as context")),
	), t.HandleAsk)

	s.AddTool(mcp.NewTool("vault_report",
		mcp.WithDescription("Generate vault statistics with folder summaries and top themes"),
		mcp.WithString("vault", mcp.Description("Vault root; defaults to the configured vault")),
	), t.HandleReport)

	s.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the vault's top-level folders with generated descriptions"),
		mcp.WithString("vault", mcp.Description("Vault root; defaults to the configured vault")),
		mcp.WithBoolean("refresh", mcp.Description("Rebuild descriptions instead of using the cache")),
	), t.HandleCategories)
}

// HandleCategorize handles categorize_note.
func (t *Tools) HandleCategorize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, err := req.RequireString("note")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.Categorize(ctx, t.vault(req), note)
	return t.result("categorize_note", res, err)
}

// HandleSummarize handles summarize_folder.
func (t *Tools) HandleSummarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder, err := req.RequireString("folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.SummarizeFolder(ctx, folder)
	return t.result("summarize_folder", res, err)
}

// HandleAnalyze handles analyze_pattern.
func (t *Tools) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder, err := req.RequireString("folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kw, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.AnalyzePattern(ctx, folder, kw, req.GetBool("include_ai", true))
	return t.result("analyze_pattern", res, err)
}

// HandleAsk handles ask_vault.
func (t *Tools) HandleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.AnswerQuestion(ctx, t.vault(req), question, req.GetInt("max_notes", 0))
	return t.result("ask_vault", res, err)
}

// HandleReport handles vault_report.
func (t *Tools) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.svc.GenerateReport(ctx, t.vault(req))
	return t.result("vault_report", res, err)
}

// HandleCategories handles list_categories.
func (t *Tools) HandleCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats, err := t.svc.Categories(ctx, t.vault(req), req.GetBool("refresh", false))
	return t.result("list_categories", cats, err)
}

func (t *Tools) vault(req mcp.CallToolRequest) string {
	return req.GetString("vault", t.defaultVault)
}

// result renders v as indented JSON. Operation failures become tool errors so the
// client sees the message; only encoding failures are returned as protocol errors.
func (t *Tools) result(tool string, v interface{}, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		t.logger.Warn("tool failed", zap.String("tool", tool), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", tool, err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
