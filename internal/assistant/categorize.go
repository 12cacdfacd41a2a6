package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/textparse"
)

// Categorize assigns notePath to one category. The candidates are the vault's discovered
// categories with their descriptions; when vaultPath is empty or has no category folders,
// DefaultCategories are used.
func (a *Assistant) Categorize(ctx context.Context, vaultPath, notePath string) (*models.CategorizeResult, error) {
	res, err := a.categorize(ctx, vaultPath, notePath)
	return res, wrap(opCategorize, err)
}

func (a *Assistant) categorize(ctx context.Context, vaultPath, notePath string) (*models.CategorizeResult, error) {
	if err := requirePath("note path", notePath); err != nil {
		return nil, err
	}
	note, err := a.reader.ReadNote(notePath)
	if err != nil {
		return nil, err
	}

	categories := DefaultCategories
	if vaultPath != "" {
		discovered, err := a.cache.GetCategories(ctx, vaultPath)
		if err != nil {
			return nil, err
		}
		if len(discovered) > 0 {
			categories = discovered
		}
	}

	reply, err := a.complete(ctx, categorizePrompt(categories, note.Content))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	cat := textparse.MatchCategory(reply, names)
	if cat == "" {
		return nil, fmt.Errorf("%w: model returned no category", models.ErrExternalService)
	}

	a.logger.Info("note categorized", zap.String("note", note.Title), zap.String("category", cat))
	return &models.CategorizeResult{
		NotePath: note.Path,
		Title:    note.Title,
		Category: cat,
	}, nil
}
