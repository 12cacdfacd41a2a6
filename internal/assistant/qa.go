package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/ranking"
)

// AnswerQuestion answers question from the notes under vaultPath most relevant to it.
// At most maxNotes notes are used (0 uses the configured default). When no note matches
// any keyword of the question, the most recently modified notes are used instead.
func (a *Assistant) AnswerQuestion(ctx context.Context, vaultPath, question string, maxNotes int) (*models.QAResult, error) {
	res, err := a.answer(ctx, vaultPath, question, maxNotes)
	return res, wrap(opAsk, err)
}

func (a *Assistant) answer(ctx context.Context, vaultPath, question string, maxNotes int) (*models.QAResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", models.ErrInvalidInput)
	}
	if err := requirePath("vault path", vaultPath); err != nil {
		return nil, err
	}
	files, err := a.reader.ReadFiles(vaultPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("read vault", zap.String("vault", vaultPath), zap.Int("notes", len(files)))
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no markdown files found in vault %s", models.ErrEmptyResult, vaultPath)
	}

	if maxNotes <= 0 {
		maxNotes = a.cfg.QAMaxNotes
	}
	var selected []models.VaultFile
	for _, sf := range a.scorer.SelectRelevant(question, files, maxNotes) {
		selected = append(selected, sf.VaultFile)
	}
	usedFallback := false
	if len(selected) == 0 {
		usedFallback = true
		selected = ranking.Fallback(mostRecentFirst(files), a.cfg.QAFallbackNotes)
		a.logger.Info("no keyword matches, using recent notes", zap.Int("notes", len(selected)))
	} else {
		a.logger.Info("selected relevant notes", zap.Int("notes", len(selected)))
	}

	noteContext := qaContext(selected, a.cfg.QANoteChars)
	reply, err := a.complete(ctx, qaPrompt(noteContext, question))
	if err != nil {
		return nil, err
	}

	sources := make([]string, len(selected))
	for i, f := range selected {
		sources[i] = f.RelPath
	}
	return &models.QAResult{
		Question:          question,
		Answer:            reply,
		SourcesUsed:       len(selected),
		Sources:           sources,
		UsedFallback:      usedFallback,
		ContextSizeTokens: a.counter.Count(noteContext),
	}, nil
}

// mostRecentFirst returns a copy of files ordered by modification time, newest first.
func mostRecentFirst(files []models.VaultFile) []models.VaultFile {
	out := make([]models.VaultFile, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
	return out
}
