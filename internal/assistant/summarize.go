package assistant

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/textparse"
)

// EmptyFolderSummary is returned for a folder without markdown notes.
const EmptyFolderSummary = "No markdown files found in this folder."

// SummarizeFolder writes a narrative summary of the notes directly inside folder.
// Folders larger than the configured limit are reduced to a representative sample.
func (a *Assistant) SummarizeFolder(ctx context.Context, folder string) (*models.FolderSummary, error) {
	res, err := a.summarize(ctx, folder)
	return res, wrap(opSummarize, err)
}

func (a *Assistant) summarize(ctx context.Context, folder string) (*models.FolderSummary, error) {
	if err := requirePath("folder", folder); err != nil {
		return nil, err
	}
	files, err := a.reader.ReadFolder(folder)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return &models.FolderSummary{FolderPath: folder, Summary: EmptyFolderSummary}, nil
	}

	notes := files
	if len(files) > a.cfg.SummaryMaxNotes {
		notes = a.sampler.Representative(files, a.cfg.SummaryMaxNotes)
	}
	a.logger.Info("summarizing folder",
		zap.String("folder", folder), zap.Int("notes", len(files)), zap.Int("sampled", len(notes)))

	reply, err := a.complete(ctx, summarizePrompt(filepath.Base(filepath.Clean(folder)), len(files), notes))
	if err != nil {
		return nil, err
	}
	return &models.FolderSummary{
		FolderPath:   folder,
		NoteCount:    len(files),
		SampledNotes: len(notes),
		Summary:      textparse.WithoutLabeledLine(reply, "Themes"),
		Themes:       textparse.LabeledList(reply, "Themes"),
	}, nil
}
