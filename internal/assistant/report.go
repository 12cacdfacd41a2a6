package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/textparse"
)

// Report thresholds.
const (
	activityMonths   = 12
	smallFolderNotes = 3
	largeFolderNotes = 100
)

// GenerateReport builds vault-wide statistics plus model-written folder summaries and
// themes for every note under vaultPath.
func (a *Assistant) GenerateReport(ctx context.Context, vaultPath string) (*models.VaultReport, error) {
	res, err := a.report(ctx, vaultPath)
	return res, wrap(opReport, err)
}

func (a *Assistant) report(ctx context.Context, vaultPath string) (*models.VaultReport, error) {
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

	groups := GroupByFolder(files)
	breakdown := FolderBreakdown(groups, len(files))

	a.logger.Info("generating folder summaries", zap.Int("folders", len(groups)))
	summaries, err := a.folderSummaries(ctx, breakdown, groups)
	if err != nil {
		return nil, err
	}

	a.logger.Info("generating top themes")
	themes, err := a.topThemes(ctx, files)
	if err != nil {
		return nil, err
	}

	return &models.VaultReport{
		ID:              uuid.NewString(),
		VaultPath:       vaultPath,
		GeneratedAt:     a.now(),
		TotalNotes:      len(files),
		TotalFolders:    len(groups),
		FolderBreakdown: breakdown,
		MonthlyActivity: MonthlyActivity(files, activityMonths),
		FolderSummaries: summaries,
		TopThemes:       themes,
		Suggestions:     Suggestions(breakdown),
	}, nil
}

// GroupByFolder groups notes by top-level folder; root-level notes share models.RootFolder.
func GroupByFolder(files []models.VaultFile) map[string][]models.VaultFile {
	groups := make(map[string][]models.VaultFile)
	for _, f := range files {
		top := f.TopFolder
		if top == "" {
			top = models.RootFolder
		}
		groups[top] = append(groups[top], f)
	}
	return groups
}

// FolderBreakdown returns note counts per folder with whole-number percentages of total,
// largest first and then by name.
func FolderBreakdown(groups map[string][]models.VaultFile, total int) []models.FolderStats {
	stats := make([]models.FolderStats, 0, len(groups))
	for name, files := range groups {
		stats = append(stats, models.FolderStats{
			Name:       name,
			NoteCount:  len(files),
			Percentage: percent(len(files), total),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].NoteCount != stats[j].NoteCount {
			return stats[i].NoteCount > stats[j].NoteCount
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// percent rounds half away from zero.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return (200*n + total) / (2 * total)
}

// MonthlyActivity counts notes by the UTC month of their last modification, newest month
// first, keeping at most months entries.
func MonthlyActivity(files []models.VaultFile, months int) []models.MonthlyActivity {
	counts := make(map[string]int)
	for _, f := range files {
		counts[f.ModTime.UTC().Format("2006-01")]++
	}
	activity := make([]models.MonthlyActivity, 0, len(counts))
	for month, n := range counts {
		activity = append(activity, models.MonthlyActivity{Month: month, NoteCount: n})
	}
	sort.Slice(activity, func(i, j int) bool { return activity[i].Month > activity[j].Month })
	if len(activity) > months {
		activity = activity[:months]
	}
	return activity
}

// Suggestions returns organization hints derived from the folder breakdown.
func Suggestions(breakdown []models.FolderStats) []string {
	suggestions := []string{}
	small := 0
	var large []models.FolderStats
	for _, s := range breakdown {
		if s.Name == models.RootFolder {
			suggestions = append(suggestions,
				fmt.Sprintf("%d notes in root directory - consider organizing into folders", s.NoteCount))
		} else if s.NoteCount < smallFolderNotes {
			small++
		}
		if s.NoteCount > largeFolderNotes {
			large = append(large, s)
		}
	}
	if small > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("%d folders with less than %d notes - consider consolidating", small, smallFolderNotes))
	}
	for _, s := range large {
		suggestions = append(suggestions,
			fmt.Sprintf("%s has %d notes - consider creating subfolders", s.Name, s.NoteCount))
	}
	return suggestions
}

// folderSummaries asks for all folder summaries in one prompt. Reply lines naming an
// unknown folder are dropped.
func (a *Assistant) folderSummaries(ctx context.Context, breakdown []models.FolderStats, groups map[string][]models.VaultFile) (map[string]string, error) {
	samples := make([]folderSample, 0, len(breakdown))
	byLower := make(map[string]string, len(breakdown))
	for _, s := range breakdown {
		files := groups[s.Name]
		samples = append(samples, folderSample{
			name:  s.Name,
			total: len(files),
			notes: a.sampler.Representative(files, a.cfg.FolderSampleSize),
		})
		byLower[strings.ToLower(s.Name)] = s.Name
	}

	reply, err := a.complete(ctx, folderSummariesPrompt(samples, a.cfg.ReportNoteChars))
	if err != nil {
		return nil, err
	}
	summaries := make(map[string]string)
	for _, kv := range textparse.KeyValueLines(reply) {
		if name, ok := byLower[strings.ToLower(kv.Key)]; ok {
			summaries[name] = kv.Value
		}
	}
	return summaries, nil
}

func (a *Assistant) topThemes(ctx context.Context, files []models.VaultFile) ([]string, error) {
	sample := a.sampler.Representative(files, a.cfg.ThemeSampleSize)
	reply, err := a.complete(ctx, themesPrompt(sample, a.cfg.ReportNoteChars))
	if err != nil {
		return nil, err
	}
	themes := textparse.NumberedList(reply)
	if themes == nil {
		themes = []string{}
	}
	return themes, nil
}
