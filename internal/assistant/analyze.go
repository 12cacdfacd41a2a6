package assistant

import (
	"context"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/keyword"
	"github.com/hyperjump/vaultwise/internal/models"
)

// Trend labels.
const (
	TrendIncreasing = "Increasing"
	TrendDecreasing = "Decreasing"
	TrendStable     = "Stable"
)

const (
	dateLayout       = "2006-01-02"
	snippetsPerNote  = 2
	snippetSeparator = " ... "
	// trendRatio is how much larger one half must be than the other to count as a trend.
	trendRatio = 1.5
)

var filenameDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// AnalyzePattern counts how keyword is used across the notes directly inside folder and
// how that usage changes over time, based on dates in note filenames. With includeAI, a
// short model-written insight is added when at least one note matches.
func (a *Assistant) AnalyzePattern(ctx context.Context, folder, kw string, includeAI bool) (*models.PatternAnalysis, error) {
	res, err := a.analyze(ctx, folder, kw, includeAI)
	return res, wrap(opAnalyze, err)
}

func (a *Assistant) analyze(ctx context.Context, folder, kw string, includeAI bool) (*models.PatternAnalysis, error) {
	m, err := keyword.New(kw, a.cfg.KeywordRegex)
	if err != nil {
		return nil, err
	}
	if err := requirePath("folder", folder); err != nil {
		return nil, err
	}
	files, err := a.reader.ReadFolder(folder)
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Title < files[j].Title })

	var matches []models.KeywordMatch
	total := 0
	for _, f := range files {
		n := m.Count(f.Content)
		if n == 0 {
			continue
		}
		total += n
		matches = append(matches, models.KeywordMatch{
			NoteTitle: f.Title,
			Snippet:   strings.Join(m.Lines(f.Content, snippetsPerNote), snippetSeparator),
			Date:      DateFromFilename(filepath.Base(f.Path)),
			Mentions:  n,
		})
	}

	res := &models.PatternAnalysis{
		Keyword:          m.Keyword(),
		FolderPath:       folder,
		TotalMentions:    total,
		NotesWithKeyword: len(matches),
		TotalNotes:       len(files),
		Examples:         []models.KeywordMatch{},
	}
	t := Trends(matches)
	res.FirstMention, res.LastMention, res.PeakPeriod, res.Trend = t.First, t.Last, t.Peak, t.Trend

	if len(matches) > a.cfg.PatternExamples {
		res.Examples = append(res.Examples, matches[:a.cfg.PatternExamples]...)
	} else {
		res.Examples = append(res.Examples, matches...)
	}

	a.logger.Info("pattern analyzed",
		zap.String("keyword", res.Keyword),
		zap.Int("mentions", total),
		zap.Int("notes", len(matches)),
		zap.Int("total_notes", len(files)))

	if includeAI && len(matches) > 0 {
		insight, err := a.complete(ctx, insightPrompt(res.Keyword, matches, res.Trend, a.cfg.PatternExamples))
		if err != nil {
			return nil, err
		}
		res.AIInsights = insight
	}
	return res, nil
}

// DateFromFilename returns the first valid YYYY-MM-DD date in name, or "".
func DateFromFilename(name string) string {
	for _, d := range filenameDate.FindAllString(name, -1) {
		if _, err := time.Parse(dateLayout, d); err == nil {
			return d
		}
	}
	return ""
}

// Timeline summarizes when a keyword was mentioned.
type Timeline struct {
	First string
	Last  string
	Peak  string
	Trend string
}

// Trends derives the timeline of dated matches. Undated matches are ignored; with no dated
// matches the zero Timeline is returned. The peak is the month (YYYY-MM) with the most
// matching notes, the earliest month winning ties. The trend compares the number of matching
// notes in the first and second half of the span between the first and last mention. The
// halves are split by date, not by position in the match list: splitting the sorted list
// in the middle never leaves fewer matches in the second half, so it could not report
// Decreasing.
func Trends(matches []models.KeywordMatch) Timeline {
	var dates []time.Time
	for _, m := range matches {
		if m.Date == "" {
			continue
		}
		if d, err := time.Parse(dateLayout, m.Date); err == nil {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return Timeline{}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	first, last := dates[0], dates[len(dates)-1]

	months := make(map[string]int)
	for _, d := range dates {
		months[d.Format("2006-01")]++
	}
	peak := ""
	for month, n := range months {
		if peak == "" || n > months[peak] || (n == months[peak] && month < peak) {
			peak = month
		}
	}

	return Timeline{
		First: first.Format(dateLayout),
		Last:  last.Format(dateLayout),
		Peak:  peak,
		Trend: trend(dates, first, last),
	}
}

func trend(sorted []time.Time, first, last time.Time) string {
	span := last.Sub(first)
	if span <= 0 {
		return TrendStable
	}
	mid := first.Add(span / 2)
	early, late := 0, 0
	for _, d := range sorted {
		if d.Before(mid) {
			early++
		} else {
			late++
		}
	}
	switch {
	case float64(late) > float64(early)*trendRatio:
		return TrendIncreasing
	case float64(early) > float64(late)*trendRatio:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
