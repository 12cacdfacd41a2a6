// Package category discovers vault categories, describes them with the text-completion
// service and memoizes the result for a bounded time.
package category

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/llm"
	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/sampling"
	"github.com/hyperjump/vaultwise/internal/vault"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// Discover lists the top-level, non-hidden folders of vaultPath as category candidates.
func Discover(reader *vault.Reader, vaultPath string) ([]models.VaultCategory, error) {
	dirs, err := reader.Subfolders(vaultPath)
	if err != nil {
		return nil, err
	}
	categories := make([]models.VaultCategory, 0, len(dirs))
	for _, dir := range dirs {
		categories = append(categories, models.VaultCategory{
			Name: filepath.Base(dir),
			Path: dir,
		})
	}
	return categories, nil
}

// FallbackDescription is used when a category cannot be described by the model.
func FallbackDescription(name string) string {
	return name + " folder"
}

// Enricher attaches a short model-written description to each category.
type Enricher struct {
	reader      *vault.Reader
	client      llm.Client
	model       string
	samples     int
	depth       int
	sampleChars int
	rngMu       sync.Mutex
	rng         *rand.Rand
	logger      *zap.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithSampling sets how many notes are sampled per category, how deep folders are searched
// for them and how many characters of each note are shown to the model.
func WithSampling(samples, depth, sampleChars int) EnricherOption {
	return func(e *Enricher) {
		if samples > 0 {
			e.samples = samples
		}
		if depth > 0 {
			e.depth = depth
		}
		if sampleChars > 0 {
			e.sampleChars = sampleChars
		}
	}
}

// WithRand sets the random source used to pick sample notes. Access to it is serialized,
// so one source may serve concurrent Enrich calls.
func WithRand(rng *rand.Rand) EnricherOption {
	return func(e *Enricher) {
		e.rng = rng
	}
}

// WithEnricherLogger sets the logger.
func WithEnricherLogger(logger *zap.Logger) EnricherOption {
	return func(e *Enricher) {
		e.logger = utils.OrNop(logger)
	}
}

// NewEnricher creates an Enricher that describes categories with client and model.
func NewEnricher(reader *vault.Reader, client llm.Client, model string, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		reader:      reader,
		client:      client,
		model:       model,
		samples:     3,
		depth:       3,
		sampleChars: 500,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns a copy of categories with descriptions filled in. A category whose folder
// has no readable notes, or whose description request fails, gets FallbackDescription.
// Only cancellation of ctx is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, categories []models.VaultCategory) ([]models.VaultCategory, error) {
	e.logger.Info("analyzing categories", zap.Int("count", len(categories)))
	out := make([]models.VaultCategory, len(categories))
	for i, c := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = c
		samples := e.sample(c.Path)
		if len(samples) == 0 {
			e.logger.Debug("category has no notes", zap.String("category", c.Name))
			out[i].Description = FallbackDescription(c.Name)
			continue
		}
		desc, err := e.describe(ctx, c.Name, samples)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn("could not describe category", zap.String("category", c.Name), zap.Error(err))
			desc = FallbackDescription(c.Name)
		}
		out[i].Description = desc
		e.logger.Debug("category described", zap.String("category", c.Name), zap.Int("samples", len(samples)))
	}
	return out, nil
}

// sample returns the leading text of up to e.samples randomly chosen notes under folder.
func (e *Enricher) sample(folder string) []string {
	paths, err := e.reader.ListMarkdown(folder, e.depth)
	if err != nil {
		e.logger.Warn("cannot read category folder", zap.String("path", folder), zap.Error(err))
		return nil
	}
	var samples []string
	for _, p := range e.shuffle(paths) {
		if len(samples) >= e.samples {
			break
		}
		note, err := e.reader.ReadNote(p)
		if err != nil {
			continue
		}
		samples = append(samples, utils.Head(note.Content, e.sampleChars))
	}
	return samples
}

func (e *Enricher) shuffle(paths []string) []string {
	if e.rng == nil {
		return sampling.RandomSubset(paths, len(paths), nil)
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return sampling.RandomSubset(paths, len(paths), e.rng)
}

func (e *Enricher) describe(ctx context.Context, name string, samples []string) (string, error) {
	reply, err := e.client.Complete(ctx, e.model, DescriptionPrompt(name, samples))
	if err != nil {
		return "", err
	}
	desc := strings.Trim(strings.TrimSpace(reply), `"'`)
	if desc == "" {
		return "", fmt.Errorf("empty description")
	}
	return desc, nil
}

// DescriptionPrompt asks for a one-sentence description of a folder from sample notes.
func DescriptionPrompt(name string, samples []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are analyzing a folder called %q from an Obsidian vault.\n\n", name)
	sb.WriteString("Here are sample files from this folder:\n\n")
	for i, s := range samples {
		fmt.Fprintf(&sb, "--- Sample %d ---\n%s\n\n", i+1, s)
	}
	sb.WriteString("In ONE sentence (max 15 words), describe what this folder contains.\n\n")
	sb.WriteString("Examples:\n")
	sb.WriteString("- \"Daily journal entries and personal reflections\"\n")
	sb.WriteString("- \"Career documents including resumes and job applications\"\n")
	sb.WriteString("- \"Financial tracking, budgets, and investment notes\"\n\n")
	sb.WriteString("Description:")
	return sb.String()
}
