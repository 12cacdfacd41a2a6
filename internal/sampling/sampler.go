// Package sampling picks bounded, representative subsets of vault notes.
package sampling

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/ranking"
)

// Shares of a sample, in tenths, given to the most recent and the most important notes.
const (
	recentTenths    = 4
	importantTenths = 3
)

// Sampler selects representative notes from a folder.
type Sampler struct {
	now func() time.Time
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithClock sets the clock used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) {
		s.now = now
	}
}

// NewSampler creates a Sampler.
func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split returns how many of size slots go to recent, important and evenly distributed notes.
// The three parts always sum to size.
func Split(size int) (recent, important, distributed int) {
	if size <= 0 {
		return 0, 0, 0
	}
	recent = ceilTenths(recentTenths, size)
	important = ceilTenths(importantTenths, size)
	if important > size-recent {
		important = size - recent
	}
	distributed = size - recent - important
	return recent, important, distributed
}

func ceilTenths(tenths, size int) int {
	return (tenths*size + 9) / 10
}

// Representative returns exactly min(size, len(files)) distinct notes: the most recently
// modified, then the most important of the rest, then notes spread evenly across the remainder ordered
// oldest to newest.
// When size covers every file the input is returned unchanged.
func (s *Sampler) Representative(files []models.VaultFile, size int) []models.VaultFile {
	if size >= len(files) {
		return files
	}
	if size <= 0 {
		return nil
	}
	recentN, importantN, distributedN := Split(size)

	byRecency := make([]models.VaultFile, len(files))
	copy(byRecency, files)
	sort.SliceStable(byRecency, func(i, j int) bool {
		return byRecency[i].ModTime.After(byRecency[j].ModTime)
	})

	sample := make([]models.VaultFile, 0, size)
	sample = append(sample, byRecency[:recentN]...)
	rest := byRecency[recentN:]

	now := s.now()
	scores := make(map[string]float64, len(rest))
	for _, f := range rest {
		scores[f.Path] = ranking.Importance(f, now)
	}
	byImportance := make([]models.VaultFile, len(rest))
	copy(byImportance, rest)
	sort.SliceStable(byImportance, func(i, j int) bool {
		return scores[byImportance[i].Path] > scores[byImportance[j].Path]
	})
	sample = append(sample, byImportance[:importantN]...)

	remaining := make([]models.VaultFile, len(byImportance)-importantN)
	copy(remaining, byImportance[importantN:])
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].ModTime.Before(remaining[j].ModTime)
	})
	if distributedN > 0 {
		sample = append(sample, distribute(remaining, distributedN)...)
	}
	return sample
}

// distribute takes n items from items at an even interval. It never returns more than n.
func distribute(items []models.VaultFile, n int) []models.VaultFile {
	if n >= len(items) {
		return items
	}
	interval := len(items) / n
	if interval < 1 {
		interval = 1
	}
	out := make([]models.VaultFile, 0, n)
	for i := 0; i < len(items) && len(out) < n; i += interval {
		out = append(out, items[i])
	}
	return out
}

// RandomSubset returns n items chosen uniformly without replacement, in random order.
// When n covers every item, all of them are returned in random order. A nil rng uses
// the global source.
func RandomSubset[T any](items []T, n int, rng *rand.Rand) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	var perm []int
	if rng != nil {
		perm = rng.Perm(len(items))
	} else {
		perm = rand.Perm(len(items))
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = items[perm[i]]
	}
	return out
}
