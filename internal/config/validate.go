package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/hyperjump/vaultwise/internal/models"
)

// Validate rejects settings that cannot be meaningful: negative limits, durations and
// rates, an unknown provider, or a port outside 0-65535. Zero values are left for
// ApplyDefaults.
func (c *Config) Validate() error {
	var errs []error
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}
	nonNegativeDuration := func(name string, d time.Duration) {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}

	switch c.LLM.Provider {
	case "", ProviderGemini, ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("llm.provider must be %s or %s, got %q", ProviderGemini, ProviderOllama, c.LLM.Provider))
	}
	nonNegative("llm.requests_per_minute", c.LLM.RequestsPerMinute)
	nonNegative("llm.burst", c.LLM.Burst)
	nonNegativeDuration("llm.timeout", c.LLM.Timeout)

	a := c.Assistant
	nonNegative("assistant.qa_max_notes", a.QAMaxNotes)
	nonNegative("assistant.qa_fallback_notes", a.QAFallbackNotes)
	nonNegative("assistant.qa_note_chars", a.QANoteChars)
	nonNegative("assistant.summary_max_notes", a.SummaryMaxNotes)
	nonNegative("assistant.folder_sample_size", a.FolderSampleSize)
	nonNegative("assistant.theme_sample_size", a.ThemeSampleSize)
	nonNegative("assistant.report_note_chars", a.ReportNoteChars)
	nonNegativeDuration("assistant.category_ttl", a.CategoryTTL)
	nonNegative("assistant.category_samples", a.CategorySamples)
	nonNegative("assistant.category_depth", a.CategoryDepth)
	nonNegative("assistant.category_sample_chars", a.CategorySampleChars)
	nonNegative("assistant.pattern_examples", a.PatternExamples)

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port))
	}
	nonNegativeDuration("watch.debounce", c.Watch.Debounce)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: invalid config: %w", models.ErrInvalidInput, errors.Join(errs...))
}
