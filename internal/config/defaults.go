package config

import "time"

// Provider names accepted in llm.provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Vault.ExcludeDirs == nil {
		cfg.Vault.ExcludeDirs = []string{"node_modules"}
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderGemini
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderOllama:
			cfg.LLM.Model = "llama3.1"
		default:
			cfg.LLM.Model = "gemini-2.5-flash"
		}
	}
	if cfg.LLM.Burst == 0 {
		cfg.LLM.Burst = 1
	}

	cfg.Assistant.ApplyDefaults()

	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 400 * time.Millisecond
	}
}

// ApplyDefaults replaces zero or negative limits in a with their defaults.
func (a *AssistantConfig) ApplyDefaults() {
	if a.QAMaxNotes <= 0 {
		a.QAMaxNotes = 20
	}
	if a.QAFallbackNotes <= 0 {
		a.QAFallbackNotes = 10
	}
	if a.QANoteChars <= 0 {
		a.QANoteChars = 2000
	}
	if a.SummaryMaxNotes <= 0 {
		a.SummaryMaxNotes = 40
	}
	if a.FolderSampleSize <= 0 {
		a.FolderSampleSize = 15
	}
	if a.ThemeSampleSize <= 0 {
		a.ThemeSampleSize = 50
	}
	if a.ReportNoteChars <= 0 {
		a.ReportNoteChars = 1000
	}
	if a.CategoryTTL <= 0 {
		a.CategoryTTL = time.Hour
	}
	if a.CategorySamples <= 0 {
		a.CategorySamples = 3
	}
	if a.CategoryDepth <= 0 {
		a.CategoryDepth = 3
	}
	if a.CategorySampleChars <= 0 {
		a.CategorySampleChars = 500
	}
	if a.PatternExamples <= 0 {
		a.PatternExamples = 5
	}
}
