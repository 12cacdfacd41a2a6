// Package models defines core data structures for vault notes, categories, and assistant results.
package models

import "time"

// RootFolder is the TopFolder assigned to notes that live directly in the vault root.
const RootFolder = "Root"

// VaultFile is a markdown note read from disk. It is an immutable snapshot taken at read time.
type VaultFile struct {
	Path      string    `json:"path"`
	RelPath   string    `json:"rel_path"`
	Title     string    `json:"title"`
	Folder    string    `json:"folder"`
	TopFolder string    `json:"top_folder"`
	ModTime   time.Time `json:"mod_time"`
	Size      int64     `json:"size"`
	Content   string    `json:"-"`
}

// ScoredFile is a VaultFile with a query relevance score.
type ScoredFile struct {
	VaultFile
	Score int `json:"score"`
}

// VaultCategory is a top-level vault folder treated as a semantic grouping of notes.
type VaultCategory struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}
