package models

import "errors"

var (
	// ErrNotFound is returned when a vault, folder, or note path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for a folder argument that is a file, a note that is not
	// markdown, or an empty keyword or question.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyResult is returned when no markdown files exist under the given root.
	ErrEmptyResult = errors.New("no markdown files found")

	// ErrExternalService is returned when the text-completion service fails.
	ErrExternalService = errors.New("text-completion service failed")
)
