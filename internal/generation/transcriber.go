// Package generation defines the boundary between the application core and
// the text summarizer that derives lesson transcripts from lesson content.
// The summarizer is a black box to the rest of the system: a heuristic
// implementation lives in this package and an LLM-backed one in
// internal/platform/gemini.
package generation

import (
	"context"
	"errors"
)

// Common errors returned by transcriber implementations.
var (
	// ErrGenerationFailed is returned when transcript generation fails for
	// any general reason.
	ErrGenerationFailed = errors.New("failed to generate transcript")

	// ErrInvalidConfig is returned when a transcriber configuration is
	// invalid.
	ErrInvalidConfig = errors.New("invalid transcriber configuration")
)

// Transcriber derives a transcript from lesson content.
type Transcriber interface {
	// Transcribe returns a transcript for the given content.
	// Empty content yields an empty transcript and no error.
	Transcribe(ctx context.Context, content string) (string, error)
}
