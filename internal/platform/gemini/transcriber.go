// Package gemini implements the generation.Transcriber interface on top of
// Google's Gemini API. It is selected at startup when an API key is
// configured; otherwise the heuristic summarizer is used.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microcourses/api/internal/config"
	"github.com/microcourses/api/internal/generation"
	"google.golang.org/genai"
)

// transcriptPrompt asks the model for the same shape of output the
// heuristic summarizer produces, so consumers see a uniform transcript
// format regardless of backend.
const transcriptPrompt = "Summarize the following lesson content in at most five sentences, " +
	"then list the five most important keywords. " +
	"Respond in exactly this format:\nSummary: <sentences>\nKeywords: <comma-separated keywords>\n\n" +
	"Lesson content:\n%s"

// Transcriber generates lesson transcripts using the Gemini API.
type Transcriber struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure Transcriber implements generation.Transcriber.
var _ generation.Transcriber = (*Transcriber)(nil)

// NewTranscriber creates a Gemini-backed transcriber from the LLM
// configuration. Returns generation.ErrInvalidConfig when the API key or
// model name is missing.
func NewTranscriber(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Transcriber, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Transcriber{
		logger: logger.With(slog.String("component", "gemini_transcriber")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Transcribe implements the generation.Transcriber interface.
func (t *Transcriber) Transcribe(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	prompt := fmt.Sprintf(transcriptPrompt, content)

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		t.logger.Error("Gemini transcript generation failed", "error", err)
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		t.logger.Error("Gemini returned an empty transcript")
		return "", fmt.Errorf("%w: empty response", generation.ErrGenerationFailed)
	}

	return text, nil
}
