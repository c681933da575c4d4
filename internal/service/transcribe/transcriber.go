package transcribe

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/telliex/ai-swift/internal/config"
)

// Transcriber submits whole audio payloads to the Groq-hosted Whisper
// model. Text input never reaches this adapter; the orchestrator passes it
// through verbatim.
type Transcriber struct {
	client *openai.Client
	model  string
}

// New creates a transcriber bound to the configured Groq endpoint.
func New(cfg config.GroqConfig) *Transcriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Transcriber{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.WhisperModel,
	}
}

// Transcribe sends the audio in one shot and returns the transcript trimmed
// of surrounding whitespace. An empty trimmed result and a call failure are
// equivalent to the caller: both mean the audio is unusable.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
