package synthesize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/telliex/ai-swift/internal/config"
)

// Output format is fixed: raw PCM float32 little-endian at 24 kHz, the
// format the browser client feeds straight into its playback buffer.
const (
	outputContainer  = "raw"
	outputEncoding   = "pcm_f32le"
	outputSampleRate = 24000
)

// maxErrorBody bounds how much of an upstream error body is captured.
const maxErrorBody = 4096

// Synthesizer calls the Cartesia bytes endpoint to turn reply text into a
// streamable audio byte sequence.
type Synthesizer struct {
	apiKey  string
	baseURL string
	version string
	hc      *http.Client
}

// New creates a synthesizer bound to the configured Cartesia endpoint.
func New(cfg config.CartesiaConfig) *Synthesizer {
	return &Synthesizer{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		version: cfg.Version,
		hc:      &http.Client{},
	}
}

type ttsRequest struct {
	ModelID      string          `json:"model_id"`
	Transcript   string          `json:"transcript"`
	Voice        ttsVoice        `json:"voice"`
	OutputFormat ttsOutputFormat `json:"output_format"`
}

type ttsVoice struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type ttsOutputFormat struct {
	Container  string `json:"container"`
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
}

// UpstreamError carries a non-success status and the upstream error body
// for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cartesia returned %d: %s", e.StatusCode, e.Body)
}

// Synthesize requests raw PCM audio for text using the given voice profile.
// The returned body is the upstream response stream, not a buffered copy;
// the caller owns closing it.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, profile Profile) (io.ReadCloser, error) {
	payload, err := json.Marshal(ttsRequest{
		ModelID:    profile.ModelID,
		Transcript: text,
		Voice:      ttsVoice{Mode: "id", ID: profile.VoiceID},
		OutputFormat: ttsOutputFormat{
			Container:  outputContainer,
			Encoding:   outputEncoding,
			SampleRate: outputSampleRate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding tts request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/tts/bytes", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building tts request: %w", err)
	}
	req.Header.Set("Cartesia-Version", s.version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.apiKey)

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling cartesia: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp.Body, nil
}
