package voice

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/telliex/ai-swift/internal/model/chat"
)

const maxFormMemory = 32 << 20 // 32MB

// submission is the validated multipart form: text or audio input, the
// resolved language, and the replayed conversation history.
type submission struct {
	text     string
	audio    multipart.File
	filename string
	language chat.Language
	history  []chat.Turn
}

func (s *submission) close() {
	if s.audio != nil {
		s.audio.Close()
	}
}

// parseSubmission validates the form once at entry; any shape problem fails
// the request before a single downstream call is made.
func parseSubmission(r *http.Request) (*submission, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}

	sub := &submission{language: chat.ParseLanguage(r.FormValue("language"))}

	if values := r.MultipartForm.Value["input"]; len(values) > 0 {
		sub.text = values[0]
	} else {
		file, header, err := r.FormFile("input")
		if err != nil {
			return nil, fmt.Errorf("input field is required: %w", err)
		}
		sub.audio = file
		sub.filename = header.Filename
		if sub.filename == "" {
			sub.filename = "audio.wav"
		}
	}

	for _, raw := range r.MultipartForm.Value["message"] {
		var turn chat.Turn
		if err := json.Unmarshal([]byte(raw), &turn); err != nil {
			sub.close()
			return nil, fmt.Errorf("decoding message entry: %w", err)
		}
		if err := turn.Validate(); err != nil {
			sub.close()
			return nil, fmt.Errorf("invalid message entry: %w", err)
		}
		sub.history = append(sub.history, turn)
	}

	return sub, nil
}
