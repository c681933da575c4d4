package voice

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/telliex/ai-swift/internal/model/chat"
	"github.com/telliex/ai-swift/internal/model/literature"
	"github.com/telliex/ai-swift/internal/service/completion"
	"github.com/telliex/ai-swift/internal/service/prompt"
	"github.com/telliex/ai-swift/internal/service/pubmed"
	"github.com/telliex/ai-swift/internal/service/synthesize"
	"github.com/telliex/ai-swift/pkg/utils"
)

// Transcriber turns a binary audio payload into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Completer generates the assistant reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []chat.Turn, userTurn string) (string, error)
}

// Searcher performs best-effort literature search; nil means no
// augmentation.
type Searcher interface {
	Search(ctx context.Context, query string) []literature.Record
}

// Synthesizer turns reply text into a streamable audio body.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, profile synthesize.Profile) (io.ReadCloser, error)
}

// Handler orchestrates one voice request: transcribe, optionally augment,
// complete, synthesize, stream. Strictly sequential, no retries, no state
// kept across requests.
type Handler struct {
	transcriber Transcriber
	completer   Completer
	searcher    Searcher
	synthesizer Synthesizer
	composer    *prompt.Composer
}

// New creates the voice request handler.
func New(transcriber Transcriber, completer Completer, searcher Searcher, synthesizer Synthesizer, composer *prompt.Composer) *Handler {
	return &Handler{
		transcriber: transcriber,
		completer:   completer,
		searcher:    searcher,
		synthesizer: synthesizer,
		composer:    composer,
	}
}

// RegisterRoutes mounts the voice endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/voice", h.handleVoice)
}

func (h *Handler) handleVoice(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)

	sub, err := parseSubmission(r)
	if err != nil {
		log.Printf("[voice] %s invalid submission: %v", traceID, err)
		utils.RespondText(w, http.StatusBadRequest, "Invalid request")
		return
	}
	defer sub.close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	start := time.Now()
	transcript, err := h.resolveTranscript(r.Context(), sub)
	if err != nil || transcript == "" {
		if err != nil {
			log.Printf("[voice] %s transcription failed: %v", traceID, err)
		}
		utils.RespondText(w, http.StatusBadRequest, "Invalid audio")
		return
	}
	log.Printf("[voice] %s transcribe took %s", traceID, time.Since(start))

	// Literature augmentation is strictly additive: a nil result, for any
	// reason, degrades to the unaugmented prompt.
	var records []literature.Record
	if pubmed.ShouldSearch(transcript) {
		records = h.searcher.Search(r.Context(), transcript)
	}

	systemPrompt := h.composer.Compose(sub.language, prompt.ContextFromRequest(r), records)

	start = time.Now()
	reply, err := h.completer.Complete(r.Context(), systemPrompt, sub.history, transcript)
	if err != nil {
		log.Printf("[voice] %s completion failed: %v", traceID, err)
		if completion.IsRateLimited(err) {
			utils.RespondText(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		utils.RespondText(w, http.StatusInternalServerError, "Completion failed")
		return
	}
	log.Printf("[voice] %s text completion took %s", traceID, time.Since(start))

	start = time.Now()
	audio, err := h.synthesizer.Synthesize(r.Context(), reply, synthesize.ProfileFor(sub.language))
	if err != nil {
		log.Printf("[voice] %s synthesis failed: %v", traceID, err)
		utils.RespondText(w, http.StatusInternalServerError, "Voice synthesis failed")
		return
	}
	defer audio.Close()
	log.Printf("[voice] %s cartesia request took %s", traceID, time.Since(start))

	// The body carries only audio bytes, so transcript and reply travel as
	// percent-encoded sidecar headers.
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Transcript", url.QueryEscape(transcript))
	w.Header().Set("X-Response", url.QueryEscape(reply))
	w.Header().Set("X-Chinese-UI", strconv.FormatBool(sub.language == chat.LanguageTraditionalChinese))

	start = time.Now()
	if _, err := io.Copy(w, audio); err != nil {
		// Client gone mid-stream; nothing upstream to unwind.
		log.Printf("[voice] %s audio stream interrupted: %v", traceID, err)
		return
	}
	log.Printf("[voice] %s stream took %s", traceID, time.Since(start))
}

func (h *Handler) resolveTranscript(ctx context.Context, sub *submission) (string, error) {
	if sub.audio == nil {
		return sub.text, nil
	}
	return h.transcriber.Transcribe(ctx, sub.audio, sub.filename)
}

func requestTraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}
