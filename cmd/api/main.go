package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/telliex/ai-swift/internal/config"
	"github.com/telliex/ai-swift/internal/handler"
	"github.com/telliex/ai-swift/internal/handler/voice"
	"github.com/telliex/ai-swift/internal/service/completion"
	"github.com/telliex/ai-swift/internal/service/prompt"
	"github.com/telliex/ai-swift/internal/service/pubmed"
	"github.com/telliex/ai-swift/internal/service/synthesize"
	"github.com/telliex/ai-swift/internal/service/transcribe"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	voiceHandler := voice.New(
		transcribe.New(cfg.Groq),
		completion.New(cfg.Groq),
		pubmed.NewClient(cfg.PubMed),
		synthesize.New(cfg.Cartesia),
		prompt.NewComposer(),
	)

	router := handler.NewRouter(voiceHandler)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr, err := serverCfg.Addr()
	if err != nil {
		log.Fatalf("invalid server configuration: %v", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Swift voice backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
