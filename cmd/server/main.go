package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SURENDHAN/ai-interview/internal/agent"
	"github.com/SURENDHAN/ai-interview/internal/config"
	"github.com/SURENDHAN/ai-interview/internal/feedback"
	"github.com/SURENDHAN/ai-interview/internal/httpserver"
	"github.com/SURENDHAN/ai-interview/internal/llm"
	"github.com/SURENDHAN/ai-interview/internal/lookup"
	"github.com/SURENDHAN/ai-interview/internal/questionbank"
	"github.com/SURENDHAN/ai-interview/internal/resume"
	"github.com/SURENDHAN/ai-interview/internal/sandbox"
	"github.com/SURENDHAN/ai-interview/internal/storage"
	"github.com/SURENDHAN/ai-interview/internal/tools"
	"github.com/SURENDHAN/ai-interview/internal/transcribe"
	"github.com/SURENDHAN/ai-interview/internal/tts"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()
	ctx := context.Background()

	bank := questionbank.Load(cfg.QuestionsFile)
	registry := tools.NewRegistry(bank, lookup.NewWikipediaClient())

	var (
		engineLLM   agent.LLM
		feedbackLLM feedback.TextGenerator
	)
	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, registry)
	if err != nil {
		log.Printf("gemini client unavailable, sessions will use fallback replies: %v", err)
	} else {
		engineLLM = gemini
		feedbackLLM = gemini
	}

	var speaker agent.Speaker
	if cfg.DeepgramAPIKey != "" {
		speaker = tts.NewDeepgramClient(cfg.DeepgramAPIKey, cfg.DeepgramTTSModel)
	}

	var store feedback.Store
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		sb, err := storage.NewSupabase(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
		if err != nil {
			log.Printf("supabase unavailable, storing reports locally: %v", err)
			store = storage.Local{Dir: cfg.FeedbackDir}
		} else {
			store = sb
		}
	} else {
		store = storage.Local{Dir: cfg.FeedbackDir}
	}

	srv := httpserver.New(cfg, httpserver.Deps{
		Engine:      agent.NewEngine(engineLLM, registry),
		Transcriber: transcribe.NewService(transcribe.NewWhisperClient(cfg.WhisperURL, cfg.WhisperModel)),
		Speaker:     speaker,
		Runner:      sandbox.NewPistonClient(cfg.PistonURL),
		Feedback:    feedback.NewSynthesizer(feedbackLLM, store),
		Bank:        bank,
		Resume:      &resume.Store{},
	})

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- srv.Echo().Start(cfg.HTTPAddress)
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Echo().Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = srv.Echo().Close()
	}
}
