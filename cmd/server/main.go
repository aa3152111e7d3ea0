package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyjournal-backend/internal/config"
	"studyjournal-backend/internal/handlers"
	"studyjournal-backend/internal/quiz"
	"studyjournal-backend/internal/repository"
	"studyjournal-backend/internal/router"
	"studyjournal-backend/internal/services"
	"studyjournal-backend/internal/store"
	"studyjournal-backend/internal/websocket"
	"studyjournal-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Study Journal Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Open Local Data Store ────
	st, err := store.New(cfg.DataPath)
	if err != nil {
		log.Fatalf("✗ Data store initialization failed: %v", err)
	}
	log.Printf("✓ Data store ready (%s)", cfg.DataPath)

	// ──── Initialize Repositories ────
	journalRepo := repository.NewJournalRepo(st)
	historyRepo := repository.NewHistoryRepo(st)
	dataRepo := repository.NewDataRepo(st)

	// ──── Step 3: Initialize OpenAI Gateway ────
	gateway := services.NewChatGateway(
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		cfg.OpenAIBaseURL,
		time.Duration(cfg.OpenAITimeoutSecs)*time.Second,
	)
	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠ OPENAI_API_KEY not set, AI features will return configuration errors")
	} else {
		log.Printf("✓ OpenAI client initialized (%s)", cfg.OpenAIModel)
	}
	generator := services.NewGenerator(gateway)

	// ──── Step 4: Start WebSocket Hub ────
	wsHub := websocket.NewHub()
	log.Println("✓ WebSocket hub started")

	// ──── Step 5: Start Quiz Worker Pool ────
	registry := quiz.NewRegistry()
	workerPool := worker.NewPool(generator, registry, wsHub, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Initialize Handlers ────
	journalHandler := handlers.NewJournalHandler(journalRepo)
	summaryHandler := handlers.NewSummaryHandler(generator)
	quizHandler := handlers.NewQuizHandler(workerPool, registry, historyRepo)
	progressHandler := handlers.NewProgressHandler(journalRepo, historyRepo)
	dataHandler := handlers.NewDataHandler(dataRepo)
	chatHandler := handlers.NewChatHandler(gateway)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		journalHandler,
		summaryHandler,
		quizHandler,
		progressHandler,
		dataHandler,
		chatHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Study Journal Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
