package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyjournal-backend/internal/handlers"
	"studyjournal-backend/internal/middleware"
	"studyjournal-backend/internal/websocket"
)

func New(
	journalHandler *handlers.JournalHandler,
	summaryHandler *handlers.SummaryHandler,
	quizHandler *handlers.QuizHandler,
	progressHandler *handlers.ProgressHandler,
	dataHandler *handlers.DataHandler,
	chatHandler *handlers.ChatHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// AI rate limiter (10 req/min per IP)
	aiLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Chat Proxy (legacy path the web client calls) ────
	r.Group(func(r chi.Router) {
		r.Use(aiLimiter.Middleware)
		r.Post("/api/chat", chatHandler.Forward)
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Journal Routes ────
		r.Route("/journal", func(r chi.Router) {
			r.Post("/", journalHandler.Create)
			r.Get("/", journalHandler.List)
			r.Delete("/{id}", journalHandler.Delete)
		})

		// ──── Summary Routes ────
		r.Route("/summaries", func(r chi.Router) {
			r.Use(aiLimiter.Middleware)
			r.Post("/generate", summaryHandler.Generate)
		})

		// ──── Quiz Routes ────
		r.Route("/quizzes", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(aiLimiter.Middleware)
				r.Post("/generate", quizHandler.Generate)
			})

			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", quizHandler.GetSession)
				r.Post("/answers", quizHandler.SelectAnswer)
				r.Post("/submit", quizHandler.Submit)
			})
		})

		r.Get("/quiz-history", quizHandler.History)

		// ──── Progress Routes ────
		r.Route("/progress", func(r chi.Router) {
			r.Get("/stats", progressHandler.Stats)
			r.Get("/badges", progressHandler.Badges)
		})

		// ──── Data Routes ────
		r.Route("/data", func(r chi.Router) {
			r.Post("/clear-request", dataHandler.RequestClear)
			r.Post("/clear", dataHandler.ConfirmClear)
		})

		// ──── Job Routes ────
		r.Get("/jobs/{id}", quizHandler.GetJob)

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
