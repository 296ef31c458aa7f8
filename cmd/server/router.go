package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/subtextdev/subtext-api/internal/api"
	apiMiddleware "github.com/subtextdev/subtext-api/internal/api/middleware"
	"github.com/subtextdev/subtext-api/internal/service"
)

// setupRouter creates the application router with all routes and
// middleware. The same surface serves both sides of the queue: editor
// clients on /api/v1 and /tasks, inference workers on /queue.
func setupRouter(orchestrator *service.Orchestrator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	commitHandler := api.NewCommitHandler(orchestrator, logger)
	readmeHandler := api.NewReadmeHandler(orchestrator, logger)
	taskHandler := api.NewTaskHandler(orchestrator, logger)
	workerHandler := api.NewWorkerHandler(orchestrator, logger)

	// Client endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate-commit", commitHandler.GenerateCommit)
		r.Post("/generate-readme", readmeHandler.GenerateReadme)
	})
	r.Get("/tasks/{taskID}", taskHandler.GetTaskStatus)

	// Worker endpoints
	r.Route("/queue", func(r chi.Router) {
		r.Post("/pop", workerHandler.PopTask)
		r.Post("/complete/{taskID}", workerHandler.CompleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
