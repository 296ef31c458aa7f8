package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/subtextdev/subtext-api/internal/api/shared"
	"github.com/subtextdev/subtext-api/internal/service"
)

// WorkerHandler serves the worker pull/push endpoints.
type WorkerHandler struct {
	orchestrator *service.Orchestrator
	logger       *slog.Logger
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(orchestrator *service.Orchestrator, logger *slog.Logger) *WorkerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// PopTask handles POST /queue/pop. An empty queue is a normal outcome;
// it maps to 404 so idle workers can poll cheaply.
func (h *WorkerHandler) PopTask(w http.ResponseWriter, r *http.Request) {
	t, ok := h.orchestrator.ClaimNext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "No pending tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WorkerTaskResponse{
		ID:                t.ID.String(),
		Domain:            string(t.Domain),
		Phase:             string(t.Phase),
		Status:            string(t.Status),
		SystemInstruction: t.SystemInstruction,
		UserMessage:       t.UserMessage,
	})
}

// CompleteTask handles POST /queue/complete/{taskID}.
func (h *WorkerHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req CompleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.orchestrator.ReportResult(r.Context(), taskID, req.Result); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompleteTaskResponse{Status: "ok"})
}
