package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/subtextdev/subtext-api/internal/api/shared"
	"github.com/subtextdev/subtext-api/internal/service"
)

// TaskHandler serves the client poll endpoint.
type TaskHandler struct {
	orchestrator *service.Orchestrator
	logger       *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(orchestrator *service.Orchestrator, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GetTaskStatus handles GET /tasks/{taskID}. Polling is side-effecting:
// the orchestrator may rewrite a completed two-phase task before
// responding, in which case the client simply sees "pending" again.
func (h *TaskHandler) GetTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	view, err := h.orchestrator.Poll(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskStatusResponse{
		TaskID: view.TaskID.String(),
		Domain: string(view.Domain),
		Status: string(view.Status),
		Result: view.Result,
		Error:  view.Error,
	})
}
