package api

import (
	"log/slog"
	"net/http"

	"github.com/subtextdev/subtext-api/internal/api/shared"
	"github.com/subtextdev/subtext-api/internal/domain"
	"github.com/subtextdev/subtext-api/internal/service"
)

// CommitHandler handles commit generation HTTP requests.
type CommitHandler struct {
	orchestrator *service.Orchestrator
	logger       *slog.Logger
}

// NewCommitHandler creates a new CommitHandler.
func NewCommitHandler(orchestrator *service.Orchestrator, logger *slog.Logger) *CommitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommitHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GenerateCommit handles POST /api/v1/generate-commit requests. The
// work is queued; the client polls /tasks/{id} for the outcome.
func (h *CommitHandler) GenerateCommit(w http.ResponseWriter, r *http.Request) {
	var req domain.CommitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	taskID, err := h.orchestrator.EnqueueCommit(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CommitTaskResponse{
		TaskID:  taskID.String(),
		Status:  "pending",
		Message: "Request queued.",
	})
}
