package api

import (
	"log/slog"
	"net/http"

	"github.com/subtextdev/subtext-api/internal/api/shared"
	"github.com/subtextdev/subtext-api/internal/domain"
	"github.com/subtextdev/subtext-api/internal/service"
)

// ReadmeHandler handles README generation HTTP requests.
type ReadmeHandler struct {
	orchestrator *service.Orchestrator
	logger       *slog.Logger
}

// NewReadmeHandler creates a new ReadmeHandler.
func NewReadmeHandler(orchestrator *service.Orchestrator, logger *slog.Logger) *ReadmeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadmeHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GenerateReadme handles POST /api/v1/generate-readme requests. The
// synchronous path renders a fixed template deterministically; with
// async set, the job is queued instead and the client polls for it.
func (h *ReadmeHandler) GenerateReadme(w http.ResponseWriter, r *http.Request) {
	var req ReadmeGenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	target := domain.DocTarget(req.DocTarget)
	mode := domain.Mode(req.Mode)
	if !domain.IsValidMode(mode) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: invalid mode")
		return
	}

	if req.Async {
		taskID, templateName, err := h.orchestrator.EnqueueReadme(r.Context(), req.Fact, target, mode)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}

		shared.RespondWithJSON(w, r, http.StatusOK, ReadmeGenerateResponse{
			TaskID:   taskID.String(),
			Template: templateName,
			Fallback: false,
		})
		return
	}

	content, templateName, err := h.orchestrator.RenderReadme(req.Fact, target)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReadmeGenerateResponse{
		Content:  content,
		Template: templateName,
		Fallback: false,
	})
}
