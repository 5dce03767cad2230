package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// ToolsHandler handles SEO tool HTTP requests
type ToolsHandler struct {
	tools  *service.ToolsService
	logger *slog.Logger
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(tools *service.ToolsService, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{
		tools:  tools,
		logger: logger,
	}
}

// RunTool executes one of the SEO utilities
// POST /api/tools/{tool}
func (h *ToolsHandler) RunTool(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)

	tool := r.PathValue("tool")
	if tool == "" {
		httputil.RespondError(w, http.StatusBadRequest, "tool name is required")
		return
	}

	var payload map[string]interface{}
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.tools.Run(r.Context(), id.Token, id.OwnerID, id.Authenticated, tool, payload)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}
