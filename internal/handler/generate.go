package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// GenerateHandler handles draft generation requests
type GenerateHandler struct {
	articles *service.ArticleService
	logger   *slog.Logger
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(articles *service.ArticleService, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		articles: articles,
		logger:   logger,
	}
}

// GenerateDraft creates new article content. Anonymous callers get the demo
// allowance; signed-in callers are gated by their plan.
// POST /v1/generate-draft
func (h *GenerateHandler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	id := requestIdentity(r)

	var req service.GenerateArticleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.Generate(r.Context(), id.Token, id.OwnerID, id.Authenticated, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, article)
}
