package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/markdown"
	"inkwell/internal/service"
)

// ArticleHandler handles article library HTTP requests
type ArticleHandler struct {
	articles *service.ArticleService
	logger   *slog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articles *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		logger:   logger,
	}
}

// ListArticles returns the caller's saved library
// GET /api/articles
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	articles, err := h.articles.List(r.Context(), id.Token, id.OwnerID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, articles)
}

// GetArticle retrieves one saved article
// GET /api/articles/{id}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	articleID := r.PathValue("id")
	if articleID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	article, err := h.articles.Get(r.Context(), id.Token, id.OwnerID, articleID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, article)
}

// UpdateArticle applies metadata edits to a saved article
// PUT /api/articles/{id}
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	articleID := r.PathValue("id")
	if articleID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	var req service.UpdateArticleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.Update(r.Context(), id.Token, id.OwnerID, articleID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, article)
}

// DeleteArticle removes a saved article
// DELETE /api/articles/{id}
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	articleID := r.PathValue("id")
	if articleID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	if err := h.articles.Delete(r.Context(), id.Token, id.OwnerID, articleID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExpandArticle lengthens a saved article and merges the result back in
// POST /api/articles/{id}/expand
func (h *ArticleHandler) ExpandArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	articleID := r.PathValue("id")
	if articleID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	var req service.ExpandArticleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.Expand(r.Context(), id.Token, id.OwnerID, articleID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, article)
}

// ExportArticle renders an article's body as standalone HTML
// GET /api/articles/{id}/export
func (h *ArticleHandler) ExportArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	articleID := r.PathValue("id")
	if articleID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "article ID is required")
		return
	}

	html, err := h.articles.ExportHTML(r.Context(), id.Token, id.OwnerID, articleID)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// PreviewMarkdown renders Markdown with the constrained preview renderer
// POST /api/articles/preview
func (h *ArticleHandler) PreviewMarkdown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Markdown string `json:"markdown"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"html": markdown.Render(req.Markdown),
	})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ArticleHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
