package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/merge"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/sanitize"
	"inkwell/internal/upstream"
)

// GenerateArticleRequest is the dashboard's payload for a fresh draft.
type GenerateArticleRequest struct {
	Topic           string   `json:"topic"`
	Tone            string   `json:"tone"`
	TargetWordCount int      `json:"target_word_count"`
	Keywords        []string `json:"keywords"`
}

// Validate implements request validation at the API boundary.
func (r *GenerateArticleRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Topic,
			validation.Required,
			validation.Length(1, config.MaxTopicLength),
		),
		validation.Field(&r.TargetWordCount,
			validation.Min(0),
			validation.Max(config.MaxTargetWordCount),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ExpandArticleRequest asks for an existing saved article to be lengthened.
type ExpandArticleRequest struct {
	TargetWordCount int `json:"target_word_count"`
}

// Validate implements request validation at the API boundary.
func (r *ExpandArticleRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.TargetWordCount,
			validation.Required,
			validation.Min(config.MinTargetWordCount),
			validation.Max(config.MaxTargetWordCount),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// UpdateArticleRequest carries merge-patch style edits to article metadata.
type UpdateArticleRequest struct {
	Title           httputil.OptionalString `json:"title"`
	MetaTitle       httputil.OptionalString `json:"meta_title"`
	MetaDescription httputil.OptionalString `json:"meta_description"`
	Markdown        httputil.OptionalString `json:"markdown"`
	HTML            httputil.OptionalString `json:"html"`
}

// ArticleService orchestrates article flows: generation, library CRUD
// against the backend, and the expansion merge. The backend owns articles;
// the local repository keeps the last-synced copy of everything that passes
// through so the library view and debugging have a consistent mirror.
type ArticleService struct {
	backend  *upstream.Client
	articles *postgres.ArticleRepository
	quotas   *QuotaService
	logger   *slog.Logger
}

// NewArticleService creates a new article service
func NewArticleService(
	backend *upstream.Client,
	articles *postgres.ArticleRepository,
	quotas *QuotaService,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		backend:  backend,
		articles: articles,
		quotas:   quotas,
		logger:   logger,
	}
}

// Generate runs the full draft-generation flow: quota gate, backend call,
// usage commit, cache. A denied quota surfaces as a QuotaError carrying the
// user-facing reason.
func (s *ArticleService) Generate(ctx context.Context, token, ownerID string, authenticated bool, req *GenerateArticleRequest) (*models.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	decision, err := s.quotas.CheckGenerate(ctx, ownerID, authenticated)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &domain.QuotaError{Reason: decision.Reason}
	}

	article, err := s.backend.GenerateDraft(ctx, token, &upstream.GenerateRequest{
		Topic:           req.Topic,
		Tone:            req.Tone,
		TargetWordCount: req.TargetWordCount,
		Keywords:        req.Keywords,
	})
	if err != nil {
		return nil, err
	}

	// The backend accepted and billed the generation, so the local counters
	// advance even if caching fails below.
	if err := s.quotas.CommitGeneration(ctx, ownerID, authenticated); err != nil {
		s.logger.Error("failed to record generation", "owner", ownerID, "error", err)
	}
	s.cache(ctx, ownerID, article)

	return article, nil
}

// List returns the owner's saved library from the backend, refreshing the
// local mirror as a side effect.
func (s *ArticleService) List(ctx context.Context, token, ownerID string) ([]models.Article, error) {
	articles, err := s.backend.ListArticles(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		s.cache(ctx, ownerID, &articles[i])
	}
	return articles, nil
}

// Get returns one saved article from the backend.
func (s *ArticleService) Get(ctx context.Context, token, ownerID, articleID string) (*models.Article, error) {
	article, err := s.backend.GetArticle(ctx, token, articleID)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, ownerID, article)
	return article, nil
}

// Update applies metadata edits and writes the article back to the backend.
func (s *ArticleService) Update(ctx context.Context, token, ownerID, articleID string, req *UpdateArticleRequest) (*models.Article, error) {
	article, err := s.backend.GetArticle(ctx, token, articleID)
	if err != nil {
		return nil, err
	}

	article.Title = req.Title.Apply(article.Title)
	article.MetaTitle = req.MetaTitle.Apply(article.MetaTitle)
	article.MetaDescription = req.MetaDescription.Apply(article.MetaDescription)
	article.Markdown = req.Markdown.Apply(article.Markdown)
	article.HTML = req.HTML.Apply(article.HTML)

	updated, err := s.backend.UpdateArticle(ctx, token, article)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, ownerID, updated)
	return updated, nil
}

// Delete removes an article from the backend and the local mirror.
func (s *ArticleService) Delete(ctx context.Context, token, ownerID, articleID string) error {
	if err := s.backend.DeleteArticle(ctx, token, articleID); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, ownerID, articleID); err != nil {
		s.logger.Error("failed to evict cached article", "article", articleID, "error", err)
	}
	return nil
}

// Expand lengthens a saved article: the backend generates extending content
// and the result is reconciled into the original, then written back. Any
// backend failure aborts the whole operation and leaves the saved article
// untouched; the merge itself cannot fail.
func (s *ArticleService) Expand(ctx context.Context, token, ownerID, articleID string, req *ExpandArticleRequest) (*models.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	decision, err := s.quotas.CheckGenerate(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &domain.QuotaError{Reason: decision.Reason}
	}

	base, err := s.backend.GetArticle(ctx, token, articleID)
	if err != nil {
		return nil, err
	}

	existing := base.Markdown
	if existing == "" {
		existing = base.HTML
	}
	incoming, err := s.backend.ExpandArticle(ctx, token, &upstream.ExpandRequest{
		ArticleID:       articleID,
		Mode:            "expand",
		ExistingContent: existing,
		TargetWordCount: req.TargetWordCount,
	})
	if err != nil {
		return nil, err
	}

	merged := merge.Reconcile(*base, *incoming)

	updated, err := s.backend.UpdateArticle(ctx, token, &merged)
	if err != nil {
		return nil, err
	}

	if err := s.quotas.CommitGeneration(ctx, ownerID, true); err != nil {
		s.logger.Error("failed to record expansion", "owner", ownerID, "error", err)
	}
	s.cache(ctx, ownerID, updated)

	s.logger.Info("article expanded",
		"article", articleID,
		"word_count", updated.WordCount,
		"sections", len(updated.Sections),
	)
	return updated, nil
}

// ExportHTML renders an article's body for download. Markdown goes through
// the full-fidelity renderer; articles without Markdown fall back to their
// stored HTML. Either way the output is sanitized.
func (s *ArticleService) ExportHTML(ctx context.Context, token, ownerID, articleID string) (string, error) {
	article, err := s.backend.GetArticle(ctx, token, articleID)
	if err != nil {
		return "", err
	}

	if article.Markdown != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(article.Markdown), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		return sanitize.Clean(buf.String()), nil
	}
	if article.HTML != "" {
		return sanitize.Clean(article.HTML), nil
	}
	return "", fmt.Errorf("%w: article has no exportable content", domain.ErrValidation)
}

// cache stores the latest copy of an article in the local mirror. Cache
// failures are logged, never surfaced: the backend copy is authoritative.
func (s *ArticleService) cache(ctx context.Context, ownerID string, article *models.Article) {
	if article == nil || article.ID == uuid.Nil {
		return
	}
	if err := s.articles.Upsert(ctx, ownerID, article); err != nil {
		s.logger.Error("failed to cache article", "article", article.ID, "error", err)
	}
}
