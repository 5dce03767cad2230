package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// ArticleRepository is the local library mirror. The generation backend owns
// articles; every copy that passes through the service is written here so the
// last-synced state per owner is always inspectable, but reads serve the
// backend's copy.
type ArticleRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(config *RepositoryConfig) *ArticleRepository {
	return &ArticleRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListByOwner returns the cached library for an owner, most recently updated
// first.
func (r *ArticleRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Article, error) {
	query := fmt.Sprintf(`
		SELECT article
		FROM %s
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Articles)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}

// GetByID returns one cached article, or ErrNotFound.
func (r *ArticleRepository) GetByID(ctx context.Context, ownerID, articleID string) (*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT article
		FROM %s
		WHERE owner_id = $1 AND article_id = $2
	`, r.tables.Articles)

	var a models.Article
	err := r.pool.QueryRow(ctx, query, ownerID, articleID).Scan(&a)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("%w: article %s", domain.ErrNotFound, articleID)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}

	return &a, nil
}

// Upsert stores the latest copy of an article for an owner.
func (r *ArticleRepository) Upsert(ctx context.Context, ownerID string, article *models.Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, article_id, article, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (owner_id, article_id) DO UPDATE SET
			article = EXCLUDED.article,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Articles)

	if _, err := r.pool.Exec(ctx, query, ownerID, article.ID.String(), article, time.Now()); err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}

	return nil
}

// Delete removes a cached article. Deleting an article that was never cached
// is not an error; the backend remains the source of truth.
func (r *ArticleRepository) Delete(ctx context.Context, ownerID, articleID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE owner_id = $1 AND article_id = $2
	`, r.tables.Articles)

	if _, err := r.pool.Exec(ctx, query, ownerID, articleID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	return nil
}
