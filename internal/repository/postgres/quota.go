package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain/models"
)

// QuotaRepository persists one QuotaState document per owner. The owner ID
// is either an authenticated user ID or an anonymous visitor ID; the record
// itself is stored as JSONB so counter fields can evolve without migrations.
type QuotaRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewQuotaRepository creates a new QuotaRepository
func NewQuotaRepository(config *RepositoryConfig) *QuotaRepository {
	return &QuotaRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByOwner retrieves the quota record for an owner. Returns nil (not an
// error) when no record exists yet; the service creates defaults lazily.
func (r *QuotaRepository) GetByOwner(ctx context.Context, ownerID string) (*models.QuotaState, error) {
	query := fmt.Sprintf(`
		SELECT state
		FROM %s
		WHERE owner_id = $1
	`, r.tables.QuotaRecords)

	var state models.QuotaState
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&state)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get quota record: %w", err)
	}

	return &state, nil
}

// Upsert creates or replaces the quota record for an owner. Last writer
// wins: the record is advisory and concurrent sessions clobbering each
// other's counters is an accepted limitation.
func (r *QuotaRepository) Upsert(ctx context.Context, ownerID string, state models.QuotaState) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (owner_id) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`, r.tables.QuotaRecords)

	if _, err := r.pool.Exec(ctx, query, ownerID, state, time.Now()); err != nil {
		return fmt.Errorf("upsert quota record: %w", err)
	}

	return nil
}
