package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/domain/models"
	"inkwell/internal/quota"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/upstream"
)

// QuotaService owns the read-modify-write cycle around the persisted quota
// record. The record is advisory: it predicts what the backend will allow so
// the dashboard can gate actions instantly, and a profile resync overwrites
// it with the backend's authoritative counters.
type QuotaService struct {
	repo   *postgres.QuotaRepository
	gate   *quota.Gate
	logger *slog.Logger
}

// NewQuotaService creates a new quota service
func NewQuotaService(repo *postgres.QuotaRepository, gate *quota.Gate, logger *slog.Logger) *QuotaService {
	return &QuotaService{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

// Snapshot returns the owner's quota record with any pending period rollover
// applied. A missing record yields the first-visit defaults.
func (s *QuotaService) Snapshot(ctx context.Context, ownerID string) (models.QuotaState, error) {
	state, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return models.QuotaState{}, fmt.Errorf("load quota: %w", err)
	}
	if state == nil {
		return models.DefaultQuotaState(), nil
	}
	return quota.Rollover(*state, time.Now()), nil
}

// CheckGenerate answers whether the owner may generate one more article.
func (s *QuotaService) CheckGenerate(ctx context.Context, ownerID string, authenticated bool) (quota.Decision, error) {
	state, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return quota.Decision{}, err
	}
	return s.gate.CanGenerateArticle(state, authenticated, time.Now()), nil
}

// CheckTool answers whether the owner may run one more SEO tool.
func (s *QuotaService) CheckTool(ctx context.Context, ownerID string, authenticated bool) (quota.Decision, error) {
	state, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return quota.Decision{}, err
	}
	return s.gate.CanUseTool(state, authenticated, time.Now()), nil
}

// CommitGeneration records a completed article generation. Unauthenticated
// generations also consume the demo allowance.
func (s *QuotaService) CommitGeneration(ctx context.Context, ownerID string, authenticated bool) error {
	state, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return err
	}

	now := time.Now()
	state = quota.RecordArticleGeneration(state, now)
	if !authenticated {
		state = quota.RecordDemoUse(state, now)
	}

	if err := s.repo.Upsert(ctx, ownerID, state); err != nil {
		return fmt.Errorf("save quota: %w", err)
	}
	return nil
}

// CommitToolUse records a completed SEO tool run.
func (s *QuotaService) CommitToolUse(ctx context.Context, ownerID string) error {
	state, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return err
	}

	state = quota.RecordToolUsage(state, time.Now())

	if err := s.repo.Upsert(ctx, ownerID, state); err != nil {
		return fmt.Errorf("save quota: %w", err)
	}
	return nil
}

// Resync overwrites the local record with the backend's counters. The server
// corrects whatever the client predicted; local demo bookkeeping survives
// because the backend knows nothing about anonymous visitors.
func (s *QuotaService) Resync(ctx context.Context, ownerID string, profile *upstream.Profile) (models.QuotaState, error) {
	state, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return models.QuotaState{}, err
	}

	state.Plan = profile.Plan
	state.TodayGenerations = profile.TodayGenerations
	state.WeekGenerations = profile.WeekGenerations
	state.MonthGenerations = profile.MonthGenerations
	state.ToolsToday = profile.ToolsToday

	if err := s.repo.Upsert(ctx, ownerID, state); err != nil {
		return models.QuotaState{}, fmt.Errorf("save quota: %w", err)
	}

	s.logger.Debug("quota resynced from profile", "owner", ownerID, "plan", state.Plan)
	return state, nil
}
