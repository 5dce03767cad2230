package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"inkwell/internal/domain"
	"inkwell/internal/upstream"
)

// ToolsService gates and proxies the backend SEO utilities: headlines,
// meta-tags, internal-links, readability, content-brief, keyword-density.
// Tool responses are tool-specific JSON and pass through untouched.
type ToolsService struct {
	backend *upstream.Client
	quotas  *QuotaService
	logger  *slog.Logger
}

// NewToolsService creates a new tools service
func NewToolsService(backend *upstream.Client, quotas *QuotaService, logger *slog.Logger) *ToolsService {
	return &ToolsService{
		backend: backend,
		quotas:  quotas,
		logger:  logger,
	}
}

// Run executes one SEO tool for the owner, charging the daily tool quota.
func (s *ToolsService) Run(ctx context.Context, token, ownerID string, authenticated bool, tool string, payload map[string]interface{}) (json.RawMessage, error) {
	if !upstream.KnownTools[tool] {
		return nil, fmt.Errorf("%w: unknown tool %q", domain.ErrValidation, tool)
	}

	decision, err := s.quotas.CheckTool(ctx, ownerID, authenticated)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &domain.QuotaError{Reason: decision.Reason}
	}

	result, err := s.backend.RunTool(ctx, token, tool, payload)
	if err != nil {
		return nil, err
	}

	if err := s.quotas.CommitToolUse(ctx, ownerID); err != nil {
		s.logger.Error("failed to record tool use", "owner", ownerID, "tool", tool, "error", err)
	}

	return result, nil
}
