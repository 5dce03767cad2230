package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/domain"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "quota error passes reason through",
			err:        &domain.QuotaError{Reason: "You've reached your daily limit of 15 articles. Your quota resets tomorrow."},
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "You've reached your daily limit of 15 articles. Your quota resets tomorrow.",
		},
		{
			name:       "upstream 4xx passes through",
			err:        &domain.UpstreamError{Status: http.StatusPaymentRequired, Message: "subscription required"},
			wantStatus: http.StatusPaymentRequired,
			wantDetail: "subscription required",
		},
		{
			name:       "upstream 5xx maps to bad gateway",
			err:        &domain.UpstreamError{Status: http.StatusServiceUnavailable},
			wantStatus: http.StatusBadGateway,
			wantDetail: "request failed: 503",
		},
		{
			name:       "wrapped validation sentinel",
			err:        fmt.Errorf("%w: topic is required", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantDetail: "validation failed: topic is required",
		},
		{
			name:       "not found sentinel",
			err:        domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "not found",
		},
		{
			name:       "unauthorized sentinel",
			err:        domain.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantDetail: "unauthorized",
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("pg: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}

			var problem struct {
				Status int    `json:"status"`
				Detail string `json:"detail"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if problem.Status != tt.wantStatus {
				t.Errorf("body status = %d, want %d", problem.Status, tt.wantStatus)
			}
			if problem.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", problem.Detail, tt.wantDetail)
			}
		})
	}
}
