package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"inkwell/internal/domain"
	"inkwell/internal/upstream"
)

// CheckoutRequest selects the subscription to purchase.
type CheckoutRequest struct {
	Plan       string `json:"plan"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// Validate implements request validation at the API boundary.
func (r *CheckoutRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Plan,
			validation.Required,
			validation.In("pro"),
		),
		validation.Field(&r.SuccessURL, is.URL),
		validation.Field(&r.CancelURL, is.URL),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// BillingService proxies checkout and portal creation to the backend. The
// backend talks to the payment processor; this service only hands the
// resulting redirect URL to the client.
type BillingService struct {
	backend *upstream.Client
	logger  *slog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(backend *upstream.Client, logger *slog.Logger) *BillingService {
	return &BillingService{
		backend: backend,
		logger:  logger,
	}
}

// Checkout starts a subscription purchase and returns the redirect URL.
func (s *BillingService) Checkout(ctx context.Context, token string, req *CheckoutRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	url, err := s.backend.CreateCheckout(ctx, token, &upstream.CheckoutRequest{
		Plan:       req.Plan,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// Portal opens the billing portal and returns the redirect URL.
func (s *BillingService) Portal(ctx context.Context, token string) (string, error) {
	return s.backend.CreatePortal(ctx, token)
}
