package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// BillingHandler handles subscription checkout and portal requests
type BillingHandler struct {
	billing *service.BillingService
	logger  *slog.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billing *service.BillingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		billing: billing,
		logger:  logger,
	}
}

// CreateCheckout starts a subscription purchase; the response carries the
// URL the client navigates to.
// POST /api/stripe/create-checkout
func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req service.CheckoutRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := h.billing.Checkout(r.Context(), id.Token, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// CreatePortal opens the billing portal
// POST /api/stripe/portal
func (h *BillingHandler) CreatePortal(w http.ResponseWriter, r *http.Request) {
	id, ok := requireAuth(w, r)
	if !ok {
		return
	}

	url, err := h.billing.Portal(r.Context(), id.Token)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}
