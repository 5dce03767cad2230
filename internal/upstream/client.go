// Package upstream is the HTTP client for the generation backend. All
// substantive computation - drafting, expansion, SEO scoring, billing -
// happens there; this client attaches bearer tokens, ships JSON, and
// normalizes non-2xx responses into domain errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// Client talks to the generation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // generation calls are slow
		},
		logger: logger,
	}
}

// do issues one JSON request. A non-2xx response becomes an UpstreamError
// carrying the response body text, which callers surface verbatim.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("backend request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return &domain.UpstreamError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// errorMessage extracts a display message from an error response body. A
// JSON body with an "error" or "message" field wins, otherwise the raw text.
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// GenerateDraft asks the backend for new article content.
func (c *Client) GenerateDraft(ctx context.Context, token string, req *GenerateRequest) (*models.Article, error) {
	var payload articlePayload
	if err := c.do(ctx, http.MethodPost, "/v1/generate-draft", token, req, &payload); err != nil {
		return nil, err
	}
	article := payload.toArticle()
	return &article, nil
}

// ExpandArticle asks the backend to lengthen existing content toward a
// target word count. The response may carry only the generated delta.
func (c *Client) ExpandArticle(ctx context.Context, token string, req *ExpandRequest) (*models.ExpansionResult, error) {
	var payload articlePayload
	if err := c.do(ctx, http.MethodPost, "/v1/generate-draft", token, req, &payload); err != nil {
		return nil, err
	}
	result := payload.toArticle()
	return &result, nil
}

// GetProfile fetches the caller's plan and server-side usage counters.
func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListArticles fetches the caller's saved article library.
func (c *Client) ListArticles(ctx context.Context, token string) ([]models.Article, error) {
	var payloads []articlePayload
	if err := c.do(ctx, http.MethodGet, "/api/articles", token, nil, &payloads); err != nil {
		return nil, err
	}
	articles := make([]models.Article, 0, len(payloads))
	for _, p := range payloads {
		articles = append(articles, p.toArticle())
	}
	return articles, nil
}

// GetArticle fetches one saved article.
func (c *Client) GetArticle(ctx context.Context, token, id string) (*models.Article, error) {
	var payload articlePayload
	if err := c.do(ctx, http.MethodGet, "/api/articles/"+id, token, nil, &payload); err != nil {
		return nil, err
	}
	article := payload.toArticle()
	return &article, nil
}

// UpdateArticle writes an article back to the backend.
func (c *Client) UpdateArticle(ctx context.Context, token string, article *models.Article) (*models.Article, error) {
	var payload articlePayload
	if err := c.do(ctx, http.MethodPut, "/api/articles/"+article.ID.String(), token, article, &payload); err != nil {
		return nil, err
	}
	updated := payload.toArticle()
	return &updated, nil
}

// DeleteArticle removes a saved article.
func (c *Client) DeleteArticle(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/articles/"+id, token, nil, nil)
}

// CreateCheckout starts a subscription checkout and returns the URL the
// client should navigate to.
func (c *Client) CreateCheckout(ctx context.Context, token string, req *CheckoutRequest) (string, error) {
	var resp redirectResponse
	if err := c.do(ctx, http.MethodPost, "/api/stripe/create-checkout", token, req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// CreatePortal opens the billing portal and returns its URL.
func (c *Client) CreatePortal(ctx context.Context, token string) (string, error) {
	var resp redirectResponse
	if err := c.do(ctx, http.MethodPost, "/api/stripe/portal", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// RunTool invokes one of the backend SEO utilities. The response shape is
// tool-specific and passed through untouched.
func (c *Client) RunTool(ctx context.Context, token, tool string, payload map[string]interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/tools/"+tool, token, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// RequestMagicLink asks the identity provider to email a sign-in link.
func (c *Client) RequestMagicLink(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/magic-link", "", map[string]string{"email": email}, nil)
}

// GoogleAuthURL returns the provider URL that starts the Google OAuth flow.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/auth/google"
}
