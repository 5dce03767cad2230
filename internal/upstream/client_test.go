package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, logger)
}

func TestGenerateDraftSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "8f2d9c1e-4b3a-4f6d-9e2a-1c5b7d8e9f0a",
			"title": "Generated",
		})
	})

	article, err := client.GenerateDraft(context.Background(), "tok-123", &GenerateRequest{Topic: "go testing"})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotPath != "/v1/generate-draft" {
		t.Errorf("path = %q", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if article.Title != "Generated" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.ID.String() != "8f2d9c1e-4b3a-4f6d-9e2a-1c5b7d8e9f0a" {
		t.Errorf("ID = %q", article.ID)
	}
}

func TestAnonymousRequestOmitsAuthorization(t *testing.T) {
	var hadAuth bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	if _, err := client.GenerateDraft(context.Background(), "", &GenerateRequest{Topic: "x"}); err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if hadAuth {
		t.Error("Authorization header sent for anonymous request")
	}
}

func TestErrorResponsesBecomeUpstreamErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    int
	}{
		{
			name:        "json error field",
			status:      http.StatusPaymentRequired,
			body:        `{"error":"subscription required"}`,
			wantMessage: "subscription required",
			wantCode:    http.StatusPaymentRequired,
		},
		{
			name:        "json message field",
			status:      http.StatusBadRequest,
			body:        `{"message":"topic too long"}`,
			wantMessage: "topic too long",
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "plain text body",
			status:      http.StatusNotFound,
			body:        "no such article\n",
			wantMessage: "no such article",
			wantCode:    http.StatusNotFound,
		},
		{
			name:        "server error maps to bad gateway",
			status:      http.StatusInternalServerError,
			body:        `{"error":"boom"}`,
			wantMessage: "boom",
			wantCode:    http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.GetArticle(context.Background(), "tok", "abc")
			if err == nil {
				t.Fatal("expected error")
			}

			var ue *domain.UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("error type = %T, want *domain.UpstreamError", err)
			}
			if ue.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", ue.Message, tt.wantMessage)
			}
			if ue.StatusCode() != tt.wantCode {
				t.Errorf("StatusCode() = %d, want %d", ue.StatusCode(), tt.wantCode)
			}
		})
	}
}

func TestArticleDecodingToleratesLooseShapes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "not-a-uuid",
			"title": 42,
			"word_count": "many",
			"seo_score": -3,
			"sections": [
				{"heading": "Ok", "paragraphs": ["one", 2, null]},
				{"heading": "", "paragraphs": []}
			],
			"citations": ["https://example.com/bare", {"url": "https://example.com/obj", "title": "Obj"}, {}],
			"internal_links": ["/pricing", {"url": "/blog", "anchor_text": "blog"}],
			"seo_keywords": ["go", "", 7]
		}`))
	})

	article, err := client.GetArticle(context.Background(), "tok", "abc")
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}

	if article.ID.String() != "00000000-0000-0000-0000-000000000000" {
		t.Errorf("unparseable id should decode to the nil UUID, got %q", article.ID)
	}
	if article.Title != "42" {
		t.Errorf("Title = %q, want numeric value rendered as text", article.Title)
	}
	if article.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0 for non-numeric input", article.WordCount)
	}
	if article.SEOScore != 0 {
		t.Errorf("SEOScore = %v, want 0 for negative input", article.SEOScore)
	}

	if len(article.Sections) != 1 || article.Sections[0].Heading != "Ok" {
		t.Fatalf("Sections = %+v, want the one non-empty section", article.Sections)
	}
	wantParas := []string{"one", "2"}
	if len(article.Sections[0].Paragraphs) != 2 ||
		article.Sections[0].Paragraphs[0] != wantParas[0] ||
		article.Sections[0].Paragraphs[1] != wantParas[1] {
		t.Errorf("Paragraphs = %v, want %v", article.Sections[0].Paragraphs, wantParas)
	}

	if len(article.Citations) != 2 {
		t.Fatalf("Citations = %+v, want bare string and object entries only", article.Citations)
	}
	if article.Citations[0].URL != "https://example.com/bare" || article.Citations[1].Title != "Obj" {
		t.Errorf("Citations = %+v", article.Citations)
	}

	if len(article.InternalLinks) != 2 || article.InternalLinks[1].AnchorText != "blog" {
		t.Errorf("InternalLinks = %+v", article.InternalLinks)
	}

	if len(article.SEOKeywords) != 2 || article.SEOKeywords[1] != "7" {
		t.Errorf("SEOKeywords = %v, want empty strings dropped and numbers rendered", article.SEOKeywords)
	}
}

func TestDeleteArticleAcceptsEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteArticle(context.Background(), "tok", "abc"); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
}

func TestRunToolPassesResponseThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tools/headlines" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"headlines":["One","Two"]}`))
	})

	raw, err := client.RunTool(context.Background(), "tok", "headlines", map[string]interface{}{"topic": "go"})
	if err != nil {
		t.Fatalf("RunTool: %v", err)
	}
	if string(raw) != `{"headlines":["One","Two"]}` {
		t.Errorf("raw = %s", raw)
	}
}
