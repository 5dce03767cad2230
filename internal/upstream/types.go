package upstream

import "inkwell/internal/domain/models"

// GenerateRequest is the payload for a fresh draft generation.
type GenerateRequest struct {
	Topic           string   `json:"topic"`
	Tone            string   `json:"tone,omitempty"`
	TargetWordCount int      `json:"target_word_count,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// ExpandRequest asks the backend to lengthen existing content. The backend
// receives the current body and returns content that extends it; merging the
// result into the saved article happens on our side.
type ExpandRequest struct {
	ArticleID       string `json:"article_id,omitempty"`
	Mode            string `json:"mode"` // always "expand"
	ExistingContent string `json:"existing_content"`
	TargetWordCount int    `json:"target_word_count"`
}

// Profile is the backend's view of the caller: plan plus authoritative usage
// counters. A resync overwrites the local quota record with these values.
type Profile struct {
	UserID           string      `json:"user_id"`
	Email            string      `json:"email"`
	Plan             models.Plan `json:"plan"`
	TodayGenerations int         `json:"today_generations"`
	WeekGenerations  int         `json:"week_generations"`
	MonthGenerations int         `json:"month_generations"`
	ToolsToday       int         `json:"tools_today"`
}

// CheckoutRequest selects the subscription to purchase.
type CheckoutRequest struct {
	Plan       string `json:"plan"`
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}

type redirectResponse struct {
	URL string `json:"url"`
}

// Tools the backend exposes under /api/tools/{name}.
var KnownTools = map[string]bool{
	"headlines":       true,
	"meta-tags":       true,
	"internal-links":  true,
	"readability":     true,
	"content-brief":   true,
	"keyword-density": true,
}
