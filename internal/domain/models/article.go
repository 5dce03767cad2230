package models

import (
	"time"

	"github.com/google/uuid"
)

// Section is one heading-delimited block of article body content.
// A section with an empty heading and no paragraphs carries no information
// and is discarded wherever sections are normalized.
type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

// IsEmpty reports whether the section carries no content at all.
func (s Section) IsEmpty() bool {
	return s.Heading == "" && len(s.Paragraphs) == 0
}

// FAQ is a question/answer pair attached to an article.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Citation is an external source reference.
type Citation struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// InternalLink is a suggested link to another page on the user's own site.
type InternalLink struct {
	URL        string `json:"url"`
	AnchorText string `json:"anchor_text,omitempty"`
}

// MaxSEOKeywords caps the keyword list so repeated expansions cannot grow it
// without bound.
const MaxSEOKeywords = 50

// Article is the canonical generated-content record. The generation backend
// owns articles; this service mutates them only through the expansion merge
// before writing them back.
//
// Sections is the structural representation used for display; Markdown and
// HTML are raw body blobs kept for export and download. The two are derived
// independently and are not guaranteed to be byte-equivalent renderings of
// each other.
type Article struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	MetaTitle        string         `json:"meta_title,omitempty"`
	MetaDescription  string         `json:"meta_description,omitempty"`
	Sections         []Section      `json:"sections,omitempty"`
	FAQs             []FAQ          `json:"faqs,omitempty"`
	Citations        []Citation     `json:"citations,omitempty"`
	InternalLinks    []InternalLink `json:"internal_links,omitempty"`
	SEOKeywords      []string       `json:"seo_keywords,omitempty"`
	Markdown         string         `json:"markdown,omitempty"`
	HTML             string         `json:"html,omitempty"`
	WordCount        int            `json:"word_count"`
	ReadingTime      int            `json:"reading_time_minutes,omitempty"`
	SEOScore         float64        `json:"seo_score,omitempty"`
	ReadabilityScore float64        `json:"readability_score,omitempty"`
	ImageURL         string         `json:"image_url,omitempty"`
	CreatedAt        time.Time      `json:"created_at,omitzero"`
	UpdatedAt        time.Time      `json:"updated_at,omitzero"`
}

// ExpansionResult is what the generation backend returns when asked to
// lengthen an existing article. It has the same shape as Article but may
// carry only the newly generated delta, not the full article.
type ExpansionResult = Article
