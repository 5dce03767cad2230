package upstream

import (
	"encoding/json"

	"github.com/google/uuid"

	"inkwell/internal/domain/models"
)

// articlePayload is the loosely-typed wire form of an article. Backend
// payloads carry arbitrary optional fields and occasionally mix string and
// object values, so every field is captured raw and coerced individually.
// This is the single defensive-coercion point: malformed or missing fields
// become zero values here, and everything past this boundary is strictly
// typed. Decoding never fails on shape problems.
type articlePayload struct {
	ID               json.RawMessage `json:"id"`
	Title            json.RawMessage `json:"title"`
	MetaTitle        json.RawMessage `json:"meta_title"`
	MetaDescription  json.RawMessage `json:"meta_description"`
	Sections         json.RawMessage `json:"sections"`
	FAQs             json.RawMessage `json:"faqs"`
	Citations        json.RawMessage `json:"citations"`
	InternalLinks    json.RawMessage `json:"internal_links"`
	SEOKeywords      json.RawMessage `json:"seo_keywords"`
	Markdown         json.RawMessage `json:"markdown"`
	HTML             json.RawMessage `json:"html"`
	WordCount        json.RawMessage `json:"word_count"`
	ReadingTime      json.RawMessage `json:"reading_time_minutes"`
	SEOScore         json.RawMessage `json:"seo_score"`
	ReadabilityScore json.RawMessage `json:"readability_score"`
	ImageURL         json.RawMessage `json:"image_url"`
}

func (p articlePayload) toArticle() models.Article {
	return models.Article{
		ID:               flexUUID(p.ID),
		Title:            flexString(p.Title),
		MetaTitle:        flexString(p.MetaTitle),
		MetaDescription:  flexString(p.MetaDescription),
		Sections:         flexSections(p.Sections),
		FAQs:             flexFAQs(p.FAQs),
		Citations:        flexCitations(p.Citations),
		InternalLinks:    flexLinks(p.InternalLinks),
		SEOKeywords:      flexStrings(p.SEOKeywords),
		Markdown:         flexString(p.Markdown),
		HTML:             flexString(p.HTML),
		WordCount:        flexInt(p.WordCount),
		ReadingTime:      flexInt(p.ReadingTime),
		SEOScore:         flexFloat(p.SEOScore),
		ReadabilityScore: flexFloat(p.ReadabilityScore),
		ImageURL:         flexString(p.ImageURL),
	}
}

func flexUUID(raw json.RawMessage) uuid.UUID {
	id, err := uuid.Parse(flexString(raw))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func flexString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	// Numbers and booleans show up where strings belong; render them.
	var v interface{}
	if json.Unmarshal(raw, &v) == nil {
		switch v.(type) {
		case float64, bool:
			return string(raw)
		}
	}
	return ""
}

func flexInt(raw json.RawMessage) int {
	var f float64
	if json.Unmarshal(raw, &f) == nil && f > 0 {
		return int(f)
	}
	return 0
}

func flexFloat(raw json.RawMessage) float64 {
	var f float64
	if json.Unmarshal(raw, &f) == nil && f > 0 {
		return f
	}
	return 0
}

func flexStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := flexString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func flexSections(raw json.RawMessage) []models.Section {
	var items []struct {
		Heading    json.RawMessage `json:"heading"`
		Paragraphs json.RawMessage `json:"paragraphs"`
	}
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []models.Section
	for _, item := range items {
		s := models.Section{
			Heading:    flexString(item.Heading),
			Paragraphs: flexStrings(item.Paragraphs),
		}
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

func flexFAQs(raw json.RawMessage) []models.FAQ {
	var items []struct {
		Question json.RawMessage `json:"question"`
		Answer   json.RawMessage `json:"answer"`
	}
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []models.FAQ
	for _, item := range items {
		f := models.FAQ{Question: flexString(item.Question), Answer: flexString(item.Answer)}
		if f.Question != "" {
			out = append(out, f)
		}
	}
	return out
}

// flexCitations accepts both object entries and bare URL strings.
func flexCitations(raw json.RawMessage) []models.Citation {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []models.Citation
	for _, item := range items {
		var url string
		if json.Unmarshal(item, &url) == nil {
			if url != "" {
				out = append(out, models.Citation{URL: url})
			}
			continue
		}
		var obj struct {
			URL         json.RawMessage `json:"url"`
			Title       json.RawMessage `json:"title"`
			Description json.RawMessage `json:"description"`
		}
		if json.Unmarshal(item, &obj) != nil {
			continue
		}
		c := models.Citation{
			URL:         flexString(obj.URL),
			Title:       flexString(obj.Title),
			Description: flexString(obj.Description),
		}
		if c.URL != "" || c.Title != "" {
			out = append(out, c)
		}
	}
	return out
}

// flexLinks accepts both object entries and bare URL strings.
func flexLinks(raw json.RawMessage) []models.InternalLink {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []models.InternalLink
	for _, item := range items {
		var url string
		if json.Unmarshal(item, &url) == nil {
			if url != "" {
				out = append(out, models.InternalLink{URL: url})
			}
			continue
		}
		var obj struct {
			URL        json.RawMessage `json:"url"`
			AnchorText json.RawMessage `json:"anchor_text"`
		}
		if json.Unmarshal(item, &obj) != nil {
			continue
		}
		l := models.InternalLink{URL: flexString(obj.URL), AnchorText: flexString(obj.AnchorText)}
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}
