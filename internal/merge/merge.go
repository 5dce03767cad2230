// Package merge reconciles a saved article with the expansion response
// returned by the generation backend when the user asks to lengthen it.
// The incoming content extends the original, never replaces it.
package merge

import (
	"encoding/json"
	"fmt"
	"strings"

	"inkwell/internal/domain/models"
	"inkwell/internal/seo"
)

// Reconcile produces a unified article from a base article and an incoming
// expansion result.
//
// Structural lists (sections, FAQs, citations, internal links, keywords) are
// merged with de-duplication, base entries first. The raw Markdown and HTML
// bodies are concatenated, not structurally merged: the sections array is the
// display representation while the raw blobs serve export and download, and
// the two are derived independently on purpose.
//
// Reconcile never fails: missing or empty fields on either side are treated
// as empty and skipped. Merging an article with an identical copy of itself
// leaves every structural list unchanged; only the concatenated bodies and
// the word count may differ, a documented asymmetry of the append step.
func Reconcile(base, incoming models.Article) models.Article {
	out := base

	out.Sections = MergeSections(coerceSections(base), coerceSections(incoming))
	out.FAQs = MergeFAQs(base.FAQs, incoming.FAQs)
	out.Citations = mergeByKey(base.Citations, incoming.Citations, func(c models.Citation) string {
		return urlKey(c.URL, c)
	})
	out.InternalLinks = mergeByKey(base.InternalLinks, incoming.InternalLinks, func(l models.InternalLink) string {
		return urlKey(l.URL, l)
	})
	out.SEOKeywords = MergeKeywords(base.SEOKeywords, incoming.SEOKeywords)

	out.Markdown = joinContent(base.Markdown, incoming.Markdown, "\n\n")
	out.HTML = joinContent(base.HTML, incoming.HTML, "\n")

	out.WordCount = mergedWordCount(base, incoming, out)
	out.ReadingTime = seo.ReadingTime(out.WordCount)

	out.Title = firstNonEmpty(incoming.Title, base.Title)
	out.MetaTitle = firstNonEmpty(incoming.MetaTitle, base.MetaTitle)
	out.MetaDescription = firstNonEmpty(incoming.MetaDescription, base.MetaDescription)
	out.ImageURL = firstNonEmpty(incoming.ImageURL, base.ImageURL)
	if incoming.SEOScore != 0 {
		out.SEOScore = incoming.SEOScore
	}
	if incoming.ReadabilityScore != 0 {
		out.ReadabilityScore = incoming.ReadabilityScore
	}

	return out
}

// MergeSections merges two section lists keyed by lower-cased, trimmed
// heading text. Base sections come first; an incoming section with a heading
// already present merges into it, taking the first non-empty heading and the
// union of paragraphs in first-seen order. Heading-less sections get a
// synthetic key from an insertion counter so they never collide with each
// other. Sections left with no heading and no paragraphs are dropped.
func MergeSections(base, incoming []models.Section) []models.Section {
	type entry struct {
		section models.Section
		seen    map[string]bool
	}

	var (
		order   []string
		entries = make(map[string]*entry)
	)

	add := func(s models.Section, untitledIndex int) {
		key := strings.ToLower(strings.TrimSpace(s.Heading))
		if key == "" {
			// Keyed by position among the heading-less sections of its own
			// list: two untitled sections in one list never collide, while
			// the same untitled section on both sides of a self-merge does.
			key = fmt.Sprintf("\x00untitled-%d", untitledIndex)
		}

		e, ok := entries[key]
		if !ok {
			e = &entry{seen: make(map[string]bool)}
			entries[key] = e
			order = append(order, key)
		}
		if e.section.Heading == "" {
			e.section.Heading = strings.TrimSpace(s.Heading)
		}
		for _, p := range s.Paragraphs {
			trimmed := strings.TrimSpace(p)
			if trimmed == "" || e.seen[trimmed] {
				continue
			}
			e.seen[trimmed] = true
			e.section.Paragraphs = append(e.section.Paragraphs, trimmed)
		}
	}

	for _, list := range [][]models.Section{base, incoming} {
		untitled := 0
		for _, s := range list {
			add(s, untitled)
			if strings.TrimSpace(s.Heading) == "" {
				untitled++
			}
		}
	}

	out := make([]models.Section, 0, len(order))
	for _, key := range order {
		if s := entries[key].section; !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

// MergeFAQs merges FAQ lists keyed by lower-cased question text. The first
// pair seen for a question wins outright: an incoming duplicate is dropped
// even when its answer differs, because the base article is user-approved
// content.
func MergeFAQs(base, incoming []models.FAQ) []models.FAQ {
	seen := make(map[string]bool)
	var out []models.FAQ
	for _, f := range append(append([]models.FAQ{}, base...), incoming...) {
		key := strings.ToLower(strings.TrimSpace(f.Question))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// MergeKeywords is a set union preserving insertion order, base first,
// truncated to MaxSEOKeywords entries.
func MergeKeywords(base, incoming []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, kw := range append(append([]string{}, base...), incoming...) {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
		if len(out) == models.MaxSEOKeywords {
			break
		}
	}
	return out
}

// mergeByKey deduplicates two lists preserving order, base items first. Each
// item is keyed by keyFn; the first occurrence of a key wins.
func mergeByKey[T any](base, incoming []T, keyFn func(T) string) []T {
	seen := make(map[string]bool)
	var out []T
	for _, item := range append(append([]T{}, base...), incoming...) {
		key := keyFn(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// urlKey keys an item by its URL when present, else by its serialized form
// so items without a URL still deduplicate on exact structural equality.
func urlKey(url string, item any) string {
	if url = strings.TrimSpace(url); url != "" {
		return "url:" + strings.ToLower(url)
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprintf("raw:%+v", item)
	}
	return "json:" + string(raw)
}

// firstNonEmpty returns the first of its arguments that is non-empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// joinContent appends the incoming body to the base body with the given
// separator. When only one side has content, that side is kept as-is.
func joinContent(base, incoming, sep string) string {
	switch {
	case base == "":
		return incoming
	case incoming == "":
		return base
	default:
		return base + sep + incoming
	}
}

// mergedWordCount recounts the concatenated body and takes the maximum of
// the recount and both parents' self-reported counts. The reported count
// never decreases across an expansion, even when markup artifacts make the
// recount come in low.
func mergedWordCount(base, incoming, merged models.Article) int {
	content := merged.Markdown
	if content == "" {
		content = merged.HTML
	}

	count := seo.CountWords(content)
	if incoming.WordCount > count {
		count = incoming.WordCount
	}
	if base.WordCount > count {
		count = base.WordCount
	}
	return count
}
