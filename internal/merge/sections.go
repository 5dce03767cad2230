package merge

import (
	"regexp"
	"strings"
	"unicode"

	"inkwell/internal/domain/models"
)

var (
	htmlHeadingRe = regexp.MustCompile(`(?is)<h([1-3])[^>]*>(.*?)</h[1-3]\s*>`)
	mdHeadingRe   = regexp.MustCompile(`(?m)^(#{1,3})\s+(.*)$`)
	blockBreakRe  = regexp.MustCompile(`(?i)</p>|</div>|</li>|</blockquote>|<br\s*/?>`)
	anyTagRe      = regexp.MustCompile(`(?s)<[^>]*>`)
	blankLinesRe  = regexp.MustCompile(`\n\s*\n+`)
)

// coerceSections determines the working section list for one side of a merge.
// A well-formed sections array (at least one entry carrying a heading or a
// paragraph) is used verbatim after normalization. Otherwise the sections are
// reconstructed from the article's HTML, or from its Markdown after a minimal
// heading-tag substitution.
func coerceSections(a models.Article) []models.Section {
	if sections := normalizeSections(a.Sections); len(sections) > 0 {
		return sections
	}

	raw := a.HTML
	if raw == "" && a.Markdown != "" {
		raw = mdHeadingRe.ReplaceAllStringFunc(a.Markdown, func(line string) string {
			m := mdHeadingRe.FindStringSubmatch(line)
			level := len(m[1])
			tag := []string{"", "h1", "h2", "h3"}[level]
			return "<" + tag + ">" + m[2] + "</" + tag + ">"
		})
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return sectionsFromHTML(raw)
}

// normalizeSections trims and capitalizes headings, drops empty paragraphs,
// and discards sections left with neither heading nor paragraphs.
func normalizeSections(sections []models.Section) []models.Section {
	out := make([]models.Section, 0, len(sections))
	for _, s := range sections {
		norm := models.Section{Heading: capitalizeFirst(strings.TrimSpace(s.Heading))}
		for _, p := range s.Paragraphs {
			if p = strings.TrimSpace(p); p != "" {
				norm.Paragraphs = append(norm.Paragraphs, p)
			}
		}
		if !norm.IsEmpty() {
			out = append(out, norm)
		}
	}
	return out
}

// sectionsFromHTML scans raw markup split on <h1>-<h3> boundaries. Text
// before the first heading begins a default bucket with no heading; each
// heading afterward opens a new section. Remaining tags are stripped inside
// each bucket and runs of blank lines become paragraph boundaries.
func sectionsFromHTML(raw string) []models.Section {
	matches := htmlHeadingRe.FindAllStringSubmatchIndex(raw, -1)

	var sections []models.Section
	appendBucket := func(heading, body string) {
		s := models.Section{
			Heading:    capitalizeFirst(strings.TrimSpace(heading)),
			Paragraphs: paragraphsFromMarkup(body),
		}
		if !s.IsEmpty() {
			sections = append(sections, s)
		}
	}

	prevEnd := 0
	prevHeading := ""
	for _, m := range matches {
		appendBucket(prevHeading, raw[prevEnd:m[0]])
		prevHeading = stripTags(raw[m[4]:m[5]])
		prevEnd = m[1]
	}
	appendBucket(prevHeading, raw[prevEnd:])

	return sections
}

// paragraphsFromMarkup strips tags from a bucket of markup and splits the
// remaining text into trimmed, non-empty paragraphs.
func paragraphsFromMarkup(body string) []string {
	text := blockBreakRe.ReplaceAllString(body, "\n\n")
	text = stripTags(text)

	var paragraphs []string
	for _, block := range blankLinesRe.Split(text, -1) {
		block = strings.TrimSpace(collapseSpaces(block))
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

func stripTags(s string) string {
	return anyTagRe.ReplaceAllString(s, "")
}

var spaceRunRe = regexp.MustCompile(`\s+`)

// collapseSpaces flattens interior whitespace, including the single newlines
// left inside a paragraph after blank-line splitting.
func collapseSpaces(s string) string {
	return spaceRunRe.ReplaceAllString(s, " ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
