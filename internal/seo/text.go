// Package seo holds the small text-analysis helpers behind word counts and
// reading-time estimates.
package seo

import (
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// wordsPerMinute is the reading speed assumed for reading-time estimates.
const wordsPerMinute = 220

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractText returns the plain text of an HTML fragment with tags stripped
// and whitespace collapsed. Input that fails to parse is returned as-is so a
// caller counting words on garbled markup still gets a best-effort answer.
func ExtractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeText(html)
	}
	return normalizeText(doc.Text())
}

// CountWords counts whitespace-separated words in content that may be plain
// text, Markdown, or HTML.
func CountWords(content string) int {
	if strings.Contains(content, "<") {
		content = ExtractText(content)
	}
	return len(strings.Fields(content))
}

// ReadingTime estimates reading time in whole minutes, never less than one.
func ReadingTime(wordCount int) int {
	if wordCount <= 0 {
		return 1
	}
	minutes := int(math.Round(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func normalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
