// Package sanitize strips unsafe markup from HTML produced by the markdown
// renderer or returned by the generation backend.
//
// This is pattern matching, not an HTML parse. It is only trusted for content
// originating from our own renderer or the semi-trusted backend; it is not a
// defense for arbitrary third-party HTML.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// blockedTags are removed wholesale, content included.
var blockedTags = []string{"script", "style", "iframe", "object", "embed"}

var (
	blockedElementRes []*regexp.Regexp
	blockedOrphanRes  []*regexp.Regexp

	eventAttrRe  = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsSchemeRe   = regexp.MustCompile(`(?i)((?:href|src)\s*=\s*["']?\s*)javascript\s*:`)
	anyTagRe     = regexp.MustCompile(`(?i)</?[a-z][^>]*>`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
)

func init() {
	for _, tag := range blockedTags {
		blockedElementRes = append(blockedElementRes,
			regexp.MustCompile(fmt.Sprintf(`(?is)<%s\b[^>]*>.*?</%s\s*>`, tag, tag)))
		// Unpaired open or close tags left behind by truncated markup.
		blockedOrphanRes = append(blockedOrphanRes,
			regexp.MustCompile(fmt.Sprintf(`(?is)</?%s\b[^>]*>`, tag)))
	}
}

// Clean returns html with unsafe elements and attributes removed. Input that
// contains no tags at all is treated as plain text and wrapped in paragraph
// tags. Clean is idempotent: running it on its own output is a no-op.
func Clean(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	if !anyTagRe.MatchString(html) {
		return wrapPlainText(html)
	}

	out := replaceUntilStable(html, blockedElementRes)
	out = replaceUntilStable(out, blockedOrphanRes)
	out = replaceUntilStable(out, []*regexp.Regexp{eventAttrRe})
	for {
		next := jsSchemeRe.ReplaceAllString(out, "$1")
		if next == out {
			break
		}
		out = next
	}
	return out
}

// replaceUntilStable deletes every match of the given patterns until a full
// pass makes no change. Removing a match can splice surrounding text into a
// new match, so a single pass is not enough to guarantee idempotence.
func replaceUntilStable(s string, patterns []*regexp.Regexp) string {
	for {
		before := s
		for _, re := range patterns {
			s = re.ReplaceAllString(s, "")
		}
		if s == before {
			return s
		}
	}
}

// wrapPlainText converts tagless text into paragraph markup: blank-line
// separated blocks become paragraphs, single newlines become line breaks.
func wrapPlainText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blocks := blankLinesRe.Split(text, -1)

	var b strings.Builder
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(block, "\n", "<br/>"))
		b.WriteString("</p>")
	}
	return b.String()
}
