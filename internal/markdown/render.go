// Package markdown renders the constrained Markdown subset used for article
// previews and for fallback section extraction during expansion merges.
//
// This is deliberately not a general Markdown implementation: tables, nested
// lists, links and images are not translated and pass through literally
// inside paragraph tags. Full-fidelity rendering for export goes through
// goldmark instead.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"inkwell/internal/sanitize"
)

var (
	headingRes []*regexp.Regexp

	blockquoteRe = regexp.MustCompile(`(?m)^>\s?(.*)$`)
	listItemRe   = regexp.MustCompile(`(?m)^[-*]\s+(.*)$`)
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*\n]+)\*`)
	blockOpenRe  = regexp.MustCompile(`^<(h[1-6]|blockquote|ul|li)\b`)
)

func init() {
	// Longest marker first so "###" is not consumed as "#" + literal "##".
	for level := 6; level >= 1; level-- {
		headingRes = append(headingRes, regexp.MustCompile(
			fmt.Sprintf(`(?m)^%s\s+(.*)$`, strings.Repeat("#", level))))
	}
}

// Render converts the supported Markdown subset to sanitized HTML.
//
// Substitution order matters: block-level markers (headings, blockquotes,
// list items) are rewritten first, then inline spans (code, bold, italic),
// and only then are the remaining untagged lines wrapped in paragraphs -
// paragraph wrapping must never re-wrap a line that already carries a block
// tag. Single newlines inside a paragraph become line breaks; blank lines
// separate paragraphs. Empty input renders to the empty string.
func Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	s := strings.ReplaceAll(md, "\r\n", "\n")

	for i, re := range headingRes {
		level := 6 - i
		s = re.ReplaceAllString(s, fmt.Sprintf("<h%d>$1</h%d>", level, level))
	}
	s = blockquoteRe.ReplaceAllString(s, "<blockquote>$1</blockquote>")
	s = listItemRe.ReplaceAllString(s, "<li>$1</li>")

	s = inlineCodeRe.ReplaceAllString(s, "<code>$1</code>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")

	return sanitize.Clean(assembleBlocks(s))
}

// assembleBlocks walks the substituted lines, coalescing contiguous list
// items into a single wrapping <ul> and gathering runs of untagged lines
// into paragraphs.
func assembleBlocks(s string) string {
	var (
		out       []string
		paragraph []string
		inList    bool
	)

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		out = append(out, "<p>"+strings.Join(paragraph, "<br/>")+"</p>")
		paragraph = nil
	}
	closeList := func() {
		if inList {
			out = append(out, "</ul>")
			inList = false
		}
	}

	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flushParagraph()
			closeList()
		case strings.HasPrefix(trimmed, "<li>"):
			flushParagraph()
			if !inList {
				out = append(out, "<ul>")
				inList = true
			}
			out = append(out, trimmed)
		case blockOpenRe.MatchString(trimmed):
			flushParagraph()
			closeList()
			out = append(out, trimmed)
		default:
			closeList()
			paragraph = append(paragraph, trimmed)
		}
	}
	flushParagraph()
	closeList()

	return strings.Join(out, "\n")
}
