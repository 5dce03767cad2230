package markdown

import (
	"strings"
	"testing"

	"inkwell/internal/sanitize"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input renders empty",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only renders empty",
			input:    "   \n  \n",
			expected: "",
		},
		{
			name:     "heading levels",
			input:    "# Title\n\n### Sub",
			expected: "<h1>Title</h1>\n<h3>Sub</h3>",
		},
		{
			name:     "blockquote",
			input:    "> wise words",
			expected: "<blockquote>wise words</blockquote>",
		},
		{
			name:     "plain paragraph",
			input:    "Hello world",
			expected: "<p>Hello world</p>",
		},
		{
			name:     "single newline becomes line break",
			input:    "line one\nline two",
			expected: "<p>line one<br/>line two</p>",
		},
		{
			name:     "blank line separates paragraphs",
			input:    "first\n\nsecond",
			expected: "<p>first</p>\n<p>second</p>",
		},
		{
			name:     "inline styles",
			input:    "**bold** and *italic* and `code`",
			expected: "<p><strong>bold</strong> and <em>italic</em> and <code>code</code></p>",
		},
		{
			name:     "contiguous list items coalesce into one list",
			input:    "- first\n- second\n* third",
			expected: "<ul>\n<li>first</li>\n<li>second</li>\n<li>third</li>\n</ul>",
		},
		{
			name:     "separated lists stay separate",
			input:    "- a\n\ntext\n\n- b",
			expected: "<ul>\n<li>a</li>\n</ul>\n<p>text</p>\n<ul>\n<li>b</li>\n</ul>",
		},
		{
			name:     "heading followed by paragraph",
			input:    "## Section\nbody text",
			expected: "<h2>Section</h2>\n<p>body text</p>",
		},
		{
			name:     "unsupported link syntax passes through literally",
			input:    "see [docs](https://example.com)",
			expected: "<p>see [docs](https://example.com)</p>",
		},
		{
			name:     "unsupported table syntax passes through literally",
			input:    "| a | b |",
			expected: "<p>| a | b |</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			if got != tt.expected {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRenderOutputIsSanitized(t *testing.T) {
	input := "# Title\n<script>alert('x')</script>\nplain text"
	got := Render(input)

	if strings.Contains(strings.ToLower(got), "<script") {
		t.Errorf("rendered output contains script tag: %q", got)
	}
}

func TestRenderOutputStableUnderSanitize(t *testing.T) {
	inputs := []string{
		"just plain text",
		"# Heading\n\nbody with **bold**",
		"- one\n- two",
		"line\nbreak\n\nnew paragraph",
		"> quoted\n\n`code`",
	}

	for _, input := range inputs {
		rendered := Render(input)
		if resanitized := sanitize.Clean(rendered); resanitized != rendered {
			t.Errorf("sanitize not a no-op on rendered output of %q:\n  rendered:    %q\n  resanitized: %q",
				input, rendered, resanitized)
		}
	}
}
