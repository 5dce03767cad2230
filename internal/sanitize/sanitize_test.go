package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "safe markup unchanged",
			input:    "<h1>Title</h1>\n<p>body</p>",
			expected: "<h1>Title</h1>\n<p>body</p>",
		},
		{
			name:     "script element removed with content",
			input:    "<p>hi</p><script>alert('x')</script><p>bye</p>",
			expected: "<p>hi</p><p>bye</p>",
		},
		{
			name:     "style element removed with content",
			input:    "<style>p { color: red }</style><p>text</p>",
			expected: "<p>text</p>",
		},
		{
			name:     "case-insensitive tag matching",
			input:    "<SCRIPT src=\"evil.js\"></SCRIPT><p>ok</p>",
			expected: "<p>ok</p>",
		},
		{
			name:     "iframe object and embed removed",
			input:    "<iframe src=\"x\"></iframe><object></object><embed><p>kept</p>",
			expected: "<p>kept</p>",
		},
		{
			name:     "orphan script open tag removed",
			input:    "<script><p>dangling</p>",
			expected: "<p>dangling</p>",
		},
		{
			name:     "event handler attributes stripped",
			input:    `<div onclick="steal()" class="ok">hi</div>`,
			expected: `<div class="ok">hi</div>`,
		},
		{
			name:     "unquoted event handler stripped",
			input:    `<img src="a.png" onerror=alert(1)>`,
			expected: `<img src="a.png">`,
		},
		{
			name:     "javascript scheme neutralized",
			input:    `<a href="javascript:alert(1)">x</a>`,
			expected: `<a href="alert(1)">x</a>`,
		},
		{
			name:     "plain text wrapped in paragraphs",
			input:    "hello\nworld\n\nbye",
			expected: "<p>hello<br/>world</p>\n<p>bye</p>",
		},
		{
			name:     "single plain line",
			input:    "just text",
			expected: "<p>just text</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanRemovesBlockedTagsCompletely(t *testing.T) {
	inputs := []string{
		"<script>a</script>",
		"<p>x</p><STYLE>y</STYLE>",
		"<ScRiPt>nested <script>inner</script> outer</ScRiPt>",
		"<scr<script>x</script>ipt>spliced</scr<script>y</script>ipt>",
		"<iframe><iframe></iframe>",
		"<embed src='x'>",
	}

	for _, input := range inputs {
		got := strings.ToLower(Clean(input))
		for _, tag := range []string{"<script", "<style", "<iframe", "<object", "<embed"} {
			if strings.Contains(got, tag) {
				t.Errorf("Clean(%q) still contains %q: %q", input, tag, got)
			}
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text\nwith lines\n\nand paragraphs",
		"<p>already clean</p>",
		"<p>hi</p><script>alert(1)</script>",
		`<a href="javascript:javascript:alert(1)">x</a>`,
		`<div onclick="x" onmouseover='y'>z</div>`,
		"<scr<script>x</script>ipt>alert(1)</scr<script>x</script>ipt>",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\n  once:  %q\n  twice: %q", input, once, twice)
		}
	}
}
