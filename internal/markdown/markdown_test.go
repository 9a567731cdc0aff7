package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"heading", "# Hello", `<h1 id="hello">Hello</h1>`},
		{"emphasis", "some *emphasis* here", "<em>emphasis</em>"},
		{"gfm strikethrough", "~~gone~~", "<del>gone</del>"},
		{"raw html passthrough", `<div class="legacy">old</div>`, `<div class="legacy">old</div>`},
		{"link", "[inkwell](https://inkwell.sh)", `<a href="https://inkwell.sh">inkwell</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q): %v", tt.source, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestToHTML_FencedCodeHighlighted(t *testing.T) {
	got, err := ToHTML("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	// The highlighter emits a styled pre block instead of a bare code tag.
	if !strings.Contains(got, "<pre") || !strings.Contains(got, "style") {
		t.Errorf("highlighted output missing styles: %q", got)
	}
}
