package convert

import (
	"strings"
	"testing"
)

func TestConverterToMarkdown(t *testing.T) {
	t.Parallel()

	converter := New()

	t.Run("preserves headings lists links and code", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1>Install</h1>
			<p>Use the <em>latest</em> <strong>stable</strong> release.</p>
			<ul><li>step one</li><li>step two</li></ul>
			<pre><code>go install example.com/tool@latest</code></pre>
			<a href="https://docs.example.com/next">Next</a>
		</body></html>`

		md, err := converter.ToMarkdown(html, "https://docs.example.com/guide")
		if err != nil {
			t.Fatalf("conversion failed: %v", err)
		}

		for _, want := range []string{
			"# Install",
			"*latest*",
			"**stable**",
			"- step one",
			"go install example.com/tool@latest",
			"[Next](https://docs.example.com/next)",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("markdown missing %q:\n%s", want, md)
			}
		}
	})

	t.Run("absolutizes relative links against the page origin", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/guide/intro">Intro</a></body></html>`

		md, err := converter.ToMarkdown(html, "https://docs.example.com/guide")
		if err != nil {
			t.Fatalf("conversion failed: %v", err)
		}

		if !strings.Contains(md, "https://docs.example.com/guide/intro") {
			t.Errorf("relative link was not absolutized:\n%s", md)
		}
	})

	t.Run("degrades gracefully on malformed HTML", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Broken<p>paragraph<ul><li>item`

		md, err := converter.ToMarkdown(html, "https://docs.example.com/")
		if err != nil {
			t.Fatalf("conversion of malformed HTML failed: %v", err)
		}
		if !strings.Contains(md, "Broken") {
			t.Errorf("expected parseable content to survive:\n%s", md)
		}
	})

	t.Run("empty input yields empty markdown", func(t *testing.T) {
		t.Parallel()

		md, err := converter.ToMarkdown("", "https://docs.example.com/")
		if err != nil {
			t.Fatalf("conversion failed: %v", err)
		}
		if strings.TrimSpace(md) != "" {
			t.Errorf("expected empty markdown, got %q", md)
		}
	})
}

func TestOriginOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"absolute https", "https://docs.example.com/guide", "https://docs.example.com"},
		{"absolute with port", "http://127.0.0.1:8080/x", "http://127.0.0.1:8080"},
		{"relative", "/guide", ""},
		{"garbage", "://", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := originOf(tt.url); got != tt.want {
				t.Errorf("originOf(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
