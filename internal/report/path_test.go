package report

import (
	"path/filepath"
	"testing"
)

func TestPagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string // relative to the output dir
	}{
		{
			name: "plain path",
			url:  "https://example.com/a/b",
			want: filepath.Join("example.com", "a", "b.md"),
		},
		{
			name: "path with fragment",
			url:  "https://example.com/a/b#sec1",
			want: filepath.Join("example.com", "a", "b_sec1.md"),
		},
		{
			name: "single segment",
			url:  "https://docs.example.com/guide",
			want: filepath.Join("docs.example.com", "guide.md"),
		},
		{
			name: "trailing slash",
			url:  "https://docs.example.com/guide/",
			want: filepath.Join("docs.example.com", "guide.md"),
		},
		{
			name: "no path uses host as filename",
			url:  "https://docs.example.com/",
			want: filepath.Join("docs.example.com", "docs.example.com.md"),
		},
		{
			name: "no path with fragment",
			url:  "https://docs.example.com/#intro",
			want: filepath.Join("docs.example.com", "docs.example.com_intro.md"),
		},
		{
			name: "host with port is sanitized",
			url:  "http://127.0.0.1:8080/page",
			want: filepath.Join("127.0.0.1_8080", "page.md"),
		},
		{
			name: "reserved characters in segments",
			url:  "https://example.com/a%3Fb/c",
			want: filepath.Join("example.com", "a_b", "c.md"),
		},
		{
			name: "empty segments are dropped",
			url:  "https://example.com/a//b",
			want: filepath.Join("example.com", "a", "b.md"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PagePath("out", tt.url)
			if err != nil {
				t.Fatalf("PagePath failed: %v", err)
			}
			if want := filepath.Join("out", tt.want); got != want {
				t.Errorf("PagePath(%q) = %q, want %q", tt.url, got, want)
			}
		})
	}

	t.Run("distinct fragments never collide", func(t *testing.T) {
		t.Parallel()

		a, err := PagePath("out", "https://example.com/a/b#sec1")
		if err != nil {
			t.Fatalf("PagePath failed: %v", err)
		}
		b, err := PagePath("out", "https://example.com/a/b#sec2")
		if err != nil {
			t.Fatalf("PagePath failed: %v", err)
		}
		c, err := PagePath("out", "https://example.com/a/b")
		if err != nil {
			t.Fatalf("PagePath failed: %v", err)
		}
		if a == b || a == c || b == c {
			t.Errorf("paths collide: %q, %q, %q", a, b, c)
		}
	})

	t.Run("rejects URLs without a host", func(t *testing.T) {
		t.Parallel()

		if _, err := PagePath("out", "/relative/only"); err == nil {
			t.Fatal("expected an error for a URL without host")
		}
	})
}
