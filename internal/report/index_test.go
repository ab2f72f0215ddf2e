package report

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sitemd/sitemd/internal/model"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("writes INDEX.md with one row per page", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		index := NewIndex("https://docs.example.com/guide")

		index.Add(
			&model.Page{URL: "https://docs.example.com/guide", Title: "Guide", Depth: 0},
			filepath.Join(out, "docs.example.com", "guide.md"),
			out,
		)
		index.Add(
			&model.Page{URL: "https://docs.example.com/guide/intro", Title: "Intro", Depth: 1},
			filepath.Join(out, "docs.example.com", "guide", "intro.md"),
			out,
		)

		if err := index.Write(out); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(out, "INDEX.md"))
		if err != nil {
			t.Fatalf("failed to read INDEX.md: %v", err)
		}
		text := string(content)

		if !strings.Contains(text, "# Crawl Index") {
			t.Errorf("missing index heading:\n%s", text)
		}
		if !strings.Contains(text, "https://docs.example.com/guide") {
			t.Errorf("missing start URL:\n%s", text)
		}
		if !strings.Contains(text, "docs.example.com/guide/intro.md") {
			t.Errorf("missing relative file link:\n%s", text)
		}
		if !strings.Contains(text, "Intro") {
			t.Errorf("missing page title:\n%s", text)
		}
	})

	t.Run("empty index still writes a document", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		index := NewIndex("https://docs.example.com/")

		if err := index.Write(out); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(out, "INDEX.md"))
		if err != nil {
			t.Fatalf("failed to read INDEX.md: %v", err)
		}
		if !strings.Contains(string(content), "No pages were archived.") {
			t.Errorf("missing empty-crawl note:\n%s", string(content))
		}
	})

	t.Run("concurrent adds are safe", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		index := NewIndex("https://docs.example.com/")

		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				index.Add(&model.Page{URL: "https://docs.example.com/p"}, "p.md", out)
			}()
		}
		wg.Wait()

		if got := index.Len(); got != 32 {
			t.Errorf("Len = %d, want 32", got)
		}
	})
}
