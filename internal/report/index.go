package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/nao1215/markdown"
	"github.com/sitemd/sitemd/internal/model"
)

// Index accumulates one entry per archived page and renders a crawl
// summary as INDEX.md at the output root. It is safe for concurrent use;
// crawl workers add entries as pages are written.
type Index struct {
	// startURL is the URL the crawl began from.
	startURL string

	// started is when the crawl began.
	started time.Time

	// entries holds one row per archived page.
	entries []IndexEntry

	// mutex protects entries.
	mutex sync.Mutex
}

// IndexEntry is one archived page in the index.
type IndexEntry struct {
	// URL is the page URL as requested, fragment included.
	URL string

	// Title is the page title, if any.
	Title string

	// Depth is the crawl depth the page was found at.
	Depth int

	// File is the page's output path relative to the output root.
	File string
}

// NewIndex creates an Index for a crawl starting at startURL.
func NewIndex(startURL string) *Index {
	return &Index{
		startURL: startURL,
		started:  time.Now(),
		entries:  make([]IndexEntry, 0),
	}
}

// Add records an archived page. path is the absolute or root-relative file
// the page was written to; it is stored relative to outputDir.
func (i *Index) Add(page *model.Page, path, outputDir string) {
	file := path
	if rel, err := filepath.Rel(outputDir, path); err == nil {
		file = rel
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.entries = append(i.entries, IndexEntry{
		URL:   page.URL,
		Title: page.Title,
		Depth: page.Depth,
		File:  file,
	})
}

// Len returns the number of archived pages recorded so far.
func (i *Index) Len() int {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return len(i.entries)
}

// Write renders the index to <outputDir>/INDEX.md.
//
// Design decision: We build the document with the nao1215/markdown fluent
// API rather than string concatenation because it produces well-formed
// tables without manual escaping of pipe characters in titles.
func (i *Index) Write(outputDir string) error {
	i.mutex.Lock()
	entries := make([]IndexEntry, len(i.entries))
	copy(entries, i.entries)
	i.mutex.Unlock()

	// Workers finish in arbitrary order; sort for a stable document.
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Depth != entries[b].Depth {
			return entries[a].Depth < entries[b].Depth
		}
		return entries[a].URL < entries[b].URL
	})

	f, err := os.OpenFile(filepath.Join(outputDir, "INDEX.md"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("cannot create index: %w", err)
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)

	md.H1("Crawl Index")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + i.startURL + "`"},
			{"Crawled At", i.started.Format("2006-01-02 15:04:05 MST")},
			{"Pages Archived", strconv.Itoa(len(entries))},
		},
	})
	md.PlainText("")

	md.H2("Pages")
	md.PlainText("")
	if len(entries) == 0 {
		md.PlainText("No pages were archived.")
		md.PlainText("")
		return md.Build()
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		title := entry.Title
		if title == "" {
			title = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(entry.Depth),
			"`" + entry.URL + "`",
			title,
			"[" + filepath.ToSlash(entry.File) + "](" + filepath.ToSlash(entry.File) + ")",
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Depth", "URL", "Title", "File"},
		Rows:   rows,
	})
	md.PlainText("")

	return md.Build()
}
