package model

import "strings"

// Page represents a single fetched page moving through the archive flow:
// fetched HTML in, converted Markdown out, plus the metadata needed for
// naming the destination file and building the crawl index.
//
// Design decision: We keep both the raw HTML and the converted Markdown on
// the same struct because:
//  1. Conversion happens after fetching but the writer needs the original
//     URL (including fragment) for path naming
//  2. The index writer needs title and status after the file is written
//  3. Pages are transient; nothing outlives the run, so memory cost is
//     bounded by the crawl itself
type Page struct {
	// URL is the URL as originally requested, fragment included.
	// The fragment never reaches the server but is significant for
	// output file naming.
	URL string

	// Depth is the distance from the start URL (start page = 0).
	Depth int

	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentType is the MIME type from the Content-Type header.
	ContentType string

	// Title is the page title from the <title> tag, empty for
	// non-HTML content or pages without one.
	Title string

	// HTML is the response body decoded to UTF-8.
	HTML string

	// Markdown is the converted page content. Empty until the
	// converter has run.
	Markdown string

	// Links are the same-host absolute URLs extracted from the page.
	Links []string
}

// IsHTML reports whether the page's Content-Type indicates an HTML
// document. Only HTML pages are parsed for links and converted.
func (p *Page) IsHTML() bool {
	return strings.Contains(p.ContentType, "text/html") ||
		strings.Contains(p.ContentType, "application/xhtml+xml")
}

// OK reports whether the page was fetched with a 2xx status.
func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}
