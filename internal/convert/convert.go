package convert

import (
	"fmt"
	"net/url"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// Converter turns fetched HTML into Markdown.
//
// Design decision: We delegate to the html-to-markdown library rather than
// walking the DOM ourselves because:
//  1. It preserves headings, lists, links, code blocks, and emphasis with
//     well-tested CommonMark rules
//  2. It is lenient with the malformed HTML documentation sites ship,
//     converting whatever is parseable instead of failing the page
//  3. Conversion fidelity is the library's whole job, not ours
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// ToMarkdown converts an HTML document to Markdown. pageURL is the URL the
// document was fetched from; relative links in the document are absolutized
// against its origin so that the archived Markdown remains navigable.
func (c *Converter) ToMarkdown(htmlContent, pageURL string) (string, error) {
	opts := make([]converter.ConvertOptionFunc, 0, 1)
	if origin := originOf(pageURL); origin != "" {
		opts = append(opts, converter.WithDomain(origin))
	}

	md, err := htmltomarkdown.ConvertString(htmlContent, opts...)
	if err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return md, nil
}

// originOf returns the scheme://host origin of a URL, or "" if the URL is
// not parseable as an absolute URL.
func originOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
