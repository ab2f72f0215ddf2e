package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts the page title and anchor targets from HTML content.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles the malformed HTML documentation sites often ship
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative hrefs.
	baseURL *url.URL
}

// ParseResult contains the information extracted from an HTML page.
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Links contains all resolved absolute URLs from href attributes.
	Links []string

	// InternalLinks are links whose host matches the page's host.
	// Only these are candidates for further crawling.
	InternalLinks []string

	// ExternalLinks are links to other hosts. They are recorded but
	// never scheduled.
	ExternalLinks []string
}

// NewParser creates an HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse parses HTML content and extracts the title and links.
// x/net/html is lenient: malformed markup yields a best-effort tree rather
// than an error, so broken pages still surface whatever links are parseable.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links:         make([]string, 0),
		InternalLinks: make([]string, 0),
		ExternalLinks: make([]string, 0),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			p.processElement(n, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

// processElement handles a single HTML element node.
func (p *Parser) processElement(n *html.Node, result *ParseResult) {
	switch n.Data {
	case "title":
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			result.Title = strings.TrimSpace(n.FirstChild.Data)
		}

	case "a":
		if href := getAttr(n, "href"); href != "" {
			resolved := p.resolveURL(href)
			if resolved != "" {
				result.Links = append(result.Links, resolved)
				p.classifyLink(resolved, result)
			}
		}
	}
}

// resolveURL resolves a relative URL against the base URL.
// Non-navigable schemes and bare fragment links are dropped.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		href == "#" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return p.baseURL.ResolveReference(u).String()
}

// classifyLink buckets a resolved link as same-host or external.
// The host comparison includes the port so that a docs site on a
// non-standard port does not leak the crawl onto its sibling vhosts.
func (p *Parser) classifyLink(link string, result *ParseResult) {
	u, err := url.Parse(link)
	if err != nil {
		return
	}

	if strings.EqualFold(u.Host, p.baseURL.Host) {
		result.InternalLinks = append(result.InternalLinks, link)
		return
	}
	result.ExternalLinks = append(result.ExternalLinks, link)
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
