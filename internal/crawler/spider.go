package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sitemd/sitemd/internal/model"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
)

// PageHandler receives each successfully fetched page. Handlers are called
// from worker goroutines and must be safe for concurrent use.
type PageHandler func(page *model.Page)

// Spider crawls same-host pages breadth-first from a start URL.
// It manages the visited-set, the bounded worker pool, and the shared
// rate limiter.
//
// Design decision: We call it "Spider" rather than "Crawler" because:
//  1. "Spider" is the traditional term for web crawlers
//  2. Distinguishes the component from the package name
//  3. Clearer in code: crawler.NewSpider() vs crawler.NewCrawler()
type Spider struct {
	// client is the HTTP client used for all fetches.
	client *http.Client

	// maxDepth limits how deep to crawl from the starting URL.
	// 0 means only the starting page, 1 means one level of links, etc.
	maxDepth int

	// concurrency is the size of the fetch worker pool.
	concurrency int

	// limiter spaces fetch starts globally across all workers.
	limiter *Limiter

	// userAgent is the User-Agent header to use.
	userAgent string

	// headers are extra request headers applied to every fetch.
	headers map[string]string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// ignorePatterns are URL path patterns to skip during crawling.
	// Patterns use glob syntax (e.g., "/changelog/*", "*.pdf").
	ignorePatterns []string

	// followPatterns are URL path patterns to follow during crawling.
	// If set, only URLs matching these patterns are crawled.
	// Empty means all URLs are allowed (subject to ignorePatterns).
	followPatterns []string

	// logger records skipped pages and crawl progress.
	logger *slog.Logger

	// visited tracks normalized URLs already claimed for fetching.
	visited map[string]bool

	// mutex protects visited and pageCount.
	mutex sync.Mutex

	// pageCount tracks pages fetched successfully.
	pageCount int
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the starting page, 1 = starting page plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithConcurrency sets the fetch worker pool size.
func WithConcurrency(n int) SpiderOption {
	return func(s *Spider) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithRateLimit sets the minimum interval between fetch starts.
// Zero disables rate limiting.
func WithRateLimit(interval time.Duration) SpiderOption {
	return func(s *Spider) {
		s.limiter = NewLimiter(interval)
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) SpiderOption {
	return func(s *Spider) {
		s.userAgent = ua
	}
}

// WithHeaders sets extra request headers sent with every fetch.
func WithHeaders(headers map[string]string) SpiderOption {
	return func(s *Spider) {
		s.headers = headers
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) SpiderOption {
	return func(s *Spider) {
		s.maxBodySize = size
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// URLs matching any of these patterns will not be fetched.
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets URL path patterns to follow during crawling.
// If set, only URLs matching at least one pattern are fetched.
// Empty slice means all URLs are allowed (default behavior).
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.followPatterns = patterns
	}
}

// WithLogger sets the logger used for crawl progress and skipped pages.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a new Spider with the given HTTP client.
//
// Design decision: We require an external client because:
//  1. The caller owns the timeout and transport configuration
//  2. Tests can pass a client pointed at an httptest server
func NewSpider(client *http.Client, opts ...SpiderOption) *Spider {
	s := &Spider{
		client:      client,
		maxDepth:    1,
		concurrency: 4,
		limiter:     NewLimiter(0),
		userAgent:   "sitemd/1.0 (+https://github.com/sitemd/sitemd)",
		maxBodySize: 10 * 1024 * 1024, // 10MB
		visited:     make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// task is a pending fetch: the URL as originally discovered (fragment
// preserved for output naming) plus its distance from the start URL.
type task struct {
	url   string
	depth int
}

// Crawl fetches all same-host pages reachable from startURL within the
// depth bound and passes each successfully fetched page to handle.
//
// Pages expand breadth-first, one depth level at a time; each level is
// fetched by a bounded pool of workers (errgroup with SetLimit). A fetch
// that fails is logged and skipped: its links are not followed and the
// crawl continues. Crawl returns an error only for an unusable start URL
// or a cancelled context.
func (s *Spider) Crawl(ctx context.Context, startURL string, handle PageHandler) error {
	start, err := url.Parse(startURL)
	if err != nil {
		return fmt.Errorf("invalid start URL: %w", err)
	}
	if start.Scheme != "http" && start.Scheme != "https" {
		return fmt.Errorf("invalid start URL %q: scheme must be http or https", startURL)
	}
	if handle == nil {
		handle = func(*model.Page) {}
	}

	level := []task{{url: start.String(), depth: 0}}
	for depth := 0; len(level) > 0; depth++ {
		s.logger.Debug("crawling depth level", "depth", depth, "pages", len(level))

		var (
			next      []task
			nextMutex sync.Mutex
		)
		scheduled := make(map[string]bool)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)

		for _, t := range level {
			// Claim before spawning so two tasks for the same resource
			// discovered at the same depth cannot both fetch it.
			if !s.claim(t.url) {
				continue
			}

			g.Go(func() error {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}

				page, links, err := s.fetchPage(gctx, t.url)
				if err != nil {
					s.logger.Warn("skipping page", "url", t.url, "error", err)
					return nil
				}
				page.Depth = t.depth

				s.mutex.Lock()
				s.pageCount++
				s.mutex.Unlock()

				handle(page)

				if t.depth >= s.maxDepth {
					return nil
				}

				nextMutex.Lock()
				defer nextMutex.Unlock()
				for _, link := range links {
					key := s.normalizeURL(link)
					if scheduled[key] || s.isVisited(link) || !s.shouldCrawl(link) {
						continue
					}
					scheduled[key] = true
					next = append(next, task{url: link, depth: t.depth + 1})
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		level = next
	}

	return nil
}

// fetchPage fetches a single page and extracts its title and same-host
// links. The fragment is dropped from the request URL (it is a client-side
// construct) but preserved on the returned page for output naming.
func (s *Spider) fetchPage(ctx context.Context, pageURL string) (*model.Page, []string, error) {
	requestURL := stripFragment(pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")

	// Decode to UTF-8 before parsing; documentation sites are not
	// universally UTF-8.
	decoded, err := charset.NewReader(io.LimitReader(resp.Body, s.maxBodySize), contentType)
	if err != nil {
		return nil, nil, err
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, nil, err
	}

	page := &model.Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(body),
	}

	var links []string
	if page.IsHTML() {
		parser, err := NewParser(requestURL)
		if err == nil {
			if result, err := parser.Parse(strings.NewReader(page.HTML)); err == nil {
				page.Title = result.Title
				links = result.InternalLinks
			}
		}
	}
	page.Links = links

	return page, links, nil
}

// claim marks a URL as visited, returning false if it was already claimed.
// The check and the insert happen under one lock so that two workers can
// never both claim the same URL.
func (s *Spider) claim(pageURL string) bool {
	key := s.normalizeURL(pageURL)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.visited[key] {
		return false
	}
	s.visited[key] = true
	return true
}

// isVisited checks if a URL has been claimed.
func (s *Spider) isVisited(pageURL string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.visited[s.normalizeURL(pageURL)]
}

// normalizeURL normalizes a URL for deduplication.
//
// Design decision: We strip the fragment because two URLs differing only by
// fragment address the same resource; the resource is fetched once and the
// fragment of the first-discovered URL names the output file. Scheme and
// host are case-insensitive, and an empty path equals "/".
func (s *Spider) normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

// stripFragment removes the fragment from a URL before it is put on the
// wire. Fragments are never sent to servers.
func stripFragment(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	u.Fragment = ""
	return u.String()
}

// Stats returns current crawl statistics.
func (s *Spider) Stats() SpiderStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return SpiderStats{
		PagesFetched: s.pageCount,
		URLsClaimed:  len(s.visited),
	}
}

// SpiderStats contains crawl statistics.
type SpiderStats struct {
	// PagesFetched is the number of pages fetched successfully.
	PagesFetched int

	// URLsClaimed is the number of unique URLs claimed for fetching,
	// including fetches that later failed.
	URLsClaimed int
}

// shouldCrawl checks if a URL should be fetched based on ignore/follow
// patterns.
//
// Logic:
//  1. If the URL path matches any ignorePattern, skip it
//  2. If followPatterns is set and the path matches none, skip it
//  3. Otherwise, crawl it
func (s *Spider) shouldCrawl(targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range s.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(s.followPatterns) > 0 {
		for _, pattern := range s.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

// matchPattern checks if a path matches a glob pattern.
//
// Examples:
//   - "/changelog/*" matches "/changelog/v2", "/changelog/v2/notes"
//   - "*.pdf" matches "/docs/manual.pdf"
//   - "/api/v?" matches "/api/v1", "/api/v2"
func matchPattern(pattern, path string) bool {
	// Prefix patterns like "/changelog/*" should match the whole subtree,
	// which filepath.Match alone does not do.
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	// Extension patterns like "*.pdf" match on the suffix anywhere in the
	// tree.
	if strings.HasPrefix(pattern, "*.") {
		if strings.HasSuffix(path, strings.TrimPrefix(pattern, "*")) {
			return true
		}
	}

	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	// Bare filename patterns match against the last path segment.
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}

	return false
}
