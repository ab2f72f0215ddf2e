// Package crawler provides depth-bounded, same-host web crawling.
//
// # Architecture
//
// The Spider expands pages breadth-first from a start URL, one depth level
// at a time. Each level is fetched by a bounded pool of workers; a shared
// Limiter guarantees a minimum interval between fetch starts across all
// workers. A mutex-guarded visited-set makes every fetch at-most-once
// within a run.
//
// Design decision: We implement our own crawler rather than using a
// third-party library because:
//  1. The traversal is small (visited-set + depth-level queue) and the
//     fragment-aware dedup policy is specific to this tool
//  2. We need tight control over fetch-start spacing for politeness
//  3. Reduces external dependencies for a one-shot tool
//
// # Components
//
//   - Spider: coordinates the crawl, the worker pool, and the visited-set
//   - Parser: extracts titles and same-host links via x/net/html
//   - Limiter: global minimum spacing between fetch starts
//
// # Usage
//
//	spider := crawler.NewSpider(httpClient,
//		crawler.WithMaxDepth(2),
//		crawler.WithRateLimit(time.Second),
//	)
//	err := spider.Crawl(ctx, "https://docs.example.com/guide", func(page *model.Page) {
//		// convert and store the page
//	})
package crawler
