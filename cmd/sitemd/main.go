// Package main provides the entry point for the sitemd CLI.
//
// sitemd archives a documentation website as a local Markdown tree. It
// crawls same-host links from a start URL up to a bounded depth, converts
// each fetched page to Markdown, and writes one file per page under
// <output-dir>/<host>/ mirroring the URL path.
//
// Usage:
//
//	sitemd https://docs.example.com/guide ./archive
//	sitemd --max-depth 2 --rate-limit 1.5 --max-concurrency 3 https://docs.example.com/guide ./archive
//
// See --help for all available options.
package main

// main is the entry point for sitemd.
func main() {
	Execute()
}
