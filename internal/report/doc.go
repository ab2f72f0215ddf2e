// Package report stores crawl output: one Markdown file per archived page
// plus an INDEX.md summary of the run.
//
// PagePath defines the naming scheme that maps a page URL to a file under
// the output root. The scheme is deterministic and collision-free across
// distinct URLs (fragments included), which is what lets crawl workers
// write files without coordination.
package report
