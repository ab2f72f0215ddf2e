// Package model defines the data structures shared across the crawl,
// conversion, and output stages.
//
// The central type is Page, which carries a fetched page from the crawler
// through Markdown conversion to the file writer. Models hold no behavior
// beyond small predicates; all processing lives in the packages that
// produce or consume them.
package model
