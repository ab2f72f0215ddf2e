// Package convert wraps HTML-to-Markdown conversion for archived pages.
//
// Conversion is delegated to github.com/JohannesKaufmann/html-to-markdown;
// this package only adds origin-aware link absolutization and error
// wrapping. A conversion failure is a per-page event: callers log it and
// skip the page rather than aborting the run.
package convert
