// Package main provides the entry point for the dupmeta CLI.
//
// dupmeta finds pages of a website that share SEO metadata (Title, H1 and
// Meta Description). It runs a cascade of duplicate reports, from pages
// identical on all three fields down to pages sharing a single field, so
// that each page is reported at its most specific level.
//
// Usage:
//
//	dupmeta analyze internal_html.csv
//	dupmeta analyze --markdown -o reports crawl.db site/
//
// See --help for all available options.
package main

// main is the entry point for dupmeta.
func main() {
	Execute()
}
