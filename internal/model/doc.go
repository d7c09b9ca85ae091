// Package model defines the core data structures used throughout dupmeta.
//
// This package contains the following main types:
//   - Field: The closed set of page metadata fields that can be compared
//   - Page: One row of the analyzed dataset (URL, Title, H1, Meta Description)
//   - Dataset: An ordered, read-only collection of pages
//   - Group: Pages sharing the same normalized metadata
//   - StageResult: The outcome of one duplicate detection pass
//   - Analysis: The outcome of a complete cascading run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The dedup engine, the pipeline, the sources and the report
// writers all need these types, so centralizing them prevents import cycles.
package model
