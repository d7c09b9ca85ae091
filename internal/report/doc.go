// Package report provides report generation and output functionality.
//
// This package contains two kinds of output:
//   - CSVWriter: one flat report per stage with duplicates, in the
//     "Group ID, URL, Title, H1, Meta Description" layout
//   - Summary writers (SimpleWriter, MarkdownWriter, JSONWriter): one
//     analysis summary per run, listing every stage and its counts
//
// ArtifactWriter ties them together and writes a run's files into an
// output directory.
//
// Design decision: We separate report writing from report data structures
// (which are in the model package). Writers only read the analysis, so new
// output formats never touch the engine.
package report
