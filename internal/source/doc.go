// Package source loads page datasets from storage.
//
// Three loaders are provided:
//   - CSVLoader: a crawler export with a header row
//   - SQLiteLoader: a table in a SQLite database (modernc.org/sqlite)
//   - HTMLDirLoader: a directory of saved HTML pages (golang.org/x/net/html)
//
// All loaders return pages in a deterministic order (file row order, rowid
// order, lexical file order), which makes group numbering reproducible.
// Open picks a loader from the path.
package source
