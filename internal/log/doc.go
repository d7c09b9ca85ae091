// Package log provides the application logger, built on top of the standard
// slog package.
//
// Debug logs of an analysis carry page titles, H1 text and meta
// descriptions, which can be arbitrarily long. The TruncatingHandler cuts
// long string values to a fixed display width so that each record stays on
// one readable line, counting East Asian wide characters correctly.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("sample duplicate", "title", page.Title)
//	slog.SetDefault(logger)
package log
