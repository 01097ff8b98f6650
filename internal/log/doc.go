// Package log provides crawl logging built on the standard slog package.
//
// The TruncatingHandler shortens oversized attribute values before they
// reach the underlying handler. Debug logging in the crawler routinely
// attaches markup snippets and long attribute maps; truncation keeps
// verbose output readable without dropping the attributes entirely.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("page fetched",
//	    "url", target,
//	    "body", body, // shortened to MaxValueLen runes
//	)
package log
