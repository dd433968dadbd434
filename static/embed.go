// Package static holds the browser board served at the root of the HTTP server.
package static

import "embed"

// Files contains index.html and its assets
//
//go:embed index.html
var Files embed.FS
