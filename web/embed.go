// Package web provides the default embedded bundle served by the host.
package web

import "embed"

// FS contains index.html and the static assets. A built bundle in
// STATIC_DIR takes precedence over it.
//
//go:embed index.html static
var FS embed.FS
