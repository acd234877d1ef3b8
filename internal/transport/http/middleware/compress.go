package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses for clients that accept it. Small bodies and
// already-compressed content types are passed through.
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
