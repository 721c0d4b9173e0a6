package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it and transparently
// inflates gzip encoded request bodies. Probe endpoints are left uncompressed.
func Compression(excludedPaths ...string) gin.HandlerFunc {
	return gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths(excludedPaths),
	)
}
