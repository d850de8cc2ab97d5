package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

var uncompressedPaths = []string{"/metrics", "/healthz", "/readyz"}

// Compression gzips responses for clients that accept it and inflates
// gzip-encoded request bodies, so large carts can be posted compressed.
// Probes, scrapes, images and any extra prefixes in skip go out as is.
func Compression(skip ...string) gin.HandlerFunc {
	paths := make([]string, 0, len(uncompressedPaths)+len(skip))
	paths = append(paths, uncompressedPaths...)
	paths = append(paths, skip...)

	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths(paths),
		gzip.WithExcludedExtensions([]string{".png", ".ico"}),
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
	)
}
