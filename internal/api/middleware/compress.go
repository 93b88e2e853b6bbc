package middleware

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// CompressionConfig defines response compression options.
type CompressionConfig struct {
	Level int
	// ExcludedPaths are served uncompressed. Handlers that negotiate their
	// own encoding belong here.
	ExcludedPaths []string
}

// DefaultCompressionConfig returns the default compression settings.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		Level:         gzip.DefaultCompression,
		ExcludedPaths: []string{"/metrics"},
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) WriteHeader(code int) {
	g.Header().Del("Content-Length")
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	g.Header().Del("Content-Length")
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	g.Header().Del("Content-Length")
	return g.writer.Write([]byte(s))
}

// Compress gzips response bodies for clients that accept it.
func Compress(cfg CompressionConfig) gin.HandlerFunc {
	excluded := make(map[string]struct{}, len(cfg.ExcludedPaths))
	for _, p := range cfg.ExcludedPaths {
		excluded[p] = struct{}{}
	}

	pool := sync.Pool{
		New: func() any {
			w, err := gzip.NewWriterLevel(nil, cfg.Level)
			if err != nil {
				w = gzip.NewWriter(nil)
			}
			return w
		},
	}

	return func(c *gin.Context) {
		if !acceptsGzip(c) || c.Request.Method == "HEAD" {
			c.Next()
			return
		}
		if _, skip := excluded[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		gz.Reset(c.Writer)

		c.Header("Content-Encoding", "gzip")
		c.Writer.Header().Add("Vary", "Accept-Encoding")
		c.Writer = &gzipWriter{ResponseWriter: c.Writer, writer: gz}

		defer func() {
			gz.Close()
			gz.Reset(nil)
			pool.Put(gz)
		}()

		c.Next()
	}
}

func acceptsGzip(c *gin.Context) bool {
	for _, enc := range strings.Split(c.GetHeader("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "gzip") {
			return true
		}
	}
	return false
}
