// Package middleware provides the HTTP middleware stack for the calculator.
//
//   - CORS: cross-origin access for the prompt page
//   - RateLimit: per-IP token bucket limiting with idle client eviction
//   - GlobalRateLimit: one bucket shared by all clients
//   - Compress: gzip response bodies when the client accepts them
//   - BodyLimit: reject oversized request bodies
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.Compress(middleware.DefaultCompressionConfig()))
package middleware
