// Package config provides 12-factor configuration management for the
// Sadhak Calculator backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// A .env file in the working directory is read first when present, and CLI
// flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP listen address, static asset directory, shutdown, compression
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Expression: Evaluation timeout and input length limit
//   - Generator: Default bigram continuation length
//
// Example Usage:
//
//	_ = config.LoadDotEnv()
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, STATIC_DIR, SHUTDOWN_TIMEOUT, COMPRESSION_ENABLED
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_ENABLED, RATE_LIMIT_RPS, RATE_LIMIT_BURST
//   - EXPRESSION_TIMEOUT, EXPRESSION_MAX_LENGTH
//   - GENERATOR_LENGTH
package config
