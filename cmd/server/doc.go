// Package main is the entry point for the Sadhak Calculator server.
//
// The server answers natural-language math prompts over HTTP and serves the
// prompt page from the static directory.
//
// Configuration:
//   - Environment variables, optionally from a .env file
//   - CLI flags (override env vars)
//   - Defaults for local use
//
// Usage:
//
//	# Listen on 127.0.0.1:5001
//	./server
//
//	# Development mode (console logs, debug level)
//	./server -dev -port 8080
//
//	# Log the answers to the sample prompts before serving
//	./server -selfcheck
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
