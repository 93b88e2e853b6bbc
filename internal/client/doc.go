// Package client is a Go client for the calculator HTTP API.
//
// Requests go through resty with retries on transport errors, 429 and 5xx
// responses, and through a circuit breaker so a stopped server fails fast.
// Request errors such as a 400 are returned as *APIError without tripping
// the breaker.
//
//	c := client.New("http://127.0.0.1:5001")
//	answer, err := c.Ask(ctx, "What's the median of 3, 1, 2?")
package client
