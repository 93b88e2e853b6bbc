/*
Package tracing assigns request IDs and logs one span per HTTP request.

Request IDs are prefixed ULIDs from the id package. A client may pass its
own in the X-Request-ID header; malformed values are replaced. The ID is
stored in the request context so handlers can attach it to their log lines
with tracing.Field(ctx).

# Usage

	tracer := tracing.New("sadhak", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

Spans are handed to a buffered collector goroutine and dropped when the
buffer is full, so request handling never blocks on logging.
*/
package tracing
