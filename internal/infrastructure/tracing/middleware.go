package tracing

import (
	"github.com/GriffinCanCode/sadhak/backend/internal/shared/id"
	"github.com/gin-gonic/gin"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// HTTPMiddleware creates Gin middleware that assigns every request an ID,
// echoes it in the response and logs one span per request. A well-formed
// client-supplied ID is kept.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if reqID, ok := id.ParseRequestID(c.GetHeader(HeaderRequestID)); ok {
			ctx = WithRequestID(ctx, reqID)
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.path", c.Request.URL.Path)
		span.SetTag("http.client_ip", c.ClientIP())

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, span.RequestID.String())

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}
