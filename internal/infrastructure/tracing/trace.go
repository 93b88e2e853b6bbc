package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/GriffinCanCode/sadhak/backend/internal/shared/id"
	"go.uber.org/zap"
)

// Span records one handled request.
type Span struct {
	RequestID  id.RequestID
	Name       string
	Service    string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// Tracer collects finished spans and writes them to the log.
type Tracer struct {
	service string
	logger  *zap.Logger
	spans   chan *Span

	closeOnce sync.Once
	done      chan struct{}
}

const spanBuffer = 1000

// New creates a tracer and starts its collector. Call Close to stop it.
func New(service string, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger,
		spans:   make(chan *Span, spanBuffer),
		done:    make(chan struct{}),
	}

	go t.collectSpans()

	return t
}

// StartSpan creates a span, reusing the request ID already in ctx when
// there is one.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	reqID := GetRequestID(ctx)
	if reqID == "" {
		reqID = id.NewRequestID()
	}

	span := &Span{
		RequestID: reqID,
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	return span, WithRequestID(ctx, reqID)
}

// Finish marks the span as complete
func (s *Span) Finish() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// SetTag adds a tag to the span
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records an error in the span
func (s *Span) SetError(err error) {
	s.Error = err
	if s.StatusCode < 500 {
		s.StatusCode = 500
	}
}

// SetStatus sets the HTTP status code
func (s *Span) SetStatus(code int) {
	s.StatusCode = code
}

func (t *Tracer) collectSpans() {
	defer close(t.done)
	for span := range t.spans {
		t.processSpan(span)
	}
}

func (t *Tracer) processSpan(span *Span) {
	fields := []zap.Field{
		zap.String("request_id", span.RequestID.String()),
		zap.String("operation", span.Name),
		zap.Int("status", span.StatusCode),
		zap.Duration("duration", span.Duration),
		zap.String("service", span.Service),
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	switch {
	case span.Error != nil:
		fields = append(fields, zap.Error(span.Error))
		t.logger.Error("request failed", fields...)
	case span.StatusCode >= 500:
		t.logger.Error("request completed", fields...)
	case span.StatusCode >= 400:
		t.logger.Warn("request completed", fields...)
	default:
		t.logger.Info("request completed", fields...)
	}
}

// Submit sends a span to the collector. Spans are dropped when the buffer
// is full.
func (t *Tracer) Submit(span *Span) {
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("request_id", span.RequestID.String()),
		)
	}
}

// Close stops the collector after draining buffered spans. Submit must not
// be called after Close.
func (t *Tracer) Close() {
	t.closeOnce.Do(func() {
		close(t.spans)
	})
	<-t.done
}

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores a request ID in ctx.
func WithRequestID(ctx context.Context, reqID id.RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) id.RequestID {
	if reqID, ok := ctx.Value(requestIDKey).(id.RequestID); ok {
		return reqID
	}
	return ""
}

// Field returns the request ID of ctx as a log field.
func Field(ctx context.Context) zap.Field {
	return zap.String("request_id", GetRequestID(ctx).String())
}
