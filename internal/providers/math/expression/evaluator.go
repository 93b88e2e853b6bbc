package expression

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 2 * time.Second
	DefaultMaxLength = 256
)

// Evaluator evaluates literal arithmetic and simplifies expressions with
// unknowns. It is safe for concurrent use.
type Evaluator struct {
	timeout   time.Duration
	maxLength int
	logger    *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTimeout bounds a single evaluation.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMaxLength bounds the normalised expression length in characters.
func WithMaxLength(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxLength = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		timeout:   DefaultTimeout,
		maxLength: DefaultMaxLength,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate normalises raw and returns its value. Input containing letters is
// simplified symbolically after applying any trailing substitution clause;
// anything else is evaluated as plain arithmetic.
func (e *Evaluator) Evaluate(ctx context.Context, raw string) (string, error) {
	body, subs := SplitSubstitutions(raw)
	normalized := Normalize(body)
	if normalized == "" {
		return "", ErrEmptyExpression
	}
	if n := utf8.RuneCountInString(normalized); n > e.maxLength {
		return "", fmt.Errorf("%w: %d characters, limit %d", ErrTooLong, n, e.maxLength)
	}

	tokens, err := tokenize(normalized)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if !hasSymbols(tokens) {
		e.logger.Debug("Evaluating literal expression", zap.String("expression", normalized))
		return e.evaluateLiteral(ctx, tokens)
	}
	if hasOperator(tokens, "//") {
		return "", fmt.Errorf("%w: floor division of an expression with unknowns", ErrUnsupported)
	}

	src := render(tokens)
	e.logger.Debug("Simplifying expression",
		zap.String("expression", src),
		zap.Int("substitutions", len(subs)))
	return e.simplify(ctx, src, subs)
}
