// Package responder turns calculator prompts into explanatory answers.
//
// The Responder classifies a prompt, extracts its numbers, runs the matching
// computation and renders a fixed template. Missing input produces guidance
// text and invalid arithmetic produces an apology; neither is an error.
// A panic inside any branch is recovered and reported as a generic apology.
//
// Example Usage:
//
//	r := responder.New(expression.New(), responder.WithLogger(log))
//	answer := r.Respond(ctx, "What's the median of 3, 1, 2?")
//	fmt.Println(answer.Text)
package responder

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/sadhak/backend/internal/domain/query"
	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/expression"
	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/operations"
	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/statistics"
)

// Failure classes reported to the Recorder
const (
	FailureInsufficientInput = "insufficient_input"
	FailureDivisionByZero    = "division_by_zero"
	FailureExpression        = "expression"
	FailureInternal          = "internal"
)

// expressionPattern captures everything after the first evaluation verb.
var expressionPattern = regexp.MustCompile(`(?i)(calculate|evaluate|simplify)\s*(.*)`)

// Evaluator evaluates or simplifies a free-form expression
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Recorder receives per-query observations
type Recorder interface {
	RecordQuery(category string)
	RecordFailure(class string)
	ObserveExpression(d time.Duration, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordQuery(string)                    {}
func (nopRecorder) RecordFailure(string)                  {}
func (nopRecorder) ObserveExpression(time.Duration, bool) {}

// Answer is the outcome of a single prompt
type Answer struct {
	Category query.Category
	Numbers  []float64
	Text     string
	// Failure is empty when the prompt was answered normally.
	Failure string
}

// Responder answers calculator prompts
type Responder struct {
	evaluator Evaluator
	recorder  Recorder
	logger    *zap.Logger
}

// Option configures a Responder
type Option func(*Responder)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(rec Recorder) Option {
	return func(r *Responder) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// New creates a responder backed by the given expression evaluator
func New(evaluator Evaluator, opts ...Option) *Responder {
	r := &Responder{
		evaluator: evaluator,
		recorder:  nopRecorder{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond answers a prompt. It never returns an empty Text.
func (r *Responder) Respond(ctx context.Context, prompt string) (answer Answer) {
	answer.Category = query.Interpret(prompt)

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Recovered from panic while answering prompt",
				zap.Any("panic", rec),
				zap.String("category", string(answer.Category)))
			answer.Text = apology(fmt.Sprint(rec))
			answer.Failure = FailureInternal
		}
		r.recorder.RecordQuery(string(answer.Category))
		if answer.Failure != "" {
			r.recorder.RecordFailure(answer.Failure)
		}
	}()

	switch answer.Category {
	case query.Greeting:
		answer.Text = GreetingReply
		return answer
	case query.Compliment:
		answer.Text = ComplimentReply
		return answer
	}

	answer.Numbers = query.ExtractNumbers(prompt)
	r.logger.Debug("Interpreted prompt",
		zap.String("category", string(answer.Category)),
		zap.Float64s("numbers", answer.Numbers))

	text, failure, err := r.compute(ctx, answer.Category, prompt, answer.Numbers)
	if err != nil {
		r.logger.Warn("Calculation failed",
			zap.String("category", string(answer.Category)),
			zap.Error(err))
		text, failure = apology(err.Error()), FailureInternal
	}
	answer.Text, answer.Failure = text, failure
	return answer
}

func (r *Responder) compute(ctx context.Context, category query.Category, prompt string, numbers []float64) (string, string, error) {
	switch category {
	case query.Mean:
		if len(numbers) == 0 {
			return MeanGuidance, FailureInsufficientInput, nil
		}
		sum, err := statistics.Sum(numbers)
		if err != nil {
			return "", "", err
		}
		mean, err := statistics.Mean(numbers)
		if err != nil {
			return "", "", err
		}
		return renderMean(numbers, sum, mean), "", nil

	case query.Mode:
		if len(numbers) == 0 {
			return ModeGuidance, FailureInsufficientInput, nil
		}
		res, err := statistics.Mode(numbers)
		if err != nil {
			return "", "", err
		}
		return renderMode(res), "", nil

	case query.Median:
		if len(numbers) == 0 {
			return MedianGuidance, FailureInsufficientInput, nil
		}
		res, err := statistics.Median(numbers)
		if err != nil {
			return "", "", err
		}
		return renderMedian(res), "", nil

	case query.Sum:
		if len(numbers) == 0 {
			return SumGuidance, FailureInsufficientInput, nil
		}
		total, err := statistics.Sum(numbers)
		if err != nil {
			return "", "", err
		}
		return renderSum(numbers, total), "", nil

	case query.Subtract:
		result, err := operations.Difference(numbers)
		if errors.Is(err, operations.ErrInsufficientOperands) {
			return SubtractGuidance, FailureInsufficientInput, nil
		}
		if err != nil {
			return "", "", err
		}
		return renderSubtract(numbers, result), "", nil

	case query.Multiply:
		product, err := operations.Product(numbers)
		if errors.Is(err, operations.ErrInsufficientOperands) {
			return MultiplyGuidance, FailureInsufficientInput, nil
		}
		if err != nil {
			return "", "", err
		}
		return renderMultiply(numbers, product), "", nil

	case query.Divide:
		result, err := operations.Quotient(numbers)
		switch {
		case errors.Is(err, operations.ErrInsufficientOperands):
			return DivideGuidance, FailureInsufficientInput, nil
		case errors.Is(err, operations.ErrDivisionByZero):
			return DivideByZeroReply, FailureDivisionByZero, nil
		case err != nil:
			return "", "", err
		}
		return renderDivide(numbers, result), "", nil

	case query.Expression:
		return r.evaluate(ctx, prompt)
	}

	return UnknownReply, "", nil
}

func (r *Responder) evaluate(ctx context.Context, prompt string) (string, string, error) {
	expr := prompt
	if m := expressionPattern.FindStringSubmatch(prompt); m != nil {
		expr = m[2]
	}

	start := time.Now()
	result, err := r.evaluator.Evaluate(ctx, expr)
	r.recorder.ObserveExpression(time.Since(start), err == nil)
	if err != nil {
		r.logger.Info("Expression evaluation failed",
			zap.String("expression", expr),
			zap.Error(err))
		return expressionApology(expression.FormatError(err)), FailureExpression, nil
	}
	return renderExpression(expr, result), "", nil
}
