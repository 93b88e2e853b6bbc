package responder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/sadhak/backend/internal/domain/query"
	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/expression"
)

type mockEvaluator struct {
	mock.Mock
}

func (m *mockEvaluator) Evaluate(ctx context.Context, expr string) (string, error) {
	args := m.Called(ctx, expr)
	return args.String(0), args.Error(1)
}

type fakeRecorder struct {
	queries     []string
	failures    []string
	expressions []bool
}

func (f *fakeRecorder) RecordQuery(category string) { f.queries = append(f.queries, category) }
func (f *fakeRecorder) RecordFailure(class string)  { f.failures = append(f.failures, class) }
func (f *fakeRecorder) ObserveExpression(_ time.Duration, ok bool) {
	f.expressions = append(f.expressions, ok)
}

func newResponder(opts ...Option) *Responder {
	return New(expression.New(), opts...)
}

func TestRespondShortCircuits(t *testing.T) {
	r := newResponder()
	ctx := context.Background()

	a := r.Respond(ctx, "Hi there! What's the mean of 1 and 2?")
	assert.Equal(t, query.Greeting, a.Category)
	assert.Equal(t, GreetingReply, a.Text)
	assert.Nil(t, a.Numbers)

	a = r.Respond(ctx, "Thank you for your help!")
	assert.Equal(t, query.Compliment, a.Category)
	assert.Equal(t, ComplimentReply, a.Text)
}

func TestRespondMean(t *testing.T) {
	a := newResponder().Respond(context.Background(), "What's the mean of 2, 4, 6, 8?")

	assert.Equal(t, query.Mean, a.Category)
	assert.Equal(t, []float64{2, 4, 6, 8}, a.Numbers)
	assert.Contains(t, a.Text, "Calculating the Mean\n\n")
	assert.Contains(t, a.Text, "2.0 + 4.0 + 6.0 + 8.0 = 20.0\n\n")
	assert.Contains(t, a.Text, "n = 4\n\n")
	assert.Contains(t, a.Text, "Mean = Sum / Count = 20.0 / 4 = 5.0\n\n")
	assert.Empty(t, a.Failure)
}

func TestRespondMeanRoundsToOneDecimal(t *testing.T) {
	a := newResponder().Respond(context.Background(), "average of 1, 2, 2")
	assert.Contains(t, a.Text, "Mean = Sum / Count = 5.0 / 3 = 1.7")
}

func TestRespondMedian(t *testing.T) {
	r := newResponder()
	ctx := context.Background()

	t.Run("even", func(t *testing.T) {
		a := r.Respond(ctx, "median of 4, 1, 3, 2")
		assert.Contains(t, a.Text, "ascending order: 1.0, 2.0, 3.0, 4.0\n\n")
		assert.Contains(t, a.Text, "Since we have an even number of values (4)")
		assert.Contains(t, a.Text, "The two middle numbers are 2.0 and 3.0.\n")
		assert.Contains(t, a.Text, "Median = (2.0 + 3.0) / 2 = 2.5\n\n")
	})

	t.Run("odd", func(t *testing.T) {
		a := r.Respond(ctx, "median of 5, 1, 3")
		assert.Contains(t, a.Text, "Since we have an odd number of values (3)")
		assert.Contains(t, a.Text, "The middle number is 3.0.\n\n")
	})
}

func TestRespondMode(t *testing.T) {
	r := newResponder()
	ctx := context.Background()

	a := r.Respond(ctx, "What's the mode of these numbers: 1, 2, 3, 3, 4, 4, 5, 5, 5?")
	assert.Contains(t, a.Text, "1.0 appears 1 time\n")
	assert.Contains(t, a.Text, "5.0 appears 3 times\n")
	assert.Contains(t, a.Text, "Identify the Highest Frequency: 3\n\n")
	assert.Contains(t, a.Text, "The mode is 5.0, appearing 3 times.\n\n")

	a = r.Respond(ctx, "mode of 1, 2, 2, 3, 3")
	assert.Contains(t, a.Text, "There are multiple modes: 2.0, 3.0, each appearing 2 times.\n\n")
}

func TestRespondArithmetic(t *testing.T) {
	r := newResponder()
	ctx := context.Background()

	tests := []struct {
		name     string
		prompt   string
		category query.Category
		contains string
	}{
		{"sum", "What's the sum of 5, 10, 15, 20, and 25?", query.Sum, "5.0 + 10.0 + 15.0 + 20.0 + 25.0 = 75.0\n\n"},
		{"subtract", "If I have 100 and subtract 20, 15, and 5, what's left?", query.Subtract, "3. Perform the calculation: 100.0 - (20.0 + 15.0 + 5.0) = 60.0\n\n"},
		{"subtract steps", "subtract 3 from 10", query.Subtract, "2. Subtract the following numbers: 10.0\n"},
		{"multiply", "Multiply 2, 3, 4, and 5 together.", query.Multiply, "2.0 × 3.0 × 4.0 × 5.0 = 120.0\n\n"},
		{"divide", "Divide 100 by 2, then by 5.", query.Divide, "3. Perform the calculation: 100.0 ÷ 2.0 ÷ 5.0 ≈ 10.0000\n\n"},
		{"divide fraction", "divide 10 by 3", query.Divide, "≈ 3.3333"},
		{"negative", "sum of −3.5 and 7", query.Sum, "-3.5 + 7.0 = 3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Respond(ctx, tt.prompt)
			assert.Equal(t, tt.category, a.Category)
			assert.Contains(t, a.Text, tt.contains)
			assert.Empty(t, a.Failure)
		})
	}
}

func TestRespondGuidance(t *testing.T) {
	r := newResponder()
	ctx := context.Background()

	tests := []struct {
		prompt string
		want   string
	}{
		{"what's the average?", MeanGuidance},
		{"what is the median", MedianGuidance},
		{"most frequent value please", ModeGuidance},
		{"what's the total", SumGuidance},
		{"subtract 5", SubtractGuidance},
		{"multiply these", MultiplyGuidance},
		{"divide 8", DivideGuidance},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			a := r.Respond(ctx, tt.prompt)
			assert.Equal(t, tt.want, a.Text)
			assert.Equal(t, FailureInsufficientInput, a.Failure)
		})
	}
}

func TestRespondDivideByZero(t *testing.T) {
	a := newResponder().Respond(context.Background(), "divide 10 by 0")
	assert.Equal(t, DivideByZeroReply, a.Text)
	assert.Equal(t, FailureDivisionByZero, a.Failure)

	// Zero as the dividend is fine.
	a = newResponder().Respond(context.Background(), "divide 0 by 4")
	assert.Contains(t, a.Text, "≈ 0.0000")
}

func TestRespondExpression(t *testing.T) {
	r := newResponder()
	ctx := context.Background()

	a := r.Respond(ctx, "Calculate 2 + 3 * 4.")
	assert.Equal(t, query.Expression, a.Category)
	assert.Contains(t, a.Text, "We'll evaluate the expression: 2 + 3 * 4..")
	assert.Contains(t, a.Text, "1. Start with the original expression: 2 + 3 * 4.\n")
	assert.Contains(t, a.Text, "2. Apply mathematical rules and simplify: 14\n\n")

	a = r.Respond(ctx, "Simplify (x^2 + 2x + 1)/(x + 1).")
	assert.Contains(t, a.Text, "2. Apply mathematical rules and simplify: x + 1\n\n")

	a = r.Respond(ctx, "Evaluate 2x^2 + 3x - 5 when x=3.")
	assert.Contains(t, a.Text, "2. Apply mathematical rules and simplify: 22\n\n")
}

func TestRespondExpressionError(t *testing.T) {
	rec := &fakeRecorder{}
	a := newResponder(WithRecorder(rec)).Respond(context.Background(), "calculate 10/0")

	assert.Equal(t, FailureExpression, a.Failure)
	assert.Contains(t, a.Text, "I apologize, but I encountered an error while evaluating the expression: Error evaluating expression: division by zero\n\n")
	assert.Equal(t, []string{"expression"}, rec.queries)
	assert.Equal(t, []string{FailureExpression}, rec.failures)
	assert.Equal(t, []bool{false}, rec.expressions)
}

func TestRespondExpressionUsesTextAfterVerb(t *testing.T) {
	ev := &mockEvaluator{}
	ev.On("Evaluate", mock.Anything, "(1 + 2) * 3").Return("9", nil).Once()

	a := New(ev).Respond(context.Background(), "Please EVALUATE (1 + 2) * 3")
	assert.Contains(t, a.Text, "simplify: 9")
	ev.AssertExpectations(t)

	ev.On("Evaluate", mock.Anything, "expression 1+1").Return("2", nil).Once()
	a = New(ev).Respond(context.Background(), "expression 1+1")
	assert.Contains(t, a.Text, "simplify: 2")
	ev.AssertExpectations(t)
}

func TestRespondUnknown(t *testing.T) {
	a := newResponder().Respond(context.Background(), "What is the result of (8 + 2) / 5?")
	assert.Equal(t, query.Unknown, a.Category)
	assert.Equal(t, UnknownReply, a.Text)
}

func TestRespondRecoversFromPanic(t *testing.T) {
	ev := &mockEvaluator{}
	ev.On("Evaluate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("evaluator exploded") }).
		Return("", nil)
	rec := &fakeRecorder{}

	var a Answer
	require.NotPanics(t, func() {
		a = New(ev, WithRecorder(rec)).Respond(context.Background(), "simplify x")
	})
	assert.Equal(t, FailureInternal, a.Failure)
	assert.Contains(t, a.Text, "I apologize, but I encountered an error while processing your query: evaluator exploded.")
	assert.Equal(t, []string{FailureInternal}, rec.failures)
}

func TestRespondRecordsCategory(t *testing.T) {
	rec := &fakeRecorder{}
	r := newResponder(WithRecorder(rec))

	r.Respond(context.Background(), "hello")
	r.Respond(context.Background(), "sum of 1 and 2")
	r.Respond(context.Background(), "sum")

	assert.Equal(t, []string{"greeting", "sum", "sum"}, rec.queries)
	assert.Equal(t, []string{FailureInsufficientInput}, rec.failures)
}
