package expression

import "errors"

var (
	// ErrEmptyExpression is returned when nothing remains after normalisation.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrUnsupported is returned for syntax the evaluator does not handle.
	ErrUnsupported = errors.New("unsupported expression")
	// ErrSyntax wraps parser failures.
	ErrSyntax = errors.New("invalid syntax")
	// ErrDivisionByZero is returned for division or modulo by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned when a result is not a finite number.
	ErrOverflow = errors.New("numerical result out of range")
	// ErrTooComplex is returned when an expression grows past evaluation limits.
	ErrTooComplex = errors.New("expression too complex")
	// ErrTooLong is returned for input longer than the configured maximum.
	ErrTooLong = errors.New("expression too long")
	// ErrTimeout is returned when evaluation exceeds its deadline.
	ErrTimeout = errors.New("evaluation timed out")
)

// FormatError renders err the way the calculator reports evaluation failures.
func FormatError(err error) string {
	return "Error evaluating expression: " + err.Error()
}
