package operations

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/common"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDivisionByZero is returned when any divisor after the first operand is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInsufficientOperands is returned when an operation needs more numbers.
	ErrInsufficientOperands = errors.New("insufficient operands")
)

// Difference subtracts the sum of every later operand from the first one.
func Difference(numbers []float64) (float64, error) {
	if err := requireOperands(numbers, 2); err != nil {
		return 0, err
	}
	return numbers[0] - floats.Sum(numbers[1:]), nil
}

// Product multiplies all operands.
func Product(numbers []float64) (float64, error) {
	if err := requireOperands(numbers, 1); err != nil {
		return 0, err
	}
	return floats.Prod(numbers), nil
}

// Quotient divides the first operand by each later operand in turn.
func Quotient(numbers []float64) (float64, error) {
	if err := requireOperands(numbers, 2); err != nil {
		return 0, err
	}
	for _, d := range numbers[1:] {
		if d == 0 {
			return 0, ErrDivisionByZero
		}
	}

	result := numbers[0]
	for _, d := range numbers[1:] {
		result /= d
	}
	return result, nil
}

func requireOperands(numbers []float64, min int) error {
	if len(numbers) < min {
		return fmt.Errorf("%w: need at least %d, got %d", ErrInsufficientOperands, min, len(numbers))
	}
	return common.ValidateNumbers(numbers, "numbers")
}
