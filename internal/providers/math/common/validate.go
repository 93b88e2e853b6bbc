package common

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoNumbers is returned when an operation receives an empty operand list.
var ErrNoNumbers = errors.New("numbers array required")

// ValidateNumber checks if a number is valid (not NaN or Inf)
func ValidateNumber(x float64, name string) error {
	if math.IsNaN(x) {
		return fmt.Errorf("%s is NaN", name)
	}
	if math.IsInf(x, 0) {
		return fmt.Errorf("%s is infinite", name)
	}
	return nil
}

// ValidateNumbers validates an array of numbers
func ValidateNumbers(nums []float64, name string) error {
	if len(nums) == 0 {
		return ErrNoNumbers
	}
	for i, x := range nums {
		if err := ValidateNumber(x, fmt.Sprintf("%s[%d]", name, i)); err != nil {
			return err
		}
	}
	return nil
}
