// Package common holds helpers shared by the math modules.
//
// The math tree is split into focused packages:
//   - statistics: mean, median, mode and sum built on gonum
//   - operations: chained subtraction, multiplication and division
//   - expression: literal evaluation and symbolic simplification
//
// Numbers are rendered the way the explanation templates expect them:
// integral values keep a trailing ".0" (5.0), everything else uses the
// shortest representation that round-trips.
//
// Example Usage:
//
//	if err := common.ValidateNumbers(nums, "numbers"); err != nil {
//		return err
//	}
//	line := common.JoinNumbers(nums, " + ")
package common
