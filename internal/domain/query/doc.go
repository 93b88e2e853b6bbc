// Package query interprets calculator prompts.
//
// Interpretation is a fixed sequence of keyword checks: greetings and
// compliments short-circuit first, then the numeric categories are tried in
// precedence order (median, mode, mean, sum, subtract, multiply, divide,
// expression). Anything else is Unknown.
//
// Example Usage:
//
//	category := query.Interpret("Can you find the average of 10, 15 and 20?")
//	numbers := query.ExtractNumbers("−3.5 and 7") // [-3.5 7]
package query
