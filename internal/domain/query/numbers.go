package query

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// Typographic minus and en dash are accepted as a sign.
	signReplacer = strings.NewReplacer("−", "-", "–", "-")
)

// ExtractNumbers returns every optionally signed decimal in text, in the order
// they appear. The result is never nil.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(signReplacer.Replace(text), -1)
	numbers := make([]float64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}
