package statistics

import (
	"sort"

	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/common"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MedianResult describes how the median of a dataset was reached.
type MedianResult struct {
	Sorted []float64
	Value  float64
	// Even reports whether the two middle values were averaged.
	Even  bool
	Lower float64
	Upper float64
}

// Frequency is the number of times a value occurs in a dataset.
type Frequency struct {
	Value float64
	Count int
}

// ModeResult lists value frequencies in order of first appearance together
// with every value tied for the highest frequency.
type ModeResult struct {
	Frequencies []Frequency
	MaxCount    int
	Modes       []float64
}

// Sum adds all numbers using gonum
func Sum(numbers []float64) (float64, error) {
	if err := common.ValidateNumbers(numbers, "numbers"); err != nil {
		return 0, err
	}
	return floats.Sum(numbers), nil
}

// Mean calculates arithmetic mean using gonum
func Mean(numbers []float64) (float64, error) {
	if err := common.ValidateNumbers(numbers, "numbers"); err != nil {
		return 0, err
	}
	return stat.Mean(numbers, nil), nil
}

// Median sorts a copy of numbers and picks the middle value, averaging the
// two central values for even-length input.
func Median(numbers []float64) (MedianResult, error) {
	if err := common.ValidateNumbers(numbers, "numbers"); err != nil {
		return MedianResult{}, err
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		mid := sorted[n/2]
		return MedianResult{Sorted: sorted, Value: mid, Lower: mid, Upper: mid}, nil
	}

	lower, upper := sorted[n/2-1], sorted[n/2]
	return MedianResult{
		Sorted: sorted,
		Value:  (lower + upper) / 2,
		Even:   true,
		Lower:  lower,
		Upper:  upper,
	}, nil
}

// Mode counts occurrences and reports every value sharing the top count.
func Mode(numbers []float64) (ModeResult, error) {
	if err := common.ValidateNumbers(numbers, "numbers"); err != nil {
		return ModeResult{}, err
	}

	index := make(map[float64]int, len(numbers))
	freqs := make([]Frequency, 0, len(numbers))
	for _, n := range numbers {
		if i, ok := index[n]; ok {
			freqs[i].Count++
			continue
		}
		index[n] = len(freqs)
		freqs = append(freqs, Frequency{Value: n, Count: 1})
	}

	maxCount := 0
	for _, f := range freqs {
		if f.Count > maxCount {
			maxCount = f.Count
		}
	}

	modes := make([]float64, 0, 1)
	for _, f := range freqs {
		if f.Count == maxCount {
			modes = append(modes, f.Value)
		}
	}

	return ModeResult{Frequencies: freqs, MaxCount: maxCount, Modes: modes}, nil
}
