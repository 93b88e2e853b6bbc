package statistics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/common"
)

func TestSumAndMean(t *testing.T) {
	numbers := []float64{10, 15, 20, 25, 30}

	sum, err := Sum(numbers)
	require.NoError(t, err)
	assert.Equal(t, 100.0, sum)

	mean, err := Mean(numbers)
	require.NoError(t, err)
	assert.Equal(t, 20.0, mean)

	mean, err = Mean([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.5, mean)
}

func TestEmptyInput(t *testing.T) {
	_, err := Sum(nil)
	assert.ErrorIs(t, err, common.ErrNoNumbers)
	_, err = Mean([]float64{})
	assert.ErrorIs(t, err, common.ErrNoNumbers)
	_, err = Median(nil)
	assert.ErrorIs(t, err, common.ErrNoNumbers)
	_, err = Mode(nil)
	assert.ErrorIs(t, err, common.ErrNoNumbers)
}

func TestMedian(t *testing.T) {
	t.Run("odd", func(t *testing.T) {
		res, err := Median([]float64{5, 1, 3})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 3, 5}, res.Sorted)
		assert.Equal(t, 3.0, res.Value)
		assert.False(t, res.Even)
	})

	t.Run("even", func(t *testing.T) {
		res, err := Median([]float64{10, 15, 8, 12, 9, 14})
		require.NoError(t, err)
		assert.Equal(t, []float64{8, 9, 10, 12, 14, 15}, res.Sorted)
		assert.True(t, res.Even)
		assert.Equal(t, 10.0, res.Lower)
		assert.Equal(t, 12.0, res.Upper)
		assert.Equal(t, 11.0, res.Value)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := []float64{3, 2, 1}
		_, err := Median(in)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 2, 1}, in)
	})
}

func TestMode(t *testing.T) {
	t.Run("single mode", func(t *testing.T) {
		res, err := Mode([]float64{1, 2, 3, 3, 4, 4, 5, 5, 5})
		require.NoError(t, err)
		assert.Equal(t, []float64{5}, res.Modes)
		assert.Equal(t, 3, res.MaxCount)
		assert.Equal(t, Frequency{Value: 1, Count: 1}, res.Frequencies[0])
		assert.Len(t, res.Frequencies, 5)
	})

	t.Run("ties keep first appearance order", func(t *testing.T) {
		res, err := Mode([]float64{4, 2, 2, 4, 7})
		require.NoError(t, err)
		assert.Equal(t, []float64{4, 2}, res.Modes)
		assert.Equal(t, 2, res.MaxCount)
	})

	t.Run("all unique", func(t *testing.T) {
		res, err := Mode([]float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, res.Modes)
		assert.Equal(t, 1, res.MaxCount)
	})
}

func TestModeResult(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want ModeResult
	}{
		{
			name: "bimodal",
			in:   []float64{2.5, -1, 2.5, -1, 0},
			want: ModeResult{
				Frequencies: []Frequency{{2.5, 2}, {-1, 2}, {0, 1}},
				MaxCount:    2,
				Modes:       []float64{2.5, -1},
			},
		},
		{
			name: "single value",
			in:   []float64{7},
			want: ModeResult{
				Frequencies: []Frequency{{7, 1}},
				MaxCount:    1,
				Modes:       []float64{7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mode(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Mode(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestMedianResult(t *testing.T) {
	got, err := Median([]float64{4, -2})
	require.NoError(t, err)

	want := MedianResult{Sorted: []float64{-2, 4}, Value: 1, Even: true, Lower: -2, Upper: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Median mismatch (-want +got):\n%s", diff)
	}
}
