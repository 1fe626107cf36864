package hypothesis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	tests := []struct {
		name      string
		treatment []float64
		control   []float64
		want      Decision
		check     func(t *testing.T, p float64)
	}{
		{
			name:      "clearly greater",
			treatment: []float64{3, 2, 4, 1, 5},
			control:   []float64{0, 1, 0, 2, 1},
			want:      Reject,
			check: func(t *testing.T, p float64) {
				assert.Less(t, p, 0.05)
			},
		},
		{
			name:      "all tied",
			treatment: []float64{2, 2, 2},
			control:   []float64{2, 2, 2},
			want:      FailToReject,
			check: func(t *testing.T, p float64) {
				assert.Equal(t, 1.0, p)
			},
		},
		{
			name:      "single low value",
			treatment: []float64{1},
			control:   []float64{5},
			want:      FailToReject,
			check: func(t *testing.T, p float64) {
				assert.Greater(t, p, 0.5)
			},
		},
		{
			name:      "clearly smaller",
			treatment: []float64{0, 1, 0, 2, 1},
			control:   []float64{3, 2, 4, 1, 5},
			want:      FailToReject,
			check: func(t *testing.T, p float64) {
				assert.Greater(t, p, 0.9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Test(tt.treatment, tt.control, DefaultAlpha)
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Result)
			assert.GreaterOrEqual(t, res.PVal, 0.0)
			assert.LessOrEqual(t, res.PVal, 1.0)
			tt.check(t, res.PVal)
		})
	}
}

func TestLargeSamplesUseApproximation(t *testing.T) {
	women := make([]float64, 120)
	men := make([]float64, 150)
	for i := range women {
		women[i] = float64(i%5 + 1)
	}
	for i := range men {
		men[i] = float64(i % 4)
	}

	res, err := Test(women, men, DefaultAlpha)
	require.NoError(t, err)
	assert.Equal(t, Reject, res.Result)
	assert.Less(t, res.PVal, 0.001)

	res, err = Test(men, women, DefaultAlpha)
	require.NoError(t, err)
	assert.Equal(t, FailToReject, res.Result)
	assert.Greater(t, res.PVal, 0.999)
}

func TestEmptySamples(t *testing.T) {
	tests := []struct {
		name      string
		treatment []float64
		control   []float64
		sample    string
	}{
		{"empty treatment", nil, []float64{1, 2}, "treatment"},
		{"empty control", []float64{1, 2}, []float64{}, "control"},
		{"both empty", nil, nil, "treatment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Test(tt.treatment, tt.control, DefaultAlpha)
			var ide *InsufficientDataError
			require.True(t, errors.As(err, &ide), "want InsufficientDataError, got %v", err)
			assert.Equal(t, tt.sample, ide.Sample)
		})
	}
}

func TestInvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := Test([]float64{1, 2}, []float64{0, 1}, alpha)
		assert.ErrorIs(t, err, ErrInvalidAlpha, "alpha %v", alpha)
	}
}

func TestDecideIsStrict(t *testing.T) {
	assert.Equal(t, Reject, Decide(0.0999, 0.10))
	assert.Equal(t, FailToReject, Decide(0.10, 0.10))
	assert.Equal(t, FailToReject, Decide(0.2, 0.10))
	assert.Equal(t, Reject, Decide(0, 0.01))
}

func TestPValueEqualToAlphaFailsToReject(t *testing.T) {
	treatment := []float64{3, 4, 5, 6}
	control := []float64{1, 2, 3.5, 7}

	outcome, err := RankSum(treatment, control, Greater)
	require.NoError(t, err)
	require.Greater(t, outcome.P, 0.0)
	require.Less(t, outcome.P, 1.0)

	res, err := Test(treatment, control, outcome.P)
	require.NoError(t, err)
	assert.Equal(t, outcome.P, res.PVal)
	assert.Equal(t, FailToReject, res.Result)
}

func TestDirectionalSymmetry(t *testing.T) {
	samples := [][2][]float64{
		{{3, 5, 7, 9, 11}, {1, 2, 4, 6, 8}},
		{{1.5, 2.5}, {0.5, 3.5, 4.5}},
		{{1}, {5}},
	}

	for _, s := range samples {
		a, b := s[0], s[1]

		greater, err := RankSum(a, b, Greater)
		require.NoError(t, err)
		lessSwapped, err := RankSum(b, a, Less)
		require.NoError(t, err)

		// Swapping the samples and the direction tests the same hypothesis.
		assert.InDelta(t, greater.P, lessSwapped.P, 1e-9)
		assert.InDelta(t, float64(greater.N1*greater.N2), greater.U+lessSwapped.U, 1e-9)
	}
}

func TestOppositeTailsCoverEverything(t *testing.T) {
	samples := [][2][]float64{
		{{3, 2, 4, 1, 5}, {0, 1, 0, 2, 1}},
		{{1, 1, 2, 3}, {1, 2, 2, 2, 4}},
		{{3, 5, 7, 9, 11}, {1, 2, 4, 6, 8}},
	}

	for _, s := range samples {
		greater, err := RankSum(s[0], s[1], Greater)
		require.NoError(t, err)
		less, err := RankSum(s[0], s[1], Less)
		require.NoError(t, err)

		// Both tails include the observed U, so together they are at least 1.
		sum := greater.P + less.P
		assert.GreaterOrEqual(t, sum, 1.0-1e-9)
		assert.LessOrEqual(t, sum, 2.0)
		assert.Equal(t, greater.U, less.U)
	}
}

func TestRankSumAllTied(t *testing.T) {
	outcome, err := RankSum([]float64{2, 2}, []float64{2, 2, 2}, Greater)
	require.NoError(t, err)
	assert.True(t, outcome.AllTied)
	assert.Equal(t, 1.0, outcome.P)
	assert.Equal(t, 3.0, outcome.U)
	assert.Equal(t, 2, outcome.N1)
	assert.Equal(t, 3, outcome.N2)
}

func TestAlternativeString(t *testing.T) {
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "less", Less.String())
}
