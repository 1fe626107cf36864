// Package hypothesis runs the one-tailed Mann-Whitney U comparison between two
// goal-count samples and turns its p-value into a decision.
package hypothesis

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Decision is the outcome label of a test.
type Decision string

const (
	// Reject means the null hypothesis is rejected at the given alpha.
	Reject Decision = "reject"
	// FailToReject means the evidence does not reach the given alpha.
	FailToReject Decision = "fail to reject"
)

// DefaultAlpha is the significance level used when the caller supplies none.
const DefaultAlpha = 0.10

// Alternative selects the direction of the one-tailed test.
type Alternative int

const (
	// Greater tests whether the treatment sample is stochastically greater.
	Greater Alternative = iota
	// Less tests whether the treatment sample is stochastically smaller.
	Less
)

func (a Alternative) String() string {
	if a == Less {
		return "less"
	}
	return "greater"
}

func (a Alternative) location() stats.LocationHypothesis {
	if a == Less {
		return stats.LocationLess
	}
	return stats.LocationGreater
}

// ErrInvalidAlpha is returned when alpha falls outside (0,1).
var ErrInvalidAlpha = errors.New("hypothesis: alpha must be in (0,1)")

// InsufficientDataError reports an empty input sample.
type InsufficientDataError struct {
	Sample string
	N      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s sample has %d observations", e.Sample, e.N)
}

// TestResult is the decision record returned by Test.
type TestResult struct {
	PVal   float64  `json:"p_val"`
	Result Decision `json:"result"`
}

// Outcome is the raw rank-sum statistic behind a TestResult.
type Outcome struct {
	N1, N2      int
	U           float64
	P           float64
	Alternative Alternative
	// AllTied is set when every observation in both samples is equal.
	AllTied bool
}

// RankSum computes the one-tailed Mann-Whitney U statistic for treatment against
// control. Ties are rank-averaged. Small samples use the exact U distribution and
// large ones the tie-corrected normal approximation.
func RankSum(treatment, control []float64, alt Alternative) (Outcome, error) {
	if len(treatment) == 0 {
		return Outcome{}, &InsufficientDataError{Sample: "treatment", N: 0}
	}
	if len(control) == 0 {
		return Outcome{}, &InsufficientDataError{Sample: "control", N: 0}
	}

	res, err := stats.MannWhitneyUTest(treatment, control, alt.location())
	switch {
	case errors.Is(err, stats.ErrSamplesEqual):
		// No ordering at all: no evidence in either direction.
		n1, n2 := len(treatment), len(control)
		return Outcome{
			N1:          n1,
			N2:          n2,
			U:           float64(n1*n2) / 2,
			P:           1,
			Alternative: alt,
			AllTied:     true,
		}, nil
	case errors.Is(err, stats.ErrSampleSize):
		return Outcome{}, &InsufficientDataError{Sample: "treatment", N: len(treatment)}
	case err != nil:
		return Outcome{}, fmt.Errorf("mann-whitney u: %w", err)
	}

	return Outcome{
		N1:          res.N1,
		N2:          res.N2,
		U:           res.U,
		P:           clampProbability(res.P),
		Alternative: alt,
	}, nil
}

// Test runs the right-tailed test "treatment > control" at significance alpha.
func Test(treatment, control []float64, alpha float64) (TestResult, error) {
	if err := ValidateAlpha(alpha); err != nil {
		return TestResult{}, err
	}

	outcome, err := RankSum(treatment, control, Greater)
	if err != nil {
		return TestResult{}, err
	}

	return TestResult{PVal: outcome.P, Result: Decide(outcome.P, alpha)}, nil
}

// Decide maps a p-value to a decision. The comparison is strict.
func Decide(pVal, alpha float64) Decision {
	if pVal < alpha {
		return Reject
	}
	return FailToReject
}

// ValidateAlpha reports ErrInvalidAlpha unless 0 < alpha < 1.
func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}
	return nil
}

func clampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
