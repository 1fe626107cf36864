package service

import (
	"github.com/montanaflynn/stats"
)

// Summary describes the goals-per-match distribution of one cohort.
type Summary struct {
	Matches int
	Mean    float64
	Median  float64
	StdDev  float64
	Max     float64
}

// Summarize computes descriptive statistics for a non-empty goal sample.
func Summarize(goals []float64) (Summary, error) {
	mean, err := stats.Mean(goals)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(goals)
	if err != nil {
		return Summary{}, err
	}
	highest, err := stats.Max(goals)
	if err != nil {
		return Summary{}, err
	}

	var stdDev float64
	if len(goals) > 1 {
		if stdDev, err = stats.StandardDeviationSample(goals); err != nil {
			return Summary{}, err
		}
	}

	return Summary{
		Matches: len(goals),
		Mean:    mean,
		Median:  median,
		StdDev:  stdDev,
		Max:     highest,
	}, nil
}
