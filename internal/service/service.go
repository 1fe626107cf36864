package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wcgoals/internal/hypothesis"
	"wcgoals/internal/matches"
	"wcgoals/internal/source"
)

// Cohort labels attached by the pipeline.
const (
	GroupMen   = "men"
	GroupWomen = "women"
)

// Options configure a single pipeline run.
type Options struct {
	MenSource   string
	WomenSource string
	Alpha       float64
}

// Cohort is one prepared side of the comparison.
type Cohort struct {
	Source  string
	Sample  matches.PreparedSample
	Summary Summary
}

// Report is everything a pipeline run produces.
type Report struct {
	Alpha   float64
	Result  hypothesis.TestResult
	Outcome hypothesis.Outcome
	Men     Cohort
	Women   Cohort
}

// Service runs the prepare-then-test pipeline.
type Service struct {
	opener source.Opener
	logger zerolog.Logger
}

// New constructs the pipeline service.
func New(opener source.Opener, logger zerolog.Logger) *Service {
	return &Service{
		opener: opener,
		logger: logger.With().Str("component", "service").Logger(),
	}
}

// Run prepares both cohorts and tests whether women's matches produce more goals.
func (s *Service) Run(ctx context.Context, opts Options) (Report, error) {
	if err := hypothesis.ValidateAlpha(opts.Alpha); err != nil {
		return Report{}, err
	}

	var men, women matches.PreparedSample
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		men, err = s.Prepare(gctx, opts.MenSource, GroupMen)
		return err
	})
	g.Go(func() error {
		var err error
		women, err = s.Prepare(gctx, opts.WomenSource, GroupWomen)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	for _, sample := range []matches.PreparedSample{women, men} {
		if sample.Len() == 0 {
			return Report{}, &hypothesis.InsufficientDataError{Sample: sample.Group, N: 0}
		}
	}

	womenGoals, menGoals := women.Goals(), men.Goals()

	result, err := hypothesis.Test(womenGoals, menGoals, opts.Alpha)
	if err != nil {
		return Report{}, err
	}
	outcome, err := hypothesis.RankSum(womenGoals, menGoals, hypothesis.Greater)
	if err != nil {
		return Report{}, err
	}

	menSummary, err := Summarize(menGoals)
	if err != nil {
		return Report{}, fmt.Errorf("summarize %s: %w", GroupMen, err)
	}
	womenSummary, err := Summarize(womenGoals)
	if err != nil {
		return Report{}, fmt.Errorf("summarize %s: %w", GroupWomen, err)
	}

	s.logger.Info().
		Int("men_matches", outcome.N2).
		Int("women_matches", outcome.N1).
		Float64("u", outcome.U).
		Float64("p_val", result.PVal).
		Float64("alpha", opts.Alpha).
		Str("result", string(result.Result)).
		Msg("mann-whitney u test complete")

	return Report{
		Alpha:   opts.Alpha,
		Result:  result,
		Outcome: outcome,
		Men:     Cohort{Source: opts.MenSource, Sample: men, Summary: menSummary},
		Women:   Cohort{Source: opts.WomenSource, Sample: women, Summary: womenSummary},
	}, nil
}

// Prepare loads one dataset and reduces it to its labelled World Cup subset.
func (s *Service) Prepare(ctx context.Context, ref, group string) (matches.PreparedSample, error) {
	rc, err := s.opener.Open(ctx, ref)
	if err != nil {
		return matches.PreparedSample{}, fmt.Errorf("%s dataset: %w", group, err)
	}
	defer rc.Close()

	table, err := matches.ReadCSV(rc)
	if err != nil {
		return matches.PreparedSample{}, fmt.Errorf("%s dataset: %w", group, err)
	}

	sample, err := matches.Prepare(table, group)
	if err != nil {
		return matches.PreparedSample{}, fmt.Errorf("%s dataset: %w", group, err)
	}

	s.logger.Debug().
		Str("group", group).
		Int("rows", len(table.Rows)).
		Int("retained", sample.Len()).
		Msg("dataset prepared")
	return sample, nil
}
