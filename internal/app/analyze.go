package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"wcgoals/internal/config"
	"wcgoals/internal/report"
	"wcgoals/internal/service"
	"wcgoals/internal/storage"
)

// Test runs the full pipeline: prepare both cohorts, test, then write artifacts.
func (a *App) Test(ctx context.Context, opts TestOptions) (service.Report, error) {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	run := service.Options{
		MenSource:   config.ResolveSource(opts.MenSource, a.Config.Analysis.MenSource),
		WomenSource: config.ResolveSource(opts.WomenSource, a.Config.Analysis.WomenSource),
		Alpha:       a.Config.ResolveAlpha(opts.Alpha),
	}
	if run.MenSource == "" || run.WomenSource == "" {
		return service.Report{}, errors.New("both --men and --women sources must be provided")
	}

	rep, err := a.newService().Run(ctx, run)
	if err != nil {
		return service.Report{}, err
	}

	if plotPath := a.plotPath(opts); plotPath != "" {
		err := report.WriteHistogram(plotPath, rep.Men.Sample.Goals(), rep.Women.Sample.Goals(), report.HistogramOptions{
			Width:  a.Config.Plot.Width,
			Height: a.Config.Plot.Height,
		})
		if err != nil {
			return service.Report{}, err
		}
		a.Logger.Info().Str("path", plotPath).Msg("histogram written")
	}

	csvPath := config.ResolveSource(opts.CSVPath, a.Config.Export.CSVPath)
	if csvPath != "" {
		if err := report.WriteSamplesCSV(csvPath, rep.Men.Sample, rep.Women.Sample); err != nil {
			return service.Report{}, err
		}
		a.Logger.Info().Str("path", csvPath).Msg("prepared samples exported")
	}

	if !opts.NoSave {
		if err := a.saveRun(ctx, rep); err != nil {
			return service.Report{}, err
		}
	}

	format := opts.Format
	if format == "" {
		format = a.Config.Analysis.OutputFormat
	}
	if err := report.WriteSummary(a.Out, rep, format); err != nil {
		return service.Report{}, err
	}
	return rep, nil
}

func (a *App) plotPath(opts TestOptions) string {
	if opts.NoPlot {
		return ""
	}
	if opts.PlotPath != "" {
		return opts.PlotPath
	}
	if !a.Config.Plot.Enabled {
		return ""
	}
	return a.Config.Plot.Path
}

func (a *App) saveRun(ctx context.Context, rep service.Report) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Debug().Msg("database.dsn not configured; run history disabled")
		return nil
	}
	if closeStore != nil {
		defer closeStore()
	}

	saved, err := store.InsertRun(ctx, runRecord(rep))
	if err != nil {
		return err
	}
	a.Logger.Info().Str("run_id", saved.ID.String()).Msg("run recorded")
	return nil
}

func runRecord(rep service.Report) storage.RunRecord {
	return storage.RunRecord{
		MenSource:    rep.Men.Source,
		WomenSource:  rep.Women.Source,
		Alpha:        decimal.NewFromFloat(rep.Alpha),
		PValue:       decimal.NewFromFloat(rep.Result.PVal),
		UStatistic:   decimal.NewFromFloat(rep.Outcome.U),
		MenMatches:   rep.Men.Summary.Matches,
		WomenMatches: rep.Women.Summary.Matches,
		MenMean:      decimal.NewFromFloat(rep.Men.Summary.Mean),
		WomenMean:    decimal.NewFromFloat(rep.Women.Summary.Mean),
		Result:       string(rep.Result.Result),
	}
}
