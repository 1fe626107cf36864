package report

import (
	"errors"
	"math"
	"os"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default histogram geometry.
const (
	DefaultWidth  = 1024
	DefaultHeight = 640

	histogramTitle = "Distribution of Goals per Match (since 2002)"
)

var (
	menColor   = drawing.ColorFromHex("1f77b4").WithAlpha(128)
	womenColor = drawing.ColorFromHex("ff7f0e").WithAlpha(128)
)

// HistogramOptions configure WriteHistogram.
type HistogramOptions struct {
	Width  int
	Height int
}

// Frequencies counts how many matches produced each whole number of goals in [0, upTo].
func Frequencies(goals []float64, upTo int) []float64 {
	if upTo < 0 {
		return nil
	}
	counts := make([]float64, upTo+1)
	for _, g := range goals {
		idx := int(math.Round(g))
		if idx >= 0 && idx <= upTo {
			counts[idx]++
		}
	}
	return counts
}

// WriteHistogram renders an overlaid goals-per-match histogram of both cohorts as PNG.
func WriteHistogram(path string, men, women []float64, opts HistogramOptions) error {
	if len(men) == 0 && len(women) == 0 {
		return errors.New("histogram requires at least one observation")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	graph := histogramChart(men, women, opts)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func histogramChart(men, women []float64, opts HistogramOptions) chart.Chart {
	upTo := int(math.Max(maxValue(men), maxValue(women)))

	x := make([]float64, upTo+1)
	ticks := make([]chart.Tick, 0, upTo+1)
	for i := range x {
		x[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}

	menFreq := Frequencies(men, upTo)
	womenFreq := Frequencies(women, upTo)
	peak := math.Max(maxValue(menFreq), maxValue(womenFreq))
	if peak < 1 {
		peak = 1
	}

	graph := chart.Chart{
		Title:  histogramTitle,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Goals",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(upTo) + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "Frequency",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(peak * 1.1)},
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name:        "Men",
				Style:       chart.Style{FillColor: menColor, StrokeColor: menColor},
				InnerSeries: chart.ContinuousSeries{XValues: x, YValues: menFreq},
			},
			chart.HistogramSeries{
				Name:        "Women",
				Style:       chart.Style{FillColor: womenColor, StrokeColor: womenColor},
				InnerSeries: chart.ContinuousSeries{XValues: x, YValues: womenFreq},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

func maxValue(values []float64) float64 {
	highest := 0.0
	for _, v := range values {
		if v > highest {
			highest = v
		}
	}
	return highest
}
