package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wcgoals/internal/app"
	"wcgoals/internal/hypothesis"
	"wcgoals/internal/report"
)

var (
	testMen     string
	testWomen   string
	testAlpha   float64
	testFormat  string
	testPlot    string
	testNoPlot  bool
	testCSVPath string
	testNoSave  bool
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the one-tailed Mann-Whitney U test (women > men)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("alpha") {
			if err := hypothesis.ValidateAlpha(testAlpha); err != nil {
				return fmt.Errorf("invalid --alpha value: %w", err)
			}
		}

		switch testFormat {
		case "", report.FormatJSON, report.FormatTable:
		default:
			return fmt.Errorf("--format must be %s or %s", report.FormatJSON, report.FormatTable)
		}

		opts := app.TestOptions{
			MenSource:   testMen,
			WomenSource: testWomen,
			Alpha:       testAlpha,
			Format:      testFormat,
			PlotPath:    testPlot,
			NoPlot:      testNoPlot,
			CSVPath:     testCSVPath,
			NoSave:      testNoSave,
		}

		_, err := getApp().Test(cmd.Context(), opts)
		return err
	},
}

func init() {
	testCmd.Flags().StringVar(&testMen, "men", "", "Men's results dataset (path or http(s) URL)")
	testCmd.Flags().StringVar(&testWomen, "women", "", "Women's results dataset (path or http(s) URL)")
	testCmd.Flags().Float64Var(&testAlpha, "alpha", 0, "Significance level in (0,1) (defaults to config, 0.10)")
	testCmd.Flags().StringVar(&testFormat, "format", "", "Output format: json or table (defaults to config)")
	testCmd.Flags().StringVar(&testPlot, "plot", "", "Path to write the goals histogram PNG (defaults to config)")
	testCmd.Flags().BoolVar(&testNoPlot, "no-plot", false, "Skip rendering the histogram")
	testCmd.Flags().StringVar(&testCSVPath, "csv", "", "Path to export the prepared samples as CSV")
	testCmd.Flags().BoolVar(&testNoSave, "no-save", false, "Do not record the run in the database")
}
