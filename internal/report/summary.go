package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"wcgoals/internal/service"
)

// Output formats accepted by WriteSummary.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// WriteSummary prints the decision of a run. JSON output is exactly the test result.
func WriteSummary(w io.Writer, rep service.Report, format string) error {
	switch format {
	case FormatJSON, "":
		return json.NewEncoder(w).Encode(rep.Result)
	case FormatTable:
		return writeTable(w, rep)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, rep service.Report) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "Group\tMatches\tMean\tMedian\tStdDev\tMax\tSource")
	for _, c := range []struct {
		name   string
		cohort service.Cohort
	}{
		{service.GroupWomen, rep.Women},
		{service.GroupMen, rep.Men},
	} {
		s := c.cohort.Summary
		fmt.Fprintf(writer, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			c.name,
			s.Matches,
			FormatFloat(s.Mean, 3),
			FormatFloat(s.Median, 1),
			FormatFloat(s.StdDev, 3),
			FormatFloat(s.Max, 0),
			c.cohort.Source,
		)
	}
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "H1\twomen > men (one-tailed Mann-Whitney U)\n")
	fmt.Fprintf(writer, "U\t%s\n", FormatFloat(rep.Outcome.U, 1))
	fmt.Fprintf(writer, "p_val\t%s\n", FormatFloat(rep.Result.PVal, 6))
	fmt.Fprintf(writer, "alpha\t%s\n", FormatFloat(rep.Alpha, 3))
	fmt.Fprintf(writer, "result\t%s\n", rep.Result.Result)

	return writer.Flush()
}

// FormatFloat renders v with a fixed number of decimal places.
func FormatFloat(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
