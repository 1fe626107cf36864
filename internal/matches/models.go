package matches

import "time"

// Column names every match dataset must carry.
const (
	ColumnDate       = "date"
	ColumnTournament = "tournament"
	ColumnHomeScore  = "home_score"
	ColumnAwayScore  = "away_score"
)

// RawRow is one undecoded data row together with its 1-based source line.
type RawRow struct {
	Line   int
	Fields []string
}

// RawTable is a match dataset as loaded from its source.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// Index returns the position of the named column, or -1.
func (t RawTable) Index(column string) int {
	for i, name := range t.Columns {
		if name == column {
			return i
		}
	}
	return -1
}

// Match is a prepared match row.
type Match struct {
	Date        time.Time
	Tournament  string
	HomeScore   int
	AwayScore   int
	Group       string
	GoalsScored int
	// Extra holds every column not listed above, untouched.
	Extra map[string]string
}

// PreparedSample is the filtered, labelled subset of one cohort.
type PreparedSample struct {
	Group   string
	Matches []Match
}

// Len reports the number of matches.
func (s PreparedSample) Len() int {
	return len(s.Matches)
}

// Goals returns the goals_scored column as float64 values in row order.
func (s PreparedSample) Goals() []float64 {
	goals := make([]float64, len(s.Matches))
	for i, m := range s.Matches {
		goals[i] = float64(m.GoalsScored)
	}
	return goals
}
