package matches

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tournament is the only competition retained by Prepare.
const Tournament = "FIFA World Cup"

// Since is the inclusive lower bound on match dates.
var Since = time.Date(2002, time.January, 1, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

var errNegativeScore = errors.New("score must not be negative")

// Prepare filters a raw cohort to World Cup matches since 2002, labels each row with
// group and derives goals_scored. An empty result is valid.
func Prepare(table RawTable, group string) (PreparedSample, error) {
	if strings.TrimSpace(group) == "" {
		return PreparedSample{}, ErrEmptyGroup
	}

	idx, err := requiredColumns(table)
	if err != nil {
		return PreparedSample{}, err
	}

	// Every date must parse, retained or not.
	dates := make([]time.Time, len(table.Rows))
	for i, row := range table.Rows {
		raw := field(row, idx.date)
		parsed, err := parseDate(raw)
		if err != nil {
			return PreparedSample{}, &DataFormatError{Line: row.Line, Column: ColumnDate, Value: raw, Err: err}
		}
		dates[i] = parsed
	}

	sample := PreparedSample{Group: group, Matches: make([]Match, 0)}
	for i, row := range table.Rows {
		tournament := field(row, idx.tournament)
		if tournament != Tournament || dates[i].Before(Since) {
			continue
		}

		home, err := parseScore(row, idx.home, ColumnHomeScore)
		if err != nil {
			return PreparedSample{}, err
		}
		away, err := parseScore(row, idx.away, ColumnAwayScore)
		if err != nil {
			return PreparedSample{}, err
		}

		sample.Matches = append(sample.Matches, Match{
			Date:        dates[i],
			Tournament:  tournament,
			HomeScore:   home,
			AwayScore:   away,
			Group:       group,
			GoalsScored: home + away,
			Extra:       extraFields(table.Columns, row, idx),
		})
	}

	return sample, nil
}

type columnIndex struct {
	date, tournament, home, away int
}

func (c columnIndex) known(i int) bool {
	return i == c.date || i == c.tournament || i == c.home || i == c.away
}

func requiredColumns(table RawTable) (columnIndex, error) {
	var idx columnIndex
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{ColumnDate, &idx.date},
		{ColumnTournament, &idx.tournament},
		{ColumnHomeScore, &idx.home},
		{ColumnAwayScore, &idx.away},
	} {
		*col.dst = table.Index(col.name)
		if *col.dst < 0 {
			return columnIndex{}, &DataFormatError{Column: col.name, Err: errors.New("required column missing")}
		}
	}
	return idx, nil
}

func field(row RawRow, i int) string {
	if i < 0 || i >= len(row.Fields) {
		return ""
	}
	return strings.TrimSpace(row.Fields[i])
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format")
}

func parseScore(row RawRow, i int, column string) (int, error) {
	raw := field(row, i)
	if raw == "" {
		return 0, &DataFormatError{Line: row.Line, Column: column, Value: raw, Err: errors.New("score is missing")}
	}

	score, err := strconv.Atoi(raw)
	if err != nil {
		// Exports from dataframes often write integral scores as "2.0".
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, &DataFormatError{Line: row.Line, Column: column, Value: raw, Err: errors.New("score is not an integer")}
		}
		score = int(f)
	}
	if score < 0 {
		return 0, &DataFormatError{Line: row.Line, Column: column, Value: raw, Err: errNegativeScore}
	}
	return score, nil
}

func extraFields(columns []string, row RawRow, idx columnIndex) map[string]string {
	extra := make(map[string]string)
	for i, name := range columns {
		if idx.known(i) || i >= len(row.Fields) {
			continue
		}
		extra[name] = row.Fields[i]
	}
	return extra
}
