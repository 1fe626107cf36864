package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"wcgoals/internal/matches"
)

var samplesHeader = []string{"date", "tournament", "home_score", "away_score", "group", "goals_scored"}

// WriteSamplesCSV writes the prepared matches of every sample to one CSV file.
func WriteSamplesCSV(path string, samples ...matches.PreparedSample) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(samplesHeader); err != nil {
		return err
	}

	for _, sample := range samples {
		for _, m := range sample.Matches {
			record := []string{
				m.Date.Format("2006-01-02"),
				m.Tournament,
				strconv.Itoa(m.HomeScore),
				strconv.Itoa(m.AwayScore),
				m.Group,
				strconv.Itoa(m.GoalsScored),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
