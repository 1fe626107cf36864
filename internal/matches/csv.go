package matches

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ReadCSV decodes a header-led CSV stream into a RawTable.
func ReadCSV(r io.Reader) (RawTable, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return RawTable{}, &DataFormatError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return RawTable{}, csvError(err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[i] = name
	}

	table := RawTable{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return RawTable{}, csvError(err)
		}
		line, _ := reader.FieldPos(0)
		table.Rows = append(table.Rows, RawRow{Line: line, Fields: record})
	}

	return table, nil
}

func csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &DataFormatError{Line: parseErr.Line, Err: parseErr.Err}
	}
	return &DataFormatError{Err: err}
}
