package common

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// CSVShape counts the data rows and columns of a CSV table. A first row with
// any non-numeric field is taken as the header and not counted.
func CSVShape(r io.Reader) (rows int, columns int, err error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, columns, nil
		}
		if err != nil {
			return 0, 0, err
		}

		if columns == 0 {
			columns = len(record)
			if isHeader(record) {
				continue
			}
		}
		rows++
	}
}

func isHeader(record []string) bool {
	for _, field := range record {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return true
		}
	}
	return false
}
