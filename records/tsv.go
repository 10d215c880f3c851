package records

import (
	"encoding/csv"
	"io"
)

// MakeTSV writes the records in a worksheet to f as tab separated values, with
// the canonical header row first.
func MakeTSV(f io.Writer, rows [][]string) error {
	records, err := MakeRecords(rows)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(Header); err != nil {
		return err
	}

	for _, record := range records {
		if err := w.Write(record.Fields()); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
