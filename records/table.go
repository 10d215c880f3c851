package records

import (
	"fmt"
)

// MakeRecords converts a worksheet (header row followed by data rows) into
// records. Columns are matched to fields by header name so the sheet's column
// order doesn't matter, and rows without a video number are skipped.
func MakeRecords(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	// .. build index
	index := map[string]int{}
	for i, v := range rows[0] {
		k := normalise(v)
		if k == "" {
			continue
		}

		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", v)
		}

		index[k] = i
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	columns := make([]int, Width)
	for i, h := range Header {
		if ix, ok := index[normalise(h)]; !ok {
			return nil, fmt.Errorf("missing '%s' column", h)
		} else {
			columns[i] = ix
		}
	}

	// ... records
	records := []Record{}
	for _, row := range rows[1:] {
		fields := make([]string, Width)
		for i, ix := range columns {
			if ix < len(row) {
				fields[i] = clean(row[ix])
			}
		}

		if fields[0] == "" {
			continue
		}

		record, err := FromFields(fields)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}
