package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/store"
)

// tsvToSheet reads a TSV file and splits it into the header row, written to
// the first row of the range, and the data rows that follow it.
func tsvToSheet(f io.Reader, area appender.Range) (*store.Block, *store.Block, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("TSV file is empty")
	}

	width := area.Width()
	for i, record := range records {
		if len(record) > width {
			return nil, nil, fmt.Errorf("TSV row %v has %v fields - range %v is only %v columns wide", i+1, len(record), area, width)
		}
	}

	header := store.Block{
		Area: area.Row(area.Top),
		Rows: records[:1],
	}

	data := store.Block{
		Area: area.WithTop(area.Top + 1).Observation(),
		Rows: records[1:],
	}

	return &header, &data, nil
}
