package commands

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ggapi/ggsheets/records"
)

const xlsxSheet = "Ideas"

// sheetToXLSX writes the records in a worksheet to f as an Excel workbook with a
// single 'Ideas' sheet, header row first.
func sheetToXLSX(f io.Writer, rows [][]string) error {
	list, err := records.MakeRecords(rows)
	if err != nil {
		return err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	write := func(row int, fields []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		values := make([]any, len(fields))
		for i, v := range fields {
			values[i] = v
		}

		return workbook.SetSheetRow(xlsxSheet, cell, &values)
	}

	if err := write(1, records.Header); err != nil {
		return fmt.Errorf("error writing header (%v)", err)
	}

	for i, record := range list {
		if err := write(i+2, record.Fields()); err != nil {
			return fmt.Errorf("error writing record %v (%v)", record.VideoNumber, err)
		}
	}

	_, err = workbook.WriteTo(f)

	return err
}
