package store

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/ggapi/ggsheets/upstream"
)

// Sheets is a tabular store backed by the Google Sheets values API. Cells are
// read as formatted strings and written with USER_ENTERED semantics, i.e. as
// though typed into the sheet.
type Sheets struct {
	service *sheets.Service
}

func NewSheets(service *sheets.Service) *Sheets {
	return &Sheets{
		service: service,
	}
}

// Read returns the rows in an A1 range, top to bottom. The API omits trailing
// empty rows and trailing empty cells.
func (s *Sheets) Read(ctx context.Context, spreadsheet string, area string) ([][]string, error) {
	response, err := s.service.Spreadsheets.Values.
		Get(spreadsheet, area).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream.Classify("values.get", err)
	}

	if response == nil {
		return nil, upstream.Rejected("values.get", "no value range returned for %v", area)
	}

	return toRows("values.get", response.Values)
}

// Write overwrites the cells in an A1 range.
func (s *Sheets) Write(ctx context.Context, spreadsheet string, area string, rows [][]string) error {
	values := sheets.ValueRange{
		Range:  area,
		Values: toValues(rows),
	}

	if _, err := s.service.Spreadsheets.Values.
		Update(spreadsheet, area, &values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do(); err != nil {
		return upstream.Classify("values.update", err)
	}

	return nil
}

// Block is a set of rows destined for an A1 range.
type Block struct {
	Area string
	Rows [][]string
}

// BatchWrite overwrites several A1 ranges in a single request.
func (s *Sheets) BatchWrite(ctx context.Context, spreadsheet string, blocks ...Block) error {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             []*sheets.ValueRange{},
	}

	for _, b := range blocks {
		rq.Data = append(rq.Data, &sheets.ValueRange{
			Range:  b.Area,
			Values: toValues(b.Rows),
		})
	}

	if _, err := s.service.Spreadsheets.Values.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return upstream.Classify("values.batchUpdate", err)
	}

	return nil
}

func (s *Sheets) Clear(ctx context.Context, spreadsheet string, ranges []string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := s.service.Spreadsheets.Values.BatchClear(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return upstream.Classify("values.batchClear", err)
	}

	return nil
}

// SheetNames returns the worksheet titles in tab order.
func (s *Sheets) SheetNames(ctx context.Context, spreadsheet string) ([]string, error) {
	response, err := s.service.Spreadsheets.Get(spreadsheet).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream.Classify("spreadsheets.get", err)
	}

	names := []string{}
	for _, sheet := range response.Sheets {
		if sheet == nil || sheet.Properties == nil {
			return nil, upstream.Rejected("spreadsheets.get", "sheet without properties in %v", spreadsheet)
		}

		names = append(names, sheet.Properties.Title)
	}

	return names, nil
}

// Values returns every populated cell on a worksheet.
func (s *Sheets) Values(ctx context.Context, spreadsheet string, sheet string) ([][]string, error) {
	return s.Read(ctx, spreadsheet, quote(sheet))
}

func quote(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func toRows(op string, values [][]any) ([][]string, error) {
	rows := make([][]string, 0, len(values))

	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch c := v.(type) {
			case string:
				cells[j] = c
			case nil:
				cells[j] = ""
			default:
				return nil, upstream.Rejected(op, "unexpected %T value at row %v, column %v", v, i+1, j+1)
			}
		}

		rows = append(rows, cells)
	}

	return rows, nil
}

func toValues(rows [][]string) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, v := range row {
			values[i][j] = fmt.Sprintf("%v", v)
		}
	}

	return values
}
