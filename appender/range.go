package appender

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Range is an open-ended block of columns on a worksheet, starting at row Top
// and running to the end of the sheet. Rows are 1-based.
type Range struct {
	Sheet string
	Left  string
	Right string
	Top   int
}

var area = regexp.MustCompile(`^(.+)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]*)$`)
var plain = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ParseRange parses an A1 range like 'Ideas!A2:I'. Any trailing row number on
// the right hand column is ignored.
func ParseRange(s string) (Range, error) {
	match := area.FindStringSubmatch(strings.TrimSpace(s))
	if len(match) < 5 {
		return Range{}, fmt.Errorf("invalid range '%s' - expected something like 'Ideas!A2:I'", s)
	}

	sheet := match[1]
	if len(sheet) > 1 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	top, err := strconv.Atoi(match[3])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range '%s' (%v)", s, err)
	}

	r := Range{
		Sheet: sheet,
		Left:  strings.ToUpper(match[2]),
		Right: strings.ToUpper(match[4]),
		Top:   top,
	}

	return r, r.Validate()
}

func (r Range) Validate() error {
	if strings.TrimSpace(r.Sheet) == "" {
		return fmt.Errorf("missing sheet name")
	}

	if r.Top < 1 {
		return fmt.Errorf("invalid start row %v", r.Top)
	}

	left := column(r.Left)
	right := column(r.Right)
	if left == 0 || right == 0 {
		return fmt.Errorf("invalid columns %v:%v", r.Left, r.Right)
	} else if right < left {
		return fmt.Errorf("invalid columns %v:%v - right column precedes left column", r.Left, r.Right)
	}

	return nil
}

// WithSheet returns a copy of the range on a different worksheet.
func (r Range) WithSheet(sheet string) Range {
	r.Sheet = sheet
	return r
}

// WithTop returns a copy of the range starting at a different row.
func (r Range) WithTop(top int) Range {
	r.Top = top
	return r
}

// Width is the number of columns spanned by the range.
func (r Range) Width() int {
	return column(r.Right) - column(r.Left) + 1
}

// Observation is the A1 notation for the whole open-ended range, e.g. Ideas!A2:I.
func (r Range) Observation() string {
	return fmt.Sprintf("%v!%v%v:%v", r.quoted(), r.Left, r.Top, r.Right)
}

// Row is the A1 notation for a single row of the range, e.g. Ideas!A7:I7.
func (r Range) Row(row int) string {
	return fmt.Sprintf("%v!%v%v:%v%v", r.quoted(), r.Left, row, r.Right, row)
}

func (r Range) String() string {
	return r.Observation()
}

func (r Range) quoted() string {
	if plain.MatchString(r.Sheet) {
		return r.Sheet
	}

	return "'" + strings.ReplaceAll(r.Sheet, "'", "''") + "'"
}

// column converts a column letter to its 1-based index (A=1, Z=26, AA=27).
// Returns 0 for anything that is not a column.
func column(letters string) int {
	if letters == "" {
		return 0
	}

	n := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return 0
		}

		n = n*26 + int(ch-'A'+1)
	}

	return n
}
