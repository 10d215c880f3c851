package appender

// Kind identifies how the target row for an append was chosen.
type Kind int

const (
	// Gap is a fully empty row inside the fetched rows.
	Gap Kind = iota + 1
	// End is the row immediately after the last fetched row.
	End
	// Empty means nothing was fetched and the record goes in the first row.
	Empty
)

func (k Kind) String() string {
	switch k {
	case Gap:
		return "gap"
	case End:
		return "end"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

type Placement struct {
	Row  int
	Kind Kind
}

// Locate returns the first available row in rows, where rows[0] is sheet row
// top. A row is available only if every cell in it is empty; missing cells in
// a short row count as empty.
func Locate(rows [][]string, top int) Placement {
	if len(rows) == 0 {
		return Placement{Row: top, Kind: Empty}
	}

	for offset, row := range rows {
		if blank(row) {
			return Placement{Row: top + offset, Kind: Gap}
		}
	}

	return Placement{Row: top + len(rows), Kind: End}
}

func blank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}

	return true
}
