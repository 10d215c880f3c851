package records

import (
	"fmt"
	"strings"
)

// Record is one row of a content plan worksheet. Field order is the column
// order on the sheet.
type Record struct {
	VideoNumber  string `json:"video_number"`
	Pillar       string `json:"content_pillar"`
	Title        string `json:"video_title"`
	Summary      string `json:"video_summary"`
	Keywords     string `json:"keywords"`
	Description  string `json:"video_description"`
	Tags         string `json:"tags"`
	Hashtags     string `json:"hashtags"`
	CallToAction string `json:"call_to_action"`
}

// Width is the number of columns occupied by a Record.
const Width = 9

var Header = []string{
	"Video Number",
	"Content Pillar",
	"Video Title",
	"Video Summary",
	"Keywords",
	"Video Description",
	"Tags",
	"Hashtags",
	"Call To Action",
}

func (r Record) Fields() []string {
	return []string{
		r.VideoNumber,
		r.Pillar,
		r.Title,
		r.Summary,
		r.Keywords,
		r.Description,
		r.Tags,
		r.Hashtags,
		r.CallToAction,
	}
}

func FromFields(fields []string) (Record, error) {
	if len(fields) != Width {
		return Record{}, fmt.Errorf("invalid record - expected %v fields, got %v", Width, len(fields))
	}

	return Record{
		VideoNumber:  fields[0],
		Pillar:       fields[1],
		Title:        fields[2],
		Summary:      fields[3],
		Keywords:     fields[4],
		Description:  fields[5],
		Tags:         fields[6],
		Hashtags:     fields[7],
		CallToAction: fields[8],
	}, nil
}

// IsBlank is true if every field is empty. A blank record written to a sheet
// leaves the row available for the next append.
func (r Record) IsBlank() bool {
	for _, v := range r.Fields() {
		if v != "" {
			return false
		}
	}

	return true
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
