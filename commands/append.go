package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/records"
)

var AppendCmd = Append{
	command: command{
		url: "",
	},

	sheet:  "",
	record: "",
}

// Append is the command line equivalent of POST /append_record/.
type Append struct {
	command
	sheet  string
	record string
}

func (cmd *Append) Name() string {
	return "append"
}

func (cmd *Append) Description() string {
	return "Appends a record to a content plan worksheet"
}

func (cmd *Append) Usage() string {
	return "--url <url> [--sheet <sheet>] --record <record>"
}

func (cmd *Append) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] append --url <URL> [--sheet <sheet>] --record <record>\n", APP)
	fmt.Println()
	fmt.Println("  Writes a record to the first empty row of the worksheet's observation range, or")
	fmt.Println("  after the last row if the range has no empty rows. The record is a '|' separated")
	fmt.Println("  list of the 9 record fields:")
	fmt.Println()
	fmt.Printf("    %v\n", strings.Join(records.Header, " | "))
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    ggsheets append --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                    --sheet "Ideas" \`)
	fmt.Println(`                    --record "12|Education|How spreadsheets work|||||#spreadsheets|Subscribe"`)
	fmt.Println()
}

func (cmd *Append) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("append")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet name. Defaults to the configured sheet")
	flagset.StringVar(&cmd.record, "record", cmd.record, "'|' separated record fields")

	return flagset
}

func (cmd *Append) Execute(args ...any) error {
	ctx, options := unpack(args)

	spreadsheet, err := cmd.spreadsheet()
	if err != nil {
		return err
	}

	record, err := parseRecord(cmd.record)
	if err != nil {
		return err
	}

	conf, err := load(options)
	if err != nil {
		return err
	}

	area := appender.Range{
		Sheet: conf.Append.Sheet,
		Left:  conf.Append.Left,
		Right: conf.Append.Right,
		Top:   conf.Append.StartRow,
	}

	if sheet := strings.TrimSpace(cmd.sheet); sheet != "" {
		area = area.WithSheet(sheet)
	}

	google, _, err := services(ctx, conf)
	if err != nil {
		return err
	}

	placement, err := appender.Append(ctx, google, spreadsheet, area, record.Fields())
	if err != nil {
		return err
	}

	infof("Appended record %v to %v (%v)", record.VideoNumber, area.Row(placement.Row), placement.Kind)

	fmt.Printf("%v\n", placement.Row)

	return nil
}

func parseRecord(s string) (records.Record, error) {
	if strings.TrimSpace(s) == "" {
		return records.Record{}, fmt.Errorf("--record is a required option")
	}

	fields := strings.Split(s, "|")
	if len(fields) != records.Width {
		return records.Record{}, fmt.Errorf("invalid record - expected %v '|' separated fields, got %v", records.Width, len(fields))
	}

	for i, v := range fields {
		fields[i] = strings.TrimSpace(v)
	}

	record, err := records.FromFields(fields)
	if err != nil {
		return records.Record{}, err
	}

	if record.IsBlank() {
		return records.Record{}, fmt.Errorf("record has no values")
	}

	return record, nil
}
