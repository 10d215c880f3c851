package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/store"
)

var PutCmd = Put{
	command: command{
		url: "",
	},

	area: "",
	file: "",
}

type Put struct {
	command
	area string
	file string
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range including the header row e.g. 'Ideas!A1:I'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	ctx, options := unpack(args)

	spreadsheet, err := cmd.spreadsheet()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	area, err := appender.ParseRange(cmd.area)
	if err != nil {
		return err
	}

	debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, area)

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	header, data, err := tsvToSheet(f, area)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%v)", err)
	}

	conf, err := load(options)
	if err != nil {
		return err
	}

	google, _, err := services(ctx, conf)
	if err != nil {
		return err
	}

	if err := google.Clear(ctx, spreadsheet, []string{area.Observation()}); err != nil {
		return fmt.Errorf("unable to clear %v (%v)", area, err)
	}

	blocks := []store.Block{*header}
	if len(data.Rows) > 0 {
		blocks = append(blocks, *data)
	}

	if err := google.BatchWrite(ctx, spreadsheet, blocks...); err != nil {
		return err
	}

	infof("Uploaded TSV file %v to Google Sheets %v (%v rows)", cmd.file, area, len(data.Rows))

	return nil
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a TSV file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "--url <url> --range <range> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] put --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces the contents of a Google Sheets worksheet range with a TSV file. The")
	fmt.Println("  first line of the file is written to the first row of the range.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println()
	fmt.Println(`    ggsheets --debug put --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                         --range "Ideas!A1:I" \`)
	fmt.Println(`                         --file "ideas.tsv"`)
	fmt.Println()
}
