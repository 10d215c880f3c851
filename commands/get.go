package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ggapi/ggsheets/records"
)

var GetCmd = Get{
	command: command{
		url: "",
	},

	area: "",
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a content plan from a Google Sheets worksheet and stores it to a local file"
}

func (cmd *Get) Usage() string {
	return "--url <url> --range <range> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] get --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV file, or to an Excel workbook if the")
	fmt.Println("  file name ends in .xlsx")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    ggsheets --debug get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                         --range "Ideas!A1:I" \`)
	fmt.Println(`                         --file "ideas.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range including the header row e.g. 'Ideas!A1:I'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or XLSX file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx, options := unpack(args)

	// ... check parameters
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

	area := cmd.area

	debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, area)

	conf, err := load(options)
	if err != nil {
		return err
	}

	google, _, err := services(ctx, conf)
	if err != nil {
		return err
	}

	rows, err := google.Read(ctx, spreadsheet, area)
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet (%v)", err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	if err := save(cmd.file, rows); err != nil {
		return err
	}

	infof("Retrieved %v to file %s", area, cmd.file)

	return nil
}

// save writes the worksheet to a temporary file and then moves it to the
// destination so that a failed download never leaves a partial file behind.
func save(file string, rows [][]string) error {
	var format func(io.Writer, [][]string) error = records.MakeTSV
	if strings.EqualFold(filepath.Ext(file), ".xlsx") {
		format = sheetToXLSX
	}

	tmp, err := os.CreateTemp(os.TempDir(), APP)
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := format(tmp, rows); err != nil {
		return fmt.Errorf("error creating %v file (%v)", filepath.Base(file), err)
	}

	tmp.Close()

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
