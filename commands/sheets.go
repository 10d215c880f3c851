package commands

import (
	"flag"
	"fmt"
)

var SheetsCmd = Sheets{
	command: command{
		url: "",
	},
}

type Sheets struct {
	command
}

func (cmd *Sheets) Name() string {
	return "sheets"
}

func (cmd *Sheets) Description() string {
	return "Lists the worksheets in a Google Sheets spreadsheet"
}

func (cmd *Sheets) Usage() string {
	return "--url <url>"
}

func (cmd *Sheets) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] sheets --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Lists the worksheet names in a spreadsheet, in tab order")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Sheets) FlagSet() *flag.FlagSet {
	return cmd.flagset("sheets")
}

func (cmd *Sheets) Execute(args ...any) error {
	ctx, options := unpack(args)

	spreadsheet, err := cmd.spreadsheet()
	if err != nil {
		return err
	}

	conf, err := load(options)
	if err != nil {
		return err
	}

	google, _, err := services(ctx, conf)
	if err != nil {
		return err
	}

	names, err := google.SheetNames(ctx, spreadsheet)
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Println(name)
	}

	return nil
}
