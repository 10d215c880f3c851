package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/ggapi/ggsheets/commands"
)

var cli = []uhppoted.Command{
	&commands.RunCmd,
	&commands.AppendCmd,
	&commands.GetCmd,
	&commands.PutCmd,
	&commands.SheetsCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Config: commands.DEFAULT_CONFIG,
	Debug:  false,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.StringVar(&options.Config, "config", options.Config, "TOML configuration file")
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if options.Debug {
		log.SetLevel(log.DebugLevel)
	}

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		log.Fatalf("%v", err)
	}
}
