package commands

import (
	"context"
	"flag"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ggapi/ggsheets/config"
	"github.com/ggapi/ggsheets/drive"
	"github.com/ggapi/ggsheets/store"
)

const APP = "ggsheets"

// Options are the global command line options, passed to each command's Execute.
type Options struct {
	Config string
	Debug  bool
}

type command struct {
	url string
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
var spreadsheetID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL or ID")

	return flagset
}

// spreadsheet extracts the spreadsheet ID from the --url option, which may be
// either a Google Sheets URL or a bare ID.
func (c *command) spreadsheet() (string, error) {
	url := strings.TrimSpace(c.url)
	if url == "" {
		return "", fmt.Errorf("--url is a required option")
	}

	if match := spreadsheetURL.FindStringSubmatch(url); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if spreadsheetID.MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

// unpack extracts the context and global options from the arguments passed to
// Execute.
func unpack(args []any) (context.Context, *Options) {
	ctx := context.Background()
	options := Options{Config: DEFAULT_CONFIG}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = *v
		}
	}

	return ctx, &options
}

func load(options *Options) (*config.Config, error) {
	conf := config.NewConfig()
	if err := conf.Load(options.Config); err != nil {
		return nil, fmt.Errorf("error loading configuration (%v)", err)
	}

	if options.Debug {
		conf.Debug = true
	}

	if conf.Debug {
		log.SetLevel(log.DebugLevel)
	}

	return conf, nil
}

// services authorises the service account from the configuration and returns
// the Sheets and Drive clients.
func services(ctx context.Context, conf *config.Config, opts ...option.ClientOption) (*store.Sheets, *drive.Drive, error) {
	if len(opts) == 0 {
		key, err := conf.Google.Key()
		if err != nil {
			return nil, nil, err
		}

		credentials, err := google.CredentialsFromJSON(ctx, key, sheets.SpreadsheetsScope, gdrive.DriveScope)
		if err != nil {
			return nil, nil, fmt.Errorf("authentication/authorization error (%v)", err)
		}

		opts = []option.ClientOption{option.WithCredentials(credentials)}
	}

	s, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	d, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	return store.NewSheets(s), drive.NewDrive(d), nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flagset.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
	}

	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --config  TOML configuration file")
	fmt.Println("    --debug   Displays internal information for diagnosing errors")
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}
