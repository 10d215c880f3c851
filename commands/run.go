package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/config"
	"github.com/ggapi/ggsheets/httpd"
)

var RunCmd = Run{
	bind: "",
}

// Run serves the HTTP API until interrupted.
type Run struct {
	bind string
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Runs the HTTP API server"
}

func (cmd *Run) Usage() string {
	return "[--bind <address>]"
}

func (cmd *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] run [--bind <address>]\n", APP)
	fmt.Println()
	fmt.Println("  Serves the Google Drive and Google Sheets HTTP API until terminated with SIGINT or SIGTERM")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("run", flag.ExitOnError)

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "HTTP server bind address e.g. '0.0.0.0:8000'. Defaults to the configured address")

	return flagset
}

func (cmd *Run) Execute(args ...any) error {
	ctx, options := unpack(args)

	conf, err := load(options)
	if err != nil {
		return err
	}

	if cmd.bind != "" {
		conf.Server.Bind = cmd.bind
	}

	observation := appender.Range{
		Sheet: conf.Append.Sheet,
		Left:  conf.Append.Left,
		Right: conf.Append.Right,
		Top:   conf.Append.StartRow,
	}

	if err := observation.Validate(); err != nil {
		return fmt.Errorf("invalid append range (%v)", err)
	}

	google, drive, err := services(ctx, conf)
	if err != nil {
		return err
	}

	handler := httpd.NewRouter(&httpd.Server{
		Drive:       drive,
		Sheets:      google,
		Appender:    appender.NewAppender(google),
		Spreadsheet: conf.Append.Spreadsheet,
		Observation: observation,
	})

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, conf, handler)
}

// serve runs the HTTP server until the context is cancelled and then shuts it
// down, allowing in-flight requests up to 5 seconds to complete.
func serve(ctx context.Context, conf *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              conf.Server.Bind,
		Handler:           handler,
		ReadHeaderTimeout: conf.Server.Timeout(),
	}

	errs := make(chan error, 1)

	go func() {
		infof("%s listening on %v", APP, conf.Server.Bind)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
		infof("%s shutting down", APP)
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil {
		warnf("error shutting down HTTP server (%v)", err)
		return err
	}

	return nil
}
