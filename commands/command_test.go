package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/ggapi/ggsheets/config"
)

func TestSpreadsheet(t *testing.T) {
	tests := map[string]string{
		"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms":            "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms":                                                   "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"  abc_123-XYZ  ": "abc_123-XYZ",
	}

	for url, expected := range tests {
		cmd := command{url: url}

		id, err := cmd.spreadsheet()
		if err != nil {
			t.Errorf("Unexpected error for %q (%v)", url, err)
		} else if id != expected {
			t.Errorf("Incorrect spreadsheet ID for %q - expected:%v, got:%v", url, expected, id)
		}
	}
}

func TestSpreadsheetWithInvalidURL(t *testing.T) {
	tests := []string{
		"",
		"https://example.com/spreadsheets/d/abc",
		"https://docs.google.com/spreadsheets/d/",
		"not a spreadsheet",
	}

	for _, url := range tests {
		cmd := command{url: url}

		if id, err := cmd.spreadsheet(); err == nil {
			t.Errorf("Expected error for %q, got %v", url, id)
		}
	}
}

func TestParseRecord(t *testing.T) {
	record, err := parseRecord(" 12 |Education|How spreadsheets work|||||#spreadsheets|Subscribe")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	expected := []string{"12", "Education", "How spreadsheets work", "", "", "", "", "#spreadsheets", "Subscribe"}
	if !reflect.DeepEqual(record.Fields(), expected) {
		t.Errorf("Incorrect record\n   expected: %q\n   got:      %q", expected, record.Fields())
	}
}

func TestParseRecordWithInvalidRecord(t *testing.T) {
	tests := []string{
		"",
		"12|Education",
		"1|2|3|4|5|6|7|8|9|10",
		" | | | | | | | | ",
	}

	for _, v := range tests {
		if _, err := parseRecord(v); err == nil {
			t.Errorf("Expected error for record %q", v)
		}
	}
}

func TestUnpack(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "qwerty")

	c, options := unpack([]any{ctx, &Options{Config: "ggsheets.toml", Debug: true}})
	if c.Value(key{}) != "qwerty" {
		t.Errorf("unpack did not return the supplied context")
	}

	if !reflect.DeepEqual(options, &Options{Config: "ggsheets.toml", Debug: true}) {
		t.Errorf("Incorrect options - got:%v", options)
	}

	if _, options := unpack(nil); options.Config != DEFAULT_CONFIG {
		t.Errorf("Incorrect default config - expected:%v, got:%v", DEFAULT_CONFIG, options.Config)
	}
}

func TestServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v4/spreadsheets/abc123":
			w.Write([]byte(`{"sheets":[{"properties":{"title":"Ideas"}},{"properties":{"title":"Archive"}}]}`))

		case "/files":
			w.Write([]byte(`{"files":[{"id":"f1","name":"Ideas"}]}`))

		default:
			http.NotFound(w, r)
		}
	}))

	defer srv.Close()

	ctx := context.Background()

	google, drive, err := services(ctx, config.NewConfig(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Unexpected error creating services (%v)", err)
	}

	names, err := google.SheetNames(ctx, "abc123")
	if err != nil {
		t.Fatalf("Unexpected error listing sheets (%v)", err)
	} else if !reflect.DeepEqual(names, []string{"Ideas", "Archive"}) {
		t.Errorf("Incorrect sheet names - got:%v", names)
	}

	files, err := drive.ListAll(ctx)
	if err != nil {
		t.Fatalf("Unexpected error listing files (%v)", err)
	} else if len(files) != 1 || files[0].ID != "f1" {
		t.Errorf("Incorrect files - got:%v", files)
	}
}

func TestServicesWithoutCredentials(t *testing.T) {
	if _, _, err := services(context.Background(), config.NewConfig()); err == nil {
		t.Errorf("Expected error creating services without credentials")
	}
}

func TestServe(t *testing.T) {
	conf := config.NewConfig()
	conf.Server.Bind = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- serve(ctx, conf, http.NotFoundHandler())
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Unexpected error from serve (%v)", err)
		}

	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return after context was cancelled")
	}
}

func TestServeWithInvalidAddress(t *testing.T) {
	conf := config.NewConfig()
	conf.Server.Bind = "127.0.0.1:qwerty"

	if err := serve(context.Background(), conf, http.NotFoundHandler()); err == nil {
		t.Errorf("Expected error for invalid bind address")
	}
}
