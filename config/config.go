package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the configuration file. The credentials
// variable name is shared with existing deployments.
const (
	ENV_CREDENTIALS      = "GOOGLE_SHEETS_JSON_KEY_CONTENTS"
	ENV_CREDENTIALS_FILE = "GGSHEETS_CREDENTIALS_FILE"
	ENV_BIND             = "GGSHEETS_BIND"
	ENV_SPREADSHEET      = "GGSHEETS_SPREADSHEET"
	ENV_SHEET            = "GGSHEETS_SHEET"
	ENV_START_ROW        = "GGSHEETS_START_ROW"
	ENV_DEBUG            = "GGSHEETS_DEBUG"
)

type Config struct {
	Server Server `toml:"server"`
	Google Google `toml:"google"`
	Append Append `toml:"append"`
	Debug  bool   `toml:"debug"`
}

type Server struct {
	Bind              string `toml:"bind"`
	ReadHeaderTimeout string `toml:"read-header-timeout"`
}

type Google struct {
	// Credentials is the service account JSON key. Takes precedence over
	// CredentialsFile.
	Credentials     string `toml:"credentials"`
	CredentialsFile string `toml:"credentials-file"`
}

// Append is the observation range used for appending records.
type Append struct {
	Spreadsheet string `toml:"spreadsheet"`
	Sheet       string `toml:"sheet"`
	Left        string `toml:"left"`
	Right       string `toml:"right"`
	StartRow    int    `toml:"start-row"`
}

// Timeout returns the configured header read timeout, defaulting to 5s.
func (s Server) Timeout() time.Duration {
	if d, err := time.ParseDuration(s.ReadHeaderTimeout); err == nil && d > 0 {
		return d
	}

	return 5 * time.Second
}

// Key returns the service account JSON key, either inline or from the
// credentials file.
func (g Google) Key() ([]byte, error) {
	if strings.TrimSpace(g.Credentials) != "" {
		return []byte(g.Credentials), nil
	}

	if strings.TrimSpace(g.CredentialsFile) == "" {
		return nil, fmt.Errorf("missing Google credentials - set %v or %v", ENV_CREDENTIALS, ENV_CREDENTIALS_FILE)
	}

	return os.ReadFile(g.CredentialsFile)
}

func NewConfig() *Config {
	return &Config{
		Server: Server{
			Bind:              "0.0.0.0:8000",
			ReadHeaderTimeout: "5s",
		},
		Append: Append{
			Sheet:    "Ideas",
			Left:     "A",
			Right:    "I",
			StartRow: 2,
		},
	}
}

// Load reads the TOML file at path (if it exists), then any .env file in the
// working directory and finally the environment. A missing configuration
// file is not an error.
func (c *Config) Load(path string) error {
	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err == nil {
			if err := toml.Unmarshal(bytes, c); err != nil {
				return fmt.Errorf("invalid configuration file %v (%w)", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file (%w)", err)
	}

	return c.environment()
}

func (c *Config) environment() error {
	if v, ok := lookup(ENV_CREDENTIALS); ok {
		c.Google.Credentials = v
	}

	if v, ok := lookup(ENV_CREDENTIALS_FILE); ok {
		c.Google.CredentialsFile = v
	}

	if v, ok := lookup(ENV_BIND); ok {
		c.Server.Bind = v
	}

	if v, ok := lookup(ENV_SPREADSHEET); ok {
		c.Append.Spreadsheet = v
	}

	if v, ok := lookup(ENV_SHEET); ok {
		c.Append.Sheet = v
	}

	if v, ok := lookup(ENV_START_ROW); ok {
		row, err := strconv.Atoi(v)
		if err != nil || row < 1 {
			return fmt.Errorf("invalid %v '%v'", ENV_START_ROW, v)
		}

		c.Append.StartRow = row
	}

	if v, ok := lookup(ENV_DEBUG); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %v '%v'", ENV_DEBUG, v)
		}

		c.Debug = debug
	}

	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}

	return strings.TrimSpace(v), true
}
