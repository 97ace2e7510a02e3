// Package config loads title-odds settings from YAML with environment overrides.
//
// Settings are read from a YAML file (title-odds.yaml by default). A sibling
// file named <name>.local.<ext> is merged over it when present, which keeps
// secrets out of the checked-in file. Finally the environment variables
// ODDS_API_KEY, GSHEET_CREDS_JSON, GSHEET_CREDS_FILE and SPREADSHEET_KEY
// override whatever the files contain. A missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "title-odds.yaml"

	EnvOddsAPIKey     = "ODDS_API_KEY"
	EnvSheetCredsJSON = "GSHEET_CREDS_JSON"
	EnvSheetCredsFile = "GSHEET_CREDS_FILE"
	EnvSpreadsheetKey = "SPREADSHEET_KEY"
)

// Config is the full set of settings for both pipelines
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Standings StandingsConfig `yaml:"standings"`
	Odds      OddsConfig      `yaml:"odds"`
	Sheets    SheetsConfig    `yaml:"sheets"`
}

type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type StandingsConfig struct {
	URL     string `yaml:"url"`
	Fetcher string `yaml:"fetcher"` // http or browser
	// Worksheet receives standings rows when the sheet sink is selected.
	Worksheet string `yaml:"worksheet"`
}

type OddsConfig struct {
	BaseURL    string   `yaml:"base_url"`
	APIKey     string   `yaml:"api_key"`
	Sport      string   `yaml:"sport"`
	Markets    []string `yaml:"markets"`
	Bookmakers []string `yaml:"bookmakers"`
	// Bookmaker and Market pick the single entry whose outcomes become rows.
	Bookmaker string `yaml:"bookmaker"`
	Market    string `yaml:"market"`
	Worksheet string `yaml:"worksheet"`
}

type SheetsConfig struct {
	CredentialsJSON string `yaml:"credentials_json"`
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetKey  string `yaml:"spreadsheet_key"`
	// Endpoint overrides the Sheets API base URL; empty means Google's.
	Endpoint string `yaml:"endpoint"`
}

// Default returns the settings used when nothing else is configured
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			UserAgent: "title-odds/1.0 (github.com/pfrederiksen/title-odds)",
			Timeout:   30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Standings: StandingsConfig{
			URL:       "https://projects.fivethirtyeight.com/2023-nba-predictions/?ex_cid=rrpromo",
			Fetcher:   "http",
			Worksheet: "Win Probabilities",
		},
		Odds: OddsConfig{
			BaseURL:    "https://api.the-odds-api.com",
			Sport:      "basketball_nba_championship_winner",
			Markets:    []string{"outrights"},
			Bookmakers: []string{"fanduel"},
			Bookmaker:  "fanduel",
			Market:     "outrights",
			Worksheet:  "Betting Odds",
		},
	}
}

// Load reads path (plus its .local override) over the defaults and applies
// environment overrides. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()

	var fromFiles Config
	found, err := readFile(path, &fromFiles)
	if err != nil {
		return nil, err
	}

	localPath := localName(path)
	var local Config
	foundLocal, err := readFile(localPath, &local)
	if err != nil {
		return nil, err
	}
	if foundLocal {
		if err := mergo.Merge(&fromFiles, local, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging %s: %w", localPath, err)
		}
	}

	if found || foundLocal {
		if err := mergo.Merge(cfg, fromFiles, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func readFile(path string, out *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

// localName turns "dir/title-odds.yaml" into "dir/title-odds.local.yaml"
func localName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvOddsAPIKey); v != "" {
		cfg.Odds.APIKey = v
	}
	if v := os.Getenv(EnvSheetCredsJSON); v != "" {
		cfg.Sheets.CredentialsJSON = v
	}
	if v := os.Getenv(EnvSheetCredsFile); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv(EnvSpreadsheetKey); v != "" {
		cfg.Sheets.SpreadsheetKey = v
	}
}

var (
	ErrMissingAPIKey         = errors.New("odds API key is required")
	ErrMissingCredentials    = errors.New("spreadsheet credentials are required")
	ErrMissingSpreadsheetKey = errors.New("spreadsheet key is required")
	ErrMissingWorksheet      = errors.New("worksheet name is required")
)

// ValidateOdds checks the settings the odds fetch needs
func (c *Config) ValidateOdds() error {
	if c.Odds.APIKey == "" {
		return fmt.Errorf("%w (set %s)", ErrMissingAPIKey, EnvOddsAPIKey)
	}
	return nil
}

// ValidateSheet checks the settings a sheet append needs
func (c *Config) ValidateSheet(worksheet string) error {
	if c.Sheets.CredentialsJSON == "" && c.Sheets.CredentialsFile == "" {
		return fmt.Errorf("%w (set %s or %s)", ErrMissingCredentials, EnvSheetCredsJSON, EnvSheetCredsFile)
	}
	if c.Sheets.SpreadsheetKey == "" {
		return fmt.Errorf("%w (set %s)", ErrMissingSpreadsheetKey, EnvSpreadsheetKey)
	}
	if worksheet == "" {
		return ErrMissingWorksheet
	}
	return nil
}

// SheetCredentials returns the raw service-account JSON, reading the
// credentials file when no inline JSON is configured.
func (c *Config) SheetCredentials() ([]byte, error) {
	if c.Sheets.CredentialsJSON != "" {
		return []byte(c.Sheets.CredentialsJSON), nil
	}
	if c.Sheets.CredentialsFile == "" {
		return nil, ErrMissingCredentials
	}
	data, err := os.ReadFile(c.Sheets.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return data, nil
}
