// Package config resolves the wcs tool configuration: built-in defaults,
// overlaid by an optional YAML file, overlaid by WCS_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/capsim"
	"gopkg.in/yaml.v3"
)

// Config holds all tool configuration.
type Config struct {
	// Currency is the ISO code every simulated amount carries.
	Currency string `yaml:"currency" env:"WCS_CURRENCY"`
	// OutputDir receives one <engine>_<start>_<id> directory per run.
	OutputDir string `yaml:"output_dir" env:"WCS_OUTPUT_DIR"`
	// ParamsFile is where the last run's parameters are saved for re-runs.
	ParamsFile string `yaml:"params_file" env:"WCS_PARAMS_FILE"`
	// RunLog is the SQLite file recording past runs.
	RunLog string `yaml:"runlog" env:"WCS_RUNLOG"`
	Chart  struct {
		Width  int `yaml:"width" env:"WCS_CHART_WIDTH"`
		Height int `yaml:"height" env:"WCS_CHART_HEIGHT"`
	} `yaml:"chart"`
	// Defaults seed the simulation flags when the user does not pass them.
	// Amounts and rates are kept as strings to stay decimal-exact.
	Defaults struct {
		Pot             string  `yaml:"pot" env:"WCS_DEFAULT_POT"`
		Rate            string  `yaml:"rate" env:"WCS_DEFAULT_RATE"`
		Weeks           int     `yaml:"weeks" env:"WCS_DEFAULT_WEEKS"`
		Cap             string  `yaml:"cap" env:"WCS_DEFAULT_CAP"`
		GrowthVaultPct  float64 `yaml:"growth_vault_pct" env:"WCS_GROWTH_VAULT_PCT"`
		HarvestVaultPct float64 `yaml:"harvest_vault_pct" env:"WCS_HARVEST_VAULT_PCT"`
	} `yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Currency:   "EUR",
		OutputDir:  "output",
		ParamsFile: "last_params.json",
		RunLog:     "runs.db",
	}
	cfg.Chart.Width = 1024
	cfg.Chart.Height = 576
	cfg.Defaults.Pot = "220"
	cfg.Defaults.Rate = "0.25"
	cfg.Defaults.Weeks = 52
	cfg.Defaults.Cap = "10000"
	cfg.Defaults.GrowthVaultPct = 0.50
	cfg.Defaults.HarvestVaultPct = 0.25
	return cfg
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/wcs/config.yaml or the platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "wcs", "config.yaml")
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error, the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.ParamsFile == "" {
		return fmt.Errorf("params_file is required")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size %dx%d must be positive", c.Chart.Width, c.Chart.Height)
	}
	if _, err := c.DefaultParameters(); err != nil {
		return err
	}
	return nil
}

// DefaultParameters builds the parameter set the defaults describe. The
// commands use it to seed their flags.
func (c *Config) DefaultParameters() (capsim.Parameters, error) {
	pot, err := capsim.ParseMoney(c.Defaults.Pot, c.Currency)
	if err != nil {
		return capsim.Parameters{}, fmt.Errorf("defaults.pot: %w", err)
	}
	rate, err := capsim.ParseRate(c.Defaults.Rate)
	if err != nil {
		return capsim.Parameters{}, fmt.Errorf("defaults.rate: %w", err)
	}
	ceiling, err := capsim.ParseMoney(c.Defaults.Cap, c.Currency)
	if err != nil {
		return capsim.Parameters{}, fmt.Errorf("defaults.cap: %w", err)
	}
	return capsim.Parameters{
		InitialPot:      pot,
		WeeklyRate:      rate,
		TotalWeeks:      c.Defaults.Weeks,
		Cap:             ceiling,
		GrowthVaultPct:  c.Defaults.GrowthVaultPct,
		HarvestVaultPct: c.Defaults.HarvestVaultPct,
	}, nil
}
