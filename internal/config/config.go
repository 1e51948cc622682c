package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Season struct {
	Year int `yaml:"year"`
}

type Data struct {
	RawRoot     string `yaml:"raw_root"`
	DerivedRoot string `yaml:"derived_root"`
}

type API struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

type Output struct {
	Format string `yaml:"format"`
	Top    int    `yaml:"top"`
}

type Config struct {
	Season Season `yaml:"season"`
	Data   Data   `yaml:"data"`
	API    API    `yaml:"api"`
	Output Output `yaml:"output"`
}

// CurrentSeason is the season a date falls in. Kickoff is late August and
// the bowls run into January, so the early months belong to the prior
// season's postseason.
func CurrentSeason(now time.Time) int {
	if now.Month() < time.June {
		return now.Year() - 1
	}
	return now.Year()
}

// Default is the configuration used when no file is present. File values
// override these, and command flags override the file.
func Default() *Config {
	return &Config{
		Season: Season{Year: CurrentSeason(time.Now())},
		Data:   Data{RawRoot: "data/raw", DerivedRoot: "data/derived"},
		API: API{
			BaseURL:   "https://api.collegefootballdata.com",
			UserAgent: "cfb-rankings-raw/1.0",
		},
		Output: Output{Format: "table", Top: 25},
	}
}

// LoadFromBytes parses YAML bytes over the defaults and validates the
// result.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	// College football starts in 1869; anything earlier is a typo.
	if c.Season.Year < 1869 {
		return fmt.Errorf("season year %d is before the first college football season", c.Season.Year)
	}

	switch c.Output.Format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or csv)", c.Output.Format)
	}

	if c.Output.Top < 0 {
		return fmt.Errorf("output top %d must not be negative (0 means the full table)", c.Output.Top)
	}

	if c.Data.RawRoot == "" {
		return fmt.Errorf("data raw_root must not be empty")
	}
	if c.Data.DerivedRoot == "" {
		return fmt.Errorf("data derived_root must not be empty")
	}

	return nil
}
