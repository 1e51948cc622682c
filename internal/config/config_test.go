package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testConfigYAML = `
season:
  year: 2024

data:
  raw_root: cache/raw
  derived_root: cache/derived

api:
  user_agent: my-rankings/2.0

output:
  format: csv
  top: 10
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("file values", func(t *testing.T) {
		if cfg.Season.Year != 2024 {
			t.Errorf("year = %d, want 2024", cfg.Season.Year)
		}
		if cfg.Data.RawRoot != "cache/raw" || cfg.Data.DerivedRoot != "cache/derived" {
			t.Errorf("data roots = %q, %q", cfg.Data.RawRoot, cfg.Data.DerivedRoot)
		}
		if cfg.Output.Format != "csv" || cfg.Output.Top != 10 {
			t.Errorf("output = %q top %d, want csv top 10", cfg.Output.Format, cfg.Output.Top)
		}
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		if cfg.API.BaseURL != "https://api.collegefootballdata.com" {
			t.Errorf("base_url = %q, want the default", cfg.API.BaseURL)
		}
		if cfg.API.UserAgent != "my-rankings/2.0" {
			t.Errorf("user_agent = %q, want the file value", cfg.API.UserAgent)
		}
	})
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"ancient year", "season:\n  year: 1850\n", "1869"},
		{"unknown format", "output:\n  format: xml\n", "unknown output format"},
		{"negative top", "output:\n  top: -5\n", "must not be negative"},
		{"empty raw root", "data:\n  raw_root: \"\"\n  derived_root: x\n", "raw_root"},
		{"not yaml", "season: [", "parsing config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.yaml))
			if err == nil {
				t.Fatal("config accepted, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rankings.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Season.Year != 2024 {
		t.Errorf("year = %d, want 2024", cfg.Season.Year)
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted, want error")
	}
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2024-09-15", 2024},
		{"2024-12-07", 2024},
		{"2025-01-09", 2024},
		{"2025-05-30", 2024},
		{"2025-08-21", 2025},
	}
	for _, tc := range cases {
		now, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := CurrentSeason(now); got != tc.want {
			t.Errorf("CurrentSeason(%s) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestDefault_Valid(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}
