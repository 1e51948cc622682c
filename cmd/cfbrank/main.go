package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
	"github.com/zhales05/college-football-rankings/internal/config"
	"github.com/zhales05/college-football-rankings/internal/export"
	"github.com/zhales05/college-football-rankings/internal/pipeline"
	"github.com/zhales05/college-football-rankings/internal/season"
	"github.com/zhales05/college-football-rankings/internal/store"
)

const defaultConfigFile = "rankings.yaml"

// resolveConfig loads the named config file, or rankings.yaml when present,
// or falls back to built-in defaults so the tool works with no setup.
func resolveConfig(configFlag string) (*config.Config, error) {
	path := configFlag
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cfbrank",
		Short: "College football ranking engine",
	}

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: rankings.yaml in current directory)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter rankings.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var fetchYear int
	var fetchForce bool
	fetchCmd := &cobra.Command{
		Use:          "fetch",
		Short:        "Download a season's games into the raw cache",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configFile)
			if err != nil {
				return err
			}
			return runFetch(cfg, fetchYear, fetchForce)
		},
	}
	fetchCmd.Flags().IntVar(&fetchYear, "year", 0, "Season year (0 = configured season)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Refetch even when the season is cached")

	var (
		rankYear   int
		rankFormat string
		rankOutput string
		rankTop    int
		forceFetch bool
	)
	rankCmd := &cobra.Command{
		Use:          "rank",
		Short:        "Compute and print a season's ranking table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configFile)
			if err != nil {
				return err
			}
			return runRank(cfg, rankYear, rankFormat, rankOutput, rankTop, forceFetch)
		},
	}
	rankCmd.Flags().IntVar(&rankYear, "year", 0, "Season year (0 = configured season)")
	rankCmd.Flags().StringVar(&rankFormat, "format", "", "Output format: table, json, or csv (default from config)")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "Write to a file instead of stdout")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "Rows to print (0 = configured default)")
	rankCmd.Flags().BoolVar(&forceFetch, "force-fetch", false, "Refetch the season before ranking")

	var exportYear int
	var exportOutput string
	exportCmd := &cobra.Command{
		Use:          "export",
		Short:        "Write a season workbook with rankings and per-team logs",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configFile)
			if err != nil {
				return err
			}
			return runExport(cfg, exportYear, exportOutput)
		},
	}
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Season year (0 = configured season)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "rankings.xlsx", "Output Excel file path")

	rootCmd.AddCommand(initCmd, fetchCmd, rankCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# College Football Rankings Configuration
# =======================================

# A season is named by its starting year: the 2025 season runs from
# late August 2025 into January 2026.
season:
  year: 2025

# Data roots. raw_root holds CollegeFootballData API responses exactly as
# fetched; derived_root holds computed ranking artifacts.
data:
  raw_root: data/raw
  derived_root: data/derived

# CollegeFootballData API settings. The key itself never lives here:
# set CFBD_API_KEY in the environment or in a .env file.
api:
  base_url: https://api.collegefootballdata.com
  user_agent: cfb-rankings-raw/1.0

# Defaults for the rank command.
# format: table, json, or csv
# top: rows to print (0 = the full table)
output:
  format: table
  top: 25
`

func newClient(cfg *config.Config, apiKey string) *cfbd.Client {
	client := cfbd.NewClient(store.NewJSONStore(cfg.Data.RawRoot), apiKey)
	if cfg.API.BaseURL != "" {
		client.BaseURL = cfg.API.BaseURL
	}
	if cfg.API.UserAgent != "" {
		client.UserAgent = cfg.API.UserAgent
	}
	return client
}

func runFetch(cfg *config.Config, year int, force bool) error {
	_ = godotenv.Load()
	key := strings.TrimSpace(os.Getenv("CFBD_API_KEY"))
	if key == "" {
		return fmt.Errorf("CFBD_API_KEY is required (set the env var or put it in .env)")
	}
	if year == 0 {
		year = cfg.Season.Year
	}

	games, err := newClient(cfg, key).Games(context.Background(), year, force)
	if err != nil {
		return fmt.Errorf("fetching %d: %w", year, err)
	}

	fmt.Printf("✓ Stored %d games for %d (%d completed)\n", len(games), year, len(cfbd.CompletedGames(games)))
	return nil
}

// ensureRawGames fetches the season when the raw cache is missing it, or
// unconditionally when force is set. Without an API key a cache miss is an
// error pointing at the fetch command.
func ensureRawGames(cfg *config.Config, year int, force bool) error {
	raw := store.NewJSONStore(cfg.Data.RawRoot)
	if !force && raw.Exists(cfbd.GamesPath(year, cfbd.SeasonRegular)) {
		return nil
	}
	_ = godotenv.Load()
	key := strings.TrimSpace(os.Getenv("CFBD_API_KEY"))
	if key == "" {
		return fmt.Errorf("no games cached for %d: run `cfbrank fetch --year %d` or set CFBD_API_KEY", year, year)
	}
	if _, err := newClient(cfg, key).Games(context.Background(), year, force); err != nil {
		return fmt.Errorf("fetching %d: %w", year, err)
	}
	return nil
}

func runRank(cfg *config.Config, year int, format, outputPath string, top int, forceFetch bool) error {
	if year == 0 {
		year = cfg.Season.Year
	}
	if format == "" {
		format = cfg.Output.Format
	}
	if top == 0 {
		top = cfg.Output.Top
	}
	switch format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or csv)", format)
	}

	if err := ensureRawGames(cfg, year, forceFetch); err != nil {
		return err
	}

	raw := store.NewJSONStore(cfg.Data.RawRoot)
	sr, err := pipeline.Build(raw, year)
	if err != nil {
		return fmt.Errorf("building rankings for %d: %w", year, err)
	}
	if err := pipeline.Write(store.NewJSONStore(cfg.Data.DerivedRoot), sr); err != nil {
		return fmt.Errorf("caching rankings: %w", err)
	}

	out := *sr
	if top > 0 && len(out.Rankings) > top {
		out.Rankings = out.Rankings[:top]
	}

	if format == "json" {
		if outputPath != "" {
			if err := export.WriteJSON(outputPath, out); err != nil {
				return err
			}
			fmt.Printf("✓ Rankings saved to %s\n", outputPath)
			return nil
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputPath, err)
		}
		defer f.Close()
		w = f
	} else if format == "table" {
		fmt.Printf("Season %d (%s): %d completed games\n\n", out.Season, strings.Join(out.SeasonTypes, ", "), out.Games)
	}

	switch format {
	case "csv":
		if err := export.CSV(w, out.Rankings); err != nil {
			return err
		}
	case "table":
		if err := export.Table(w, out.Rankings); err != nil {
			return err
		}
	}

	if outputPath != "" {
		fmt.Printf("✓ Rankings saved to %s\n", outputPath)
	}
	return nil
}

func runExport(cfg *config.Config, year int, outputPath string) error {
	if year == 0 {
		year = cfg.Season.Year
	}
	if err := ensureRawGames(cfg, year, false); err != nil {
		return err
	}

	raw := store.NewJSONStore(cfg.Data.RawRoot)
	sr, err := pipeline.Build(raw, year)
	if err != nil {
		return fmt.Errorf("building rankings for %d: %w", year, err)
	}
	games, _, err := pipeline.Games(raw, year)
	if err != nil {
		return fmt.Errorf("reading games for %d: %w", year, err)
	}

	f, err := export.Excel(sr, season.BuildLogs(games))
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("✓ Workbook saved to %s\n", outputPath)
	return nil
}
