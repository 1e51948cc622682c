package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
	"github.com/zhales05/college-football-rankings/internal/pipeline"
	"github.com/zhales05/college-football-rankings/internal/ranking"
	"github.com/zhales05/college-football-rankings/internal/store"
)

// ServerConfig carries the store roots and serving policy for one process.
type ServerConfig struct {
	RawRoot        string
	DerivedRoot    string
	WriteDerived   bool
	ComputeMissing bool
	Season         int    // default year when a tool call omits one
	UpstreamKey    string // CFBD API key; empty disables on-demand fetching
}

func (cfg ServerConfig) rawStore() *store.JSONStore     { return store.NewJSONStore(cfg.RawRoot) }
func (cfg ServerConfig) derivedStore() *store.JSONStore { return store.NewJSONStore(cfg.DerivedRoot) }

// resolveYear applies the configured default season to omitted years.
func (cfg ServerConfig) resolveYear(year int) int {
	if year > 0 {
		return year
	}
	return cfg.Season
}

// seasonGames loads a year's stored games, fetching from upstream first
// when the raw cache is empty and an API key is configured.
func seasonGames(ctx context.Context, cfg ServerConfig, year int) ([]cfbd.Game, []string, error) {
	games, seasonTypes, err := pipeline.Games(cfg.rawStore(), year)
	if err == nil {
		return games, seasonTypes, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, err
	}
	if err := fetchSeason(ctx, cfg, year); err != nil {
		return nil, nil, err
	}
	return pipeline.Games(cfg.rawStore(), year)
}

// ensureRankings serves the derived artifact, computing and fetching as
// the serving policy allows.
func ensureRankings(ctx context.Context, cfg ServerConfig, year int) (*pipeline.SeasonRankings, error) {
	sr, err := pipeline.Ensure(cfg.rawStore(), cfg.derivedStore(), year, cfg.ComputeMissing, cfg.WriteDerived)
	if err == nil {
		return sr, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := fetchSeason(ctx, cfg, year); err != nil {
		return nil, err
	}
	return pipeline.Ensure(cfg.rawStore(), cfg.derivedStore(), year, cfg.ComputeMissing, cfg.WriteDerived)
}

func fetchSeason(ctx context.Context, cfg ServerConfig, year int) error {
	if cfg.UpstreamKey == "" {
		return fmt.Errorf("no games cached for %d: run `cfbrank fetch --year %d` or set CFBD_API_KEY", year, year)
	}
	client := cfbd.NewClient(cfg.rawStore(), cfg.UpstreamKey)
	_, err := client.Games(ctx, year, false)
	return err
}

// solvedRegistry ingests every completed game and runs the solver.
func solvedRegistry(games []cfbd.Game) *ranking.Registry {
	reg := ranking.NewRegistry()
	for _, g := range cfbd.CompletedGames(games) {
		reg.RecordGame(g.HomeTeam, g.HomeFBS(), g.AwayTeam, g.AwayFBS(), *g.HomePoints, *g.AwayPoints)
	}
	reg.SolveSOS()
	return reg
}

// resolveTeam finds the stored spelling of a team name, matching
// case-insensitively against every team that appears in the games.
func resolveTeam(games []cfbd.Game, name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", fmt.Errorf("team is required")
	}
	for _, g := range games {
		if strings.EqualFold(g.HomeTeam, n) {
			return g.HomeTeam, nil
		}
		if strings.EqualFold(g.AwayTeam, n) {
			return g.AwayTeam, nil
		}
	}
	return "", fmt.Errorf("no games found for team %q", n)
}

// rankOf returns a team's position in the table, 0 when unranked.
func rankOf(table []ranking.Ranking, name string) int {
	for _, row := range table {
		if row.Team == name {
			return row.Rank
		}
	}
	return 0
}
