package main

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
	"github.com/zhales05/college-football-rankings/internal/pipeline"
)

// SeasonStatusArgs is the input schema for get_season_status.
type SeasonStatusArgs struct {
	Year int `json:"year" jsonschema:"Season year (0 = configured default)"`
}

// SeasonStatusOutput reports how much of a season is stored and scored.
type SeasonStatusOutput struct {
	Season        int      `json:"season"`
	SeasonTypes   []string `json:"season_types"`
	TotalGames    int      `json:"total_games"`
	Completed     int      `json:"completed"`
	Pending       int      `json:"pending"`
	Weeks         []int    `json:"weeks"` // distinct regular-season weeks on disk
	Teams         int      `json:"teams"`
	FBSTeams      int      `json:"fbs_teams"`
	DerivedCached bool     `json:"derived_cached"`
}

func buildSeasonStatus(ctx context.Context, cfg ServerConfig, args SeasonStatusArgs) (SeasonStatusOutput, error) {
	year := cfg.resolveYear(args.Year)
	games, seasonTypes, err := seasonGames(ctx, cfg, year)
	if err != nil {
		return SeasonStatusOutput{}, err
	}

	out := SeasonStatusOutput{
		Season:        year,
		SeasonTypes:   seasonTypes,
		TotalGames:    len(games),
		DerivedCached: cfg.derivedStore().Exists(pipeline.DerivedPath(year)),
	}

	weekSet := make(map[int]bool)
	teams := make(map[string]bool)
	fbs := make(map[string]bool)
	for _, g := range games {
		if g.Completed() {
			out.Completed++
		}
		if g.SeasonType == cfbd.SeasonRegular {
			weekSet[g.Week] = true
		}
		teams[g.HomeTeam] = true
		teams[g.AwayTeam] = true
		if g.HomeFBS() {
			fbs[g.HomeTeam] = true
		}
		if g.AwayFBS() {
			fbs[g.AwayTeam] = true
		}
	}
	out.Pending = out.TotalGames - out.Completed
	out.Teams = len(teams)
	out.FBSTeams = len(fbs)

	out.Weeks = make([]int, 0, len(weekSet))
	for w := range weekSet {
		out.Weeks = append(out.Weeks, w)
	}
	sort.Ints(out.Weeks)

	return out, nil
}

func seasonStatusHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, SeasonStatusArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args SeasonStatusArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildSeasonStatus(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
