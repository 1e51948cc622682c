package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zhales05/college-football-rankings/internal/season"
)

// HeadToHeadArgs is the input schema for get_head_to_head.
type HeadToHeadArgs struct {
	Year  int    `json:"year" jsonschema:"Season year (0 = configured default)"`
	TeamA string `json:"team_a" jsonschema:"First team name, case-insensitive (required)"`
	TeamB string `json:"team_b" jsonschema:"Second team name, case-insensitive (required)"`
}

// H2HStanding is one side's season record and table position.
type H2HStanding struct {
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Rank   int    `json:"rank,omitempty"`
}

// HeadToHeadOutput pairs the season series with both sides' standings.
type HeadToHeadOutput struct {
	Season   int              `json:"season"`
	TeamA    H2HStanding      `json:"team_a"`
	TeamB    H2HStanding      `json:"team_b"`
	WinsA    int              `json:"wins_a"`
	WinsB    int              `json:"wins_b"`
	Meetings []season.Meeting `json:"meetings"`
}

func buildHeadToHead(ctx context.Context, cfg ServerConfig, args HeadToHeadArgs) (HeadToHeadOutput, error) {
	year := cfg.resolveYear(args.Year)
	games, _, err := seasonGames(ctx, cfg, year)
	if err != nil {
		return HeadToHeadOutput{}, err
	}
	nameA, err := resolveTeam(games, args.TeamA)
	if err != nil {
		return HeadToHeadOutput{}, err
	}
	nameB, err := resolveTeam(games, args.TeamB)
	if err != nil {
		return HeadToHeadOutput{}, err
	}
	if strings.EqualFold(nameA, nameB) {
		return HeadToHeadOutput{}, fmt.Errorf("team_a and team_b must differ")
	}

	reg := solvedRegistry(games)
	table := reg.Rankings()
	standingFor := func(name string) H2HStanding {
		s := H2HStanding{Team: name, Rank: rankOf(table, name)}
		if t := reg.Team(name); t != nil {
			s.Wins = t.Wins
			s.Losses = t.Losses
		}
		return s
	}

	h2h := season.BuildHeadToHead(games, nameA, nameB)
	return HeadToHeadOutput{
		Season:   year,
		TeamA:    standingFor(nameA),
		TeamB:    standingFor(nameB),
		WinsA:    h2h.WinsA,
		WinsB:    h2h.WinsB,
		Meetings: h2h.Meetings,
	}, nil
}

func headToHeadHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, HeadToHeadArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args HeadToHeadArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildHeadToHead(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
