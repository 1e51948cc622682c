package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zhales05/college-football-rankings/internal/season"
)

// TeamSummaryArgs is the input schema for get_team_summary.
type TeamSummaryArgs struct {
	Year int    `json:"year" jsonschema:"Season year (0 = configured default)"`
	Team string `json:"team" jsonschema:"Team name, case-insensitive (required)"`
}

// TeamSummaryOutput is one team's full season picture: table position,
// record, solved schedule strength, score, and every game line.
type TeamSummaryOutput struct {
	Season   int               `json:"season"`
	Team     string            `json:"team"`
	FBS      bool              `json:"fbs"`
	Rank     int               `json:"rank,omitempty"`
	Wins     int               `json:"wins"`
	Losses   int               `json:"losses"`
	SOS      float64           `json:"sos"`
	Score    float64           `json:"score"`
	Schedule []season.GameLine `json:"schedule"`
}

func buildTeamSummary(ctx context.Context, cfg ServerConfig, args TeamSummaryArgs) (TeamSummaryOutput, error) {
	year := cfg.resolveYear(args.Year)
	games, _, err := seasonGames(ctx, cfg, year)
	if err != nil {
		return TeamSummaryOutput{}, err
	}
	name, err := resolveTeam(games, args.Team)
	if err != nil {
		return TeamSummaryOutput{}, err
	}

	reg := solvedRegistry(games)
	t := reg.Team(name)
	if t == nil {
		return TeamSummaryOutput{}, fmt.Errorf("no completed games for %s in %d", name, year)
	}

	return TeamSummaryOutput{
		Season:   year,
		Team:     name,
		FBS:      t.FBS,
		Rank:     rankOf(reg.Rankings(), name),
		Wins:     t.Wins,
		Losses:   t.Losses,
		SOS:      t.SOS,
		Score:    reg.RankScore(t),
		Schedule: season.BuildTeamLog(games, name).Games,
	}, nil
}

func teamSummaryHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, TeamSummaryArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args TeamSummaryArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildTeamSummary(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
