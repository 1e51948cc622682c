package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zhales05/college-football-rankings/internal/season"
)

// TeamScheduleArgs is the input schema for get_team_schedule.
type TeamScheduleArgs struct {
	Year int    `json:"year" jsonschema:"Season year (0 = configured default)"`
	Team string `json:"team" jsonschema:"Team name, case-insensitive (required)"`
}

// TeamScheduleOutput is a team's completed games in order with its record.
type TeamScheduleOutput struct {
	Season int               `json:"season"`
	Team   string            `json:"team"`
	Wins   int               `json:"wins"`
	Losses int               `json:"losses"`
	Games  []season.GameLine `json:"games"`
}

func buildTeamSchedule(ctx context.Context, cfg ServerConfig, args TeamScheduleArgs) (TeamScheduleOutput, error) {
	year := cfg.resolveYear(args.Year)
	games, _, err := seasonGames(ctx, cfg, year)
	if err != nil {
		return TeamScheduleOutput{}, err
	}
	name, err := resolveTeam(games, args.Team)
	if err != nil {
		return TeamScheduleOutput{}, err
	}

	log := season.BuildTeamLog(games, name)
	if log.Games == nil {
		log.Games = []season.GameLine{}
	}
	return TeamScheduleOutput{
		Season: year,
		Team:   name,
		Wins:   log.Wins,
		Losses: log.Losses,
		Games:  log.Games,
	}, nil
}

func teamScheduleHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, TeamScheduleArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args TeamScheduleArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildTeamSchedule(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
