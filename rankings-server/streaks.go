package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zhales05/college-football-rankings/internal/season"
)

// StreaksArgs is the input schema for get_streaks.
type StreaksArgs struct {
	Year int `json:"year" jsonschema:"Season year (0 = configured default)"`
	Top  int `json:"top" jsonschema:"Limit to the top N ranked teams (0 = every ranked team)"`
}

// StreakRow pairs a ranked team with its win runs.
type StreakRow struct {
	Rank             int    `json:"rank"`
	Team             string `json:"team"`
	StartWinStreak   int    `json:"start_win_streak"`
	CurrentWinStreak int    `json:"current_win_streak"`
	MaxWinStreak     int    `json:"max_win_streak"`
}

// StreaksOutput lists ranked teams' win streaks in table order.
type StreaksOutput struct {
	Season int         `json:"season"`
	Rows   []StreakRow `json:"rows"`
}

func buildStreaks(ctx context.Context, cfg ServerConfig, args StreaksArgs) (StreaksOutput, error) {
	year := cfg.resolveYear(args.Year)
	games, _, err := seasonGames(ctx, cfg, year)
	if err != nil {
		return StreaksOutput{}, err
	}

	table := solvedRegistry(games).Rankings()
	if args.Top > 0 && len(table) > args.Top {
		table = table[:args.Top]
	}

	logs := season.BuildLogs(games)
	rows := make([]StreakRow, 0, len(table))
	for _, row := range table {
		s := season.BuildStreak(row.Team, logs[row.Team])
		rows = append(rows, StreakRow{
			Rank:             row.Rank,
			Team:             row.Team,
			StartWinStreak:   s.StartWinStreak,
			CurrentWinStreak: s.CurrentWinStreak,
			MaxWinStreak:     s.MaxWinStreak,
		})
	}
	return StreaksOutput{Season: year, Rows: rows}, nil
}

func streaksHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, StreaksArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args StreaksArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildStreaks(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
