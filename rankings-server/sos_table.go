package main

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SOSTableArgs is the input schema for get_sos_table.
type SOSTableArgs struct {
	Year int `json:"year" jsonschema:"Season year (0 = configured default)"`
	Top  int `json:"top" jsonschema:"Limit rows (0 = every ranked team)"`
}

type SOSRow struct {
	Team   string  `json:"team"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	SOS    float64 `json:"sos"`
}

// SOSTableOutput lists top-division teams by solved schedule strength.
type SOSTableOutput struct {
	Season int      `json:"season"`
	Rows   []SOSRow `json:"rows"`
}

func buildSOSTable(ctx context.Context, cfg ServerConfig, args SOSTableArgs) (SOSTableOutput, error) {
	year := cfg.resolveYear(args.Year)
	games, _, err := seasonGames(ctx, cfg, year)
	if err != nil {
		return SOSTableOutput{}, err
	}

	reg := solvedRegistry(games)
	rows := make([]SOSRow, 0, reg.Len())
	for _, t := range reg.Teams() {
		if !t.FBS {
			continue
		}
		rows = append(rows, SOSRow{Team: t.Name, Wins: t.Wins, Losses: t.Losses, SOS: t.SOS})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SOS != rows[j].SOS {
			return rows[i].SOS > rows[j].SOS
		}
		return rows[i].Team < rows[j].Team
	})
	if args.Top > 0 && len(rows) > args.Top {
		rows = rows[:args.Top]
	}

	return SOSTableOutput{Season: year, Rows: rows}, nil
}

func sosTableHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, SOSTableArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args SOSTableArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildSOSTable(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
