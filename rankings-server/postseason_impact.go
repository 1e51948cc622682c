package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
	"github.com/zhales05/college-football-rankings/internal/movement"
	"github.com/zhales05/college-football-rankings/internal/pipeline"
)

// PostseasonImpactArgs is the input schema for get_postseason_impact.
type PostseasonImpactArgs struct {
	Year int `json:"year" jsonschema:"Season year (0 = configured default)"`
	Top  int `json:"top" jsonschema:"Only keep moves touching the top N (0 = every team)"`
}

// PostseasonImpactOutput diffs the table with and without bowl results.
type PostseasonImpactOutput struct {
	Season          int              `json:"season"`
	PostseasonGames int              `json:"postseason_games"`
	Moves           []movement.Delta `json:"moves"`
}

func buildPostseasonImpact(ctx context.Context, cfg ServerConfig, args PostseasonImpactArgs) (PostseasonImpactOutput, error) {
	year := cfg.resolveYear(args.Year)
	st := cfg.rawStore()

	regular, err := pipeline.BuildRegularOnly(st, year)
	if errors.Is(err, os.ErrNotExist) {
		if ferr := fetchSeason(ctx, cfg, year); ferr != nil {
			return PostseasonImpactOutput{}, ferr
		}
		regular, err = pipeline.BuildRegularOnly(st, year)
	}
	if err != nil {
		return PostseasonImpactOutput{}, err
	}

	full, err := pipeline.Build(st, year)
	if err != nil {
		return PostseasonImpactOutput{}, err
	}

	hasPostseason := false
	for _, seasonType := range full.SeasonTypes {
		if seasonType == cfbd.SeasonPostseason {
			hasPostseason = true
		}
	}
	if !hasPostseason {
		return PostseasonImpactOutput{}, fmt.Errorf("no postseason games stored for %d: run `cfbrank fetch --year %d` after bowl season", year, year)
	}

	moves := movement.Compare(regular.Rankings, full.Rankings)
	if args.Top > 0 {
		kept := moves[:0]
		for _, d := range moves {
			if d.After > 0 && d.After <= args.Top || d.Before > 0 && d.Before <= args.Top {
				kept = append(kept, d)
			}
		}
		moves = kept
	}

	return PostseasonImpactOutput{
		Season:          year,
		PostseasonGames: full.Games - regular.Games,
		Moves:           moves,
	}, nil
}

func postseasonImpactHandler(cfg ServerConfig) func(context.Context, *mcp.CallToolRequest, PostseasonImpactArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args PostseasonImpactArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildPostseasonImpact(ctx, cfg, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolMarshal(out)
	}
}
