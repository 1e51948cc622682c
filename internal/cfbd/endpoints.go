package cfbd

import (
	"context"
	"fmt"
)

// /games?year={year}&seasonType=regular
func (c *Client) GamesRegular(ctx context.Context, year int, force bool) ([]Game, error) {
	return c.fetchGames(ctx, year, SeasonRegular, force)
}

// /games?year={year}&seasonType=postseason
func (c *Client) GamesPostseason(ctx context.Context, year int, force bool) ([]Game, error) {
	return c.fetchGames(ctx, year, SeasonPostseason, force)
}

// Games fetches both season types and returns them concatenated, regular
// season first. Bowl games count like any other game.
func (c *Client) Games(ctx context.Context, year int, force bool) ([]Game, error) {
	regular, err := c.GamesRegular(ctx, year, force)
	if err != nil {
		return nil, err
	}
	post, err := c.GamesPostseason(ctx, year, force)
	if err != nil {
		return nil, err
	}
	return append(regular, post...), nil
}

func (c *Client) fetchGames(ctx context.Context, year int, seasonType string, force bool) ([]Game, error) {
	body, err := c.FetchRaw(
		ctx,
		fmt.Sprintf("/games?year=%d&seasonType=%s", year, seasonType),
		GamesPath(year, seasonType),
		force,
	)
	if err != nil {
		return nil, err
	}
	return DecodeGames(body)
}
