package cfbd

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	SeasonRegular    = "regular"
	SeasonPostseason = "postseason"
)

// Game is one row of the /games endpoint. Point fields are pointers:
// games that have not been played yet come back with null scores and
// must never reach the ranking core.
type Game struct {
	ID           int    `json:"id"`
	Season       int    `json:"season"`
	Week         int    `json:"week"`
	SeasonType   string `json:"season_type"`
	StartDate    string `json:"start_date"`
	HomeTeam     string `json:"home_team"`
	HomeDivision string `json:"home_division"`
	HomePoints   *int   `json:"home_points"`
	AwayTeam     string `json:"away_team"`
	AwayDivision string `json:"away_division"`
	AwayPoints   *int   `json:"away_points"`
}

func (g Game) HomeFBS() bool {
	return strings.EqualFold(g.HomeDivision, "fbs")
}

func (g Game) AwayFBS() bool {
	return strings.EqualFold(g.AwayDivision, "fbs")
}

// Completed reports whether both final scores are present.
func (g Game) Completed() bool {
	return g.HomePoints != nil && g.AwayPoints != nil
}

// CompletedGames filters to fully-scored games, the only ones the ranking
// core accepts.
func CompletedGames(games []Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if g.Completed() {
			out = append(out, g)
		}
	}
	return out
}

func DecodeGames(b []byte) ([]Game, error) {
	var games []Game
	if err := json.Unmarshal(b, &games); err != nil {
		return nil, fmt.Errorf("decoding games: %w", err)
	}
	return games, nil
}

// GamesPath is the store-relative cache location for one season type's
// games, shared with readers that never touch the network.
func GamesPath(year int, seasonType string) string {
	return fmt.Sprintf("games/%d-%s.json", year, seasonType)
}
