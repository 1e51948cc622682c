package season

import (
	"sort"
	"strings"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
)

// Meeting is one completed game between two named teams.
type Meeting struct {
	Week       int    `json:"week"`
	SeasonType string `json:"season_type"`
	StartDate  string `json:"start_date"`
	HomeTeam   string `json:"home_team"`
	HomePoints int    `json:"home_points"`
	AwayTeam   string `json:"away_team"`
	AwayPoints int    `json:"away_points"`
	Winner     string `json:"winner"` // empty for a tie
}

// HeadToHead summarizes a season series between two teams.
type HeadToHead struct {
	TeamA    string    `json:"team_a"`
	TeamB    string    `json:"team_b"`
	WinsA    int       `json:"wins_a"`
	WinsB    int       `json:"wins_b"`
	Meetings []Meeting `json:"meetings"`
}

// BuildHeadToHead pulls every completed meeting between a and b, oldest
// first. Team name matching is case-insensitive.
func BuildHeadToHead(games []cfbd.Game, a, b string) HeadToHead {
	out := HeadToHead{TeamA: a, TeamB: b, Meetings: []Meeting{}}

	for _, g := range games {
		if !g.Completed() {
			continue
		}
		pair := strings.EqualFold(g.HomeTeam, a) && strings.EqualFold(g.AwayTeam, b) ||
			strings.EqualFold(g.HomeTeam, b) && strings.EqualFold(g.AwayTeam, a)
		if !pair {
			continue
		}

		hp, ap := *g.HomePoints, *g.AwayPoints
		m := Meeting{
			Week:       g.Week,
			SeasonType: g.SeasonType,
			StartDate:  g.StartDate,
			HomeTeam:   g.HomeTeam,
			HomePoints: hp,
			AwayTeam:   g.AwayTeam,
			AwayPoints: ap,
		}
		switch {
		case hp > ap:
			m.Winner = g.HomeTeam
		case ap > hp:
			m.Winner = g.AwayTeam
		}
		if strings.EqualFold(m.Winner, a) {
			out.WinsA++
		} else if strings.EqualFold(m.Winner, b) {
			out.WinsB++
		}
		out.Meetings = append(out.Meetings, m)
	}

	sort.Slice(out.Meetings, func(i, j int) bool {
		if x, y := seasonTypeOrder(out.Meetings[i].SeasonType), seasonTypeOrder(out.Meetings[j].SeasonType); x != y {
			return x < y
		}
		if out.Meetings[i].Week != out.Meetings[j].Week {
			return out.Meetings[i].Week < out.Meetings[j].Week
		}
		return out.Meetings[i].StartDate < out.Meetings[j].StartDate
	})
	return out
}
