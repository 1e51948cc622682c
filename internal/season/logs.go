package season

import (
	"sort"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
)

// GameLine is one completed game seen from a single team's side.
type GameLine struct {
	Week          int    `json:"week"`
	SeasonType    string `json:"season_type"`
	StartDate     string `json:"start_date"`
	Opponent      string `json:"opponent"`
	Home          bool   `json:"home"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	Margin        int    `json:"margin"`
	Win           bool   `json:"win"`
}

// TeamLog is a team's full season in order, with its running record.
type TeamLog struct {
	Team   string     `json:"team"`
	Wins   int        `json:"wins"`
	Losses int        `json:"losses"`
	Games  []GameLine `json:"games"`
}

// BuildLogs splits completed games into per-team chronological logs.
// Unplayed games are dropped here so callers can pass a raw season.
func BuildLogs(games []cfbd.Game) map[string][]GameLine {
	logs := make(map[string][]GameLine)
	for _, g := range games {
		if !g.Completed() {
			continue
		}
		hp, ap := *g.HomePoints, *g.AwayPoints
		homeWin := hp > ap

		logs[g.HomeTeam] = append(logs[g.HomeTeam], GameLine{
			Week:          g.Week,
			SeasonType:    g.SeasonType,
			StartDate:     g.StartDate,
			Opponent:      g.AwayTeam,
			Home:          true,
			PointsFor:     hp,
			PointsAgainst: ap,
			Margin:        hp - ap,
			Win:           homeWin,
		})
		logs[g.AwayTeam] = append(logs[g.AwayTeam], GameLine{
			Week:          g.Week,
			SeasonType:    g.SeasonType,
			StartDate:     g.StartDate,
			Opponent:      g.HomeTeam,
			Home:          false,
			PointsFor:     ap,
			PointsAgainst: hp,
			Margin:        ap - hp,
			Win:           !homeWin,
		})
	}

	for team := range logs {
		sortLog(logs[team])
	}
	return logs
}

// BuildTeamLog collects one team's log and record.
func BuildTeamLog(games []cfbd.Game, team string) TeamLog {
	out := TeamLog{Team: team}
	out.Games = BuildLogs(games)[team]
	for _, line := range out.Games {
		if line.Win {
			out.Wins++
		} else {
			out.Losses++
		}
	}
	return out
}

// sortLog orders lines chronologically: postseason after the regular
// season (bowl weeks restart at 1), then week, kickoff, opponent.
func sortLog(lines []GameLine) {
	sort.Slice(lines, func(i, j int) bool {
		if a, b := seasonTypeOrder(lines[i].SeasonType), seasonTypeOrder(lines[j].SeasonType); a != b {
			return a < b
		}
		if lines[i].Week != lines[j].Week {
			return lines[i].Week < lines[j].Week
		}
		if lines[i].StartDate != lines[j].StartDate {
			return lines[i].StartDate < lines[j].StartDate
		}
		return lines[i].Opponent < lines[j].Opponent
	})
}

func seasonTypeOrder(seasonType string) int {
	if seasonType == cfbd.SeasonPostseason {
		return 1
	}
	return 0
}
