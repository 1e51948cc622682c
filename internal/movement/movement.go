package movement

import (
	"sort"

	"github.com/zhales05/college-football-rankings/internal/ranking"
)

// Delta is one team's movement between two ranking tables.
type Delta struct {
	Team    string `json:"team"`
	Before  int    `json:"before"` // 0 when the team was not ranked before
	After   int    `json:"after"`  // 0 when the team dropped out
	Change  int    `json:"change"` // positive = climbed that many spots
	Entered bool   `json:"entered,omitempty"`
	Dropped bool   `json:"dropped,omitempty"`
}

// Compare diffs two ranking tables, biggest climbs first with ties broken
// by name. Teams only in the after table are marked entered, teams only
// in the before table dropped; both carry Change 0.
func Compare(before, after []ranking.Ranking) []Delta {
	beforeRank := make(map[string]int, len(before))
	for _, row := range before {
		beforeRank[row.Team] = row.Rank
	}

	deltas := make([]Delta, 0, len(after))
	afterSeen := make(map[string]bool, len(after))
	for _, row := range after {
		afterSeen[row.Team] = true
		d := Delta{Team: row.Team, After: row.Rank}
		if prev, ok := beforeRank[row.Team]; ok {
			d.Before = prev
			d.Change = prev - row.Rank
		} else {
			d.Entered = true
		}
		deltas = append(deltas, d)
	}

	for _, row := range before {
		if !afterSeen[row.Team] {
			deltas = append(deltas, Delta{Team: row.Team, Before: row.Rank, Dropped: true})
		}
	}

	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Change != deltas[j].Change {
			return deltas[i].Change > deltas[j].Change
		}
		return deltas[i].Team < deltas[j].Team
	})
	return deltas
}
