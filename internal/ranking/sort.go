package ranking

import "sort"

// Ranking is one row of the final table.
type Ranking struct {
	Rank   int     `json:"rank"`
	Team   string  `json:"team"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Score  float64 `json:"score"`
}

// Rankings scores every top-tier team with the current SOS values and
// returns the table in final order: score descending, then wins
// descending, losses ascending, and name ascending so the order is a
// strict total order. Ranks are 1-based with no sharing. Call SolveSOS
// first; scoring does not run the solver.
func (r *Registry) Rankings() []Ranking {
	rows := make([]Ranking, 0, len(r.order))
	for _, t := range r.order {
		if !t.FBS {
			continue
		}
		rows = append(rows, Ranking{
			Team:   t.Name,
			Wins:   t.Wins,
			Losses: t.Losses,
			Score:  r.RankScore(t),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].Losses != rows[j].Losses {
			return rows[i].Losses < rows[j].Losses
		}
		return rows[i].Team < rows[j].Team
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
