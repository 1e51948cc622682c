package season

// Streak describes a team's win runs over a chronological log.
type Streak struct {
	Team             string `json:"team"`
	StartWinStreak   int    `json:"start_win_streak"`   // wins from the opener
	CurrentWinStreak int    `json:"current_win_streak"` // wins ending the log
	MaxWinStreak     int    `json:"max_win_streak"`
}

// BuildStreak walks one team's log in order. Losses break a run; a team
// with no games has all-zero streaks.
func BuildStreak(team string, log []GameLine) Streak {
	s := Streak{Team: team}

	for _, line := range log {
		if !line.Win {
			break
		}
		s.StartWinStreak++
	}

	for i := len(log) - 1; i >= 0; i-- {
		if !log[i].Win {
			break
		}
		s.CurrentWinStreak++
	}

	run := 0
	for _, line := range log {
		if line.Win {
			run++
			if run > s.MaxWinStreak {
				s.MaxWinStreak = run
			}
		} else {
			run = 0
		}
	}
	return s
}
