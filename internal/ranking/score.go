package ranking

const (
	penaltyCap    = 28.0 // margins of defeat beyond this stop hurting more
	penaltyFactor = 1.0
	bonusCap      = 7.0 // margins of victory beyond this stop helping more
	bonusDivisor  = 21.0
	bonusFactor   = 0.2

	homeWinWeight  = 0.9
	roadWinWeight  = 1.1
	homeLossWeight = 1.1
	roadLossWeight = 0.9

	// Scores are normalized to a common schedule length so teams with
	// different numbers of distinct opponents stay comparable.
	scheduleLength = 12.0
)

// Penalty scales a loss by its margin, quadratically up to the cap.
func Penalty(margin int) float64 {
	m := float64(margin)
	if m < 0 {
		m = -m
	}
	if m > penaltyCap {
		m = penaltyCap
	}
	return 1 + penaltyFactor*(m/penaltyCap)*(m/penaltyCap)
}

// Bonus scales a win by its margin, quadratically up to the cap. The
// divisor is deliberately three times the cap: blowout wins are rewarded
// far more gently than blowout losses are punished.
func Bonus(margin int) float64 {
	m := float64(margin)
	if m > bonusCap {
		m = bonusCap
	}
	return 1 + bonusFactor*(m/bonusDivisor)*(m/bonusDivisor)
}

// RankScore aggregates a team's season into one real number: wins add the
// opponent's quality scaled by the margin bonus, losses subtract it scaled
// by the margin penalty, with road results weighted above home ones. A
// zero margin scores through the loss branch. The total is stretched to a
// 12-opponent schedule; a team with no games scores 0.
func (r *Registry) RankScore(t *Team) float64 {
	if len(t.Games) == 0 {
		return 0
	}

	score := 0.0
	for _, name := range t.opponents() {
		opp, ok := r.byName[name]
		if !ok {
			// Unknown opponents contribute nothing but still count
			// toward the schedule-length normalization below.
			continue
		}
		edge := t.Games[name]
		if edge.Margin > 0 {
			weight := roadWinWeight
			if edge.Home {
				weight = homeWinWeight
			}
			score += weight * (float64(opp.Wins) + opp.SOS) * Bonus(edge.Margin)
		} else {
			weight := roadLossWeight
			if edge.Home {
				weight = homeLossWeight
			}
			score -= weight * (float64(opp.Losses) + opp.SOS) * Penalty(edge.Margin)
		}
	}

	return score * (scheduleLength / float64(len(t.Games)))
}
