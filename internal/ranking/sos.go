package ranking

// Strength of schedule runs in two phases over top-tier teams only.
// Non-top-tier teams keep SOS 0 for the whole run but still appear in
// their opponents' averages, dragging them down.
const sosPasses = 1000

// SolveSOS seeds every top-tier team's SOS from opponent records, then
// refines with a fixed number of in-place averaging passes. There is no
// convergence check; the pass count is part of the model.
func (r *Registry) SolveSOS() {
	r.initialSOS()
	for pass := 0; pass < sosPasses; pass++ {
		r.refinePass()
	}
}

// initialSOS sets each top-tier team's SOS to the combined winning
// percentage of its opponents. Opponents missing from the registry are
// ignored; a team with no usable opponents gets 0.
func (r *Registry) initialSOS() {
	for _, t := range r.order {
		if !t.FBS {
			continue
		}
		wins, losses := 0, 0
		for _, name := range t.opponents() {
			opp, ok := r.byName[name]
			if !ok {
				continue
			}
			wins += opp.Wins
			losses += opp.Losses
		}
		if wins+losses == 0 {
			t.SOS = 0
			continue
		}
		t.SOS = float64(wins) / float64(wins+losses)
	}
}

// refinePass recomputes each top-tier team's SOS as the mean of its
// opponents' current values, walking teams in creation order and updating
// in place: teams later in the order see values already refreshed this
// pass. The fixed traversal keeps the result deterministic.
func (r *Registry) refinePass() {
	for _, t := range r.order {
		if !t.FBS {
			continue
		}
		sum := 0.0
		count := 0
		for _, name := range t.opponents() {
			opp, ok := r.byName[name]
			if !ok {
				continue
			}
			sum += opp.SOS
			count++
		}
		if count == 0 {
			t.SOS = 0
			continue
		}
		t.SOS = sum / float64(count)
	}
}
