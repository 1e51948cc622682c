package ranking

import "sort"

// Edge is one recorded game against a single opponent, seen from the
// owning team's side.
type Edge struct {
	Margin int  // signed point differential: positive = won by that much
	Home   bool // true when the owning team hosted the game
}

// Team is a participant in the season's game graph. Wins and Losses count
// every recorded game; Games keeps at most one edge per opponent, with the
// most recent meeting overwriting earlier ones.
type Team struct {
	Name   string
	FBS    bool // top tier; only these teams are solved and ranked
	Wins   int
	Losses int
	Games  map[string]Edge
	SOS    float64
}

// Registry owns every Team for one ranking run. It must be created fresh
// per run and never shared between two in-flight computations.
type Registry struct {
	byName map[string]*Team
	order  []*Team // creation order; fixes the solver's traversal
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Team)}
}

// Team returns the named team, or nil when it was never referenced.
func (r *Registry) Team(name string) *Team {
	return r.byName[name]
}

// Teams returns all teams in creation order. Callers must not modify the
// returned slice.
func (r *Registry) Teams() []*Team {
	return r.order
}

func (r *Registry) Len() int {
	return len(r.order)
}

// RecordGame ingests one completed game. Both teams are created on first
// reference; the division flag only matters at creation time. Callers must
// pass fully-scored games; there is no nil-score handling here.
func (r *Registry) RecordGame(homeName string, homeFBS bool, awayName string, awayFBS bool, homePoints, awayPoints int) {
	home := r.ensure(homeName, homeFBS)
	away := r.ensure(awayName, awayFBS)

	margin := homePoints - awayPoints
	if margin < 0 {
		margin = -margin
	}
	homeWin := homePoints > awayPoints

	home.record(awayName, homeWin, margin, true)
	away.record(homeName, !homeWin, margin, false)
}

func (r *Registry) ensure(name string, fbs bool) *Team {
	if t, ok := r.byName[name]; ok {
		return t
	}
	t := &Team{Name: name, FBS: fbs, Games: make(map[string]Edge)}
	r.byName[name] = t
	r.order = append(r.order, t)
	return t
}

// record adds one game from this team's side. A repeat pairing overwrites
// the edge but the win/loss counters count both games.
func (t *Team) record(opponent string, win bool, margin int, home bool) {
	signed := margin
	if !win {
		signed = -margin
	}
	t.Games[opponent] = Edge{Margin: signed, Home: home}

	if win {
		t.Wins++
	} else {
		t.Losses++
	}
}

// opponents returns the team's opponent names sorted lexicographically, so
// every float accumulation over the edge map is order-stable.
func (t *Team) opponents() []string {
	names := make([]string, 0, len(t.Games))
	for name := range t.Games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
