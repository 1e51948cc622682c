package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
	"github.com/zhales05/college-football-rankings/internal/ranking"
	"github.com/zhales05/college-football-rankings/internal/store"
)

// SeasonRankings is the derived ranking artifact for one season, the thing
// the server hands out and the CLI prints.
type SeasonRankings struct {
	Season         int               `json:"season"`
	SeasonTypes    []string          `json:"season_types"`
	Games          int               `json:"games"`
	GeneratedAtUTC string            `json:"generated_at_utc"`
	Rankings       []ranking.Ranking `json:"rankings"`
}

// Build computes rankings for a year from the raw game files in the store.
// The regular season file must exist; the postseason file is folded in when
// present, so a mid-season build and a final build use the same path.
func Build(st *store.JSONStore, year int) (*SeasonRankings, error) {
	return build(st, year, true)
}

// BuildRegularOnly ranks the regular season alone, ignoring any stored
// postseason games. Comparing it against Build shows what the bowls moved.
func BuildRegularOnly(st *store.JSONStore, year int) (*SeasonRankings, error) {
	return build(st, year, false)
}

func build(st *store.JSONStore, year int, includePostseason bool) (*SeasonRankings, error) {
	games, seasonTypes, err := loadGames(st, year, includePostseason)
	if err != nil {
		return nil, err
	}
	completed := cfbd.CompletedGames(games)

	reg := ranking.NewRegistry()
	for _, g := range completed {
		reg.RecordGame(g.HomeTeam, g.HomeFBS(), g.AwayTeam, g.AwayFBS(), *g.HomePoints, *g.AwayPoints)
	}
	reg.SolveSOS()

	return &SeasonRankings{
		Season:         year,
		SeasonTypes:    seasonTypes,
		Games:          len(completed),
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Rankings:       reg.Rankings(),
	}, nil
}

// Games reads every stored game file for a year: the required regular
// season file plus the postseason file when one exists. Readers that only
// need schedules share this with the ranking build.
func Games(st *store.JSONStore, year int) ([]cfbd.Game, []string, error) {
	return loadGames(st, year, true)
}

func loadGames(st *store.JSONStore, year int, includePostseason bool) ([]cfbd.Game, []string, error) {
	raw, err := st.ReadRaw(cfbd.GamesPath(year, cfbd.SeasonRegular))
	if err != nil {
		return nil, nil, fmt.Errorf("reading regular season games for %d: %w", year, err)
	}
	games, err := cfbd.DecodeGames(raw)
	if err != nil {
		return nil, nil, err
	}
	seasonTypes := []string{cfbd.SeasonRegular}

	if includePostseason {
		rawPost, err := st.ReadRaw(cfbd.GamesPath(year, cfbd.SeasonPostseason))
		if err == nil {
			post, err := cfbd.DecodeGames(rawPost)
			if err != nil {
				return nil, nil, err
			}
			games = append(games, post...)
			seasonTypes = append(seasonTypes, cfbd.SeasonPostseason)
		} else if !os.IsNotExist(err) {
			return nil, nil, err
		}
	}

	return games, seasonTypes, nil
}

// DerivedPath is the store-relative location of a season's cached rankings.
func DerivedPath(year int) string {
	return fmt.Sprintf("rankings/%d.json", year)
}

// Load reads a previously written artifact from the derived store. A
// missing file surfaces as os.ErrNotExist.
func Load(st *store.JSONStore, year int) (*SeasonRankings, error) {
	var sr SeasonRankings
	if err := st.ReadJSON(DerivedPath(year), &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

func Write(st *store.JSONStore, sr *SeasonRankings) error {
	return st.WriteJSON(DerivedPath(sr.Season), sr)
}

// Ensure is the serving read path: the cached artifact when one exists,
// otherwise a fresh build from raw when computeMissing allows it.
func Ensure(raw, derived *store.JSONStore, year int, computeMissing, writeDerived bool) (*SeasonRankings, error) {
	sr, err := Load(derived, year)
	if err == nil {
		return sr, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	if !computeMissing {
		return nil, fmt.Errorf("no cached rankings for season %d", year)
	}

	sr, err = Build(raw, year)
	if err != nil {
		return nil, err
	}
	if writeDerived {
		if err := Write(derived, sr); err != nil {
			return nil, err
		}
	}
	return sr, nil
}
