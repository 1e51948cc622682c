package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"

	"github.com/zhales05/college-football-rankings/internal/cfbd"
	"github.com/zhales05/college-football-rankings/internal/pipeline"
	"github.com/zhales05/college-football-rankings/internal/ranking"
	"github.com/zhales05/college-football-rankings/internal/store"
)

// ---- shared test helpers ----

func pts(n int) *int { return &n }

// testCfg wires a ServerConfig at two temp roots with on-demand compute
// enabled and no upstream key.
func testCfg(t *testing.T) ServerConfig {
	t.Helper()
	return ServerConfig{
		RawRoot:        t.TempDir(),
		DerivedRoot:    t.TempDir(),
		WriteDerived:   true,
		ComputeMissing: true,
		Season:         2024,
	}
}

// played builds a completed regular-or-postseason game between two
// top-division teams.
func played(id, week int, seasonType, date, home string, homePoints int, away string, awayPoints int) cfbd.Game {
	return cfbd.Game{
		ID:           id,
		Season:       2024,
		Week:         week,
		SeasonType:   seasonType,
		StartDate:    date,
		HomeTeam:     home,
		HomeDivision: "fbs",
		HomePoints:   pts(homePoints),
		AwayTeam:     away,
		AwayDivision: "fbs",
		AwayPoints:   pts(awayPoints),
	}
}

// seedSeason stores a small 2024 season in cfg's raw root:
//
//	regular W1: Georgia 35-20 Alabama; Texas 28-10 Mercer (FCS)
//	regular W2: Alabama 30-10 Texas
//	regular W3: Oregon 27-24 at Georgia
//	regular W4: Fresno State at San Jose State, not yet played
//	postseason: Alabama 21-17 Oregon (only when withPostseason)
func seedSeason(t *testing.T, cfg ServerConfig, withPostseason bool) {
	t.Helper()
	st := store.NewJSONStore(cfg.RawRoot)

	regular := []cfbd.Game{
		played(101, 1, cfbd.SeasonRegular, "2024-08-31T23:30:00.000Z", "Georgia", 35, "Alabama", 20),
		{
			ID: 102, Season: 2024, Week: 1, SeasonType: cfbd.SeasonRegular,
			StartDate: "2024-08-31T20:00:00.000Z",
			HomeTeam:  "Texas", HomeDivision: "fbs", HomePoints: pts(28),
			AwayTeam: "Mercer", AwayDivision: "fcs", AwayPoints: pts(10),
		},
		played(103, 2, cfbd.SeasonRegular, "2024-09-07T19:00:00.000Z", "Alabama", 30, "Texas", 10),
		played(104, 3, cfbd.SeasonRegular, "2024-09-14T23:00:00.000Z", "Georgia", 24, "Oregon", 27),
		{
			ID: 105, Season: 2024, Week: 4, SeasonType: cfbd.SeasonRegular,
			StartDate: "2024-09-21T22:00:00.000Z",
			HomeTeam:  "San Jose State", HomeDivision: "fbs",
			AwayTeam: "Fresno State", AwayDivision: "fbs",
		},
	}
	if err := st.WriteJSON(cfbd.GamesPath(2024, cfbd.SeasonRegular), regular); err != nil {
		t.Fatalf("seed regular: %v", err)
	}

	if withPostseason {
		post := []cfbd.Game{
			played(201, 1, cfbd.SeasonPostseason, "2025-01-01T18:00:00.000Z", "Alabama", 21, "Oregon", 17),
		}
		if err := st.WriteJSON(cfbd.GamesPath(2024, cfbd.SeasonPostseason), post); err != nil {
			t.Fatalf("seed postseason: %v", err)
		}
	}
}

// ---- common helpers ----

func TestResolveTeam(t *testing.T) {
	cfg := testCfg(t)
	seedSeason(t, cfg, false)
	games, _, err := seasonGames(context.Background(), cfg, 2024)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("case-insensitive match", func(t *testing.T) {
		name, err := resolveTeam(games, "georgia")
		if err != nil {
			t.Fatal(err)
		}
		if name != "Georgia" {
			t.Errorf("name = %q, want Georgia", name)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		name, err := resolveTeam(games, "  MERCER ")
		if err != nil {
			t.Fatal(err)
		}
		if name != "Mercer" {
			t.Errorf("name = %q, want Mercer", name)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := resolveTeam(games, "   "); err == nil || !strings.Contains(err.Error(), "team is required") {
			t.Errorf("err = %v, want team is required", err)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		if _, err := resolveTeam(games, "Slippery Rock"); err == nil || !strings.Contains(err.Error(), "no games found") {
			t.Errorf("err = %v, want no games found", err)
		}
	})
}

func TestRankOf(t *testing.T) {
	table := []ranking.Ranking{
		{Rank: 1, Team: "Georgia"},
		{Rank: 2, Team: "Alabama"},
	}
	if got := rankOf(table, "Alabama"); got != 2 {
		t.Errorf("rankOf(Alabama) = %d, want 2", got)
	}
	if got := rankOf(table, "Mercer"); got != 0 {
		t.Errorf("rankOf(Mercer) = %d, want 0", got)
	}
}

func TestSeasonGames_NoCacheNoKey(t *testing.T) {
	cfg := testCfg(t)

	_, _, err := seasonGames(context.Background(), cfg, 2024)
	if err == nil {
		t.Fatal("expected an error for an empty cache and no API key")
	}
	if !strings.Contains(err.Error(), "CFBD_API_KEY") || !strings.Contains(err.Error(), "cfbrank fetch") {
		t.Errorf("err = %v, want fetch hint", err)
	}
}

func TestEnsureRankings_ComputesAndCaches(t *testing.T) {
	cfg := testCfg(t)
	seedSeason(t, cfg, true)

	sr, err := ensureRankings(context.Background(), cfg, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if sr.Season != 2024 {
		t.Errorf("season = %d, want 2024", sr.Season)
	}
	if len(sr.Rankings) != 4 {
		t.Fatalf("rankings len = %d, want 4", len(sr.Rankings))
	}
	if !cfg.derivedStore().Exists(pipeline.DerivedPath(2024)) {
		t.Error("derived artifact was not written")
	}
}

// ---- HTTP surface ----

func TestServeRankings(t *testing.T) {
	cfg := testCfg(t)
	seedSeason(t, cfg, false)
	logger := log.NewNopLogger()

	t.Run("top limits rows", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rankings?year=2024&top=2", nil)
		rec := httptest.NewRecorder()
		serveRankings(logger, cfg, rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var sr pipeline.SeasonRankings
		if err := json.Unmarshal(rec.Body.Bytes(), &sr); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(sr.Rankings) != 2 {
			t.Errorf("rankings len = %d, want 2", len(sr.Rankings))
		}
	})

	t.Run("bad year is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rankings?year=twenty", nil)
		rec := httptest.NewRecorder()
		serveRankings(logger, cfg, rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad top is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rankings?top=-3", nil)
		rec := httptest.NewRecorder()
		serveRankings(logger, cfg, rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestWithAuth(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }

	t.Run("header key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		req.Header.Set("X-API-Key", "sekrit")
		rec := httptest.NewRecorder()
		withAuth("sekrit", "X-API-Key", next)(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("bearer fallback accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		req.Header.Set("Authorization", "Bearer sekrit")
		rec := httptest.NewRecorder()
		withAuth("sekrit", "X-API-Key", next)(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		req.Header.Set("X-API-Key", "guess")
		rec := httptest.NewRecorder()
		withAuth("sekrit", "X-API-Key", next)(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"unauthorized"}` {
			t.Errorf("body = %s", got)
		}
	})

	t.Run("missing key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		rec := httptest.NewRecorder()
		withAuth("sekrit", "X-API-Key", next)(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("empty configured key disables auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		rec := httptest.NewRecorder()
		withAuth("", "X-API-Key", next)(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}
