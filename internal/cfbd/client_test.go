package cfbd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhales05/college-football-rankings/internal/store"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *store.JSONStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st := store.NewJSONStore(t.TempDir())
	c := NewClient(st, "test-key")
	c.BaseURL = srv.URL
	c.Sleep = 0
	return c, st
}

func TestFetchRaw_SendsBearerAndCaches(t *testing.T) {
	hits := 0
	c, st := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}
		if got := r.URL.RawQuery; got != "year=2024&seasonType=regular" {
			t.Errorf("query = %q, want year=2024&seasonType=regular", got)
		}
		w.Write([]byte(`[]`))
	})

	games, err := c.GamesRegular(context.Background(), 2024, false)
	if err != nil {
		t.Fatalf("GamesRegular error: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("games len = %d, want 0", len(games))
	}
	if !st.Exists("games/2024-regular.json") {
		t.Error("response should be written through to the store")
	}

	// Second call must come from the cache.
	if _, err := c.GamesRegular(context.Background(), 2024, false); err != nil {
		t.Fatalf("cached GamesRegular error: %v", err)
	}
	if hits != 1 {
		t.Errorf("upstream hits = %d, want 1", hits)
	}

	// Forcing bypasses the cache.
	if _, err := c.GamesRegular(context.Background(), 2024, true); err != nil {
		t.Fatalf("forced GamesRegular error: %v", err)
	}
	if hits != 2 {
		t.Errorf("upstream hits = %d, want 2 after force", hits)
	}
}

func TestFetchRaw_ErrorStatus(t *testing.T) {
	c, st := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	if _, err := c.GamesRegular(context.Background(), 2024, false); err == nil {
		t.Fatal("want error for non-2xx response")
	}
	if st.Exists("games/2024-regular.json") {
		t.Error("failed responses must not be cached")
	}
}

func TestGames_MergesSeasonTypes(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("seasonType") == SeasonPostseason {
			w.Write([]byte(`[{"id": 2, "season_type": "postseason", "home_team": "Georgia", "away_team": "Texas"}]`))
			return
		}
		w.Write([]byte(`[{"id": 1, "season_type": "regular", "home_team": "Texas", "away_team": "Georgia"}]`))
	})

	games, err := c.Games(context.Background(), 2024, false)
	if err != nil {
		t.Fatalf("Games error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("games len = %d, want 2", len(games))
	}
	if games[0].SeasonType != SeasonRegular || games[1].SeasonType != SeasonPostseason {
		t.Errorf("order = %s,%s, want regular then postseason", games[0].SeasonType, games[1].SeasonType)
	}
}
