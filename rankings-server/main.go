package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhales05/college-football-rankings/internal/config"
)

// RankingsArgs is the input schema for get_rankings.
type RankingsArgs struct {
	Year int `json:"year" jsonschema:"Season year (0 = configured default)"`
	Top  int `json:"top" jsonschema:"Limit to the top N rows (0 = full table)"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr           = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath        = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		rawRoot        = flag.String("raw-root", "data/raw", "root directory for raw season JSON")
		derivedRoot    = flag.String("derived-root", "data/derived", "root directory for computed artifacts")
		writeDerived   = flag.Bool("write-derived", true, "write computed rankings to the derived root")
		computeMissing = flag.Bool("compute-missing", true, "compute rankings when the artifact is missing")
		requireAuth    = flag.Bool("require-auth", true, "require API key auth via CFB_MCP_API_KEY")
		authHeader     = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
		season         = flag.Int("season", 0, "default season year (0 = current)")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))

	defaultSeason := *season
	if defaultSeason == 0 {
		defaultSeason = config.CurrentSeason(time.Now())
	}

	cfg := ServerConfig{
		RawRoot:        *rawRoot,
		DerivedRoot:    *derivedRoot,
		WriteDerived:   *writeDerived,
		ComputeMissing: *computeMissing,
		Season:         defaultSeason,
		UpstreamKey:    strings.TrimSpace(os.Getenv("CFBD_API_KEY")),
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "cfb-rankings-mcp",
			Version: "1.0.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_rankings",
		Description: "Computed ranking table for a season (score, record, 1-based ranks)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RankingsArgs) (*mcp.CallToolResult, any, error) {
		sr, err := ensureRankings(ctx, cfg, cfg.resolveYear(args.Year))
		if err != nil {
			return toolError(err), nil, nil
		}
		out := *sr
		if args.Top > 0 && len(out.Rankings) > args.Top {
			out.Rankings = out.Rankings[:args.Top]
		}
		return toolMarshal(out)
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_team_summary",
		Description: "One team's rank, record, schedule strength, score, and game log",
	}, teamSummaryHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_team_schedule",
		Description: "A team's completed games in order with its running record",
	}, teamScheduleHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_head_to_head",
		Description: "Season series between two teams plus both teams' standings",
	}, headToHeadHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_sos_table",
		Description: "Top-division teams ordered by solved schedule strength",
	}, sosTableHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_streaks",
		Description: "Win-streak stats for ranked teams in table order",
	}, streaksHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_postseason_impact",
		Description: "Rank movement caused by folding in postseason results",
	}, postseasonImpactHandler(cfg))

	addTool(server, &registry, &mcp.Tool{
		Name:        "get_season_status",
		Description: "What is stored for a season: games, weeks, teams, artifacts",
	}, seasonStatusHandler(cfg))

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(os.Getenv("CFB_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		level.Error(logger).Log("msg", "CFB_MCP_API_KEY is required (set env var or run with --require-auth=false)")
		os.Exit(1)
	}
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return withAuth(apiKey, *authHeader, next)
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.HandleFunc("/tools", guard(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	r.HandleFunc("/rankings", guard(func(w http.ResponseWriter, req *http.Request) {
		serveRankings(logger, cfg, w, req)
	}))

	r.HandleFunc(*mcpPath, guard(handler.ServeHTTP))

	term := make(chan os.Signal, 1)
	signal.Notify(term, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	level.Info(logger).Log("msg", "Listening for HTTP", "addr", *addr, "mcp_path", *mcpPath, "season", cfg.Season)
	httpSrv := &http.Server{Addr: *addr, Handler: r}
	go func() {
		if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "Error listening for HTTP", "err", err)
			os.Exit(1)
		}
	}()

	s := <-term
	level.Info(logger).Log("msg", "Shutting down due to signal", "signal", s)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		level.Error(logger).Log("msg", "Shutdown error", "err", err)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// serveRankings is the plain-HTTP view of get_rankings for curl and
// dashboards. Year and top come from query parameters.
func serveRankings(logger log.Logger, cfg ServerConfig, w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}
		year = n
	}
	top := 0
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "top must be a non-negative integer", http.StatusBadRequest)
			return
		}
		top = n
	}

	sr, err := ensureRankings(r.Context(), cfg, cfg.resolveYear(year))
	if err != nil {
		level.Error(logger).Log("msg", "serving rankings", "year", year, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := *sr
	if top > 0 && len(out.Rankings) > top {
		out.Rankings = out.Rankings[:top]
	}

	w.Header().Set("Content-Type", "application/json")
	b, _ := json.MarshalIndent(out, "", "  ")
	w.Write(b)
}

// withAuth guards a handler with a shared API key read from the configured
// header, falling back to a bearer token. An empty key disables the check.
func withAuth(apiKey, header string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			next(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(header))
		if key == "" {
			if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next(w, r)
	}
}

func toolMarshal(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
