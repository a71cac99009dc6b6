package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mrnasser/dewey.beer/internal/assets"
	"github.com/mrnasser/dewey.beer/internal/batchapi"
	"github.com/mrnasser/dewey.beer/internal/brew"
	"github.com/mrnasser/dewey.beer/internal/config"
	"github.com/mrnasser/dewey.beer/internal/db"
	"github.com/mrnasser/dewey.beer/internal/dough"
	"github.com/mrnasser/dewey.beer/internal/greeter"
	"github.com/mrnasser/dewey.beer/internal/links"
	"github.com/mrnasser/dewey.beer/internal/migrations"
	"github.com/mrnasser/dewey.beer/internal/recipes"
	"github.com/mrnasser/dewey.beer/internal/seed"
	"github.com/mrnasser/dewey.beer/internal/syncer"
	"github.com/mrnasser/dewey.beer/internal/taps"
)

type server struct {
	auth    *authService
	db      *sql.DB
	taps    *taps.Store
	assets  *assets.Store
	links   *links.Store
	recipes *recipes.Store
	styles  []dough.StyleProfile
	sync    *syncer.Client
	batches *batchapi.Client
	greeter *greeter.Client
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	if _, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	styles, err := dough.LoadStyles(cfg.StyleFile)
	if err != nil {
		log.Fatalf("failed to load dough styles: %v", err)
	}

	srv := &server{
		auth:    newAuthService(database, cfg.SessionSecret),
		db:      database,
		taps:    &taps.Store{DB: database},
		assets:  &assets.Store{DB: database},
		links:   &links.Store{DB: database},
		recipes: &recipes.Store{DB: database},
		styles:  styles,
		sync:    syncer.New(cfg.SyncURL, cfg.SyncToken),
		batches: batchapi.New(cfg.BatchAPIURL, cfg.BatchAPIUser, cfg.BatchAPIKey),
		greeter: greeter.New(cfg.AIURL, cfg.AIKey),
	}

	r := chi.NewRouter()
	r.Use(srv.authMiddleware)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Post("/login", srv.handleLogin)
	r.Post("/logout", srv.handleLogout)

	// The board view runs on a wall-mounted display with no session.
	r.Get("/api/board", srv.handleBoard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/taps", srv.handleTapsList)
		r.Post("/taps", srv.handleTapsCreate)
		r.Put("/taps/{id}", srv.handleTapsUpdate)
		r.Delete("/taps/{id}", srv.handleTapsDelete)
		r.Post("/taps/{id}/describe", srv.handleTapDescribe)

		r.Post("/brew/summary", srv.handleBrewSummary)
		r.Post("/brew/schedule", srv.handleBrewSchedule)

		r.Get("/styles", srv.handleStyles)
		r.Post("/dough/plan", srv.handleDoughPlan)

		r.Get("/recipes", srv.handleRecipesList)
		r.Post("/recipes", srv.handleRecipeSave)
		r.Get("/recipes/{id}", srv.handleRecipeGet)
		r.Get("/recipes/{id}/card", srv.handleRecipeCard)

		r.Get("/assets", srv.handleAssetsList)
		r.Post("/assets", srv.handleAssetsCreate)
		r.Post("/assets/{id}/tasks", srv.handleAssetTaskCreate)
		r.Post("/assets/{id}/entries", srv.handleAssetEntryCreate)
		r.Get("/assets/{id}/status", srv.handleAssetStatus)

		r.Get("/links", srv.handleLinksList)
		r.Post("/links", srv.handleLinksCreate)
		r.Delete("/links/{id}", srv.handleLinksDelete)
		r.Get("/links/build", srv.handleLinkBuild)

		r.Get("/batches", srv.handleBatches)
		r.Post("/sync/{collection}", srv.handleSync)
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// ---- auth & plumbing ----

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		open := path == "/login" ||
			path == "/api/board" ||
			path == "/static" || strings.HasPrefix(path, "/static/")
		if open {
			next.ServeHTTP(w, r)
			return
		}

		if !isAuthenticated(r, s.auth) {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := s.auth.validateCredentials(creds.Email, creds.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, creds.Email)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// ---- tap board ----

func (s *server) listTapsWithSwatch() ([]taps.Tap, error) {
	board, err := s.taps.List()
	if err != nil {
		return nil, err
	}
	for i := range board {
		board[i].SwatchHex = brew.ColorHex(board[i].SRM)
	}
	return board, nil
}

func (s *server) handleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.listTapsWithSwatch()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load taps")
		return
	}

	// The display only shows what is actually pouring.
	pouring := make([]taps.Tap, 0, len(board))
	for _, t := range board {
		if t.Status == taps.StatusOnTap {
			pouring = append(pouring, t)
		}
	}
	respondJSON(w, http.StatusOK, pouring)
}

func (s *server) handleTapsList(w http.ResponseWriter, r *http.Request) {
	board, err := s.listTapsWithSwatch()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load taps")
		return
	}
	respondJSON(w, http.StatusOK, board)
}

func (s *server) handleTapsCreate(w http.ResponseWriter, r *http.Request) {
	var t taps.Tap
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.taps.Create(t)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created.SwatchHex = brew.ColorHex(created.SRM)
	respondJSON(w, http.StatusCreated, created)
}

func (s *server) handleTapsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tap id")
		return
	}

	var t taps.Tap
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = id

	if err := s.taps.Update(t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "tap not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t.SwatchHex = brew.ColorHex(t.SRM)
	respondJSON(w, http.StatusOK, t)
}

func (s *server) handleTapsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tap id")
		return
	}

	if err := s.taps.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "tap not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete tap")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *server) handleTapDescribe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tap id")
		return
	}

	board, err := s.taps.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load taps")
		return
	}

	for _, t := range board {
		if t.ID == id {
			text := s.greeter.Describe(r.Context(), t.Beer, t.Style)
			respondJSON(w, http.StatusOK, map[string]string{"description": text})
			return
		}
	}
	respondError(w, http.StatusNotFound, "tap not found")
}

// ---- brewing calculators ----

func (s *server) handleBrewSummary(w http.ResponseWriter, r *http.Request) {
	var rc brew.RecipeContext
	if err := json.NewDecoder(r.Body).Decode(&rc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, brew.Summarize(rc))
}

func (s *server) handleBrewSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServeAt time.Time               `json:"serveAt"`
		Steps   []brew.FermentationStep `json:"steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, brew.PlaceSchedule(req.Steps, req.ServeAt))
}

// ---- dough calculator ----

func (s *server) handleStyles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.styles)
}

type doughPlanRequest struct {
	Style         string    `json:"style"`
	PanDiameterIn float64   `json:"panDiameterIn"`
	PanCount      int       `json:"panCount"`
	RoomHours     float64   `json:"roomHours"`
	ColdHours     float64   `json:"coldHours"`
	BakeAt        time.Time `json:"bakeAt"`
	// ManualHydration, when set, is authoritative: the auto-hydration rule
	// is skipped entirely and the value is used as given.
	ManualHydration *float64 `json:"manualHydration"`
}

type doughPlanResponse struct {
	Style     string         `json:"style"`
	Hydration float64        `json:"hydration"`
	Auto      bool           `json:"autoHydration"`
	Result    dough.Result   `json:"result"`
	Timeline  dough.Timeline `json:"timeline"`
}

func (s *server) handleDoughPlan(w http.ResponseWriter, r *http.Request) {
	var req doughPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	style, ok := dough.FindStyle(s.styles, req.Style)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown dough style %q", req.Style))
		return
	}

	hydration := dough.AutoHydration(style, req.RoomHours, req.ColdHours)
	auto := true
	if req.ManualHydration != nil {
		hydration = *req.ManualHydration
		auto = false
	}

	pct := style.DefaultPercentages()
	pct.Hydration = hydration

	result := dough.Formulate(dough.Input{
		PanDiameterIn:   req.PanDiameterIn,
		PanCount:        req.PanCount,
		ThicknessFactor: style.ThicknessFactor,
		Percent:         pct,
	})

	respondJSON(w, http.StatusOK, doughPlanResponse{
		Style:     style.Name,
		Hydration: hydration,
		Auto:      auto,
		Result:    result,
		Timeline:  dough.PlanTimeline(req.BakeAt, style.BallingLeadHours, req.ColdHours, req.RoomHours),
	})
}

// ---- recipes ----

func (s *server) handleRecipesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.recipes.List(query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load recipes")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *server) handleRecipeSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string             `json:"title"`
		Notes   string             `json:"notes"`
		Context brew.RecipeContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.recipes.Save(recipes.Snapshot{
		Title:   req.Title,
		Notes:   req.Notes,
		Context: req.Context,
		Derived: brew.Summarize(req.Context),
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *server) handleRecipeGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	snap, err := s.recipes.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "recipe not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load recipe")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *server) handleRecipeCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	snap, err := s.recipes.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "recipe not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load recipe")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(renderRecipeCard(snap)))
}

// ---- maintenance tracker ----

func (s *server) handleAssetsList(w http.ResponseWriter, r *http.Request) {
	list, err := s.assets.ListAssets()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load assets")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *server) handleAssetsCreate(w http.ResponseWriter, r *http.Request) {
	var a assets.Asset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.assets.CreateAsset(a)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *server) handleAssetTaskCreate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var t assets.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.AssetID = id

	created, err := s.assets.CreateTask(t)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *server) handleAssetEntryCreate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var e assets.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e.AssetID = id

	created, err := s.assets.LogEntry(e)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *server) handleAssetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	usage, _ := strconv.ParseFloat(r.URL.Query().Get("usage"), 64)
	statuses, err := s.assets.Statuses(id, time.Now(), usage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to derive status")
		return
	}
	respondJSON(w, http.StatusOK, statuses)
}

// ---- marketing links ----

func (s *server) handleLinksList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	list, err := s.links.List(query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load links")
		return
	}

	type linkView struct {
		links.Link
		URL string
	}
	views := make([]linkView, 0, len(list))
	for _, l := range list {
		views = append(views, linkView{Link: l, URL: l.URL()})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *server) handleLinksCreate(w http.ResponseWriter, r *http.Request) {
	var l links.Link
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.links.Create(l)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *server) handleLinksDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid link id")
		return
	}

	if err := s.links.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "link not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete link")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *server) handleLinkBuild(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	built := links.Build(q.Get("base"), links.Params{
		Source:   q.Get("source"),
		Medium:   q.Get("medium"),
		Campaign: q.Get("campaign"),
		Term:     q.Get("term"),
		Content:  q.Get("content"),
	})
	respondJSON(w, http.StatusOK, map[string]string{"url": built})
}

// ---- external collaborators ----

func (s *server) handleBatches(w http.ResponseWriter, r *http.Request) {
	if !s.batches.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "batch API is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.batches.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("batch fetch failed: %v", err)
		respondError(w, http.StatusBadGateway, "failed to fetch batches")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *server) handleSync(w http.ResponseWriter, r *http.Request) {
	if !s.sync.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "sync endpoint is not configured")
		return
	}

	collection := chi.URLParam(r, "collection")
	var items any
	var err error
	switch collection {
	case "taps":
		items, err = s.taps.List()
	case "links":
		items, err = s.links.List("")
	case "recipes":
		items, err = s.recipes.List("")
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown collection %q", collection))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load collection")
		return
	}

	if err := s.sync.Push(r.Context(), collection, items); err != nil {
		log.Printf("sync push failed: %v", err)
		respondError(w, http.StatusBadGateway, "sync failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "synced"})
}
