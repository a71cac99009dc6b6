package main

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/mrnasser/dewey.beer/internal/brew"
	"github.com/mrnasser/dewey.beer/internal/recipes"
)

func newRecipeTestServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			notes TEXT,
			inputs_json TEXT NOT NULL,
			derived_json TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating recipes table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return &server{db: db, recipes: &recipes.Store{DB: db}}
}

func seedRecipe(t *testing.T, srv *server) int64 {
	t.Helper()

	rc := brew.RecipeContext{
		Name: "House Pale",
		Fermentables: []brew.Fermentable{
			{Name: "2-Row", WeightLb: 10, PotentialPPG: 37, ColorLovibond: 2},
		},
		Hops: []brew.HopAddition{
			{Name: "Magnum", WeightOz: 1, AlphaAcid: 12, TimeMinutes: 60, Use: brew.HopBoil},
			{Name: "Citra", WeightOz: 2, AlphaAcid: 12, Use: brew.HopDry},
		},
		Equipment: brew.EquipmentProfile{BatchVolumeGal: 5, EfficiencyPercent: 75},
		Yeast:     brew.YeastProfile{CellsPerUnit: 100, UnitCount: 1, ViabilityPercent: 95, PitchRate: 0.75},
		Keg:       brew.KegConfig{ServingTempF: 38, CO2Volumes: 2.4, LineResistPSI: 2.2},
	}

	id, err := srv.recipes.Save(recipes.Snapshot{
		Title:   "House Pale v3",
		Notes:   "competition batch",
		Context: rc,
		Derived: brew.Summarize(rc),
	})
	if err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return id
}

func withIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleRecipeCardReturnsPlainText(t *testing.T) {
	srv := newRecipeTestServer(t)
	seedRecipe(t, srv)

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/recipes/1/card", nil), "1")
	rr := httptest.NewRecorder()
	srv.handleRecipeCard(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}

	body := rr.Body.String()
	for _, expected := range []string{"House Pale v3", "OG 1.", "Fermentables:", "2-Row", "dry hop", "Notes: competition batch"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func TestHandleRecipeCardUnknownID(t *testing.T) {
	srv := newRecipeTestServer(t)

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/recipes/99/card", nil), "99")
	rr := httptest.NewRecorder()
	srv.handleRecipeCard(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleRecipeGetReadsSnapshotWithoutRecalculation(t *testing.T) {
	srv := newRecipeTestServer(t)
	id := seedRecipe(t, srv)

	snap, err := srv.recipes.Get(id)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}

	if snap.Derived.OriginalGravity <= 1.0 {
		t.Fatalf("expected derived OG from snapshot, got %v", snap.Derived.OriginalGravity)
	}
	if snap.Context.Name != "House Pale" {
		t.Fatalf("unexpected context: %+v", snap.Context)
	}
}
