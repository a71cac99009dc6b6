package recipes

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/mrnasser/dewey.beer/internal/brew"
)

func newTestStore(t *testing.T) *Store {
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
	return &Store{DB: db}
}

func sampleContext() brew.RecipeContext {
	return brew.RecipeContext{
		Name: "House Pale",
		Fermentables: []brew.Fermentable{
			{Name: "2-Row", WeightLb: 10, PotentialPPG: 37, ColorLovibond: 2},
		},
		Hops: []brew.HopAddition{
			{Name: "Magnum", WeightOz: 1, AlphaAcid: 12, TimeMinutes: 60, Use: brew.HopBoil},
		},
		Equipment: brew.EquipmentProfile{BatchVolumeGal: 5, EfficiencyPercent: 72},
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	rc := sampleContext()
	derived := brew.Summarize(rc)

	id, err := store.Save(Snapshot{Title: "House Pale v3", Notes: "less crystal", Context: rc, Derived: derived})
	if err != nil {
		t.Fatalf("save recipe: %v", err)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}

	if got.Title != "House Pale v3" || got.Notes != "less crystal" {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if len(got.Context.Fermentables) != 1 || got.Context.Fermentables[0].Name != "2-Row" {
		t.Fatalf("inputs did not round-trip: %+v", got.Context)
	}

	// The snapshot is read back verbatim, not recalculated.
	if got.Derived != derived {
		t.Fatalf("derived snapshot changed on read: %+v vs %+v", got.Derived, derived)
	}
}

func TestSaveFallsBackToContextName(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Save(Snapshot{Context: sampleContext()})
	if err != nil {
		t.Fatalf("save recipe: %v", err)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if got.Title != "House Pale" {
		t.Fatalf("expected context name as title, got %q", got.Title)
	}
}

func TestSaveRequiresSomeTitle(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(Snapshot{}); err == nil {
		t.Fatal("expected error for untitled recipe")
	}
}

func TestListFiltersAndCarriesHeadline(t *testing.T) {
	store := newTestStore(t)

	rc := sampleContext()
	derived := brew.Summarize(rc)

	if _, err := store.Save(Snapshot{Title: "House Pale", Context: rc, Derived: derived}); err != nil {
		t.Fatalf("save recipe: %v", err)
	}
	if _, err := store.Save(Snapshot{Title: "Winter Stout", Notes: "roasty", Context: rc, Derived: derived}); err != nil {
		t.Fatalf("save recipe: %v", err)
	}

	all, err := store.List("")
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(all))
	}
	if all[0].ABV == 0 || all[0].IBU == 0 {
		t.Fatalf("expected headline numbers from snapshot, got %+v", all[0])
	}

	stouts, err := store.List("roasty")
	if err != nil {
		t.Fatalf("list recipes filtered: %v", err)
	}
	if len(stouts) != 1 || stouts[0].Title != "Winter Stout" {
		t.Fatalf("expected notes filter to match the stout, got %+v", stouts)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
