package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mrnasser/dewey.beer/internal/dough"
)

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func TestHandleBrewSummary(t *testing.T) {
	srv := &server{}

	body := `{
		"Fermentables": [{"Name": "2-Row", "WeightLb": 10, "PotentialPPG": 37, "ColorLovibond": 2}],
		"Hops": [{"Name": "Magnum", "WeightOz": 1, "AlphaAcid": 12, "TimeMinutes": 60, "Use": "boil"}],
		"Equipment": {"BatchVolumeGal": 5, "EfficiencyPercent": 75}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/brew/summary", jsonBody(body))
	rr := httptest.NewRecorder()
	srv.handleBrewSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var summary struct {
		OriginalGravity float64
		IBU             float64
		SRMHex          string
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}

	if summary.OriginalGravity <= 1.05 || summary.OriginalGravity >= 1.06 {
		t.Fatalf("unexpected OG %v", summary.OriginalGravity)
	}
	if summary.IBU <= 0 {
		t.Fatalf("expected positive IBU, got %v", summary.IBU)
	}
	if summary.SRMHex == "" {
		t.Fatal("expected a color swatch")
	}
}

func TestHandleDoughPlan_AutoHydration(t *testing.T) {
	srv := &server{styles: dough.DefaultStyles()}

	body := `{
		"style": "New York",
		"panDiameterIn": 16,
		"panCount": 2,
		"roomHours": 3,
		"coldHours": 48,
		"bakeAt": "2026-07-04T18:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/dough/plan", jsonBody(body))
	rr := httptest.NewRecorder()
	srv.handleDoughPlan(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var plan doughPlanResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}

	if !plan.Auto {
		t.Fatal("expected auto-hydration mode")
	}
	// NY default 62 + 2*0.5 for the extra cold day + 0.25 for the extra room hour.
	if plan.Hydration < 63.2 || plan.Hydration > 63.3 {
		t.Fatalf("unexpected auto hydration %v", plan.Hydration)
	}
	if plan.Result.Masses.Flour == 0 || plan.Result.Masses.Water == 0 {
		t.Fatalf("expected formulated masses, got %+v", plan.Result.Masses)
	}

	bake := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)
	if !plan.Timeline.Ball.Equal(bake.Add(-4 * time.Hour)) {
		t.Fatalf("expected ball 4h before bake, got %v", plan.Timeline.Ball)
	}
	if !plan.Timeline.Mix.Equal(bake.Add(-55 * time.Hour)) {
		t.Fatalf("expected mix 55h before bake, got %v", plan.Timeline.Mix)
	}
}

func TestHandleDoughPlan_ManualHydrationIsAuthoritative(t *testing.T) {
	srv := &server{styles: dough.DefaultStyles()}

	body := `{
		"style": "New York",
		"panDiameterIn": 16,
		"panCount": 1,
		"roomHours": 3,
		"coldHours": 48,
		"bakeAt": "2026-07-04T18:00:00Z",
		"manualHydration": 58
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/dough/plan", jsonBody(body))
	rr := httptest.NewRecorder()
	srv.handleDoughPlan(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var plan doughPlanResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}

	if plan.Auto {
		t.Fatal("manual hydration must disable the auto rule")
	}
	if plan.Hydration != 58 {
		t.Fatalf("expected the user's hydration verbatim, got %v", plan.Hydration)
	}
}

func TestHandleDoughPlan_UnknownStyle(t *testing.T) {
	srv := &server{styles: dough.DefaultStyles()}

	req := httptest.NewRequest(http.MethodPost, "/api/dough/plan", jsonBody(`{"style": "Chicago Tavern"}`))
	rr := httptest.NewRecorder()
	srv.handleDoughPlan(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleLinkBuild(t *testing.T) {
	srv := &server{}

	req := httptest.NewRequest(http.MethodGet,
		"/api/links/build?base=https%3A%2F%2Fdewey.beer%2Fshop&source=newsletter&medium=email", nil)
	rr := httptest.NewRecorder()
	srv.handleLinkBuild(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := "https://dewey.beer/shop?utm_medium=email&utm_source=newsletter"
	if out["url"] != want {
		t.Fatalf("built url = %q, want %q", out["url"], want)
	}
}
