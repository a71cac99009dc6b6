package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/mrnasser/dewey.beer/internal/taps"
)

func newTapsTestServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE taps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			public_id TEXT NOT NULL UNIQUE,
			position INTEGER NOT NULL DEFAULT 0,
			beer TEXT NOT NULL,
			style TEXT NOT NULL DEFAULT '',
			abv NUMERIC NOT NULL DEFAULT 0,
			ibu NUMERIC NOT NULL DEFAULT 0,
			srm NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'on',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating taps table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return &server{db: db, taps: &taps.Store{DB: db}}
}

func seedTap(t *testing.T, srv *server, tap taps.Tap) taps.Tap {
	t.Helper()

	created, err := srv.taps.Create(tap)
	if err != nil {
		t.Fatalf("failed to seed tap: %v", err)
	}
	return created
}

func TestHandleBoardShowsOnlyPouringTaps(t *testing.T) {
	srv := newTapsTestServer(t)

	seedTap(t, srv, taps.Tap{Beer: "House Pale", Position: 1, SRM: 6.5, Status: taps.StatusOnTap})
	seedTap(t, srv, taps.Tap{Beer: "Kicked Stout", Position: 2, Status: taps.StatusKicked})
	seedTap(t, srv, taps.Tap{Beer: "Next IPA", Position: 3, Status: taps.StatusOnDeck})

	req := httptest.NewRequest(http.MethodGet, "/api/board", nil)
	rr := httptest.NewRecorder()
	srv.handleBoard(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var board []taps.Tap
	if err := json.Unmarshal(rr.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}

	if len(board) != 1 || board[0].Beer != "House Pale" {
		t.Fatalf("expected only the pouring tap, got %+v", board)
	}
	if board[0].SwatchHex == "" {
		t.Fatal("expected a derived color swatch")
	}
}

func TestHandleTapsListCarriesSwatches(t *testing.T) {
	srv := newTapsTestServer(t)

	seedTap(t, srv, taps.Tap{Beer: "Golden", Position: 1, SRM: 3})
	seedTap(t, srv, taps.Tap{Beer: "Stout", Position: 2, SRM: 35})

	req := httptest.NewRequest(http.MethodGet, "/api/taps", nil)
	rr := httptest.NewRecorder()
	srv.handleTapsList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var board []taps.Tap
	if err := json.Unmarshal(rr.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode taps: %v", err)
	}

	if len(board) != 2 {
		t.Fatalf("expected 2 taps, got %d", len(board))
	}
	if board[0].SwatchHex == board[1].SwatchHex {
		t.Fatalf("a 3 SRM golden and a 35 SRM stout must not share a swatch: %+v", board)
	}
}

func TestHandleTapsCreateRejectsBadStatus(t *testing.T) {
	srv := newTapsTestServer(t)

	body := `{"Beer": "Mystery", "Status": "empty"}`
	req := httptest.NewRequest(http.MethodPost, "/api/taps", jsonBody(body))
	rr := httptest.NewRecorder()
	srv.handleTapsCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
