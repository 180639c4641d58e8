package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, srv *Server, lineups []Lineup) {
	t.Helper()
	if err := os.MkdirAll(srv.cfg.DataDir, 0o755); err != nil {
		t.Fatalf("create data dir: %v", err)
	}
	data, err := json.Marshal(lineups)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srv.cfg.DataDir, "nades.json"), data, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
}

func testDataset() []Lineup {
	return []Lineup{
		{Slug: "window-from-t-ramp", Map: "mirage", Team: "t", Type: "smoke", TitleTo: "Window", TitleFrom: "T Ramp", Technique: "left_jump"},
		{Slug: "xbox-from-t-spawn", Map: "dust2", Team: "t", Type: "smoke", TitleTo: "Xbox", TitleFrom: "T Spawn", Technique: "left"},
		{Slug: "coffins-from-banana", Map: "inferno", Team: "ct", Type: "smoke", TitleTo: "Coffins", TitleFrom: "Banana", Technique: "run_left"},
	}
}

func TestLineupsEndpoint(t *testing.T) {
	ts, srv := newTestServer(t)
	writeDataset(t, srv, testDataset())

	resp := doRequest(t, ts, http.MethodGet, "/api/lineups", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["total"] != float64(3) {
		t.Fatalf("expected 3 lineups, got %#v", body["total"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/lineups?map=mirage", nil)
	if body := decodeBody(t, resp); body["total"] != float64(1) {
		t.Fatalf("expected 1 mirage lineup, got %#v", body["total"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/lineups?side=t", nil)
	if body := decodeBody(t, resp); body["total"] != float64(2) {
		t.Fatalf("expected 2 t-side lineups, got %#v", body["total"])
	}
}

func TestCatalogCacheLifecycle(t *testing.T) {
	ts, srv := newTestServer(t)
	writeDataset(t, srv, testDataset())

	resp := doRequest(t, ts, http.MethodGet, "/api/lineups", nil)
	if body := decodeBody(t, resp); body["total"] != float64(3) {
		t.Fatalf("expected 3 lineups, got %#v", body["total"])
	}

	// A rewritten dataset is invisible until the cache is cleared.
	writeDataset(t, srv, testDataset()[:1])
	resp = doRequest(t, ts, http.MethodGet, "/api/lineups", nil)
	if body := decodeBody(t, resp); body["total"] != float64(3) {
		t.Fatalf("expected cached 3 lineups, got %#v", body["total"])
	}

	resp = doRequestWith(t, ts, http.MethodPost, "/api/admin/cache/clear", nil, nil, testAdminToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp = doRequest(t, ts, http.MethodGet, "/api/lineups", nil)
	if body := decodeBody(t, resp); body["total"] != float64(1) {
		t.Fatalf("expected 1 lineup after cache clear, got %#v", body["total"])
	}
}

func TestCacheClearRequiresAdminToken(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/admin/cache/clear", nil)
	expectError(t, resp, http.StatusUnauthorized)
}

func TestCatalogMissingDataset(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/lineups", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["total"] != float64(0) {
		t.Fatalf("expected empty catalog, got %#v", body["total"])
	}
}

func TestCatalogSortsByMapOrder(t *testing.T) {
	lineups, err := loadLineupsFrom(t, []Lineup{
		{Slug: "c", Map: "nuke", TitleTo: "A"},
		{Slug: "a", Map: "mirage", TitleTo: "B"},
		{Slug: "b", Map: "mirage", TitleTo: "A"},
	})
	if err != nil {
		t.Fatalf("load lineups: %v", err)
	}
	got := []string{lineups[0].Slug, lineups[1].Slug, lineups[2].Slug}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func loadLineupsFrom(t *testing.T, lineups []Lineup) ([]Lineup, error) {
	t.Helper()
	dir := t.TempDir()
	data, err := json.Marshal(lineups)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	path := filepath.Join(dir, "nades.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return loadLineups(path)
}

func TestIndexView(t *testing.T) {
	ts, srv := newTestServer(t)
	writeDataset(t, srv, testDataset())

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestAdminView(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/admin", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
