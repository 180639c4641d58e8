package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"nadebook/internal/config"
	"nadebook/internal/db"
)

const testAdminToken = "test-admin-token"

func newTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(dir, "nadebook.db")
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.StagingDir = filepath.Join(dir, "staging")
	cfg.AdminToken = testAdminToken

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	srv := New(conn, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, srv
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	return doRequestWith(t, ts, method, path, payload, nil, "")
}

func doRequestWith(t *testing.T, ts *httptest.Server, method, path string, payload any, cookie *http.Cookie, adminToken string) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if adminToken != "" {
		req.Header.Set("X-Admin-Token", adminToken)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

// loginAccount logs a nickname in and returns the account hash plus the
// session cookie issued by the server.
func loginAccount(t *testing.T, ts *httptest.Server, nickname string) (string, *http.Cookie) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/login", map[string]string{"nickname": nickname})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var cookie *http.Cookie
	for _, candidate := range resp.Cookies() {
		if candidate.Name == accountCookieName {
			cookie = candidate
		}
	}
	if cookie == nil {
		t.Fatalf("expected %s cookie", accountCookieName)
	}
	body := decodeBody(t, resp)
	hash, ok := body["hash"].(string)
	if !ok {
		t.Fatalf("expected hash string, got %#v", body["hash"])
	}
	return hash, cookie
}

func submitMultipart(t *testing.T, ts *httptest.Server, fields map[string]string, files map[string][]byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for slot, data := range files {
		part, err := writer.CreateFormFile(slot, slot+".jpg")
		if err != nil {
			t.Fatalf("create file part %s: %v", slot, err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write file part %s: %v", slot, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/submissions", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func screenshotSet() map[string][]byte {
	return map[string][]byte{
		"position": []byte("position-bytes"),
		"aim":      []byte("aim-bytes"),
		"result":   []byte("result-bytes"),
	}
}

func screenshotFields() map[string]string {
	return map[string]string{
		"map":         "mirage",
		"side":        "t",
		"lineup_name": "Window from T Ramp",
		"stand_desc":  "Stand in the corner by the bench",
		"aim_desc":    "Aim at the antenna tip",
		"throw_type":  "left_jump",
	}
}

func submitID(t *testing.T, resp *http.Response) uint {
	t.Helper()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d (%s)", http.StatusOK, resp.StatusCode, data)
	}
	body := decodeBody(t, resp)
	id, ok := body["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected positive id, got %#v", body["id"])
	}
	return uint(id)
}

func expectError(t *testing.T, resp *http.Response, status int) string {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	message, ok := body["error"].(string)
	if !ok || message == "" {
		t.Fatalf("expected error message, got %#v", body)
	}
	return message
}
