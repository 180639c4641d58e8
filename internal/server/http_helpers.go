package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func writeOK(w http.ResponseWriter, extra map[string]any) {
	payload := map[string]any{"ok": true}
	for key, value := range extra {
		payload[key] = value
	}
	writeJSON(w, http.StatusOK, payload)
}

const timeFormat = time.RFC3339

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
