package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tqm/internal/testutil"
	"tqm/internal/websocket"
)

// setupTestApp swaps the package globals for a fresh seeded store and a
// gate using the test passphrase, restoring them on cleanup.
func setupTestApp(t *testing.T) {
	t.Helper()
	oldStore, oldGate, oldHub := appStore, gate, hub

	appStore = testutil.NewStore(t)
	gate = testutil.NewGate(t)
	hub = websocket.NewHub()
	appStore.OnChange(hub.BroadcastChange)

	t.Cleanup(func() {
		appStore, gate, hub = oldStore, oldGate, oldHub
	})
}

func doJSON(t *testing.T, mux http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("Failed to decode response data: %v", err)
	}
}

func TestUnknownRouteReturnsError(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	w := doJSON(t, mux, "GET", "/api/v1/nothing", nil)
	if w.Code != 404 {
		t.Errorf("Status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["error"] != "not found" {
		t.Errorf("Body = %v", body)
	}
}

func TestMethodNotAllowedOnAuthRoutes(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	w := doJSON(t, mux, "GET", "/auth/login", nil)
	if w.Code != 405 {
		t.Errorf("GET /auth/login = %d, want 405", w.Code)
	}
}
