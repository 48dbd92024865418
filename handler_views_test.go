package main

import (
	"testing"
)

func TestGetAndPutView(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	var got map[string]string
	w := doJSON(t, mux, "GET", "/api/v1/view", nil)
	decodeData(t, w, &got)
	if got["view"] != "dashboard" {
		t.Errorf("Initial view = %q, want dashboard", got["view"])
	}

	w = doJSON(t, mux, "PUT", "/api/v1/view", map[string]string{"view": "kpi"})
	decodeData(t, w, &got)
	if got["view"] != "kpi" {
		t.Errorf("View = %q, want kpi", got["view"])
	}

	// Unknown identifiers fall back to the default
	w = doJSON(t, mux, "PUT", "/api/v1/view", map[string]string{"view": "nope"})
	decodeData(t, w, &got)
	if got["view"] != "dashboard" {
		t.Errorf("View = %q, want dashboard", got["view"])
	}
}

func TestViewPayloads(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	cases := []struct {
		view string
		key  string
	}{
		{"dashboard", "products"},
		{"dashboard", "kpiData"},
		{"products", "products"},
		{"team", "team"},
		{"kpi", "kpiData"},
		{"documents", "documents"},
		{"settings", "company"},
		{"database", "snapshot"},
		{"database", "usage"},
		{"about", "version"},
	}
	for _, tc := range cases {
		w := doJSON(t, mux, "GET", "/api/v1/views/"+tc.view, nil)
		if w.Code != 200 {
			t.Errorf("Payload %s = %d", tc.view, w.Code)
			continue
		}
		var payload map[string]interface{}
		decodeData(t, w, &payload)
		if payload["view"] != tc.view {
			t.Errorf("Payload %s: view = %v", tc.view, payload["view"])
		}
		if _, ok := payload[tc.key]; !ok {
			t.Errorf("Payload %s missing %q", tc.view, tc.key)
		}
	}
}

func TestViewPayloadUnknownFallsBack(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	var payload map[string]interface{}
	w := doJSON(t, mux, "GET", "/api/v1/views/bogus", nil)
	decodeData(t, w, &payload)
	if payload["view"] != "dashboard" {
		t.Errorf("Fallback view = %v, want dashboard", payload["view"])
	}
}
