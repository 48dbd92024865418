package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tqm/internal/models"
	"tqm/internal/store"
)

// handleExportDatabase downloads the full bundle as an indented JSON
// file. Export is deliberately not gated: reading data out is always
// allowed.
func handleExportDatabase(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("tqm_backup_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(appStore.Snapshot()); err != nil {
		http.Error(w, "Failed to write backup", 500)
	}
}

// handleImportDatabase replaces the collections present in the uploaded
// bundle. A bundle missing products or team is rejected whole.
func handleImportDatabase(w http.ResponseWriter, r *http.Request) {
	var b models.Bundle
	if err := decodeBody(r, &b); err != nil {
		jsonErr(w, "Invalid backup file", 400)
		return
	}
	if err := appStore.Import(b); err != nil {
		if errors.Is(err, store.ErrInvalidBundle) {
			jsonErr(w, err.Error(), 400)
			return
		}
		jsonErr(w, "Import failed", 500)
		return
	}
	jsonResp(w, map[string]string{"status": "ok"})
}

func handleResetDatabase(w http.ResponseWriter, r *http.Request) {
	if gate.Request(func() { appStore.Reset() }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleStorageUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := appStore.Usage()
	if err != nil {
		jsonErr(w, "Failed to compute storage usage", 500)
		return
	}
	jsonResp(w, usage)
}
