package main

import (
	"net/http"

	"tqm/internal/authgate"
	"tqm/internal/store"
)

type LoginRequest struct {
	Role string `json:"role"`
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}

	if err := gate.Login(authgate.Role(req.Role)); err != nil {
		jsonErr(w, "Role must be guest or admin", 400)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	jsonResp(w, map[string]interface{}{
		"role":          req.Role,
		"authenticated": true,
	})
}

// handleLogout drops the role and returns the active view to the
// default screen.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	gate.Logout()
	appStore.SetView(store.DefaultView)

	w.Header().Set("Content-Type", "application/json")
	jsonResp(w, map[string]string{"status": "ok"})
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	role := gate.Role()
	w.Header().Set("Content-Type", "application/json")
	jsonResp(w, map[string]interface{}{
		"role":          string(role),
		"authenticated": role != authgate.RoleNone,
	})
}

// handleConfirm answers the passphrase challenge. On success the parked
// mutation runs exactly once; a wrong passphrase leaves it parked so
// the prompt can be retried.
func handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passphrase string `json:"passphrase"`
	}
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}

	if err := gate.Confirm(req.Passphrase); err != nil {
		jsonErr(w, "Invalid passphrase", 401)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	jsonResp(w, map[string]string{"status": "ok"})
}

// handleCancel discards the parked mutation without executing it.
func handleCancel(w http.ResponseWriter, r *http.Request) {
	gate.Cancel()
	w.Header().Set("Content-Type", "application/json")
	jsonResp(w, map[string]string{"status": "ok"})
}
