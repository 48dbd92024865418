package main

import (
	"net/http"

	"tqm/internal/models"
)

func handleGetCompany(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, appStore.Company())
}

func handlePutCompany(w http.ResponseWriter, r *http.Request) {
	var c models.CompanySettings
	if err := decodeBody(r, &c); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if c.Name == "" {
		jsonErr(w, "name is required", 400)
		return
	}

	if gate.Request(func() { appStore.SetCompany(c) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}
