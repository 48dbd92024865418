package main

import (
	"net/http"

	"tqm/internal/models"
)

func handleListDocuments(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, appStore.Documents())
}

func handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var d models.DocumentFile
	if err := decodeBody(r, &d); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if d.Name == "" {
		jsonErr(w, "name is required", 400)
		return
	}

	if gate.Request(func() { appStore.AddDocument(d) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleDeleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	if gate.Request(func() { appStore.DeleteDocument(id) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}
