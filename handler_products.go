package main

import (
	"net/http"

	"tqm/internal/models"
)

func handleListProducts(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, appStore.Products())
}

func handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeBody(r, &p); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if p.Name == "" {
		jsonErr(w, "name is required", 400)
		return
	}
	if p.Status != "" && p.Status != models.StatusPending && p.Status != models.StatusApproved && p.Status != models.StatusRejected {
		jsonErr(w, "status must be pending, approved or rejected", 400)
		return
	}

	if gate.Request(func() { appStore.AddProduct(p) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleUpdateProduct(w http.ResponseWriter, r *http.Request, id string) {
	var p models.Product
	if err := decodeBody(r, &p); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if p.Status != "" && p.Status != models.StatusPending && p.Status != models.StatusApproved && p.Status != models.StatusRejected {
		jsonErr(w, "status must be pending, approved or rejected", 400)
		return
	}

	if gate.Request(func() { appStore.UpdateProduct(id, p) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleDeleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if gate.Request(func() { appStore.DeleteProduct(id) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}
