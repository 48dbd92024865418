package main

import (
	"net/http"

	"tqm/internal/models"
)

func validDepartment(dept string) bool {
	return dept == models.DeptManagement || dept == models.DeptQC || dept == models.DeptQA
}

func handleListTeam(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, appStore.Team())
}

func handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := decodeBody(r, &e); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if e.Name == "" {
		jsonErr(w, "name is required", 400)
		return
	}
	if !validDepartment(e.Department) {
		jsonErr(w, "department must be management, qc or qa", 400)
		return
	}

	if gate.Request(func() { appStore.AddEmployee(e) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleUpdateEmployee(w http.ResponseWriter, r *http.Request, id string) {
	var e models.Employee
	if err := decodeBody(r, &e); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if !validDepartment(e.Department) {
		jsonErr(w, "department must be management, qc or qa", 400)
		return
	}

	if gate.Request(func() { appStore.UpdateEmployee(id, e) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleDeleteEmployee(w http.ResponseWriter, r *http.Request, id string) {
	if gate.Request(func() { appStore.DeleteEmployee(id) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}
