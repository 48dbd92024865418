package main

import (
	"net/http"

	"tqm/internal/store"
)

func handleGetView(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, map[string]string{"view": appStore.View()})
}

func handlePutView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view"`
	}
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	jsonResp(w, map[string]string{"view": appStore.SetView(req.View)})
}

// handleViewPayload returns the data a screen renders in one round trip.
// Unknown identifiers fall back to the dashboard payload.
func handleViewPayload(w http.ResponseWriter, r *http.Request, view string) {
	if !store.ValidView(view) {
		view = store.DefaultView
	}

	switch view {
	case "dashboard":
		jsonResp(w, map[string]interface{}{
			"view":     view,
			"products": appStore.Products(),
			"kpiData":  appStore.KPIList(),
		})
	case "products":
		jsonResp(w, map[string]interface{}{
			"view":     view,
			"products": appStore.Products(),
		})
	case "team":
		jsonResp(w, map[string]interface{}{
			"view": view,
			"team": appStore.Team(),
		})
	case "kpi":
		jsonResp(w, map[string]interface{}{
			"view":    view,
			"kpiData": appStore.KPIList(),
		})
	case "documents":
		jsonResp(w, map[string]interface{}{
			"view":      view,
			"documents": appStore.Documents(),
		})
	case "settings":
		jsonResp(w, map[string]interface{}{
			"view":    view,
			"company": appStore.Company(),
		})
	case "database":
		usage, err := appStore.Usage()
		if err != nil {
			jsonErr(w, "Failed to compute storage usage", 500)
			return
		}
		jsonResp(w, map[string]interface{}{
			"view":     view,
			"snapshot": appStore.Snapshot(),
			"usage":    usage,
		})
	case "about":
		jsonResp(w, map[string]interface{}{
			"view":    view,
			"company": appStore.Company(),
			"version": appVersion,
		})
	default:
		jsonErr(w, "unknown view", 404)
	}
}
