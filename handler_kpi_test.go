package main

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"tqm/internal/authgate"
	"tqm/internal/models"
)

func TestUpsertAndListKPI(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleAdmin)

	w := doJSON(t, mux, "POST", "/api/v1/kpi", models.KPIData{Month: "يناير", Year: "2024", QualityRate: 92.5})
	if w.Code != 200 {
		t.Fatalf("Upsert = %d: %s", w.Code, w.Body)
	}
	doJSON(t, mux, "POST", "/api/v1/kpi", models.KPIData{Month: "يناير", Year: "2024", QualityRate: 97})
	doJSON(t, mux, "POST", "/api/v1/kpi", models.KPIData{Month: "يناير", Year: "2025", QualityRate: 88})

	var list []models.KPIData
	w = doJSON(t, mux, "GET", "/api/v1/kpi", nil)
	decodeData(t, w, &list)
	if len(list) != 2 {
		t.Fatalf("KPI count = %d, want 2", len(list))
	}

	// Year filter
	w = doJSON(t, mux, "GET", "/api/v1/kpi?year=2025", nil)
	decodeData(t, w, &list)
	if len(list) != 1 || list[0].Year != "2025" {
		t.Errorf("Filtered list = %+v", list)
	}
}

func TestUpsertKPIRequiresMonthAndYear(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleAdmin)

	w := doJSON(t, mux, "POST", "/api/v1/kpi", models.KPIData{Year: "2024"})
	if w.Code != 400 {
		t.Errorf("Upsert without month = %d, want 400", w.Code)
	}
}

func TestExportKPICSV(t *testing.T) {
	setupTestApp(t)
	mux := newMux()
	gate.Login(authgate.RoleAdmin)

	appStore.UpsertKPI(models.KPIData{
		Month: "مايو", Year: "2024",
		QualityRate:       96.5,
		ScrappedBlow:      11,
		ScrappedWeight:    22.5,
		ScrappedInjection: 33,
		ScrappedPieces:    44.5,
	})

	w := doJSON(t, mux, "GET", "/api/v1/kpi/export", nil)
	if w.Code != 200 {
		t.Fatalf("Export = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "KPI_Analytics_Report_") {
		t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}

	body := w.Body.Bytes()
	if !bytes.HasPrefix(body, []byte("\xEF\xBB\xBF")) {
		t.Fatal("CSV missing UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, []byte("\xEF\xBB\xBF")))).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Rows = %d, want header + 1", len(records))
	}
	if len(records[0]) != 20 {
		t.Fatalf("Header columns = %d, want 20", len(records[0]))
	}

	// The four scrap columns keep the historical value order
	row := records[1]
	if row[8] != "11" || row[9] != "22.5" || row[10] != "33" || row[11] != "44.5" {
		t.Errorf("Scrap columns = %v", row[8:12])
	}
}

func TestExportKPIXLSX(t *testing.T) {
	setupTestApp(t)
	mux := newMux()

	appStore.UpsertKPI(models.KPIData{Month: "يونيو", Year: "2024"})

	w := doJSON(t, mux, "GET", "/api/v1/kpi/export?format=xlsx", nil)
	if w.Code != 200 {
		t.Fatalf("Export = %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("Body is not a zip archive")
	}
}
