package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tqm/internal/models"
)

// kpiExportHeaders is the fixed 20-column header of the analytics
// export. The four scrap columns intentionally keep the legacy
// report's header/value pairing (see kpiExportRow), which does not line
// up field-for-field with the record's own naming.
var kpiExportHeaders = []string{
	"الشهر", "السنة", "نسبة الجودة %", "عدد العيوب",
	"محجوز نفخ (قطعة)", "محجوز نفخ (وزن)",
	"محجوز حقن (قطعة)", "محجوز حقن (وزن)",
	"هالك نفخ (قطعة)", "هالك نفخ (وزن)", "هالك حقن (قطعة)", "هالك حقن (وزن)",
	"هالك PPM داخلي", "هالك PPM خارجي",
	"عدم مطابقة وردية أ", "عدم مطابقة وردية ب", "عدم مطابقة وردية ج",
	"إجمالي المورد", "إجمالي المرتجع", "إجمالي الشكاوى",
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// kpiExportRow places the scrap values in the legacy column order:
// scrappedBlow, scrappedWeight, scrappedInjection, scrappedPieces.
func kpiExportRow(d models.KPIData) []string {
	return []string{
		d.Month,
		d.Year,
		fnum(d.QualityRate),
		strconv.Itoa(d.Defects),
		strconv.Itoa(d.ReservedBlowPieces),
		fnum(d.ReservedBlowWeight),
		strconv.Itoa(d.ReservedInjectionPieces),
		fnum(d.ReservedInjectionWeight),
		strconv.Itoa(d.ScrappedBlow),
		fnum(d.ScrappedWeight),
		strconv.Itoa(d.ScrappedInjection),
		fnum(d.ScrappedPieces),
		fnum(d.InternalScrapPpm),
		fnum(d.ExternalScrapPpm),
		strconv.Itoa(d.NcrShift1),
		strconv.Itoa(d.NcrShift2),
		strconv.Itoa(d.NcrShift3),
		strconv.Itoa(d.TotalSupplied),
		strconv.Itoa(d.TotalReturned),
		strconv.Itoa(d.TotalComplaints),
	}
}

func handleListKPI(w http.ResponseWriter, r *http.Request) {
	data := appStore.KPIList()
	year := r.URL.Query().Get("year")
	if year != "" && year != "all" {
		filtered := make([]models.KPIData, 0, len(data))
		for _, d := range data {
			if d.Year == year {
				filtered = append(filtered, d)
			}
		}
		data = filtered
	}
	jsonResp(w, data)
}

func handleUpsertKPI(w http.ResponseWriter, r *http.Request) {
	var d models.KPIData
	if err := decodeBody(r, &d); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if d.Month == "" || d.Year == "" {
		jsonErr(w, "month and year are required", 400)
		return
	}

	if gate.Request(func() { appStore.UpsertKPI(d) }) {
		jsonResp(w, map[string]string{"status": "ok"})
		return
	}
	jsonChallenge(w)
}

func handleExportKPI(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	data := appStore.KPIList()
	rows := make([][]string, 0, len(data))
	for _, d := range data {
		rows = append(rows, kpiExportRow(d))
	}

	if format == "xlsx" {
		exportExcel(w, "KPI", kpiExportHeaders, rows)
		return
	}
	exportCSVWithBOM(w, fmt.Sprintf("KPI_Analytics_Report_%s.csv", time.Now().Format("2006-01-02")), kpiExportHeaders, rows)
}

// exportCSVWithBOM writes CSV prefixed with a UTF-8 byte-order marker
// so spreadsheet tools render the Arabic headers correctly.
func exportCSVWithBOM(w http.ResponseWriter, filename string, headers []string, data [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		http.Error(w, "Failed to write CSV headers", 500)
		return
	}
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			http.Error(w, "Failed to write CSV row", 500)
			return
		}
	}
}

// exportExcel writes data as a spreadsheet.
func exportExcel(w http.ResponseWriter, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to create Excel sheet", 500)
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		http.Error(w, "Failed to create header style", 500)
		return
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", strings.ToLower(sheetName)))

	if err := f.Write(w); err != nil {
		http.Error(w, "Failed to write Excel file", 500)
		return
	}
}
