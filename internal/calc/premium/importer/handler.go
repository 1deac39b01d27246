package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	gauge "Condutor/internal/calc/gauge"
	voltagedrop "Condutor/internal/calc/voltagedrop"
	"Condutor/internal/tables"

	"github.com/xuri/excelize/v2"
)

type Handler struct {
	Tables *tables.Catalog
}

type GaugeImportResult struct {
	Count   int            `json:"count"`
	Results []gauge.Result `json:"results"`
}

// Gauges runs the optimizer over an uploaded XLSX, one circuit per row.
func (h *Handler) Gauges(w http.ResponseWriter, r *http.Request) {
	if h.Tables == nil {
		http.Error(w, "Reference tables unavailable", http.StatusServiceUnavailable)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var results []gauge.Result
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 6 {
			continue
		}
		input, err := parseCircuitRow(row)
		if err != nil {
			continue
		}
		res, err := gauge.Optimize(input, h.Tables)
		if err != nil {
			continue
		}
		results = append(results, res)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GaugeImportResult{Count: len(results), Results: results})
}

func parseCircuitRow(row []string) (gauge.Input, error) {
	// expected: system, ib_a, length_m, cos_phi, voltage_v, max_drop_pct, grouping_ca(optional)
	if len(row) < 6 {
		return gauge.Input{}, fmt.Errorf("bad row")
	}
	system := voltagedrop.ThreePhase
	if strings.EqualFold(strings.TrimSpace(row[0]), string(voltagedrop.SinglePhase)) {
		system = voltagedrop.SinglePhase
	}
	ib, err := toFloat(row[1])
	if err != nil {
		return gauge.Input{}, err
	}
	length, err := toFloat(row[2])
	if err != nil {
		return gauge.Input{}, err
	}
	cosPhi, err := toFloat(row[3])
	if err != nil {
		return gauge.Input{}, err
	}
	voltage, err := toFloat(row[4])
	if err != nil {
		return gauge.Input{}, err
	}
	maxDrop, err := toFloat(row[5])
	if err != nil {
		return gauge.Input{}, err
	}
	ca := 1.0
	if len(row) > 6 && row[6] != "" {
		ca, _ = toFloat(row[6])
	}
	return gauge.Input{
		System:     system,
		IbA:        ib,
		LengthM:    length,
		CosPhi:     cosPhi,
		VoltageV:   voltage,
		MaxDropPct: maxDrop,
		GroupingCa: ca,
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(strings.ReplaceAll(s, ",", "."), "%f", &v)
	return v, err
}
