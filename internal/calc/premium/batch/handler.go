package batch

import (
	"encoding/json"
	"net/http"

	"Condutor/internal/tables"
)

type Handler struct {
	Tables *tables.Catalog
}

func (h *Handler) Gauges(w http.ResponseWriter, r *http.Request) {
	if h.Tables == nil {
		http.Error(w, "Reference tables unavailable", http.StatusServiceUnavailable)
		return
	}
	var input GaugeBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := OptimizeGauges(input, h.Tables)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
