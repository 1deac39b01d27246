package gauge

import (
	"encoding/json"
	"net/http"

	"Condutor/internal/tables"
)

type Handler struct {
	Tables *tables.Catalog
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	if h.Tables == nil {
		http.Error(w, "Reference tables unavailable", http.StatusServiceUnavailable)
		return
	}
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Optimize(input, h.Tables)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
