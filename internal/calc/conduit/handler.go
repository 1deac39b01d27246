package conduit

import (
	"encoding/json"
	"errors"
	"net/http"

	"Condutor/internal/tables"
)

type Handler struct {
	Tables *tables.Catalog
}

type Input struct {
	Circuits []CircuitGroup `json:"circuits"`
}

type CircuitGroup struct {
	GaugeMM2   float64 `json:"gauge_mm2"`
	Conductors int     `json:"conductors"`
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
	if len(input.Circuits) == 0 {
		http.Error(w, "At least one circuit required", http.StatusBadRequest)
		return
	}

	// Aggregate counts per gauge; the same gauge may appear in several rows.
	circuits := make(map[float64]int, len(input.Circuits))
	for _, c := range input.Circuits {
		if c.Conductors <= 0 {
			http.Error(w, "Conductor count must be positive", http.StatusBadRequest)
			return
		}
		circuits[c.GaugeMM2] += c.Conductors
	}

	res, err := Size(circuits, h.Tables)
	if err != nil {
		if errors.Is(err, tables.ErrUnavailable) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
