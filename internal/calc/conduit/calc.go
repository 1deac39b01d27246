package conduit

import (
	"errors"
	"sort"

	"Condutor/internal/calc/grouping"
	"Condutor/internal/tables"
)

var ErrNoConduitFits = errors.New("no conduit in the table is large enough for the occupied area")

type Result struct {
	DiameterMM      float64 `json:"diameter_mm"`
	DiameterPol     string  `json:"diameter_pol"`
	Display         string  `json:"display"`
	InternalAreaMM2 float64 `json:"internal_area_mm2"`
	Area40PctMM2    float64 `json:"area_40pct_mm2"`
	OccupiedAreaMM2 float64 `json:"occupied_area_mm2"`
	FillRatioPct    float64 `json:"fill_ratio_pct"`

	// FillRuleAdvisory is set when fewer than 3 conductors share the
	// conduit: the 40% rate is applied uniformly although the norm allows
	// 53% for one conductor and 31% for two.
	FillRuleAdvisory bool `json:"fill_rule_advisory"`

	// MissingAreaGauges lists gauges absent from the insulated-area table.
	// They contribute zero occupied area instead of failing the sizing.
	MissingAreaGauges []float64 `json:"missing_area_gauges,omitempty"`
}

// Size validates the grouping and selects the smallest conduit whose 40%
// area covers the insulated cross-section of every conductor in the group
// (boundary inclusive). circuits maps nominal gauge to conductor count.
func Size(circuits map[float64]int, cat *tables.Catalog) (Result, error) {
	if cat == nil || len(cat.Conduits) == 0 {
		return Result{}, tables.ErrUnavailable
	}

	gauges := make([]float64, 0, len(circuits))
	for g := range circuits {
		gauges = append(gauges, g)
	}
	if err := grouping.Validate(gauges, cat.Scale()); err != nil {
		return Result{}, err
	}

	var occupied float64
	var missing []float64
	total := 0
	for g, n := range circuits {
		total += n
		area, ok := cat.InsulatedAreas[g]
		if !ok {
			missing = append(missing, g)
			continue
		}
		occupied += area * float64(n)
	}
	sort.Float64s(missing)

	for _, e := range cat.Conduits {
		if occupied <= e.Area40PctMM2 {
			return Result{
				DiameterMM:        e.DiameterMM,
				DiameterPol:       e.DiameterPol,
				Display:           e.Display,
				InternalAreaMM2:   e.InternalAreaMM2,
				Area40PctMM2:      e.Area40PctMM2,
				OccupiedAreaMM2:   occupied,
				FillRatioPct:      occupied / e.InternalAreaMM2 * 100.0,
				FillRuleAdvisory:  total < 3,
				MissingAreaGauges: missing,
			}, nil
		}
	}
	return Result{}, ErrNoConduitFits
}
