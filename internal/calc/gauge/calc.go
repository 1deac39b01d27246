package gauge

import (
	"fmt"

	"Condutor/internal/calc/voltagedrop"
	"Condutor/internal/tables"
)

// Reason classifies why the optimizer returned no gauge.
type Reason string

const (
	ReasonTablesUnavailable Reason = "tables_unavailable"
	ReasonNoAmpacity        Reason = "no_gauge_meets_ampacity"
	ReasonNoVoltageDrop     Reason = "no_gauge_meets_voltage_drop"
)

type Input struct {
	System     voltagedrop.System `json:"system"`
	IbA        float64            `json:"ib_a"`
	LengthM    float64            `json:"length_m"`
	CosPhi     float64            `json:"cos_phi"`
	VoltageV   float64            `json:"voltage_v"`
	MaxDropPct float64            `json:"max_drop_pct"`
	GroupingCa float64            `json:"grouping_ca"`
}

type Result struct {
	Found         bool    `json:"found"`
	GaugeMM2      float64 `json:"gauge_mm2,omitempty"`
	DropPct       float64 `json:"drop_pct,omitempty"`
	TotalCost     float64 `json:"total_cost,omitempty"`
	AmpacityA     float64 `json:"ampacity_a,omitempty"`
	MeetsAmpacity bool    `json:"meets_ampacity"`
	Reason        Reason  `json:"reason,omitempty"`
}

// Optimize scans the conductor table in ascending gauge order and returns
// the first gauge whose uncorrected ampacity covers Ib/Ca and whose voltage
// drop stays within the limit. Cost per meter is monotone in gauge in a
// valid catalog (tables.Catalog.Validate), so the first match is also the
// cheapest. Ampacity is compared uncorrected against the corrected current;
// the drop limit is checked only for gauges that already pass ampacity.
func Optimize(in Input, cat *tables.Catalog) (Result, error) {
	if in.IbA <= 0 || in.LengthM <= 0 || in.VoltageV <= 0 || in.MaxDropPct <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.CosPhi < 0 || in.CosPhi > 1 {
		return Result{}, fmt.Errorf("invalid power factor")
	}
	if in.GroupingCa <= 0 || in.GroupingCa > 1 {
		return Result{}, fmt.Errorf("invalid grouping factor")
	}
	if cat == nil || len(cat.Conductors) == 0 {
		return Result{Reason: ReasonTablesUnavailable}, nil
	}

	corrected := in.IbA / in.GroupingCa
	res := Result{}
	for _, c := range cat.Conductors {
		if c.AmpacityA < corrected {
			continue
		}
		res.MeetsAmpacity = true

		drop := voltagedrop.Percent(in.System, in.IbA, in.LengthM, in.CosPhi, in.VoltageV, c.ROhmKm, c.XOhmKm)
		if drop <= in.MaxDropPct {
			res.Found = true
			res.GaugeMM2 = c.GaugeMM2
			res.DropPct = drop
			res.TotalCost = c.CostPerMeter * in.LengthM
			res.AmpacityA = c.AmpacityA
			return res, nil
		}
	}

	if res.MeetsAmpacity {
		res.Reason = ReasonNoVoltageDrop
	} else {
		res.Reason = ReasonNoAmpacity
	}
	return res, nil
}
