package shortcircuit

import (
	"fmt"
	"math"

	"Condutor/internal/calc/voltagedrop"
)

type Input struct {
	System     voltagedrop.System `json:"system"`
	VoltageV   float64            `json:"voltage_v"`
	RCableOhm  float64            `json:"r_cable_ohm"`
	XCableOhm  float64            `json:"x_cable_ohm"`
	RSourceOhm float64            `json:"r_source_ohm"`
	XSourceOhm float64            `json:"x_source_ohm"`
}

type Result struct {
	RTotalOhm float64 `json:"r_total_ohm"`
	XTotalOhm float64 `json:"x_total_ohm"`
	ZTotalOhm float64 `json:"z_total_ohm"`
	IccMaxA   float64 `json:"icc_max_a"`
	// Unbounded is set when the total impedance is zero; IccMaxA then holds
	// +Inf and must not be serialized as a plain number.
	Unbounded bool `json:"unbounded"`
}

// Calculate sums source and cable impedance per phase and derives the
// maximum symmetric short-circuit current at the feeder end. Cable R/X are
// already length-scaled ohms, not per-km values.
func Calculate(in Input) (Result, error) {
	if in.VoltageV <= 0 {
		return Result{}, fmt.Errorf("invalid voltage")
	}
	if in.RCableOhm < 0 || in.XCableOhm < 0 || in.RSourceOhm < 0 || in.XSourceOhm < 0 {
		return Result{}, fmt.Errorf("negative impedance")
	}

	res := Result{
		RTotalOhm: in.RCableOhm + in.RSourceOhm,
		XTotalOhm: in.XCableOhm + in.XSourceOhm,
	}
	res.ZTotalOhm = math.Hypot(res.RTotalOhm, res.XTotalOhm)

	if res.ZTotalOhm == 0 {
		res.IccMaxA = math.Inf(1)
		res.Unbounded = true
		return res, nil
	}

	if in.System == voltagedrop.SinglePhase {
		res.IccMaxA = in.VoltageV / (2.0 * res.ZTotalOhm)
	} else {
		res.IccMaxA = in.VoltageV / (math.Sqrt(3) * res.ZTotalOhm)
	}
	return res, nil
}
