package voltagedrop

import (
	"fmt"
	"math"
)

type System string

const (
	ThreePhase  System = "three_phase"
	SinglePhase System = "single_phase"
)

// K returns the circuit factor: 2 for the single-phase loop, sqrt(3) otherwise.
func (s System) K() float64 {
	if s == SinglePhase {
		return 2.0
	}
	return math.Sqrt(3)
}

type Input struct {
	System   System  `json:"system"`
	IbA      float64 `json:"ib_a"`
	LengthM  float64 `json:"length_m"`
	CosPhi   float64 `json:"cos_phi"`
	VoltageV float64 `json:"voltage_v"`
	ROhmKm   float64 `json:"r_ohm_km"`
	XOhmKm   float64 `json:"x_ohm_km"`
}

type Result struct {
	DropPct float64 `json:"drop_pct"`
}

// Percent computes the feeder voltage drop as a percentage of the line
// voltage: K * Ib * L_km * (R cosphi + X sinphi) / V * 100.
// sin(phi) is clamped at zero so cos_phi rounding past 1.0 cannot produce a
// negative square root.
func Percent(system System, ibA, lengthM, cosPhi, voltageV, rOhmKm, xOhmKm float64) float64 {
	sinPhi := math.Sqrt(math.Max(0, 1.0-cosPhi*cosPhi))
	dv := system.K() * ibA * (lengthM / 1000.0) * (rOhmKm*cosPhi + xOhmKm*sinPhi)
	return dv / voltageV * 100.0
}

func Calculate(in Input) (Result, error) {
	if in.IbA <= 0 || in.LengthM <= 0 || in.VoltageV <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.CosPhi < 0 || in.CosPhi > 1 {
		return Result{}, fmt.Errorf("invalid power factor")
	}
	return Result{
		DropPct: Percent(in.System, in.IbA, in.LengthM, in.CosPhi, in.VoltageV, in.ROhmKm, in.XOhmKm),
	}, nil
}
