package thermal

import "math"

type Material string

type Insulation string

const (
	Copper   Material = "copper"
	Aluminum Material = "aluminum"

	PVC70  Insulation = "pvc_70"
	XLPE90 Insulation = "xlpe_90"
	EPR90  Insulation = "epr_90"
)

// Adiabatic withstand constants, A*sqrt(s)/mm2.
var kFactors = map[Material]map[Insulation]float64{
	Copper:   {PVC70: 115, XLPE90: 143, EPR90: 143},
	Aluminum: {PVC70: 76, XLPE90: 94, EPR90: 94},
}

// KFactor returns the adiabatic constant for the pair. Unrecognized
// combinations fall back to copper/PVC; the second return reports the
// substitution so callers can surface it instead of hiding a wrong-material
// request.
func KFactor(m Material, ins Insulation) (k float64, fallback bool) {
	if byIns, ok := kFactors[m]; ok {
		if k, ok := byIns[ins]; ok {
			return k, false
		}
	}
	return kFactors[Copper][PVC70], true
}

type Input struct {
	Material     Material   `json:"material"`
	Insulation   Insulation `json:"insulation"`
	AreaMM2      float64    `json:"area_mm2"`
	TimeS        float64    `json:"time_s"`
	IccExpectedA float64    `json:"icc_expected_a"`
}

type Result struct {
	KFactor         float64 `json:"k_factor"`
	FallbackApplied bool    `json:"fallback_applied"`
	Degenerate      bool    `json:"degenerate"`
	IccAdmissibleA  float64 `json:"icc_admissible_a"`
	Conforming      bool    `json:"conforming"`
}

// Check computes the admissible short-circuit current S*k/sqrt(t) and
// compares it with the expected fault current. Non-positive time or area is
// a degenerate input resolved to zero admissible current, not an error.
func Check(in Input) Result {
	k, fallback := KFactor(in.Material, in.Insulation)
	res := Result{KFactor: k, FallbackApplied: fallback}

	if in.TimeS > 0 && in.AreaMM2 > 0 {
		res.IccAdmissibleA = in.AreaMM2 * k / math.Sqrt(in.TimeS)
	} else {
		res.Degenerate = true
	}
	res.Conforming = in.IccExpectedA <= res.IccAdmissibleA
	return res
}
