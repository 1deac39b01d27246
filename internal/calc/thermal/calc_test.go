package thermal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKFactor_KnownPairs(t *testing.T) {
	cases := []struct {
		material   Material
		insulation Insulation
		k          float64
	}{
		{Copper, PVC70, 115},
		{Copper, XLPE90, 143},
		{Copper, EPR90, 143},
		{Aluminum, PVC70, 76},
		{Aluminum, XLPE90, 94},
		{Aluminum, EPR90, 94},
	}
	for _, c := range cases {
		k, fallback := KFactor(c.material, c.insulation)
		assert.Equal(t, c.k, k, "%s/%s", c.material, c.insulation)
		assert.False(t, fallback, "%s/%s", c.material, c.insulation)
	}
}

func TestKFactor_UnknownFallsBackToCopperPVC(t *testing.T) {
	k, fallback := KFactor("silver", PVC70)
	assert.Equal(t, 115.0, k)
	assert.True(t, fallback)

	k, fallback = KFactor(Copper, "rubber")
	assert.Equal(t, 115.0, k)
	assert.True(t, fallback)
}

func TestCheck_AdmissibleCurrent(t *testing.T) {
	// 50 mm2 copper/PVC at 1 s: 50*115/sqrt(1) = 5750 A.
	res := Check(Input{Material: Copper, Insulation: PVC70, AreaMM2: 50, TimeS: 1, IccExpectedA: 5000})
	assert.InDelta(t, 5750, res.IccAdmissibleA, 1e-9)
	assert.True(t, res.Conforming)
	assert.False(t, res.Degenerate)

	res = Check(Input{Material: Copper, Insulation: PVC70, AreaMM2: 50, TimeS: 1, IccExpectedA: 6000})
	assert.False(t, res.Conforming)
}

func TestCheck_ShortClearingTimeRaisesAdmissible(t *testing.T) {
	res := Check(Input{Material: Copper, Insulation: PVC70, AreaMM2: 50, TimeS: 0.1, IccExpectedA: 15000})
	assert.InDelta(t, 50*115/math.Sqrt(0.1), res.IccAdmissibleA, 1e-6)
	assert.True(t, res.Conforming)
}

func TestCheck_DegenerateInputs(t *testing.T) {
	// Non-positive time or area resolves to zero admissible current, not an
	// error; any positive expected current is then non-conforming.
	res := Check(Input{Material: Copper, Insulation: PVC70, AreaMM2: 50, TimeS: 0, IccExpectedA: 100})
	assert.True(t, res.Degenerate)
	assert.Zero(t, res.IccAdmissibleA)
	assert.False(t, res.Conforming)

	res = Check(Input{Material: Copper, Insulation: PVC70, AreaMM2: -1, TimeS: 0.2, IccExpectedA: 0})
	assert.True(t, res.Degenerate)
	assert.True(t, res.Conforming)
}

func TestCheck_FallbackSurfacedInResult(t *testing.T) {
	res := Check(Input{Material: "bronze", Insulation: PVC70, AreaMM2: 10, TimeS: 1, IccExpectedA: 100})
	assert.True(t, res.FallbackApplied)
	assert.Equal(t, 115.0, res.KFactor)
}
