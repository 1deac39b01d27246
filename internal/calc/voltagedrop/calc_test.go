package voltagedrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent_ThreePhaseReference(t *testing.T) {
	// 95 A over 150 m at cos phi 0.85 on 380 V, R=1.0 X=0.1 ohm/km:
	// sqrt(3)*95*0.15*(1.0*0.85 + 0.1*0.5268)/380*100 = 5.863 %
	got := Percent(ThreePhase, 95, 150, 0.85, 380, 1.0, 0.1)
	assert.InDelta(t, 5.863, got, 0.001)
}

func TestPercent_SinglePhaseUsesK2(t *testing.T) {
	three := Percent(ThreePhase, 10, 100, 0.9, 220, 2.0, 0.1)
	single := Percent(SinglePhase, 10, 100, 0.9, 220, 2.0, 0.1)

	// Same circuit, only the K factor differs: 2 / sqrt(3).
	assert.InDelta(t, 2.0/1.7320508, single/three, 1e-9)
}

func TestPercent_LinearInCurrentAndLength(t *testing.T) {
	base := Percent(ThreePhase, 40, 80, 0.92, 380, 1.38, 0.098)

	assert.InDelta(t, 2*base, Percent(ThreePhase, 80, 80, 0.92, 380, 1.38, 0.098), 1e-9)
	assert.InDelta(t, 3*base, Percent(ThreePhase, 40, 240, 0.92, 380, 1.38, 0.098), 1e-9)
}

func TestPercent_UnityPowerFactorClamped(t *testing.T) {
	// cos phi exactly 1.0 must not produce NaN from sqrt of a negative.
	got := Percent(ThreePhase, 50, 100, 1.0, 380, 2.19, 0.101)
	assert.False(t, got != got, "result is NaN")
	// sin phi is zero, so reactance contributes nothing.
	assert.InDelta(t, Percent(ThreePhase, 50, 100, 1.0, 380, 2.19, 0.0), got, 1e-12)
}

func TestPercent_Deterministic(t *testing.T) {
	a := Percent(SinglePhase, 33, 47, 0.77, 127, 3.69, 0.106)
	b := Percent(SinglePhase, 33, 47, 0.77, 127, 3.69, 0.106)
	assert.Equal(t, a, b)
}

func TestCalculate_RejectsInvalidInput(t *testing.T) {
	_, err := Calculate(Input{System: ThreePhase, IbA: 0, LengthM: 10, CosPhi: 0.9, VoltageV: 380})
	require.Error(t, err)

	_, err = Calculate(Input{System: ThreePhase, IbA: 10, LengthM: 10, CosPhi: 1.2, VoltageV: 380})
	require.Error(t, err)
}

func TestCalculate_ReturnsDrop(t *testing.T) {
	res, err := Calculate(Input{
		System: ThreePhase, IbA: 95, LengthM: 150, CosPhi: 0.85,
		VoltageV: 380, ROhmKm: 1.0, XOhmKm: 0.1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.863, res.DropPct, 0.001)
}
