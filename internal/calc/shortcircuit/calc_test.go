package shortcircuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Condutor/internal/calc/voltagedrop"
)

func TestCalculate_ThreePhase(t *testing.T) {
	res, err := Calculate(Input{
		System: voltagedrop.ThreePhase, VoltageV: 380,
		RCableOhm: 0.05, XCableOhm: 0, RSourceOhm: 0.05, XSourceOhm: 0,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.1, res.RTotalOhm, 1e-12)
	assert.InDelta(t, 0.1, res.ZTotalOhm, 1e-12)
	assert.InDelta(t, 380/(math.Sqrt(3)*0.1), res.IccMaxA, 1e-9)
	assert.False(t, res.Unbounded)
}

func TestCalculate_SinglePhase(t *testing.T) {
	res, err := Calculate(Input{
		System: voltagedrop.SinglePhase, VoltageV: 220,
		RCableOhm: 0.08, XCableOhm: 0.06, RSourceOhm: 0, XSourceOhm: 0,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.1, res.ZTotalOhm, 1e-12)
	assert.InDelta(t, 220/(2*0.1), res.IccMaxA, 1e-9)
}

func TestCalculate_ZeroImpedanceIsUnboundedNotAFault(t *testing.T) {
	res, err := Calculate(Input{System: voltagedrop.ThreePhase, VoltageV: 380})
	require.NoError(t, err)

	assert.True(t, res.Unbounded)
	assert.True(t, math.IsInf(res.IccMaxA, 1))
	assert.Zero(t, res.ZTotalOhm)
}

func TestCalculate_ImpedanceComposition(t *testing.T) {
	res, err := Calculate(Input{
		System: voltagedrop.ThreePhase, VoltageV: 380,
		RCableOhm: 0.3, XCableOhm: 0.4, RSourceOhm: 0, XSourceOhm: 0,
	})
	require.NoError(t, err)

	// 3-4-5 triangle.
	assert.InDelta(t, 0.5, res.ZTotalOhm, 1e-12)
}

func TestCalculate_RejectsBadInput(t *testing.T) {
	_, err := Calculate(Input{System: voltagedrop.ThreePhase, VoltageV: 0})
	require.Error(t, err)

	_, err = Calculate(Input{System: voltagedrop.ThreePhase, VoltageV: 380, RCableOhm: -0.1})
	require.Error(t, err)
}
