package gauge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Condutor/internal/calc/voltagedrop"
	"Condutor/internal/tables"
)

func testCatalog() *tables.Catalog {
	return tables.New(
		[]tables.ConductorSpec{
			{GaugeMM2: 10, ROhmKm: 2.19, XOhmKm: 0.101, AmpacityA: 57, CostPerMeter: 6.90},
			{GaugeMM2: 16, ROhmKm: 1.38, XOhmKm: 0.098, AmpacityA: 76, CostPerMeter: 10.50},
			{GaugeMM2: 25, ROhmKm: 0.87, XOhmKm: 0.095, AmpacityA: 101, CostPerMeter: 16.80},
			{GaugeMM2: 35, ROhmKm: 0.63, XOhmKm: 0.093, AmpacityA: 125, CostPerMeter: 23.40},
		},
		map[float64]float64{10: 27.34, 16: 38.48, 25: 56.75, 35: 70.88},
		[]tables.ConduitSpec{
			{DiameterMM: 20, InternalAreaMM2: 225, Area40PctMM2: 90},
		},
	)
}

func TestOptimize_PicksSmallestQualifyingGauge(t *testing.T) {
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 50, LengthM: 100, CosPhi: 0.85,
		VoltageV: 380, MaxDropPct: 5.0, GroupingCa: 1.0,
	}, testCatalog())
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Equal(t, 10.0, res.GaugeMM2)
	assert.Equal(t, 57.0, res.AmpacityA)
	assert.InDelta(t, 6.90*100, res.TotalCost, 1e-9)
	assert.True(t, res.MeetsAmpacity)
	assert.Empty(t, res.Reason)
}

func TestOptimize_DropLimitForcesLargerGauge(t *testing.T) {
	// 10 mm2 carries 50 A but drops ~4.4% over 100 m; a 3% cap pushes the
	// selection to 16 mm2.
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 50, LengthM: 100, CosPhi: 0.85,
		VoltageV: 380, MaxDropPct: 3.0, GroupingCa: 1.0,
	}, testCatalog())
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Equal(t, 16.0, res.GaugeMM2)
	assert.LessOrEqual(t, res.DropPct, 3.0)
	assert.InDelta(t, 10.50*100, res.TotalCost, 1e-9)
}

func TestOptimize_GroupingFactorCorrectsCurrent(t *testing.T) {
	// 50 A at Ca=0.7 needs 71.4 A of uncorrected ampacity: 10 mm2 (57 A) is
	// out, 16 mm2 (76 A) is the first candidate.
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 50, LengthM: 50, CosPhi: 0.85,
		VoltageV: 380, MaxDropPct: 5.0, GroupingCa: 0.7,
	}, testCatalog())
	require.NoError(t, err)

	require.True(t, res.Found)
	assert.Equal(t, 16.0, res.GaugeMM2)
}

func TestOptimize_NoGaugeMeetsAmpacity(t *testing.T) {
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 300, LengthM: 50, CosPhi: 0.85,
		VoltageV: 380, MaxDropPct: 5.0, GroupingCa: 1.0,
	}, testCatalog())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.False(t, res.MeetsAmpacity)
	assert.Equal(t, ReasonNoAmpacity, res.Reason)
}

func TestOptimize_AmpacityOKButDropFails(t *testing.T) {
	// Long feeder with a cap no tabulated gauge can honor.
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 50, LengthM: 800, CosPhi: 0.85,
		VoltageV: 380, MaxDropPct: 2.0, GroupingCa: 1.0,
	}, testCatalog())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.True(t, res.MeetsAmpacity)
	assert.Equal(t, ReasonNoVoltageDrop, res.Reason)
}

func TestOptimize_NilCatalog(t *testing.T) {
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 50, LengthM: 100, CosPhi: 0.85,
		VoltageV: 380, MaxDropPct: 5.0, GroupingCa: 1.0,
	}, nil)
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.False(t, res.MeetsAmpacity)
	assert.Equal(t, ReasonTablesUnavailable, res.Reason)
}

func TestOptimize_InvalidScalars(t *testing.T) {
	cat := testCatalog()

	_, err := Optimize(Input{IbA: -1, LengthM: 10, CosPhi: 0.9, VoltageV: 380, MaxDropPct: 4, GroupingCa: 1}, cat)
	require.Error(t, err)

	_, err = Optimize(Input{IbA: 10, LengthM: 10, CosPhi: 0.9, VoltageV: 380, MaxDropPct: 4, GroupingCa: 0}, cat)
	require.Error(t, err)

	_, err = Optimize(Input{IbA: 10, LengthM: 10, CosPhi: 0.9, VoltageV: 380, MaxDropPct: 4, GroupingCa: 1.5}, cat)
	require.Error(t, err)
}

func TestOptimize_ResultGaugeRoundTripsThroughCatalog(t *testing.T) {
	cat := testCatalog()
	res, err := Optimize(Input{
		System: voltagedrop.ThreePhase, IbA: 90, LengthM: 60, CosPhi: 0.9,
		VoltageV: 380, MaxDropPct: 4.0, GroupingCa: 1.0,
	}, cat)
	require.NoError(t, err)
	require.True(t, res.Found)

	// The selected gauge keys back into the tables exactly.
	spec, ok := cat.Conductor(res.GaugeMM2)
	require.True(t, ok)
	assert.Equal(t, res.AmpacityA, spec.AmpacityA)
	_, ok = cat.InsulatedAreas[res.GaugeMM2]
	assert.True(t, ok)
}
