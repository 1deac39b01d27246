package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scale = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50}

func TestValidate_ConsecutiveTriple(t *testing.T) {
	assert.NoError(t, Validate([]float64{10, 16, 25}, scale))
}

func TestValidate_OrderAndDuplicatesIrrelevant(t *testing.T) {
	assert.NoError(t, Validate([]float64{25, 10, 16, 16, 10}, scale))
}

func TestValidate_SingleGauge(t *testing.T) {
	assert.NoError(t, Validate([]float64{6}, scale))
}

func TestValidate_GapRejected(t *testing.T) {
	// 16 sits between 10 and 25 on the scale; skipping it is a violation.
	err := Validate([]float64{10, 25}, scale)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConsecutive)
}

func TestValidate_MoreThanThreeRejected(t *testing.T) {
	err := Validate([]float64{1.5, 2.5, 4, 6}, scale)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyGauges)
}

func TestValidate_UnknownGauge(t *testing.T) {
	err := Validate([]float64{10, 99}, scale)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGaugeNotInScale)
}

func TestValidate_CountCheckedBeforeScale(t *testing.T) {
	// Four distinct gauges fail on count even when one is off-scale.
	err := Validate([]float64{1.5, 2.5, 4, 99}, scale)
	assert.ErrorIs(t, err, ErrTooManyGauges)
}
