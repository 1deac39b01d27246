package grouping

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrTooManyGauges   = errors.New("grouping must not exceed 3 distinct nominal gauges")
	ErrNotConsecutive  = errors.New("grouped gauges must be consecutive on the nominal scale")
	ErrGaugeNotInScale = errors.New("gauge not found on the nominal scale")
)

// Validate checks the grouping rule for one conduit: at most three distinct
// gauges, and the distinct gauges must occupy a contiguous run of the
// nominal scale (10, 16, 25 is fine; 10 and 25 with 16 skipped is not).
// ErrGaugeNotInScale is defensive; the caller is expected to only offer
// gauges from the scale.
func Validate(gauges []float64, scale []float64) error {
	seen := make(map[float64]bool, len(gauges))
	distinct := make([]float64, 0, len(gauges))
	for _, g := range gauges {
		if !seen[g] {
			seen[g] = true
			distinct = append(distinct, g)
		}
	}

	if len(distinct) > 3 {
		return ErrTooManyGauges
	}
	if len(distinct) <= 1 {
		return nil
	}

	indices := make([]int, 0, len(distinct))
	for _, g := range distinct {
		idx := -1
		for i, s := range scale {
			if s == g {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %g mm2", ErrGaugeNotInScale, g)
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	if indices[len(indices)-1]-indices[0] != len(indices)-1 {
		return ErrNotConsecutive
	}
	return nil
}
