package stats

import (
	"fmt"

	"github.com/kcz17/traversalplot/aggregation"
)

// minShiftSamples is the smallest group size compared by AdjacentShifts.
const minShiftSamples = 2

// Shift compares the request times of two neighbouring worker counts.
type Shift struct {
	FromWorkers int
	ToWorkers   int
	KSResult
}

// AdjacentShifts runs a KS-test between each pair of neighbouring worker
// counts, in ascending order. Groups with fewer than two samples are skipped.
func AdjacentShifts(groups *aggregation.Groups, percentile Percentile) ([]Shift, error) {
	var comparable []int
	for _, workers := range groups.SortedKeys() {
		if len(groups.Values(workers)) >= minShiftSamples {
			comparable = append(comparable, workers)
		}
	}

	shifts := []Shift{}
	for i := 1; i < len(comparable); i++ {
		from, to := comparable[i-1], comparable[i]
		result, err := KolmogorovSmirnovTest(groups.Values(from), groups.Values(to), percentile)
		if err != nil {
			return nil, fmt.Errorf("AdjacentShifts() got err comparing %d and %d workers: %w", from, to, err)
		}
		shifts = append(shifts, Shift{
			FromWorkers: from,
			ToWorkers:   to,
			KSResult:    *result,
		})
	}
	return shifts, nil
}
