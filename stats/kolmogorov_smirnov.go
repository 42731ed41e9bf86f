package stats

import (
	"fmt"
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

type Percentile = int

const (
	P90 Percentile = iota
	P95
	P97d5
	P99
	P99d5
	P99d9
)

// coefficients are KS-coefficients.
// Retrieved from: https://www.webdepot.umontreal.ca/Usagers/angers/MonDepotPublic/STT3500H10/Critical_KS.pdf
var coefficients = map[Percentile]float64{
	P90:   1.22,
	P95:   1.36,
	P97d5: 1.48,
	P99:   1.63,
	P99d5: 1.73,
	P99d9: 1.95,
}

var percentileNames = map[string]Percentile{
	"p90":   P90,
	"p95":   P95,
	"p97.5": P97d5,
	"p99":   P99,
	"p99.5": P99d5,
	"p99.9": P99d9,
}

// ParsePercentile maps a confidence level name such as "p95" to a Percentile.
func ParsePercentile(name string) (Percentile, error) {
	p, ok := percentileNames[name]
	if !ok {
		return 0, fmt.Errorf("ParsePercentile() expected one of {p90|p95|p97.5|p99|p99.5|p99.9}; got %s", name)
	}
	return p, nil
}

// KSResult is the outcome of a two-sample Kolmogorov-Smirnov test.
type KSResult struct {
	Statistic     float64
	CriticalValue float64
	// Rejected is true when the two samples are unlikely to come from the
	// same distribution.
	Rejected bool
}

// KolmogorovSmirnovTest performs a two-tailed KS-test. Rejected is true if the
// distributions are different and false if the candidate distribution belongs
// to the control distribution. Both samples must be non-empty.
func KolmogorovSmirnovTest(control []float64, candidate []float64, percentile Percentile) (*KSResult, error) {
	if len(control) == 0 || len(candidate) == 0 {
		return nil, fmt.Errorf("KolmogorovSmirnovTest() expected non-empty samples; got len(control) = %d, len(candidate) = %d", len(control), len(candidate))
	}

	// Calculate the KS-coefficient based on the percentile.
	coeff, ok := coefficients[percentile]
	if !ok {
		return nil, fmt.Errorf("KolmogorovSmirnovTest() got unexpected percentile %v, see Percentile type", percentile)
	}

	// Calculate the critical value.
	criticalValue := coeff * math.Sqrt(float64(len(control)+len(candidate))/float64(len(control)*len(candidate)))

	// Copy the input slices so we can sort them.
	sortedControl := make([]float64, len(control))
	copy(sortedControl, control)
	sort.Float64s(sortedControl)

	sortedCandidate := make([]float64, len(candidate))
	copy(sortedCandidate, candidate)
	sort.Float64s(sortedCandidate)

	// Pass in nil weights as gonum's stat package allows inputs to be
	// weighted, which is not relevant to our situation.
	testStatistic := stat.KolmogorovSmirnov(sortedControl, nil, sortedCandidate, nil)

	return &KSResult{
		Statistic:     testStatistic,
		CriticalValue: criticalValue,
		Rejected:      testStatistic > criticalValue,
	}, nil
}
