package responsetime

import (
	"fmt"
	"github.com/montanaflynn/stats"
	"time"
)

// arrayCollector keeps every response time in memory and computes exact
// statistics over them. Storage and computation are both O(n).
type arrayCollector struct {
	responseTimesSeconds []float64
}

func NewArrayCollector() *arrayCollector {
	return &arrayCollector{
		responseTimesSeconds: []float64{},
	}
}

func (c *arrayCollector) Len() int {
	return len(c.responseTimesSeconds)
}

func (c *arrayCollector) Add(t time.Duration) {
	c.responseTimesSeconds = append(c.responseTimesSeconds, Seconds(t))
}

func (c *arrayCollector) Aggregate() *Aggregation {
	// The stats package requires input arrays to be non-empty.
	if len(c.responseTimesSeconds) == 0 {
		return &Aggregation{}
	}

	mean, err := stats.Mean(c.responseTimesSeconds)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating mean: %w", err))
	}
	p50, err := stats.Median(c.responseTimesSeconds)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p50: %w", err))
	}
	p75, err := stats.Percentile(c.responseTimesSeconds, 75)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p75: %w", err))
	}
	p95, err := stats.Percentile(c.responseTimesSeconds, 95)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p95: %w", err))
	}

	return &Aggregation{
		Count: len(c.responseTimesSeconds),
		Mean:  FromSeconds(mean),
		P50:   FromSeconds(p50),
		P75:   FromSeconds(p75),
		P95:   FromSeconds(p95),
	}
}

func (c *arrayCollector) Reset() {
	c.responseTimesSeconds = []float64{}
}
