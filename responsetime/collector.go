package responsetime

import (
	"math"
	"time"
)

// Aggregation summarises the response times held by a Collector.
type Aggregation struct {
	Count int           // Count is the number of response times aggregated.
	Mean  time.Duration // Mean is the arithmetic mean response time.
	P50   time.Duration // P50 is the 50th percentile response time.
	P75   time.Duration // P75 is the 75th percentile response time.
	P95   time.Duration // P95 is the 95th percentile response time.
}

type Collector interface {
	Len() int                // Len gets the number of response times collected.
	Add(t time.Duration)     // Add sends a new response time to the collector.
	Aggregate() *Aggregation // Aggregate calculates aggregate metrics over the collected response times.
	Reset()                  // Reset resets the state of the collector for reuse.
}

// Collector drivers selectable by name.
const (
	ArrayDriver      = "array"
	TachymeterDriver = "tachymeter"
)

// NewCollector returns the collector registered under driver. window is only
// used by the tachymeter driver.
func NewCollector(driver string, window int) (Collector, error) {
	switch driver {
	case ArrayDriver:
		return NewArrayCollector(), nil
	case TachymeterDriver:
		return NewTachymeterCollector(window), nil
	default:
		return nil, &UnknownDriverError{Driver: driver}
	}
}

type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return "responsetime: expected collector driver one of {array|tachymeter}; got " + e.Driver
}

// FromSeconds converts a sample in seconds into a time.Duration, rounding to
// the nearest nanosecond.
func FromSeconds(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Seconds converts a time.Duration into seconds.
func Seconds(d time.Duration) float64 {
	return float64(d) / float64(time.Second)
}
