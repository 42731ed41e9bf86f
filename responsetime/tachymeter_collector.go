package responsetime

import (
	"github.com/jamiealquiza/tachymeter"
	"time"
)

// tachymeterCollector uses the jamiealquiza/tachymeter library to capture and
// calculate timings. Only the most recent window response times are kept, so
// memory stays bounded for very large traversal files.
type tachymeterCollector struct {
	tach   *tachymeter.Tachymeter
	window int
	count  int
}

func NewTachymeterCollector(window int) *tachymeterCollector {
	return &tachymeterCollector{
		tach: tachymeter.New(&tachymeter.Config{
			Size: window,
		}),
		window: window,
	}
}

func (c *tachymeterCollector) Len() int {
	if c.count > c.window {
		return c.window
	}
	return c.count
}

func (c *tachymeterCollector) Add(t time.Duration) {
	c.tach.AddTime(t)
	c.count++
}

func (c *tachymeterCollector) Aggregate() *Aggregation {
	if c.count == 0 {
		return &Aggregation{}
	}
	metrics := c.tach.Calc()
	return &Aggregation{
		Count: c.Len(),
		Mean:  metrics.Time.Avg,
		P50:   metrics.Time.P50,
		P75:   metrics.Time.P75,
		P95:   metrics.Time.P95,
	}
}

func (c *tachymeterCollector) Reset() {
	c.tach.Reset()
	c.count = 0
}
