package aggregation

import (
	"sort"

	"github.com/kcz17/traversalplot/traversals"
)

// Groups maps a worker count to the request times, in seconds, recorded by
// every traversal run with that many workers. Keys keep the order in which
// they were first seen; use SortedKeys when the numeric order matters.
type Groups struct {
	keys   []int
	values map[int][]float64
}

func NewGroups() *Groups {
	return &Groups{
		keys:   []int{},
		values: map[int][]float64{},
	}
}

// Aggregate flattens every traversal's request times into the group keyed by
// its worker count. Samples within a group keep the order of the traversals
// in the document, then the order of their request times.
func Aggregate(doc *traversals.Document) *Groups {
	g := NewGroups()
	for _, traversal := range doc.Traversals {
		workers := *traversal.Workers
		// A traversal without request times still registers its worker count.
		g.getOrCreate(workers)
		for _, d := range traversal.RequestTimes {
			g.Append(workers, d.Seconds())
		}
	}
	return g
}

func (g *Groups) getOrCreate(workers int) []float64 {
	samples, ok := g.values[workers]
	if !ok {
		g.keys = append(g.keys, workers)
		samples = []float64{}
		g.values[workers] = samples
	}
	return samples
}

// Append adds a sample to the group for workers, creating the group if needed.
func (g *Groups) Append(workers int, seconds float64) {
	g.values[workers] = append(g.getOrCreate(workers), seconds)
}

// Keys returns the worker counts in first-seen order.
func (g *Groups) Keys() []int {
	keys := make([]int, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// SortedKeys returns the worker counts in ascending order.
func (g *Groups) SortedKeys() []int {
	keys := g.Keys()
	sort.Ints(keys)
	return keys
}

// Values returns a copy of the samples for workers, or nil if no traversal
// used that many workers.
func (g *Groups) Values(workers int) []float64 {
	samples, ok := g.values[workers]
	if !ok {
		return nil
	}
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Count returns the number of samples across all groups.
func (g *Groups) Count() int {
	n := 0
	for _, samples := range g.values {
		n += len(samples)
	}
	return n
}
