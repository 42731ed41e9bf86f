package aggregation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcz17/traversalplot/traversals"
)

func mustDecode(t *testing.T, input string) *traversals.Document {
	t.Helper()
	doc, err := traversals.Decode(strings.NewReader(input))
	require.Nilf(t, err, "expected traversals.Decode() has no err; got %v", err)
	return doc
}

func TestAggregate_ConcatenatesTraversalsWithSameWorkers(t *testing.T) {
	doc := mustDecode(t, `{"traversals": [
		{"workers": 4, "request_times": [{"secs": 0, "nanos": 250000000}, {"secs": 1, "nanos": 0}]},
		{"workers": 4, "request_times": [{"secs": 2, "nanos": 0}]}
	]}`)

	g := Aggregate(doc)
	assert.Equal(t, []int{4}, g.Keys())
	assert.Equal(t, []float64{0.25, 1.0, 2.0}, g.Values(4))
}

func TestAggregate_KeysAndCounts(t *testing.T) {
	doc := mustDecode(t, `{"traversals": [
		{"workers": 8, "request_times": [{"secs": 0, "nanos": 1}, {"secs": 0, "nanos": 2}]},
		{"workers": 1, "request_times": [{"secs": 1, "nanos": 500000000}]},
		{"workers": 8, "request_times": [{"secs": 0, "nanos": 3}]},
		{"workers": 2, "request_times": []},
		{"workers": 1, "request_times": [{"secs": 3, "nanos": 0}, {"secs": 4, "nanos": 0}]}
	]}`)

	g := Aggregate(doc)

	// Keys are every distinct worker count, in first-seen order.
	assert.Equal(t, []int{8, 1, 2}, g.Keys())
	assert.Equal(t, []int{1, 2, 8}, g.SortedKeys())
	assert.Equal(t, 3, g.Len())

	// Group sizes equal the number of durations across matching traversals.
	wantCounts := map[int]int{8: 3, 1: 3, 2: 0}
	for workers, want := range wantCounts {
		assert.Lenf(t, g.Values(workers), want, "unexpected sample count for %d workers", workers)
	}
	assert.Equal(t, 6, g.Count())

	assert.Equal(t, []float64{1.5, 3, 4}, g.Values(1))
	assert.Equal(t, []float64{1e-9, 2e-9, 3e-9}, g.Values(8))
	assert.NotNil(t, g.Values(2))
	assert.Nil(t, g.Values(16))
}

func TestAggregate_IsIdempotent(t *testing.T) {
	doc := mustDecode(t, `{"traversals": [
		{"workers": 3, "request_times": [{"secs": 0, "nanos": 5}, {"secs": 7, "nanos": 0}]},
		{"workers": 5, "request_times": [{"secs": 1, "nanos": 1}]}
	]}`)

	first := Aggregate(doc)
	second := Aggregate(doc)
	assert.Equal(t, first.Keys(), second.Keys())
	for _, workers := range first.Keys() {
		assert.ElementsMatch(t, first.Values(workers), second.Values(workers))
	}
}

func TestAggregate_EmptyDocument(t *testing.T) {
	g := Aggregate(mustDecode(t, `{"traversals": []}`))
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.Count())
	assert.Empty(t, g.Keys())
}

func TestGroups_ValuesReturnsCopy(t *testing.T) {
	g := NewGroups()
	g.Append(2, 0.5)
	g.Append(2, 0.75)

	values := g.Values(2)
	values[0] = 100

	assert.Equal(t, []float64{0.5, 0.75}, g.Values(2))
}

func TestGroups_Append(t *testing.T) {
	g := NewGroups()
	g.Append(16, 1)
	g.Append(4, 2)
	g.Append(16, 3)

	assert.Equal(t, []int{16, 4}, g.Keys())
	assert.Equal(t, []int{4, 16}, g.SortedKeys())
	assert.Equal(t, []float64{1, 3}, g.Values(16))
}
