package logging

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kcz17/traversalplot/responsetime"
	"github.com/kcz17/traversalplot/stats"
)

var testAggregation = &responsetime.Aggregation{
	Count: 3,
	Mean:  1250 * time.Millisecond,
	P50:   time.Second,
	P75:   1500 * time.Millisecond,
	P95:   2 * time.Second,
}

var testShift = stats.Shift{
	FromWorkers: 4,
	ToWorkers:   8,
	KSResult:    stats.KSResult{Statistic: 0.5, CriticalValue: 0.25, Rejected: true},
}

func TestStdoutLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdoutLoggerWith(log.New(&buf, "", 0))

	l.LogGroupSummary("data.json", 4, testAggregation)
	l.LogDistributionShift("data.json", testShift)
	l.LogChartSaved("data.json", "data.png")
	l.LogViewerListening("data.json", "http://127.0.0.1:1234/")
	l.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"data.json: workers: 4, n: 3, mean: 1.250, p50: 1.000, p75: 1.500, p95: 2.000",
		"data.json: workers 4 -> 8: distribution shifted (D = 0.500, critical = 0.250)",
		"data.json: chart saved to data.png",
		"data.json: chart available at http://127.0.0.1:1234/, press Dismiss on the page to continue",
	}, lines)
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	// Nothing to observe; the calls must simply not panic.
	l.LogGroupSummary("data.json", 4, testAggregation)
	l.LogDistributionShift("data.json", testShift)
	l.LogChartSaved("data.json", "data.png")
	l.LogViewerListening("data.json", "http://127.0.0.1:1234/")
	l.Close()
}

func TestInfluxDBLogger_WritesPoints(t *testing.T) {
	var mux sync.Mutex
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/api/v2/write") {
			b, _ := io.ReadAll(r.Body)
			mux.Lock()
			bodies = append(bodies, string(b))
			mux.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	l := NewInfluxDBLogger(server.URL, "token", "org", "bucket")
	l.now = func() time.Time { return time.Unix(1600000000, 0) }

	l.LogGroupSummary("data.json", 4, testAggregation)
	l.LogDistributionShift("data.json", testShift)
	l.Close()

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		all := strings.Join(bodies, "\n")
		return strings.Contains(all, "traversalplot_request_time") &&
			strings.Contains(all, "traversalplot_distribution_shift")
	}, 5*time.Second, 50*time.Millisecond)

	mux.Lock()
	defer mux.Unlock()
	all := strings.Join(bodies, "\n")
	assert.Contains(t, all, "workers=4")
	assert.Contains(t, all, "count=3i")
	assert.Contains(t, all, "p95=2")
	assert.Contains(t, all, "rejected=true")
}

func TestInfluxDBLogger_StampsEachFileOnce(t *testing.T) {
	var mux sync.Mutex
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/api/v2/write") {
			b, _ := io.ReadAll(r.Body)
			mux.Lock()
			bodies = append(bodies, string(b))
			mux.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	l := NewInfluxDBLogger(server.URL, "token", "org", "bucket")
	var calls int64
	l.now = func() time.Time {
		calls++
		return time.Unix(1600000000+calls, 0)
	}

	l.LogGroupSummary("a.json", 1, testAggregation)
	l.LogGroupSummary("a.json", 4, testAggregation)
	l.LogDistributionShift("a.json", testShift)
	l.LogGroupSummary("b.json", 1, testAggregation)
	l.Close()

	var lines []string
	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		lines = nil
		for _, body := range bodies {
			for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
				if line != "" {
					lines = append(lines, line)
				}
			}
		}
		return len(lines) == 4
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, int64(2), calls)
	for _, line := range lines {
		switch {
		case strings.Contains(line, "file=a.json"):
			assert.Truef(t, strings.HasSuffix(line, " 1600000001000000000"), "unexpected timestamp in %s", line)
		case strings.Contains(line, "file=b.json"):
			assert.Truef(t, strings.HasSuffix(line, " 1600000002000000000"), "unexpected timestamp in %s", line)
		default:
			t.Errorf("unexpected line %s", line)
		}
	}
}
