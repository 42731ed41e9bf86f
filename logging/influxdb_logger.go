package logging

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/kcz17/traversalplot/responsetime"
	"github.com/kcz17/traversalplot/stats"
	"log"
	"strconv"
	"time"
)

// influxDBLogger exports summaries to an external InfluxDB instance so that
// benchmark runs can be compared over time. Chart events are not exported.
type influxDBLogger struct {
	client      influxdb2.Client
	asyncWriter api.WriteAPI
	now func() time.Time
	// fileTimes holds the time of the first point written for each file, so
	// all points of one file share a timestamp.
	fileTimes map[string]time.Time
}

func NewInfluxDBLogger(baseURL, authToken, org, bucket string) *influxDBLogger {
	options := influxdb2.DefaultOptions()
	options.WriteOptions().SetBatchSize(1000)
	options.WriteOptions().SetFlushInterval(250)

	client := influxdb2.NewClientWithOptions(baseURL, authToken, options)
	writeAPI := client.WriteAPI(org, bucket)

	// Create a goroutine for reading and logging async write errors.
	errorsCh := writeAPI.Errors()
	go func() {
		for err := range errorsCh {
			log.Printf("influxdb2 logging async write error: %v\n", err)
		}
	}()

	return &influxDBLogger{
		client:      client,
		asyncWriter: writeAPI,
		now:         time.Now,
		fileTimes:   map[string]time.Time{},
	}
}

func (l *influxDBLogger) LogGroupSummary(file string, workers int, aggregation *responsetime.Aggregation) {
	p := influxdb2.NewPointWithMeasurement("traversalplot_request_time").
		AddTag("file", file).
		AddTag("workers", strconv.Itoa(workers)).
		AddField("count", aggregation.Count).
		AddField("mean", responsetime.Seconds(aggregation.Mean)).
		AddField("p50", responsetime.Seconds(aggregation.P50)).
		AddField("p75", responsetime.Seconds(aggregation.P75)).
		AddField("p95", responsetime.Seconds(aggregation.P95)).
		SetTime(l.timeFor(file))
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogDistributionShift(file string, shift stats.Shift) {
	p := influxdb2.NewPointWithMeasurement("traversalplot_distribution_shift").
		AddTag("file", file).
		AddTag("from_workers", strconv.Itoa(shift.FromWorkers)).
		AddTag("to_workers", strconv.Itoa(shift.ToWorkers)).
		AddField("statistic", shift.Statistic).
		AddField("critical_value", shift.CriticalValue).
		AddField("rejected", shift.Rejected).
		SetTime(l.timeFor(file))
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) timeFor(file string) time.Time {
	t, ok := l.fileTimes[file]
	if !ok {
		t = l.now()
		l.fileTimes[file] = t
	}
	return t
}

func (*influxDBLogger) LogChartSaved(string, string) {
	return
}

func (*influxDBLogger) LogViewerListening(file string, url string) {
	// The viewer URL must still reach the user.
	log.Printf("%s: chart available at %s, press Dismiss on the page to continue\n", file, url)
}

func (l *influxDBLogger) Close() {
	l.asyncWriter.Flush()
	l.client.Close()
}
