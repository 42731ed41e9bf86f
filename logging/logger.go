package logging

import (
	"github.com/kcz17/traversalplot/responsetime"
	"github.com/kcz17/traversalplot/stats"
)

type Logger interface {
	LogGroupSummary(file string, workers int, aggregation *responsetime.Aggregation) // Takes in one worker group's request time summary.
	LogDistributionShift(file string, shift stats.Shift)                              // Takes in a KS comparison of neighbouring worker groups.
	LogChartSaved(file string, path string)
	LogViewerListening(file string, url string)
	Close() // Close flushes any buffered output.
}

// Logging drivers selectable by name.
const (
	NoopDriver     = "noop"
	StdoutDriver   = "stdout"
	InfluxDBDriver = "influxdb"
)

// noopLogger does not perform any logging.
type noopLogger struct{}

func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (*noopLogger) LogGroupSummary(string, int, *responsetime.Aggregation) {
	return
}

func (*noopLogger) LogDistributionShift(string, stats.Shift) {
	return
}

func (*noopLogger) LogChartSaved(string, string) {
	return
}

func (*noopLogger) LogViewerListening(string, string) {
	return
}

func (*noopLogger) Close() {
	return
}
