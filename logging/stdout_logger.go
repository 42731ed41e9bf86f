package logging

import (
	"log"

	"github.com/kcz17/traversalplot/responsetime"
	"github.com/kcz17/traversalplot/stats"
)

// stdoutLogger logs the output through the standard logger.
type stdoutLogger struct {
	logger *log.Logger
}

func NewStdoutLogger() *stdoutLogger {
	return &stdoutLogger{logger: log.Default()}
}

// NewStdoutLoggerWith logs through l instead of the standard logger.
func NewStdoutLoggerWith(l *log.Logger) *stdoutLogger {
	return &stdoutLogger{logger: l}
}

func (l *stdoutLogger) LogGroupSummary(file string, workers int, aggregation *responsetime.Aggregation) {
	l.logger.Printf("%s: workers: %d, n: %d, mean: %.3f, p50: %.3f, p75: %.3f, p95: %.3f\n",
		file,
		workers,
		aggregation.Count,
		responsetime.Seconds(aggregation.Mean),
		responsetime.Seconds(aggregation.P50),
		responsetime.Seconds(aggregation.P75),
		responsetime.Seconds(aggregation.P95),
	)
}

func (l *stdoutLogger) LogDistributionShift(file string, shift stats.Shift) {
	verdict := "same distribution"
	if shift.Rejected {
		verdict = "distribution shifted"
	}
	l.logger.Printf("%s: workers %d -> %d: %s (D = %.3f, critical = %.3f)\n",
		file, shift.FromWorkers, shift.ToWorkers, verdict, shift.Statistic, shift.CriticalValue)
}

func (l *stdoutLogger) LogChartSaved(file string, path string) {
	l.logger.Printf("%s: chart saved to %s\n", file, path)
}

func (l *stdoutLogger) LogViewerListening(file string, url string) {
	l.logger.Printf("%s: chart available at %s, press Dismiss on the page to continue\n", file, url)
}

func (*stdoutLogger) Close() {
	return
}
