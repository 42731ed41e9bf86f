package main

import (
	"context"
	"fmt"

	"gonum.org/v1/plot/vg"

	"github.com/kcz17/traversalplot/aggregation"
	"github.com/kcz17/traversalplot/chart"
	"github.com/kcz17/traversalplot/logging"
	"github.com/kcz17/traversalplot/output"
	"github.com/kcz17/traversalplot/responsetime"
	"github.com/kcz17/traversalplot/stats"
	"github.com/kcz17/traversalplot/traversals"
)

// comparisonOff disables the KS comparison of neighbouring worker counts.
const comparisonOff = "off"

type TraversalPlotterOptions struct {
	Style     chart.Style
	Presenter *output.Presenter
	Logger    logging.Logger
	// IsSummaryEnabled logs request time percentiles for every worker count.
	IsSummaryEnabled bool
	CollectorDriver  string
	CollectorWindow  int
	// Comparison is a KS-test confidence such as p95, or off.
	Comparison string
}

// TraversalPlotter turns traversal files into request time charts, one file
// at a time.
type TraversalPlotter struct {
	style     chart.Style
	presenter *output.Presenter
	logger    logging.Logger
	summary   struct {
		IsEnabled       bool
		CollectorDriver string
		CollectorWindow int
		// ComparePercentile is nil when comparisons are off.
		ComparePercentile *stats.Percentile
	}
}

func NewTraversalPlotter(options *TraversalPlotterOptions) (*TraversalPlotter, error) {
	p := &TraversalPlotter{
		style:     options.Style,
		presenter: options.Presenter,
		logger:    options.Logger,
	}
	p.summary.IsEnabled = options.IsSummaryEnabled
	p.summary.CollectorDriver = options.CollectorDriver
	p.summary.CollectorWindow = options.CollectorWindow

	if !options.IsSummaryEnabled {
		return p, nil
	}
	if _, err := responsetime.NewCollector(options.CollectorDriver, options.CollectorWindow); err != nil {
		return nil, fmt.Errorf("NewTraversalPlotter() got err creating collector: %w", err)
	}
	if options.Comparison != comparisonOff {
		percentile, err := stats.ParsePercentile(options.Comparison)
		if err != nil {
			return nil, fmt.Errorf("NewTraversalPlotter() got err parsing comparison: %w", err)
		}
		p.summary.ComparePercentile = &percentile
	}
	return p, nil
}

// PlotFile reads, aggregates, summarises and renders one traversal file, then
// saves or displays the chart. Any error means no chart was produced.
func (p *TraversalPlotter) PlotFile(ctx context.Context, file string) error {
	doc, err := traversals.ReadFile(file)
	if err != nil {
		return fmt.Errorf("PlotFile() got err reading traversals: %w", err)
	}
	groups := aggregation.Aggregate(doc)

	if p.summary.IsEnabled {
		if err := p.summarize(file, groups); err != nil {
			return err
		}
	}

	plt, err := chart.Render(groups, p.style)
	if err != nil {
		return fmt.Errorf("PlotFile() got err rendering %s: %w", file, err)
	}
	path, err := p.presenter.Present(ctx, plt, file)
	if err != nil {
		return fmt.Errorf("PlotFile() got err presenting %s: %w", file, err)
	}
	if p.presenter.Mode() == output.Save {
		p.logger.LogChartSaved(file, path)
	}
	return nil
}

func (p *TraversalPlotter) summarize(file string, groups *aggregation.Groups) error {
	collector, err := responsetime.NewCollector(p.summary.CollectorDriver, p.summary.CollectorWindow)
	if err != nil {
		return fmt.Errorf("summarize() got err creating collector: %w", err)
	}

	for _, workers := range groups.SortedKeys() {
		collector.Reset()
		for _, seconds := range groups.Values(workers) {
			collector.Add(responsetime.FromSeconds(seconds))
		}
		p.logger.LogGroupSummary(file, workers, collector.Aggregate())
	}

	if p.summary.ComparePercentile == nil {
		return nil
	}
	shifts, err := stats.AdjacentShifts(groups, *p.summary.ComparePercentile)
	if err != nil {
		return fmt.Errorf("summarize() got err comparing worker groups in %s: %w", file, err)
	}
	for _, shift := range shifts {
		p.logger.LogDistributionShift(file, shift)
	}
	return nil
}

// styleFor builds the chart style from configured sizes. Colours are fixed.
func styleFor(width, height, boxWidth float64, title string) chart.Style {
	style := chart.DefaultStyle()
	style.Width = vg.Length(width) * vg.Inch
	style.Height = vg.Length(height) * vg.Inch
	style.BoxWidth = boxWidth
	style.Title = title
	return style
}
