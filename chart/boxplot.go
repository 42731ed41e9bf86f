package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kcz17/traversalplot/aggregation"
)

const (
	XLabel = "Workers"
	YLabel = "Request Time (s)"
)

// Render draws one box per worker count, positioned at the worker count on
// the x axis, with the mean of each group marked by a star. Outliers are not
// drawn and do not stretch the y axis. Worker counts without samples are
// left out; with no samples at all only the labelled axes are drawn.
func Render(groups *aggregation.Groups, style Style) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	if groups.Count() == 0 {
		return p, nil
	}

	var means plotter.XYs
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, workers := range groups.SortedKeys() {
		samples := groups.Values(workers)
		if len(samples) == 0 {
			continue
		}

		box, err := plotter.NewBoxPlot(0, float64(workers), plotter.Values(samples))
		if err != nil {
			return nil, fmt.Errorf("Render() got err creating box for %d workers: %w", workers, err)
		}
		applyBoxStyle(box, style)
		p.Add(&dataWidthBox{BoxPlot: box, dataWidth: style.BoxWidth})

		mean := stat.Mean(samples, nil)
		means = append(means, plotter.XY{X: float64(workers), Y: mean})

		xMin, xMax = math.Min(xMin, float64(workers)), math.Max(xMax, float64(workers))
		yMin = math.Min(yMin, math.Min(box.AdjLow, mean))
		yMax = math.Max(yMax, math.Max(box.AdjHigh, mean))
	}

	meanMarkers, err := plotter.NewScatter(means)
	if err != nil {
		return nil, fmt.Errorf("Render() got err creating mean markers: %w", err)
	}
	meanMarkers.GlyphStyle = draw.GlyphStyle{
		Color:  style.MeanColor,
		Radius: style.MeanRadius,
		Shape:  StarGlyph{},
	}
	p.Add(meanMarkers)

	setRanges(p, xMin, xMax, yMin, yMax)
	return p, nil
}

func applyBoxStyle(box *plotter.BoxPlot, style Style) {
	box.BoxStyle = draw.LineStyle{Color: style.BoxColor, Width: style.BoxLineWidth}
	box.MedianStyle = draw.LineStyle{Color: style.MedianColor, Width: style.MedianLineWidth}
	box.WhiskerStyle = draw.LineStyle{Color: style.WhiskerColor, Width: style.WhiskerLineWidth}
	// Hide outliers: no glyph is drawn and none are reserved space for.
	box.GlyphStyle.Shape = nil
	box.Outside = nil
}

// dataWidthBox sizes its box in x axis units. The width in points is only
// known once the canvas and x range are, so it is set when drawing.
type dataWidthBox struct {
	*plotter.BoxPlot
	dataWidth float64
}

func (b *dataWidthBox) Plot(c draw.Canvas, plt *plot.Plot) {
	b.Width = boxWidthOn(c, plt, b.Location, b.dataWidth)
	b.CapWidth = 3 * b.Width / 4
	b.BoxPlot.Plot(c, plt)
}

// boxWidthOn converts a width in x axis units centred on loc into a length
// on c.
func boxWidthOn(c draw.Canvas, plt *plot.Plot, loc, dataWidth float64) vg.Length {
	trX, _ := plt.Transforms(&c)
	return trX(loc+dataWidth/2) - trX(loc-dataWidth/2)
}

// setRanges overrides the ranges collected by plot.Add, which include the
// outliers, with the whisker and mean extents plus a 5% margin.
func setRanges(p *plot.Plot, xMin, xMax, yMin, yMax float64) {
	xPad := math.Max(0.5, 0.05*(xMax-xMin))
	p.X.Min = xMin - xPad
	p.X.Max = xMax + xPad

	yPad := 0.05 * (yMax - yMin)
	if yPad == 0 {
		// Identical samples; an empty range would be widened by the axis to
		// ±1 around the value, past zero.
		yPad = 0.05 * math.Abs(yMax)
		if yPad == 0 {
			yPad = 1
		}
	}
	p.Y.Min = yMin - yPad
	p.Y.Max = yMax + yPad
	if yMin >= 0 && p.Y.Min < 0 {
		p.Y.Min = 0
	}
}
