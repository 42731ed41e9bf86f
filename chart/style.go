package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Style holds the fixed look of a request time chart. Only the figure size,
// box width and title are expected to change between runs.
type Style struct {
	Title string
	// Width and Height are the size of the saved or displayed image.
	Width  vg.Length
	Height vg.Length
	// BoxWidth is the width of each box in x axis units, so a width of 0.5
	// leaves room between neighbouring worker counts. Whisker caps are 3/4
	// of it.
	BoxWidth float64

	BoxColor     color.Color
	BoxLineWidth vg.Length

	MedianColor     color.Color
	MedianLineWidth vg.Length

	WhiskerColor     color.Color
	WhiskerLineWidth vg.Length

	MeanColor  color.Color
	MeanRadius vg.Length
}

var (
	// accentBlue is the first colour of the matplotlib "tab10" palette.
	accentBlue = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	meanGreen  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	medianRed  = color.RGBA{R: 0xff, A: 0xff}
)

func DefaultStyle() Style {
	return Style{
		Width:            10 * vg.Inch,
		Height:           5 * vg.Inch,
		BoxWidth:         0.5,
		BoxColor:         color.Black,
		BoxLineWidth:     vg.Points(1),
		MedianColor:      medianRed,
		MedianLineWidth:  vg.Points(0.5),
		WhiskerColor:     accentBlue,
		WhiskerLineWidth: vg.Points(1.5),
		MeanColor:        meanGreen,
		MeanRadius:       vg.Points(2.5),
	}
}
