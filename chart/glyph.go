package chart

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// starInnerRatio is the inner to outer radius ratio of a regular pentagram.
const starInnerRatio = 0.381966

// StarGlyph is a filled five-pointed star, pointing up.
type StarGlyph struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (StarGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	const points = 5
	p := make(vg.Path, 0, 2*points+1)
	for i := 0; i < 2*points; i++ {
		r := sty.Radius
		if i%2 == 1 {
			r *= starInnerRatio
		}
		angle := math.Pi/2 + float64(i)*math.Pi/points
		v := vg.Point{
			X: pt.X + r*vg.Length(math.Cos(angle)),
			Y: pt.Y + r*vg.Length(math.Sin(angle)),
		}
		if i == 0 {
			p.Move(v)
		} else {
			p.Line(v)
		}
	}
	p.Close()
	c.Fill(p)
}
