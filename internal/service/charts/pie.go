package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieSlice renders one wedge of a pie chart. gonum/plot has no pie plotter,
// so the wedge is drawn directly with vg paths; labels and percentages go
// through the plot legend. start and fraction are expressed as fractions of
// the full circle, measured clockwise from twelve o'clock.
type pieSlice struct {
	start    float64
	fraction float64
	color    color.Color
}

func (s *pieSlice) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}
	radius := c.Max.X - c.Min.X
	if h := c.Max.Y - c.Min.Y; h < radius {
		radius = h
	}
	radius = radius * 2 / 5

	startAngle := math.Pi/2 - 2*math.Pi*s.start
	sweep := -2 * math.Pi * s.fraction

	var path vg.Path
	path.Move(center)
	path.Arc(center, radius, startAngle, sweep)
	path.Close()

	c.SetColor(s.color)
	c.Fill(path)
}

// DataRange satisfies plot.DataRanger; the axes are hidden but the plot
// still needs a finite range.
func (s *pieSlice) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 1, 0, 1
}

// Thumbnail draws the legend swatch for the slice.
func (s *pieSlice) Thumbnail(c *draw.Canvas) {
	points := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, points)
}
