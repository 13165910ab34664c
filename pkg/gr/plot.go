package gr

import (
	"image/color"

	"github.com/kpotier/molrdf/pkg/rdf"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotGR saves g(r) with a dashed line at g(r) = 1, the value of an ideal gas.
func plotGR(path, title string, pts []rdf.Point) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r"
	p.Y.Label.Text = "g(r)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(pts))
	for i, v := range pts {
		xys[i].X = v.R
		xys[i].Y = v.G
	}

	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = color.RGBA{B: 200, A: 255}

	ideal := plotter.NewFunction(func(float64) float64 { return 1 })
	ideal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	ideal.Color = color.Gray{Y: 120}

	p.Add(l, ideal)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
