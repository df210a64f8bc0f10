package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	thrustColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	torqueColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	etaColor    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// ExportSpanwiseDiagram writes the radial load distributions to an image
// file. The format follows the file extension; unknown extensions fall
// back to PNG.
func ExportSpanwiseDiagram(data SpanwiseData, filename string) error {
	if len(data.Radius) == 0 {
		return fmt.Errorf("no stations to plot")
	}

	p := plot.New()
	p.Title.Text = "Spanwise Load Distribution"
	p.X.Label.Text = "Radius (m)"
	p.Y.Label.Text = "dT/dr (N/m), dQ/dr (N)"
	p.Add(plotter.NewGrid())

	thrustLine, err := plotter.NewLine(pairs(data.Radius, data.Thrust))
	if err != nil {
		return err
	}
	thrustLine.LineStyle.Width = vg.Points(2)
	thrustLine.LineStyle.Color = thrustColor
	p.Add(thrustLine)
	p.Legend.Add("dT/dr", thrustLine)

	torqueLine, err := plotter.NewLine(pairs(data.Radius, data.Torque))
	if err != nil {
		return err
	}
	torqueLine.LineStyle.Width = vg.Points(2)
	torqueLine.LineStyle.Color = torqueColor
	torqueLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(torqueLine)
	p.Legend.Add("dQ/dr", torqueLine)

	p.Legend.Top = true
	p.Legend.Left = true
	return save(p, filename)
}

// ExportSweepDiagram writes the thrust and efficiency curves of a
// velocity sweep to an image file. Thrust is normalized by its static
// value so both curves share one axis.
func ExportSweepDiagram(data SweepData, filename string) error {
	if len(data.Velocity) == 0 {
		return fmt.Errorf("no sweep points to plot")
	}

	p := plot.New()
	p.Title.Text = "Rotor Performance Sweep"
	p.X.Label.Text = "Velocity (m/s)"
	p.Y.Label.Text = "T/T(0), efficiency"
	p.Add(plotter.NewGrid())

	norm := make([]float64, len(data.Thrust))
	ref := data.Thrust[0]
	for i, v := range data.Thrust {
		if ref != 0 {
			norm[i] = v / ref
		}
	}

	thrustLine, err := plotter.NewLine(pairs(data.Velocity, norm))
	if err != nil {
		return err
	}
	thrustLine.LineStyle.Width = vg.Points(2)
	thrustLine.LineStyle.Color = thrustColor
	p.Add(thrustLine)
	p.Legend.Add("thrust (normalized)", thrustLine)

	etaLine, err := plotter.NewLine(pairs(data.Velocity, data.Efficiency))
	if err != nil {
		return err
	}
	etaLine.LineStyle.Width = vg.Points(2)
	etaLine.LineStyle.Color = etaColor
	p.Add(etaLine)
	p.Legend.Add("efficiency", etaLine)

	p.Legend.Top = true
	return save(p, filename)
}

func pairs(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

func save(p *plot.Plot, filename string) error {
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
