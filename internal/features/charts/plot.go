package charts

import (
	"fmt"
	"io"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// plotEngine lays charts out with gonum/plot.
type plotEngine struct {
	width  vg.Length
	height vg.Length
}

func newPlotEngine(opts Options) *plotEngine {
	return &plotEngine{
		width:  pixels(opts.Width),
		height: pixels(opts.Height),
	}
}

// pixels converts a pixel count into the length that vgimg renders at that
// many pixels.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / vgimg.DefaultDPI
}

func (e *plotEngine) Name() string {
	return EnginePlot
}

func (e *plotEngine) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func dashedGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	return grid
}

func (e *plotEngine) save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(e.width, e.height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func (e *plotEngine) DrawBar(w io.Writer, c BarChart) error {
	p := e.newPlot(c.Title, c.XLabel, c.YLabel)

	if c.Grid {
		grid := dashedGrid()
		// value axis only
		if c.Horizontal {
			grid.Horizontal.Color = nil
		} else {
			grid.Vertical.Color = nil
		}
		p.Add(grid)
	}

	span := e.width
	if c.Horizontal {
		span = e.height
	}
	labels := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		labels[i] = b.Label
	}
	if len(c.Bars) == 0 {
		return e.save(w, p)
	}

	barWidth := span * 0.6 / vg.Length(len(c.Bars))
	for i, b := range c.Bars {
		if !b.Value.Valid {
			continue
		}
		bars, err := plotter.NewBarChart(plotter.Values{b.Value.Float}, barWidth)
		if err != nil {
			return fmt.Errorf("bar %q: %w", b.Label, err)
		}
		bars.XMin = float64(i)
		bars.Color = b.Color
		bars.LineStyle.Width = 0
		bars.Horizontal = c.Horizontal
		p.Add(bars)
	}

	if c.Horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}

	return e.save(w, p)
}

func (e *plotEngine) DrawLine(w io.Writer, c LineChart) error {
	p := e.newPlot(c.Title, c.XLabel, c.YLabel)
	p.Add(dashedGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	for _, s := range c.Series {
		inLegend := false
		for _, seg := range segments(s.Points) {
			line, points, err := plotter.NewLinePoints(seg)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Label, err)
			}
			styleLine(line, points, s)

			if s.Marker == MarkerNone {
				p.Add(line)
			} else {
				p.Add(line, points)
			}

			if s.Label != "" && !inLegend {
				if s.Marker == MarkerNone {
					p.Legend.Add(s.Label, line)
				} else {
					p.Legend.Add(s.Label, line, points)
				}
				inLegend = true
			}
		}
	}

	return e.save(w, p)
}

func styleLine(line *plotter.Line, points *plotter.Scatter, s Series) {
	line.LineStyle.Color = s.Color
	line.LineStyle.Width = vg.Points(1.5)
	if s.Dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}

	points.GlyphStyle.Color = s.Color
	points.GlyphStyle.Radius = vg.Points(3)
	switch s.Marker {
	case MarkerCross:
		points.GlyphStyle.Shape = draw.CrossGlyph{}
	default:
		points.GlyphStyle.Shape = draw.CircleGlyph{}
	}
}

// segments splits points into runs of valid values. gonum/plot rejects NaN,
// so gaps are expressed as separate lines.
func segments(points []Point) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, p := range points {
		if !p.Y.Valid {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: p.X, Y: p.Y.Float})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
