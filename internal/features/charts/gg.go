package charts

// Raster engine drawing every element directly with gg.
// Layout: bold title on top, boxed plot area, dashed grid, legend in the
// upper-left corner of the plot area.

import (
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/plot"
)

const (
	titleFontSize  = 18.0
	labelFontSize  = 14.0
	tickFontSize   = 12.0
	legendFontSize = 12.0

	outerPadding  = 14.0 // canvas edge to axis labels
	titleAreaH    = 48.0
	tickLength    = 5.0
	tickLabelGap  = 6.0
	axisLabelGap  = 10.0
	rightPadding  = 24.0
	barFill       = 0.8 // share of a category slot covered by its bar
	lineWidth     = 2.0
	markerRadius  = 4.0
	legendSwatchW = 28.0
	legendPadding = 8.0
)

var (
	backgroundColor = color.White
	axisColor       = color.Black
	textColor       = color.RGBA{33, 33, 33, 255}
	gridColor       = color.RGBA{176, 176, 176, 255}
	legendBorder    = color.RGBA{204, 204, 204, 255}
)

type ggEngine struct {
	width  int
	height int
	fonts  *fontSet
}

func newGGEngine(opts Options) (*ggEngine, error) {
	fonts, err := loadFonts(opts.FontPath)
	if err != nil {
		return nil, err
	}
	return &ggEngine{width: opts.Width, height: opts.Height, fonts: fonts}, nil
}

func (e *ggEngine) Name() string {
	return EngineGG
}

// frame is the plot area in pixels.
type frame struct {
	left, top, right, bottom float64
}

func (e *ggEngine) newCanvas(title string) *gg.Context {
	dc := gg.NewContext(e.width, e.height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	if title != "" {
		dc.SetFontFace(e.fonts.face(true, titleFontSize))
		dc.SetColor(textColor)
		dc.DrawStringAnchored(title, float64(e.width)/2, titleAreaH/2+outerPadding/2, 0.5, 0.5)
	}
	return dc
}

// layout reserves room for axis labels and the widest y tick label.
func (e *ggEngine) layout(dc *gg.Context, yTickLabels []string, xLabel, yLabel string) frame {
	dc.SetFontFace(e.fonts.face(false, tickFontSize))
	widest := 0.0
	for _, l := range yTickLabels {
		w, _ := dc.MeasureString(l)
		widest = math.Max(widest, w)
	}
	tickH := dc.FontHeight()

	dc.SetFontFace(e.fonts.face(false, labelFontSize))
	labelH := dc.FontHeight()

	f := frame{
		left:   outerPadding + widest + tickLabelGap + tickLength,
		top:    outerPadding + titleAreaH,
		right:  float64(e.width) - rightPadding,
		bottom: float64(e.height) - outerPadding - tickH - tickLabelGap - tickLength,
	}
	if yLabel != "" {
		f.left += labelH + axisLabelGap
	}
	if xLabel != "" {
		f.bottom -= labelH + axisLabelGap
	}
	return f
}

func (e *ggEngine) drawAxisLabels(dc *gg.Context, f frame, xLabel, yLabel string) {
	dc.SetFontFace(e.fonts.face(false, labelFontSize))
	dc.SetColor(textColor)

	if xLabel != "" {
		dc.DrawStringAnchored(xLabel, (f.left+f.right)/2, float64(e.height)-outerPadding, 0.5, 0)
	}
	if yLabel != "" {
		x := outerPadding + dc.FontHeight()/2
		y := (f.top + f.bottom) / 2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), x, y)
		dc.DrawStringAnchored(yLabel, x, y, 0.5, 0.5)
		dc.Pop()
	}
}

func (e *ggEngine) drawFrame(dc *gg.Context, f frame) {
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.SetDash()
	dc.DrawRectangle(f.left, f.top, f.right-f.left, f.bottom-f.top)
	dc.Stroke()
}

// drawXTicks draws tick marks and labels under the plot area.
func (e *ggEngine) drawXTicks(dc *gg.Context, f frame, s linear, ticks []plot.Tick, grid bool) {
	dc.SetFontFace(e.fonts.face(false, tickFontSize))
	for _, t := range ticks {
		x := s.at(t.Value)
		if grid {
			e.gridLine(dc, x, f.top, x, f.bottom)
		}
		dc.SetColor(axisColor)
		dc.SetLineWidth(1)
		dc.DrawLine(x, f.bottom, x, f.bottom+tickLength)
		dc.Stroke()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(t.Label, x, f.bottom+tickLength+tickLabelGap, 0.5, 1)
	}
}

// drawYTicks draws tick marks and labels left of the plot area.
func (e *ggEngine) drawYTicks(dc *gg.Context, f frame, s linear, ticks []plot.Tick, grid bool) {
	dc.SetFontFace(e.fonts.face(false, tickFontSize))
	for _, t := range ticks {
		y := s.at(t.Value)
		if grid {
			e.gridLine(dc, f.left, y, f.right, y)
		}
		dc.SetColor(axisColor)
		dc.SetLineWidth(1)
		dc.DrawLine(f.left-tickLength, y, f.left, y)
		dc.Stroke()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(t.Label, f.left-tickLength-tickLabelGap, y, 1, 0.35)
	}
}

func (e *ggEngine) gridLine(dc *gg.Context, x1, y1, x2, y2 float64) {
	dc.SetColor(gridColor)
	dc.SetLineWidth(0.8)
	dc.SetDash(4, 3)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
	dc.SetDash()
}

func tickLabels(ticks []plot.Tick) []string {
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = t.Label
	}
	return labels
}

func (e *ggEngine) DrawBar(w io.Writer, c BarChart) error {
	dc := e.newCanvas(c.Title)

	var values []float64
	for _, b := range c.Bars {
		if b.Value.Valid {
			values = append(values, b.Value.Float)
		}
	}
	lo, hi := valueRange(values, true)
	ticks := majorTicks(lo, hi)

	if c.Horizontal {
		e.drawHorizontalBars(dc, c, lo, hi, ticks)
	} else {
		e.drawVerticalBars(dc, c, lo, hi, ticks)
	}

	return dc.EncodePNG(w)
}

func (e *ggEngine) drawVerticalBars(dc *gg.Context, c BarChart, lo, hi float64, ticks []plot.Tick) {
	f := e.layout(dc, tickLabels(ticks), c.XLabel, c.YLabel)
	ys := linear{lo: lo, hi: hi, from: f.bottom, to: f.top}

	e.drawYTicks(dc, f, ys, ticks, c.Grid)

	if n := len(c.Bars); n > 0 {
		slot := (f.right - f.left) / float64(n)
		base := ys.at(0)
		dc.SetFontFace(e.fonts.face(false, tickFontSize))
		for i, b := range c.Bars {
			center := f.left + slot*(float64(i)+0.5)
			if b.Value.Valid {
				top := ys.at(b.Value.Float)
				dc.SetColor(b.Color)
				dc.DrawRectangle(center-slot*barFill/2, math.Min(top, base), slot*barFill, math.Abs(base-top))
				dc.Fill()
			}
			dc.SetColor(axisColor)
			dc.SetLineWidth(1)
			dc.DrawLine(center, f.bottom, center, f.bottom+tickLength)
			dc.Stroke()
			dc.SetColor(textColor)
			dc.DrawStringAnchored(b.Label, center, f.bottom+tickLength+tickLabelGap, 0.5, 1)
		}
	}

	e.drawFrame(dc, f)
	e.drawAxisLabels(dc, f, c.XLabel, c.YLabel)
}

func (e *ggEngine) drawHorizontalBars(dc *gg.Context, c BarChart, lo, hi float64, ticks []plot.Tick) {
	labels := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		labels[i] = b.Label
	}
	f := e.layout(dc, labels, c.XLabel, c.YLabel)
	xs := linear{lo: lo, hi: hi, from: f.left, to: f.right}

	e.drawXTicks(dc, f, xs, ticks, c.Grid)

	if n := len(c.Bars); n > 0 {
		slot := (f.bottom - f.top) / float64(n)
		base := xs.at(0)
		dc.SetFontFace(e.fonts.face(false, tickFontSize))
		for i, b := range c.Bars {
			center := f.bottom - slot*(float64(i)+0.5)
			if b.Value.Valid {
				end := xs.at(b.Value.Float)
				dc.SetColor(b.Color)
				dc.DrawRectangle(math.Min(base, end), center-slot*barFill/2, math.Abs(end-base), slot*barFill)
				dc.Fill()
			}
			dc.SetColor(axisColor)
			dc.SetLineWidth(1)
			dc.DrawLine(f.left-tickLength, center, f.left, center)
			dc.Stroke()
			dc.SetColor(textColor)
			dc.DrawStringAnchored(b.Label, f.left-tickLength-tickLabelGap, center, 1, 0.35)
		}
	}

	e.drawFrame(dc, f)
	e.drawAxisLabels(dc, f, c.XLabel, c.YLabel)
}

func (e *ggEngine) DrawLine(w io.Writer, c LineChart) error {
	dc := e.newCanvas(c.Title)

	var xvals, yvals []float64
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Y.Valid {
				xvals = append(xvals, p.X)
				yvals = append(yvals, p.Y.Float)
			}
		}
	}
	xlo, xhi := valueRange(xvals, false)
	ylo, yhi := valueRange(yvals, false)
	xticks := majorTicks(xlo, xhi)
	yticks := majorTicks(ylo, yhi)

	f := e.layout(dc, tickLabels(yticks), c.XLabel, c.YLabel)
	xs := linear{lo: xlo, hi: xhi, from: f.left, to: f.right}
	ys := linear{lo: ylo, hi: yhi, from: f.bottom, to: f.top}

	e.drawXTicks(dc, f, xs, xticks, true)
	e.drawYTicks(dc, f, ys, yticks, true)

	for _, s := range c.Series {
		e.drawSeries(dc, s, xs, ys)
	}

	e.drawFrame(dc, f)
	e.drawLegend(dc, f, c.Series)
	e.drawAxisLabels(dc, f, c.XLabel, c.YLabel)

	return dc.EncodePNG(w)
}

// drawSeries strokes each run of valid points as its own path, leaving a gap
// wherever a point is missing, then draws the markers on top.
func (e *ggEngine) drawSeries(dc *gg.Context, s Series, xs, ys linear) {
	dc.SetColor(s.Color)
	dc.SetLineWidth(lineWidth)
	if s.Dashed {
		dc.SetDash(8, 5)
	} else {
		dc.SetDash()
	}

	penDown := false
	for _, p := range s.Points {
		if !p.Y.Valid {
			if penDown {
				dc.Stroke()
			}
			penDown = false
			continue
		}
		x, y := xs.at(p.X), ys.at(p.Y.Float)
		if penDown {
			dc.LineTo(x, y)
		} else {
			dc.MoveTo(x, y)
			penDown = true
		}
	}
	if penDown {
		dc.Stroke()
	}
	dc.ClearPath()
	dc.SetDash()

	for _, p := range s.Points {
		if p.Y.Valid {
			drawMarker(dc, s.Marker, s.Color, xs.at(p.X), ys.at(p.Y.Float))
		}
	}
}

func drawMarker(dc *gg.Context, m Marker, c color.Color, x, y float64) {
	dc.SetColor(c)
	switch m {
	case MarkerCircle:
		dc.DrawCircle(x, y, markerRadius)
		dc.Fill()
	case MarkerCross:
		dc.SetLineWidth(lineWidth)
		dc.DrawLine(x-markerRadius, y-markerRadius, x+markerRadius, y+markerRadius)
		dc.DrawLine(x-markerRadius, y+markerRadius, x+markerRadius, y-markerRadius)
		dc.Stroke()
	}
}

func (e *ggEngine) drawLegend(dc *gg.Context, f frame, series []Series) {
	var entries []Series
	for _, s := range series {
		if s.Label != "" {
			entries = append(entries, s)
		}
	}
	if len(entries) == 0 {
		return
	}

	dc.SetFontFace(e.fonts.face(false, legendFontSize))
	rowH := dc.FontHeight() * 1.6
	textW := 0.0
	for _, s := range entries {
		w, _ := dc.MeasureString(s.Label)
		textW = math.Max(textW, w)
	}

	boxX, boxY := f.left+legendPadding, f.top+legendPadding
	boxW := legendPadding*3 + legendSwatchW + textW
	boxH := legendPadding*2 + rowH*float64(len(entries))

	dc.SetColor(color.RGBA{255, 255, 255, 230})
	dc.DrawRectangle(boxX, boxY, boxW, boxH)
	dc.Fill()
	dc.SetColor(legendBorder)
	dc.SetLineWidth(1)
	dc.DrawRectangle(boxX, boxY, boxW, boxH)
	dc.Stroke()

	for i, s := range entries {
		cy := boxY + legendPadding + rowH*(float64(i)+0.5)
		x1 := boxX + legendPadding
		x2 := x1 + legendSwatchW

		dc.SetColor(s.Color)
		dc.SetLineWidth(lineWidth)
		if s.Dashed {
			dc.SetDash(6, 4)
		}
		dc.DrawLine(x1, cy, x2, cy)
		dc.Stroke()
		dc.SetDash()
		drawMarker(dc, s.Marker, s.Color, (x1+x2)/2, cy)

		dc.SetColor(textColor)
		dc.DrawStringAnchored(s.Label, x2+legendPadding, cy, 0, 0.35)
	}
}
