package charts

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fashion-visuals/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	coral = color.RGBA{0xFF, 0x6F, 0x61, 0xFF}
	blue  = color.RGBA{0x42, 0xA5, 0xF5, 0xFF}
)

func sampleBars(horizontal bool) BarChart {
	return BarChart{
		Title:      "Average Transparency by Brand Group (2025)",
		YLabel:     "Transparency Index (%)",
		Horizontal: horizontal,
		Grid:       !horizontal,
		Bars: []Bar{
			{Label: "H&M Group", Value: table.Some(71), Color: coral},
			{Label: "Inditex", Value: table.Some(-5), Color: blue},
			{Label: "Missing", Value: table.Null(), Color: coral},
		},
	}
}

func sampleLines() LineChart {
	return LineChart{
		Title:  "Year-over-Year Brand Value Growth (%)",
		XLabel: "Year",
		YLabel: "Growth (%)",
		Series: []Series{
			{
				Label:  "Zara",
				Color:  blue,
				Marker: MarkerCircle,
				Points: []Point{
					{X: 2010, Y: table.Null()},
					{X: 2011, Y: table.Some(4.8)},
					{X: 2012, Y: table.Null()},
					{X: 2013, Y: table.Some(14)},
					{X: 2014, Y: table.Some(12)},
				},
			},
			{
				Label:  "Zara Forecast",
				Color:  blue,
				Dashed: true,
				Marker: MarkerCross,
				Points: []Point{{X: 2015, Y: table.Some(15)}, {X: 2016, Y: table.Some(16)}},
			},
		},
	}
}

func newEngines(t *testing.T) []Engine {
	t.Helper()
	opts := Options{Width: 640, Height: 400}
	var engines []Engine
	for _, name := range []string{EngineGG, EnginePlot} {
		e, err := NewEngine(name, opts)
		require.NoError(t, err)
		engines = append(engines, e)
	}
	return engines
}

func TestEngines_DrawPNG(t *testing.T) {
	for _, e := range newEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			for name, draw := range map[string]func(*bytes.Buffer) error{
				"bar":   func(b *bytes.Buffer) error { return e.DrawBar(b, sampleBars(false)) },
				"barh":  func(b *bytes.Buffer) error { return e.DrawBar(b, sampleBars(true)) },
				"lines": func(b *bytes.Buffer) error { return e.DrawLine(b, sampleLines()) },
			} {
				var buf bytes.Buffer
				require.NoError(t, draw(&buf), name)

				img, err := png.Decode(&buf)
				require.NoError(t, err, name)
				assert.Equal(t, 640, img.Bounds().Dx(), name)
				assert.Equal(t, 400, img.Bounds().Dy(), name)
			}
		})
	}
}

func TestEngines_Deterministic(t *testing.T) {
	for _, e := range newEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			var first, second bytes.Buffer
			require.NoError(t, e.DrawLine(&first, sampleLines()))
			require.NoError(t, e.DrawLine(&second, sampleLines()))
			assert.True(t, bytes.Equal(first.Bytes(), second.Bytes()))
		})
	}
}

func TestEngines_EmptyCharts(t *testing.T) {
	for _, e := range newEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, e.DrawBar(&buf, BarChart{Title: "empty"}))
			buf.Reset()
			assert.NoError(t, e.DrawLine(&buf, LineChart{Title: "empty"}))
		})
	}
}

func TestNewEngine_Invalid(t *testing.T) {
	_, err := NewEngine("svg", Options{Width: 10, Height: 10})
	assert.Error(t, err)

	_, err = NewEngine(EngineGG, Options{Width: 0, Height: 10})
	assert.Error(t, err)
}

func TestNewEngine_MissingFontFallsBack(t *testing.T) {
	e, err := NewEngine(EngineGG, Options{Width: 100, Height: 100, FontPath: filepath.Join(t.TempDir(), "none.ttf")})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, e.DrawBar(&buf, sampleBars(false)))
}

func TestRenderer_CreatesDirAndOverwrites(t *testing.T) {
	engine, err := NewEngine(EngineGG, Options{Width: 320, Height: 200})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "new_visuals")
	r := NewRenderer(engine, dir)

	out, err := r.Bar("avg_transparency.png", sampleBars(false))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "avg_transparency.png"), out.Path)
	assert.Positive(t, out.Size)

	first, err := os.ReadFile(out.Path)
	require.NoError(t, err)

	// second run into the existing directory
	out, err = r.Bar("avg_transparency.png", sampleBars(false))
	require.NoError(t, err)
	second, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRenderer_DirBlocked(t *testing.T) {
	engine, err := NewEngine(EngineGG, Options{Width: 320, Height: 200})
	require.NoError(t, err)

	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("file"), 0644))

	_, err = NewRenderer(engine, blocked).Line("brand_growth.png", sampleLines())
	assert.Error(t, err)
}

func TestSegments(t *testing.T) {
	segs := segments(sampleLines().Series[0].Points)
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 1)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 2013.0, segs[1][0].X)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF6F61")
	require.NoError(t, err)
	assert.Equal(t, coral, c)

	c, err = ParseHexColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#GGGGGG")
	assert.Error(t, err)
}

func TestPalette_Cycles(t *testing.T) {
	p, err := ParsePalette([]string{"#FF6F61", "#42A5F5"})
	require.NoError(t, err)

	assert.Equal(t, p[0], p.At(2))
	assert.Equal(t, p[1], p.At(3))
	assert.Equal(t, color.Black, Palette{}.At(0))
}
