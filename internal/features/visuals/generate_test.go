package visuals

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fashion-visuals/internal/config"
	"fashion-visuals/internal/table"
	"fashion-visuals/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, data workbook.SampleData) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Input.Path = filepath.Join(dir, "fashion.xlsx")
	cfg.Output.Dir = filepath.Join(dir, "new_visuals")
	cfg.Charts.Width = 400
	cfg.Charts.Height = 250
	require.NoError(t, workbook.WriteSample(cfg.Input.Path, cfg.Input.Sheets, data))
	return cfg
}

func assertCharts(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, Files, names)

	for _, name := range Files {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, 400, cfg.Width, name)
		assert.Equal(t, 250, cfg.Height, name)
	}
}

func TestGenerate(t *testing.T) {
	cfg := testConfig(t, workbook.DefaultSampleData())

	report, err := Generate(cfg)
	require.NoError(t, err)

	assertCharts(t, cfg.Output.Dir)
	require.Len(t, report.Files, 4)
	assert.Empty(t, report.Warnings)
	assert.NotEmpty(t, report.RunID)
	for i, out := range report.Files {
		assert.Equal(t, Files[i], out.Name)
		assert.Positive(t, out.Size)
	}
	assert.Len(t, report.Lines(), 4)
	assert.Contains(t, report.Lines()[0], FileAvgTransparency)
}

func TestGenerate_PlotEngine(t *testing.T) {
	cfg := testConfig(t, workbook.DefaultSampleData())
	cfg.Charts.Engine = "plot"

	report, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, "plot", report.Engine)
	assertCharts(t, cfg.Output.Dir)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := testConfig(t, workbook.DefaultSampleData())

	_, err := Generate(cfg)
	require.NoError(t, err)
	first := make(map[string][]byte)
	for _, name := range Files {
		b, err := os.ReadFile(filepath.Join(cfg.Output.Dir, name))
		require.NoError(t, err)
		first[name] = b
	}

	// second run overwrites into the existing directory
	_, err = Generate(cfg)
	require.NoError(t, err)
	for _, name := range Files {
		b, err := os.ReadFile(filepath.Join(cfg.Output.Dir, name))
		require.NoError(t, err)
		assert.Equal(t, first[name], b, name)
	}
}

func TestGenerate_MissingWorkbook(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Input.Path = filepath.Join(dir, "missing.xlsx")
	cfg.Output.Dir = filepath.Join(dir, "out")

	_, err := Generate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, workbook.ErrFileNotFound))
	assert.True(t, IsInputError(err))
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestGenerate_MissingSheet(t *testing.T) {
	cfg := testConfig(t, workbook.DefaultSampleData())
	cfg.Input.Sheets.Transparency = "Transparency_2030"

	_, err := Generate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, workbook.ErrSheetNotFound))
	assert.Contains(t, err.Error(), "Transparency_2030")
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestGenerate_MissingColumnAbortsAllCharts(t *testing.T) {
	data := workbook.DefaultSampleData()
	data.Behaviors[0] = []interface{}{"Behavior", "2022_%", "2025_%"}
	cfg := testConfig(t, data)

	_, err := Generate(cfg)
	require.Error(t, err)

	var colErr *table.ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "2024_%", colErr.Column)
	assert.True(t, IsInputError(err))
	// the transparency chart comes first but must not be written either
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestGenerate_DegenerateForecastIsNotFatal(t *testing.T) {
	data := workbook.DefaultSampleData()
	data.BrandValue = data.BrandValue[:2]
	cfg := testConfig(t, data)

	report, err := Generate(cfg)
	require.NoError(t, err)
	assert.Len(t, report.Warnings, 2)
	assertCharts(t, cfg.Output.Dir)
}

func TestGenerate_ChartFailuresAreCombined(t *testing.T) {
	cfg := testConfig(t, workbook.DefaultSampleData())
	// a regular file where the output directory should be
	require.NoError(t, os.WriteFile(cfg.Output.Dir, []byte("x"), 0644))

	report, err := Generate(cfg)
	require.Error(t, err)
	assert.False(t, IsInputError(err))
	assert.Empty(t, report.Files)
	for _, name := range Files {
		assert.Contains(t, err.Error(), name)
	}
}

func TestBrandForecastChart(t *testing.T) {
	cfg := testConfig(t, workbook.DefaultSampleData())
	wb, err := workbook.Load(cfg.Input.Path, cfg.Input.Sheets)
	require.NoError(t, err)
	data, err := analyze(wb, cfg)
	require.NoError(t, err)
	colors, err := parseColors(cfg)
	require.NoError(t, err)

	c := brandForecastChart(data.forecasts, colors)
	require.Len(t, c.Series, 4)
	assert.Equal(t, "Zara Actual", c.Series[0].Label)
	assert.Len(t, c.Series[0].Points, 15)
	assert.Equal(t, "Zara Forecast", c.Series[1].Label)
	assert.True(t, c.Series[1].Dashed)
	require.Len(t, c.Series[1].Points, 2)
	assert.Equal(t, 2025.0, c.Series[1].Points[0].X)
	assert.Equal(t, c.Series[0].Color, c.Series[1].Color)

	g := brandGrowthChart(data.growth, colors)
	require.Len(t, g.Series, 2)
	assert.False(t, g.Series[0].Points[0].Y.Valid)
	assert.True(t, g.Series[0].Points[1].Y.Valid)
}
