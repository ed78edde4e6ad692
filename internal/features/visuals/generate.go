// Package visuals runs the whole pipeline: load the workbook, compute the
// four datasets, render one PNG per dataset.
package visuals

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"fashion-visuals/internal/analytics"
	"fashion-visuals/internal/config"
	"fashion-visuals/internal/features/charts"
	logging "fashion-visuals/internal/infra/log"
	"fashion-visuals/internal/table"
	"fashion-visuals/internal/workbook"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Output file names inside the output directory.
const (
	FileAvgTransparency = "avg_transparency.png"
	FileBrandGrowth     = "brand_growth.png"
	FileBehaviorChange  = "behavior_change.png"
	FileBrandForecast   = "brand_forecast.png"
)

// Files lists the charts in the order they are rendered.
var Files = []string{FileAvgTransparency, FileBrandGrowth, FileBehaviorChange, FileBrandForecast}

// Report is the result of one Generate call.
type Report struct {
	RunID     string
	OutputDir string
	Engine    string
	Files     []charts.Output
	Warnings  []string
	Duration  time.Duration
}

// Lines formats one "name (size)" entry per saved chart.
func (r *Report) Lines() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, fmt.Sprintf("%s (%s)", f.Name, humanize.Bytes(uint64(f.Size))))
	}
	return out
}

// datasets holds every transform result. All of them are computed before
// the first chart is drawn.
type datasets struct {
	groups    []analytics.GroupMean
	growth    *analytics.Growth
	changes   []analytics.BehaviorChange
	forecasts []analytics.BrandForecast
}

type palette struct {
	groups   charts.Palette
	behavior color.Color
	brands   map[string]color.Color
}

// Generate loads cfg.Input.Path and writes the four charts into
// cfg.Output.Dir. Input errors abort before anything is written. Chart
// failures do not stop the remaining charts; they are combined into the
// returned error and the report lists what was saved.
func Generate(cfg *config.Config) (*Report, error) {
	start := time.Now()
	runID := logging.NewRunID()
	logger := logging.RunLogger(runID)

	report := &Report{RunID: runID, OutputDir: cfg.Output.Dir, Engine: cfg.Charts.Engine}

	colors, err := parseColors(cfg)
	if err != nil {
		return report, err
	}

	engine, err := charts.NewEngine(cfg.Charts.Engine, charts.Options{
		Width:    cfg.Charts.Width,
		Height:   cfg.Charts.Height,
		FontPath: cfg.Charts.FontPath,
	})
	if err != nil {
		return report, fmt.Errorf("failed to create chart engine: %w", err)
	}

	logger.Info("Loading workbook", zap.String("path", cfg.Input.Path))
	wb, err := workbook.Load(cfg.Input.Path, cfg.Input.Sheets)
	if err != nil {
		logger.Error("Failed to load workbook", zap.Error(err))
		return report, err
	}
	logger.Debug("Workbook loaded",
		zap.Int("transparency_rows", wb.Transparency.Len()),
		zap.Int("brand_value_rows", wb.BrandValue.Len()),
		zap.Int("behavior_rows", wb.Behaviors.Len()))

	data, err := analyze(wb, cfg)
	if err != nil {
		logger.Error("Failed to prepare chart data", zap.Error(err))
		return report, err
	}

	for _, f := range data.forecasts {
		if f.Err == nil {
			continue
		}
		msg := fmt.Sprintf("forecast skipped for %s: %v", f.Brand.Name, f.Err)
		report.Warnings = append(report.Warnings, msg)
		logging.LogWarn("Forecast skipped", zap.String("run_id", runID),
			zap.String("brand", f.Brand.Name), zap.Error(f.Err))
	}

	renderer := charts.NewRenderer(engine, cfg.Output.Dir)
	jobs := []struct {
		name   string
		render func() (charts.Output, error)
	}{
		{FileAvgTransparency, func() (charts.Output, error) {
			return renderer.Bar(FileAvgTransparency, avgTransparencyChart(data.groups, colors))
		}},
		{FileBrandGrowth, func() (charts.Output, error) {
			return renderer.Line(FileBrandGrowth, brandGrowthChart(data.growth, colors))
		}},
		{FileBehaviorChange, func() (charts.Output, error) {
			return renderer.Bar(FileBehaviorChange, behaviorChangeChart(data.changes, colors))
		}},
		{FileBrandForecast, func() (charts.Output, error) {
			return renderer.Line(FileBrandForecast, brandForecastChart(data.forecasts, colors))
		}},
	}

	var errs error
	for _, job := range jobs {
		out, err := job.render()
		if err != nil {
			logger.Error("Chart failed", zap.String("chart", job.name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		report.Files = append(report.Files, out)
	}

	report.Duration = time.Since(start)
	logger.Info("Run finished",
		zap.Int("charts", len(report.Files)),
		zap.Int("failed", len(multierr.Errors(errs))),
		zap.Int64("duration_ms", report.Duration.Milliseconds()))

	return report, errs
}

func analyze(wb *workbook.Workbook, cfg *config.Config) (*datasets, error) {
	brands := cfg.AnalyticsBrands()
	var data datasets
	var err error

	if data.groups, err = analytics.AverageByGroup(wb.Transparency, analytics.NewGroupMap(cfg.Groups)); err != nil {
		return nil, fmt.Errorf("average transparency: %w", err)
	}
	if data.growth, err = analytics.BrandGrowth(wb.BrandValue, brands); err != nil {
		return nil, fmt.Errorf("brand growth: %w", err)
	}
	if data.changes, err = analytics.RankChanges(wb.Behaviors); err != nil {
		return nil, fmt.Errorf("behavior change: %w", err)
	}
	if data.forecasts, err = analytics.ForecastBrands(wb.BrandValue, brands, cfg.ForecastYears()); err != nil {
		return nil, fmt.Errorf("brand forecast: %w", err)
	}
	return &data, nil
}

func parseColors(cfg *config.Config) (*palette, error) {
	groups, err := charts.ParsePalette(cfg.Charts.GroupColors)
	if err != nil {
		return nil, fmt.Errorf("charts.group_colors: %w", err)
	}
	behavior, err := charts.ParseHexColor(cfg.Charts.BehaviorColor)
	if err != nil {
		return nil, fmt.Errorf("charts.behavior_color: %w", err)
	}

	p := &palette{groups: groups, behavior: behavior, brands: make(map[string]color.Color)}
	for _, b := range cfg.Brands {
		c, err := charts.ParseHexColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("brand %s: %w", b.Name, err)
		}
		p.brands[b.Name] = c
	}
	return p, nil
}

func avgTransparencyChart(groups []analytics.GroupMean, p *palette) charts.BarChart {
	bars := make([]charts.Bar, len(groups))
	for i, g := range groups {
		bars[i] = charts.Bar{Label: g.Group, Value: g.Mean, Color: p.groups.At(i)}
	}
	return charts.BarChart{
		Title:  "Average Transparency by Brand Group (2025)",
		YLabel: "Transparency Index (%)",
		Bars:   bars,
		Grid:   true,
	}
}

func brandGrowthChart(g *analytics.Growth, p *palette) charts.LineChart {
	c := charts.LineChart{
		Title:  "Year-over-Year Brand Value Growth (%)",
		XLabel: "Year",
		YLabel: "Growth (%)",
	}
	for _, s := range g.Series {
		c.Series = append(c.Series, charts.Series{
			Label:  s.Brand.Name,
			Color:  p.brands[s.Brand.Name],
			Marker: charts.MarkerCircle,
			Points: alignYears(g.Years, s.Values),
		})
	}
	return c
}

// alignYears pairs values with their year. Rows without a year cannot be
// placed on the axis and are dropped.
func alignYears(years, values []table.NullFloat) []charts.Point {
	points := make([]charts.Point, 0, len(years))
	for i, year := range years {
		if !year.Valid {
			continue
		}
		v := table.Null()
		if i < len(values) {
			v = values[i]
		}
		points = append(points, charts.Point{X: year.Float, Y: v})
	}
	return points
}

func behaviorChangeChart(changes []analytics.BehaviorChange, p *palette) charts.BarChart {
	bars := make([]charts.Bar, len(changes))
	for i, ch := range changes {
		bars[i] = charts.Bar{Label: ch.Behavior, Value: ch.Change, Color: p.behavior}
	}
	return charts.BarChart{
		Title:      "Change in UK Sustainable Behaviors (2022–2024)",
		XLabel:     "Change in % (2024 vs 2022)",
		Bars:       bars,
		Horizontal: true,
	}
}

func brandForecastChart(forecasts []analytics.BrandForecast, p *palette) charts.LineChart {
	c := charts.LineChart{
		Title:  "Forecasted Brand Values (2025–2026)",
		XLabel: "Year",
		YLabel: "Brand Value (USD Million)",
	}
	for _, f := range forecasts {
		col := p.brands[f.Brand.Name]
		c.Series = append(c.Series, charts.Series{
			Label:  f.Brand.Name + " Actual",
			Color:  col,
			Marker: charts.MarkerCircle,
			Points: toChartPoints(f.Observed),
		})
		if len(f.Predicted) == 0 {
			continue
		}
		c.Series = append(c.Series, charts.Series{
			Label:  f.Brand.Name + " Forecast",
			Color:  col,
			Dashed: true,
			Marker: charts.MarkerCross,
			Points: toChartPoints(f.Predicted),
		})
	}
	return c
}

func toChartPoints(points []analytics.Point) []charts.Point {
	out := make([]charts.Point, len(points))
	for i, pt := range points {
		out[i] = charts.Point{X: pt.X, Y: table.Some(pt.Y)}
	}
	return out
}

// IsInputError reports whether err happened before any chart was attempted.
func IsInputError(err error) bool {
	var sheetErr *workbook.SheetError
	var colErr *table.ColumnError
	var valErr *table.ValueError
	return errors.Is(err, workbook.ErrFileNotFound) ||
		errors.As(err, &sheetErr) ||
		errors.As(err, &colErr) ||
		errors.As(err, &valErr)
}
