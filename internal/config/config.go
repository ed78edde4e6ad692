package config

import (
	"errors"
	"fmt"
	"strings"

	"fashion-visuals/internal/analytics"
	"fashion-visuals/internal/workbook"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the pipeline reads at startup.
type Config struct {
	Input    InputConfig           `mapstructure:"input"`
	Output   OutputConfig          `mapstructure:"output"`
	Charts   ChartsConfig          `mapstructure:"charts"`
	Brands   []BrandConfig         `mapstructure:"brands" validate:"min=1,dive"`
	Groups   []analytics.GroupPair `mapstructure:"groups" validate:"dive"`
	Forecast ForecastConfig        `mapstructure:"forecast"`
	Log      LogConfig             `mapstructure:"log"`
}

type InputConfig struct {
	Path   string              `mapstructure:"path" validate:"required"`
	Sheets workbook.SheetNames `mapstructure:"sheets"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// ChartsConfig - engine, canvas and colors
type ChartsConfig struct {
	Engine        string   `mapstructure:"engine" validate:"oneof=gg plot"`
	Width         int      `mapstructure:"width" validate:"gt=0"`
	Height        int      `mapstructure:"height" validate:"gt=0"`
	FontPath      string   `mapstructure:"font_path"`
	GroupColors   []string `mapstructure:"group_colors" validate:"min=1,dive,hexcolor"`
	BehaviorColor string   `mapstructure:"behavior_color" validate:"hexcolor"`
}

// BrandConfig - one brand-value column and the color of its lines
type BrandConfig struct {
	Name   string `mapstructure:"name" validate:"required"`
	Column string `mapstructure:"column" validate:"required"`
	Color  string `mapstructure:"color" validate:"hexcolor"`
}

type ForecastConfig struct {
	Years []int `mapstructure:"years" validate:"min=1,dive,gt=0"`
}

type LogConfig struct {
	Dir     string `mapstructure:"dir"`
	File    string `mapstructure:"file"`
	Level   string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Console bool   `mapstructure:"console"`
}

// Default returns the built-in configuration: the published workbook next to
// the binary and the four charts under new_visuals/.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:   "Sustainable_Fashion_Europe_Data Final.xlsx",
			Sheets: workbook.DefaultSheetNames(),
		},
		Output: OutputConfig{Dir: "new_visuals"},
		Charts: ChartsConfig{
			Engine:        "gg",
			Width:         800,
			Height:        500,
			GroupColors:   []string{"#FF6F61", "#4DB6AC", "#FFD54F", "#7986CB"},
			BehaviorColor: "#66BB6A",
		},
		Brands: []BrandConfig{
			{Name: "Zara", Column: "Zara_BrandValue_USD_Million", Color: "#42A5F5"},
			{Name: "H&M", Column: "H&M_BrandValue_USD_Million", Color: "#AB47BC"},
		},
		Groups: []analytics.GroupPair{
			{Brand: "H&M", Group: "H&M Group"},
			{Brand: "Intimissimi", Group: "Calzedonia Group"},
			{Brand: "Calzedonia", Group: "Calzedonia Group"},
			{Brand: "Tezenis", Group: "Calzedonia Group"},
			{Brand: "Zara", Group: "Inditex"},
			{Brand: "Massimo Dutti", Group: "Inditex"},
		},
		Forecast: ForecastConfig{Years: []int{2025, 2026}},
		Log: LogConfig{
			Dir:     "logs",
			File:    "app.log",
			Level:   "debug",
			Console: true,
		},
	}
}

// AnalyticsBrands returns the brand series in analytics form.
func (c *Config) AnalyticsBrands() []analytics.Brand {
	out := make([]analytics.Brand, len(c.Brands))
	for i, b := range c.Brands {
		out[i] = analytics.Brand{Name: b.Name, Column: b.Column}
	}
	return out
}

// ForecastYears returns the forecast horizon as x values.
func (c *Config) ForecastYears() []float64 {
	out := make([]float64, len(c.Forecast.Years))
	for i, y := range c.Forecast.Years {
		out[i] = float64(y)
	}
	return out
}

// Load builds the configuration, later sources overriding earlier ones:
// 1. built-in defaults
// 2. config.yaml in the working directory, or the file given by --config
// 3. .env file and VISUALS_* environment variables
// 4. command-line flags registered with RegisterFlags
func Load(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config.yaml: %w", err)
			}
		}
	}

	v.SetEnvPrefix("VISUALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults mirrors Default() into viper so every key is known to
// AutomaticEnv.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("input.path", d.Input.Path)
	v.SetDefault("input.sheets.transparency", d.Input.Sheets.Transparency)
	v.SetDefault("input.sheets.brand_value", d.Input.Sheets.BrandValue)
	v.SetDefault("input.sheets.behaviors", d.Input.Sheets.Behaviors)

	v.SetDefault("output.dir", d.Output.Dir)

	v.SetDefault("charts.engine", d.Charts.Engine)
	v.SetDefault("charts.width", d.Charts.Width)
	v.SetDefault("charts.height", d.Charts.Height)
	v.SetDefault("charts.font_path", d.Charts.FontPath)
	v.SetDefault("charts.group_colors", d.Charts.GroupColors)
	v.SetDefault("charts.behavior_color", d.Charts.BehaviorColor)

	v.SetDefault("brands", d.Brands)
	v.SetDefault("groups", d.Groups)
	v.SetDefault("forecast.years", d.Forecast.Years)

	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
}

// setupEnvAliases binds the documented variables explicitly; the remaining
// keys are reachable through AutomaticEnv (charts.width -> VISUALS_CHARTS_WIDTH).
func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("input.path", "VISUALS_INPUT_PATH")
	v.BindEnv("output.dir", "VISUALS_OUTPUT_DIR")
	v.BindEnv("charts.engine", "VISUALS_CHARTS_ENGINE")
	v.BindEnv("charts.font_path", "VISUALS_CHARTS_FONT_PATH")
	v.BindEnv("log.level", "VISUALS_LOG_LEVEL")
}

// RegisterFlags adds the configuration flags to a command's flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String("config", "", "Path to a YAML config file (default: ./config.yaml if present)")
	fs.StringP("input", "i", d.Input.Path, "Workbook to read (env: VISUALS_INPUT_PATH)")
	fs.StringP("output-dir", "o", d.Output.Dir, "Directory for the generated charts (env: VISUALS_OUTPUT_DIR)")
	fs.String("engine", d.Charts.Engine, "Chart engine: gg or plot (env: VISUALS_CHARTS_ENGINE)")
	fs.Int("width", d.Charts.Width, "Chart width in pixels")
	fs.Int("height", d.Charts.Height, "Chart height in pixels")
	fs.String("font", d.Charts.FontPath, "TTF font for the gg engine (default: embedded Go font)")
	fs.String("log-dir", d.Log.Dir, "Directory for app.log")
	fs.String("log-level", d.Log.Level, "File log level: debug, info, warn, error (env: VISUALS_LOG_LEVEL)")
	fs.Bool("quiet", false, "Do not print log lines on the console")
}

var flagKeys = map[string]string{
	"input":      "input.path",
	"output-dir": "output.dir",
	"engine":     "charts.engine",
	"width":      "charts.width",
	"height":     "charts.height",
	"font":       "charts.font_path",
	"log-dir":    "log.dir",
	"log-level":  "log.level",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	if quiet, err := fs.GetBool("quiet"); err == nil && quiet {
		v.Set("log.console", false)
	}
	return nil
}

var validate = validator.New()

// Validate checks the decoded configuration.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
