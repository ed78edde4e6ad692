package charts

import (
	"fmt"
	"io"
)

const (
	EngineGG   = "gg"
	EnginePlot = "plot"
)

// Engine draws a chart and encodes it as PNG onto w.
type Engine interface {
	Name() string
	DrawBar(w io.Writer, c BarChart) error
	DrawLine(w io.Writer, c LineChart) error
}

// Options configures an engine.
type Options struct {
	Width    int
	Height   int
	FontPath string
}

// NewEngine returns the engine registered under name.
func NewEngine(name string, opts Options) (Engine, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	switch name {
	case EngineGG, "":
		return newGGEngine(opts)
	case EnginePlot:
		return newPlotEngine(opts), nil
	default:
		return nil, fmt.Errorf("unknown chart engine %q", name)
	}
}
