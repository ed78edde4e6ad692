package charts

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"fashion-visuals/internal/infra/fs"
	logging "fashion-visuals/internal/infra/log"

	"go.uber.org/zap"
)

// Output describes one saved chart.
type Output struct {
	Name string
	Path string
	Size int64
}

// Renderer saves charts under one output directory.
type Renderer struct {
	engine Engine
	dir    string
}

func NewRenderer(engine Engine, dir string) *Renderer {
	return &Renderer{engine: engine, dir: dir}
}

func (r *Renderer) Dir() string {
	return r.dir
}

// Bar renders c to <dir>/<name>, replacing any existing file.
func (r *Renderer) Bar(name string, c BarChart) (Output, error) {
	return r.save(name, func(w io.Writer) error { return r.engine.DrawBar(w, c) })
}

// Line renders c to <dir>/<name>, replacing any existing file.
func (r *Renderer) Line(name string, c LineChart) (Output, error) {
	return r.save(name, func(w io.Writer) error { return r.engine.DrawLine(w, c) })
}

func (r *Renderer) save(name string, draw func(w io.Writer) error) (Output, error) {
	start := time.Now()

	if err := fs.EnsureDir(r.dir); err != nil {
		return Output{}, fmt.Errorf("failed to create charts directory for %s: %w", name, err)
	}

	filename := filepath.Join(r.dir, name)
	size, err := fs.WriteFileAtomic(filename, draw)
	if err != nil {
		return Output{}, fmt.Errorf("failed to save chart %s: %w", name, err)
	}

	logging.LogInfo("Chart generated successfully",
		zap.String("filename", filename),
		zap.String("engine", r.engine.Name()),
		zap.Int64("fileSize", size),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return Output{Name: name, Path: filename, Size: size}, nil
}
