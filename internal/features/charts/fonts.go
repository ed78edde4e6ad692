package charts

import (
	"fmt"
	"os"
	"path/filepath"

	logging "fashion-visuals/internal/infra/log"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSet holds the regular and bold typefaces used by the gg engine.
// Faces are cached per size because truetype.NewFace is not free.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// loadFonts uses the TTF at path for both weights. With an empty path, or a
// path that cannot be loaded, the embedded Go fonts are used so output does
// not depend on what is installed on the host.
func loadFonts(path string) (*fontSet, error) {
	fs := &fontSet{faces: make(map[faceKey]font.Face)}

	if path != "" {
		f, err := loadFontFile(expandPath(path))
		if err == nil {
			fs.regular, fs.bold = f, f
			logging.LogInfo("Loaded chart font", zap.String("path", path))
			return fs, nil
		}
		logging.LogWarn("Failed to load chart font, using embedded Go font",
			zap.String("path", path), zap.Error(err))
	}

	var err error
	if fs.regular, err = truetype.Parse(goregular.TTF); err != nil {
		return nil, fmt.Errorf("failed to parse embedded regular font: %w", err)
	}
	if fs.bold, err = truetype.Parse(gobold.TTF); err != nil {
		return nil, fmt.Errorf("failed to parse embedded bold font: %w", err)
	}
	return fs, nil
}

func loadFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

func (fs *fontSet) face(bold bool, size float64) font.Face {
	key := faceKey{bold: bold, size: size}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	ttf := fs.regular
	if bold {
		ttf = fs.bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, Hinting: font.HintingFull})
	fs.faces[key] = f
	return f
}
