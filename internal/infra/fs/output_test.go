package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new_visuals", "nested")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.Error(t, EnsureDir(path))
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.png")

	size, err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first version")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)

	size, err = WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "v2")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteFileAtomic_WriterError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	boom := errors.New("encode failed")

	_, err := WriteFileAtomic(path, func(w io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestWriteFileAtomic_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")

	_, err := WriteFileAtomic(path, func(w io.Writer) error { return nil })
	assert.Error(t, err)
}
