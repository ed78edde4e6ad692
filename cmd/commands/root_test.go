package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_SampleThenRender(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)

	input := filepath.Join(dir, "fashion.xlsx")

	rootCmd.SetArgs([]string{"sample-workbook", input, "--quiet"})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, input)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--input", input, "--width", "320", "--height", "200", "--quiet"})
	require.NoError(t, rootCmd.Execute())

	for _, name := range []string{"avg_transparency.png", "brand_growth.png", "behavior_change.png", "brand_forecast.png"} {
		assert.FileExists(t, filepath.Join(dir, "new_visuals", name))
		assert.Contains(t, out.String(), name)
	}
	assert.FileExists(t, filepath.Join(dir, "logs", "app.log"))
}

func TestRootCommand_MissingWorkbook(t *testing.T) {
	chdirForTest(t, t.TempDir())

	rootCmd.SetArgs([]string{"render", "--input", "nope.xlsx", "--quiet"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.xlsx")
	assert.NoDirExists(t, "new_visuals")
}
