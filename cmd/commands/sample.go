package commands

// Command that writes a demo workbook with the three expected sheets

import (
	"fashion-visuals/internal/infra/log"
	"fashion-visuals/internal/workbook"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sampleCmd = &cobra.Command{
	Use:   "sample-workbook [path]",
	Short: "Write a sample workbook to try the renderer",
	Long:  `Write a small workbook shaped like the published data set. Defaults to the configured input path.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSample,
}

func runSample(cmd *cobra.Command, args []string) error {
	path := cfg.Input.Path
	if len(args) == 1 {
		path = args[0]
	}

	if err := workbook.WriteSample(path, cfg.Input.Sheets, workbook.DefaultSampleData()); err != nil {
		log.LogError("Failed to write sample workbook", zap.String("path", path), zap.Error(err))
		return err
	}

	log.LogSuccess("Sample workbook written", zap.String("path", path))
	return nil
}
