package commands

// Command that runs the full pipeline: load workbook, compute, render, save
// Prints the list of generated files on success

import (
	"fmt"

	"fashion-visuals/internal/features/visuals"
	"fashion-visuals/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the four charts (default command)",
	Long:  `Load the workbook and write avg_transparency.png, brand_growth.png, behavior_change.png and brand_forecast.png into the output directory.`,
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	report, err := visuals.Generate(cfg)
	if err != nil {
		if visuals.IsInputError(err) {
			log.LogError("Input error, no charts were rendered", zap.Error(err))
		} else {
			log.LogError("Some charts failed", zap.Int("saved", len(report.Files)), zap.Error(err))
		}
		return err
	}

	log.LogSuccess(fmt.Sprintf("All %d charts created in %s", len(report.Files), report.OutputDir),
		zap.String("run_id", report.RunID),
		zap.String("engine", report.Engine),
		zap.Int64("duration_ms", report.Duration.Milliseconds()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nAll %d visuals created inside the folder '%s'\n", len(report.Files), report.OutputDir)
	fmt.Fprintln(out, "Files generated:")
	for _, line := range report.Lines() {
		fmt.Fprintf(out, "  • %s\n", line)
	}
	return nil
}
