package commands

// Root command for Cobra CLI
// Running the binary without a subcommand renders all four charts
// Registers the subcommands (render, sample-workbook)

import (
	"fmt"

	"fashion-visuals/internal/config"
	"fashion-visuals/internal/infra/log"

	"github.com/spf13/cobra"
)

// cfg is loaded once per invocation in PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fashion-visuals",
	Short: "Sustainable fashion visuals - renders four charts from the Europe data workbook",
	Long: `fashion-visuals reads the sustainable fashion workbook (transparency index,
brand values and UK consumer behaviors) and writes four PNG charts into new_visuals/:
average transparency by brand group, year-over-year brand growth, behavior change
2022-2024 and a linear brand value forecast.`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { log.Sync() },
	RunE:              runRender,
}

func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	cfg = loaded

	if err := log.Init(log.Options{
		Dir:     cfg.Log.Dir,
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
	}); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	return nil
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(sampleCmd)
}
