package main

// Entry point of the visuals generator
// Executes the Cobra root command and maps errors to a non-zero exit code

import (
	"fmt"
	"os"

	"fashion-visuals/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
