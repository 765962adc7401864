package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/lps-ufrj-br/pvectl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config skeleton to a file.
	writeConfig = config.WriteYAML
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, result)

	return nil
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, result *config.WizardResult) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()
	fmt.Printf("  Cluster:  %s (master %s)\n", result.ClusterName, result.MasterHost)
	fmt.Printf("  Executor: %s\n", result.Executor)
	if result.VMName != "" {
		fmt.Printf("  VM:       %s on %s\n", result.VMName, result.VMHost)
	}
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s and fill in storage and image paths\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Export the cluster join secret:")
	fmt.Println("     export PVE_MASTER_KEY=<secret>")
	fmt.Println()
	fmt.Println("  3. Create the cluster:")
	fmt.Printf("     pvectl cluster create -n %s\n", result.ClusterName)
	fmt.Println()
}
