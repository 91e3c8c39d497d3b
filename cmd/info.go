package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration and data directory paths",
	Long: `Display aiprobe configuration information including:
  - Data and results directory locations
  - Configuration and env file paths
  - Whether a credential could be resolved
  - Platform information`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)

		dataDir, err := getDataDir()
		if err != nil {
			return fmt.Errorf("failed to get data directory: %w", err)
		}

		envFileStatus := "✗ (not found)"
		if _, err := os.Stat(envFile); err == nil {
			envFileStatus = "✓ (exists)"
		}

		keyStatus := "✗ (not resolved)"
		if appCtx != nil && appCtx.APIKey != "" {
			keyStatus = "✓ (resolved)"
		}

		fmt.Println(colorInfo("aiprobe configuration"))
		fmt.Printf("  Data directory:    %s\n", dataDir)
		fmt.Printf("  Results directory: %s\n", resultsDir)
		fmt.Printf("  Config file:       %s\n", configFileInUse())
		fmt.Printf("  Env file:          %s %s\n", envFile, envFileStatus)
		fmt.Printf("  Credential:        %s\n", keyStatus)
		fmt.Printf("  Platform:          %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func configFileInUse() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "$HOME/.aiprobe.yaml (default)"
}
