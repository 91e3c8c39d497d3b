package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/earlab/aiprobe/internal/credential"
)

var cfgFile string
var logger *zap.SugaredLogger
var apiKeyFlag string
var envFile string
var baseURL string
var resultsDir string

var rootCmd = &cobra.Command{
	Use:   "aiprobe",
	Short: "Diagnose an OpenAI API credential: validity, quota, and model access",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".aiprobe")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		applyConfigDefaults(cmd)

		resultsDir = viper.GetString("results_dir")
		if resultsDir == "" {
			resultsDir = "./results"
		}

		if err := os.MkdirAll(resultsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create results directory: %s", err.Error())
		}

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		// Make resultsDir absolute (for clarity in logs)
		if abs, err := filepath.Abs(resultsDir); err == nil {
			resultsDir = abs
		}

		key, err := credential.Resolve(apiKeyFlag, envFile)
		if err != nil {
			// Commands that only print local information still work keyless.
			if !commandNeedsCredential(cmd) {
				storeAppContext(cmd, &AppContext{Config: cliConfig, ResultsDir: resultsDir, Logger: logger})
				return nil
			}
			return &MissingCredentialError{EnvFile: envFile}
		}

		logger.Infow("credential resolved", "key", credential.Preview(key), "results_dir", resultsDir)

		storeAppContext(cmd, &AppContext{
			Config:     cliConfig,
			APIKey:     key,
			ResultsDir: resultsDir,
			Logger:     logger,
		})
		return nil
	},
}

// commandNeedsCredential reports whether the command issues API requests.
func commandNeedsCredential(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "info", "help":
		return false
	}
	return true
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aiprobe.yaml)")

	// credential resolution flags
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key (overrides environment and env file)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", cliConfig.Defaults.EnvFile, "dotenv file holding OPENAI_API_KEY")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the API base URL")

	// add subcommands
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}
