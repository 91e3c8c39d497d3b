package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/earlab/aiprobe/internal/openai"
)

// AppContext bundles everything a command needs at run time.
type AppContext struct {
	Config     *CLIConfig
	APIKey     string
	ResultsDir string
	Logger     *zap.SugaredLogger
}

// NewAPIClient builds the REST client for the resolved credential, honoring
// the --base-url override and the configured request timeout.
func (a *AppContext) NewAPIClient() *openai.Client {
	opts := []openai.Option{}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	} else if a.Config.Defaults.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(a.Config.Defaults.BaseURL))
	}
	return openai.NewClient(a.APIKey, opts...)
}

var globalAppContext *AppContext

func storeAppContext(_ *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx
}

func getAppContext(_ *cobra.Command) *AppContext {
	return globalAppContext
}
