package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/earlab/aiprobe/internal/credential"
	"github.com/earlab/aiprobe/internal/openai"
	"github.com/earlab/aiprobe/internal/probe"
)

var keyBudget float64

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Analyze the credential and diagnose validity, limits, and quota",
	Long: `Inspect the API key locally (format, length, masked preview), then run
a minimal live request to classify the credential:

  200 - key is valid and active
  401 - key is invalid
  429 - rate limit or quota exceeded (rate-limit headers are reported)

On quota problems the command prints likely causes and how to fix them,
plus a rough table of what the configured budget buys per service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyCommand(cmd)
	},
}

func runKeyCommand(cmd *cobra.Command) error {
	appCtx := getAppContext(cmd)
	runtimeCfg := appCtx.Config.Probe

	ctx, cancel := signalContext()
	defer cancel()

	printKeyAnalysis(credential.Analyze(appCtx.APIKey))

	fmt.Println()
	fmt.Println(colorInfo("Checking API usage and limits..."))

	prober := &probe.QuotaProber{Client: appCtx.NewAPIClient()}
	runner := &probe.Runner{
		Concurrency: 1,
		RateLimit:   runtimeCfg.RateLimit,
		Timeout:     time.Duration(runtimeCfg.TimeoutSecs) * time.Second,
	}
	results := runner.RunProbes(ctx, []probe.Prober{prober}, nil)
	result := results[0]

	printResult(result)
	printQuotaDetail(result)

	if result.HTTPStatus == 429 {
		printQuotaGuidance()
	}
	printBudgetTable(keyBudget)

	if runtimeCfg.TelemetryEnabled {
		if err := recordTelemetry(appCtx, prober.Name(), results, time.Since(result.CheckedAt)); err != nil {
			logger.Warnw("failed to record telemetry", "error", err)
		}
	}

	if result.Status == probe.StatusError {
		return &ProbeFailedError{Probe: prober.Name(), Detail: result.Error}
	}
	return nil
}

func printKeyAnalysis(analysis credential.Analysis) {
	fmt.Println(colorInfo("API key analysis:"))

	switch analysis.Format {
	case credential.FormatProject:
		fmt.Printf("  %s project-scoped key (new format, specific permissions)\n", colorSuccess("✓"))
	case credential.FormatStandard:
		fmt.Printf("  %s standard key\n", colorSuccess("✓"))
	default:
		fmt.Printf("  %s unusual key format\n", colorWarn("!"))
	}

	fmt.Printf("  Key length: %d characters", analysis.Length)
	if analysis.LongFormat {
		fmt.Println(" (long format, post-2024)")
	} else {
		fmt.Println(" (standard format)")
	}

	fmt.Printf("  Key preview: %s\n", analysis.Preview)
}

func printQuotaDetail(result probe.Result) {
	if limits, ok := result.Details["rate_limit"].(map[string]string); ok {
		fmt.Println(colorInfo("  Rate limits:"))
		fmt.Printf("    Request limit:      %s\n", orNA(limits["limit_requests"]))
		fmt.Printf("    Remaining requests: %s\n", orNA(limits["remaining_requests"]))
		fmt.Printf("    Token limit:        %s\n", orNA(limits["limit_tokens"]))
		fmt.Printf("    Remaining tokens:   %s\n", orNA(limits["remaining_tokens"]))
	}
}

func printQuotaGuidance() {
	fmt.Println()
	fmt.Println(colorWarn("Possible reasons for quota exceeded:"))
	fmt.Println("  1. Free trial credits exhausted")
	fmt.Println("  2. Monthly spending limit reached")
	fmt.Println("  3. The key was used extensively in other projects")
	fmt.Println("  4. Billing issue or payment method problem")
	fmt.Println(colorInfo("How to fix:"))
	fmt.Println("  1. Check usage at: https://platform.openai.com/usage")
	fmt.Println("  2. Check billing at: https://platform.openai.com/billing")
	fmt.Println("  3. Increase usage limits in billing settings")
	fmt.Println("  4. Add a payment method if on the free tier")
}

func printBudgetTable(budget float64) {
	fmt.Println()
	fmt.Printf("%s\n", colorInfo(fmt.Sprintf("What $%.0f of credits buys:", budget)))
	for _, line := range openai.BudgetTable(budget) {
		fmt.Printf("  %-13s %s\n", line.Service+":", line.Detail)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func init() {
	keyCmd.Flags().Float64Var(&keyBudget, "budget", 20, "dollar budget for the usage estimate table")
}
