package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/earlab/aiprobe/internal/credential"
	"github.com/earlab/aiprobe/internal/openai"
	"github.com/earlab/aiprobe/internal/probe"
)

var probeAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the full probe suite and print a pass/fail summary",
	Long: `Run every probe in order: models, chat, stt, tts, realtime.

Each probe issues live, billable requests. The run finishes with a cost
breakdown for a typical spoken conversation and a PASS/FAIL summary, and
writes results.json under the results directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProbeSuite(cmd)
	},
}

func runProbeSuite(cmd *cobra.Command) error {
	appCtx := getAppContext(cmd)
	runtimeCfg := appCtx.Config.Probe

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("%s %s\n", colorInfo("API key:"), credential.Preview(appCtx.APIKey))

	client := appCtx.NewAPIClient()
	ttsOutput := runtimeCfg.TTS.OutputPath
	if ttsOutput == "" {
		ttsOutput = defaultTTSOutputPath(appCtx.ResultsDir)
	}

	probers := []probe.Prober{
		&probe.ModelsProber{Client: client},
		&probe.ChatProber{
			Client:       client,
			Model:        runtimeCfg.Chat.Model,
			SystemPrompt: runtimeCfg.Chat.SystemPrompt,
			UserMessage:  runtimeCfg.Chat.UserMessage,
			Temperature:  runtimeCfg.Chat.Temperature,
			MaxTokens:    runtimeCfg.Chat.MaxTokens,
		},
		&probe.STTProber{
			Client:    client,
			Model:     runtimeCfg.STT.Model,
			AudioPath: runtimeCfg.STT.AudioPath,
		},
		&probe.TTSProber{
			Client:     client,
			Model:      runtimeCfg.TTS.Model,
			Voice:      runtimeCfg.TTS.Voice,
			Input:      runtimeCfg.TTS.Input,
			OutputPath: ttsOutput,
		},
		&probe.RealtimeProber{
			Config: openai.RealtimeConfig{
				APIKey:  appCtx.APIKey,
				BaseURL: runtimeCfg.Realtime.URL,
				Model:   runtimeCfg.Realtime.Model,
			},
			Voice:        runtimeCfg.Realtime.Voice,
			Instructions: runtimeCfg.Realtime.Instructions,
			TestMessage:  runtimeCfg.Realtime.TestMessage,
		},
	}

	var progress *progressPrinter
	var auditFn probe.AuditFunc
	if runtimeCfg.ProgressEnabled {
		progress = newProgressPrinter(len(probers), "probe all")
		progress.Start()
		auditFn = func(name string, result probe.Result, duration float64) error {
			progress.Record(result.Status, duration)
			return nil
		}
	}

	runner := &probe.Runner{
		Concurrency: runtimeCfg.Concurrency,
		RateLimit:   runtimeCfg.RateLimit,
		Timeout:     time.Duration(runtimeCfg.TimeoutSecs) * time.Second,
	}

	startAll := time.Now()
	results := runner.RunProbes(ctx, probers, auditFn)

	if progress != nil {
		progress.Stop()
	}

	if ctx.Err() != nil {
		fmt.Printf("\n%s Run cancelled. Writing partial results...\n", colorWarn("!"))
	}

	for _, result := range results {
		printResult(result)
	}

	printConversationCosts()
	printSuiteSummary(results)

	resultsPath, err := writeResults(appCtx, "results.json", results, startAll)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", colorInfo("Results:"), resultsPath)

	if runtimeCfg.TelemetryEnabled {
		if err := recordTelemetry(appCtx, "probe all", results, time.Since(startAll)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record telemetry: %v\n", err)
		}
	}

	return nil
}

// printConversationCosts prices a typical spoken conversation turn and
// extrapolates to 1000 conversations.
func printConversationCosts() {
	costs := openai.EstimateConversation()

	fmt.Println()
	fmt.Println(colorInfo("Estimated API costs (per 1000 conversations):"))
	fmt.Printf("  GPT-4 chat:     $%.2f\n", costs.Chat*1000)
	fmt.Printf("  Whisper STT:    $%.2f\n", costs.Whisper*1000)
	fmt.Printf("  TTS generation: $%.2f\n", costs.TTS*1000)
	fmt.Printf("  Total:          $%.2f ($%.4f per conversation)\n", costs.Total()*1000, costs.Total())
}

func printSuiteSummary(results []probe.Result) {
	fmt.Println()
	fmt.Println(colorInfo("Probe summary:"))

	passed := 0
	for _, result := range results {
		verdict := colorError("FAIL")
		if result.Passed() {
			verdict = colorSuccess("PASS")
			passed++
		}
		fmt.Printf("  %s: %s\n", result.Probe, verdict)
	}

	total := len(results)
	rate := 0.0
	if total > 0 {
		rate = float64(passed) / float64(total) * 100
	}
	fmt.Printf("  Total: %d/%d passed (%.0f%%)\n", passed, total, rate)

	switch {
	case rate == 100:
		fmt.Println(colorSuccess("All probes passed. The credential is ready to use."))
	case rate >= 80:
		fmt.Println(colorWarn("Most probes passed. Check the failures above."))
	default:
		fmt.Println(colorError("Multiple probes failed. Check the API configuration."))
	}
}

func init() {
	probeAllCmd.Flags().IntVarP(&cliConfig.Probe.Concurrency, "concurrency", "c", cliConfig.Probe.Concurrency, "max concurrent probes")
	probeAllCmd.Flags().BoolVar(&cliConfig.Probe.ProgressEnabled, "progress", cliConfig.Probe.ProgressEnabled, "Display live progress for the suite")
	probeAllCmd.Flags().StringVar(&cliConfig.Probe.STT.AudioPath, "audio", cliConfig.Probe.STT.AudioPath, "audio file for the stt probe")
}
