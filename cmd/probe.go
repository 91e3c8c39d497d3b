package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/earlab/aiprobe/internal/openai"
	"github.com/earlab/aiprobe/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run live probes against the OpenAI API (each probe issues billable requests)",
}

var probeModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models visible to the credential and flag required families",
	Long: `Probe the models listing endpoint.

This command reports:
- How many models the credential can see
- Whether the whisper, gpt-4, tts, and realtime families are available

A single GET request; no tokens are consumed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleProbe(cmd, func(appCtx *AppContext) probe.Prober {
			return &probe.ModelsProber{Client: appCtx.NewAPIClient()}
		}, printModelsDetail)
	},
}

var probeChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run a small chat completion exchange and price the tokens used",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleProbe(cmd, func(appCtx *AppContext) probe.Prober {
			chatCfg := appCtx.Config.Probe.Chat
			return &probe.ChatProber{
				Client:       appCtx.NewAPIClient(),
				Model:        chatCfg.Model,
				SystemPrompt: chatCfg.SystemPrompt,
				UserMessage:  chatCfg.UserMessage,
				Temperature:  chatCfg.Temperature,
				MaxTokens:    chatCfg.MaxTokens,
			}
		}, printChatDetail)
	},
}

var probeTTSCmd = &cobra.Command{
	Use:   "tts",
	Short: "Synthesize a short utterance and save the audio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleProbe(cmd, func(appCtx *AppContext) probe.Prober {
			ttsCfg := appCtx.Config.Probe.TTS
			output := ttsCfg.OutputPath
			if output == "" {
				output = defaultTTSOutputPath(appCtx.ResultsDir)
			}
			return &probe.TTSProber{
				Client:     appCtx.NewAPIClient(),
				Model:      ttsCfg.Model,
				Voice:      ttsCfg.Voice,
				Input:      ttsCfg.Input,
				OutputPath: output,
			}
		}, printTTSDetail)
	},
}

var probeSTTCmd = &cobra.Command{
	Use:   "stt",
	Short: "Transcribe an audio file with Whisper (skips without --audio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleProbe(cmd, func(appCtx *AppContext) probe.Prober {
			sttCfg := appCtx.Config.Probe.STT
			return &probe.STTProber{
				Client:    appCtx.NewAPIClient(),
				Model:     sttCfg.Model,
				AudioPath: sttCfg.AudioPath,
			}
		}, printSTTDetail)
	},
}

var probeRealtimeCmd = &cobra.Command{
	Use:   "realtime",
	Short: "Open a realtime WebSocket session and exchange one text turn",
	Long: `Probe the realtime WebSocket endpoint.

This command:
- Dials the realtime endpoint with bearer auth and the beta header
- Configures the session (text+audio modalities, pcm16 formats)
- Sends one user text turn and requests a response
- Reads events until response.done, streaming text deltas as they arrive

Timeouts: 5s for the first event, 10s per event afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRealtimeProbe(cmd)
	},
}

// runSingleProbe executes one prober through the shared runner and prints
// the generic result block plus a probe-specific detail section.
func runSingleProbe(cmd *cobra.Command, makeProber func(appCtx *AppContext) probe.Prober, printDetail func(result probe.Result)) error {
	appCtx := getAppContext(cmd)
	runtimeCfg := appCtx.Config.Probe

	ctx, cancel := signalContext()
	defer cancel()

	prober := makeProber(appCtx)
	runner := &probe.Runner{
		Concurrency: 1,
		RateLimit:   runtimeCfg.RateLimit,
		Timeout:     time.Duration(runtimeCfg.TimeoutSecs) * time.Second,
	}

	start := time.Now()
	results := runner.RunProbes(ctx, []probe.Prober{prober}, nil)
	result := results[0]

	printResult(result)
	if printDetail != nil {
		printDetail(result)
	}

	if runtimeCfg.TelemetryEnabled {
		if err := recordTelemetry(appCtx, prober.Name(), results, time.Since(start)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record telemetry: %v\n", err)
		}
	}

	if result.Status == probe.StatusError {
		return &ProbeFailedError{Probe: prober.Name(), Detail: result.Error}
	}
	return nil
}

// runRealtimeProbe is separate from runSingleProbe because it streams text
// deltas to the console while the probe is in flight and prints an access
// analysis afterwards.
func runRealtimeProbe(cmd *cobra.Command) error {
	appCtx := getAppContext(cmd)
	runtimeCfg := appCtx.Config.Probe
	rtCfg := runtimeCfg.Realtime

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println(colorInfo("Attempting WebSocket connection..."))

	streaming := false
	prober := &probe.RealtimeProber{
		Config: openai.RealtimeConfig{
			APIKey:  appCtx.APIKey,
			BaseURL: rtCfg.URL,
			Model:   rtCfg.Model,
		},
		Voice:        rtCfg.Voice,
		Instructions: rtCfg.Instructions,
		TestMessage:  rtCfg.TestMessage,
		OnDelta: func(delta string) {
			if !streaming {
				fmt.Print(colorInfo("AI: "))
				streaming = true
			}
			fmt.Print(delta)
		},
	}

	runner := &probe.Runner{
		Concurrency: 1,
		RateLimit:   runtimeCfg.RateLimit,
		Timeout:     time.Duration(runtimeCfg.TimeoutSecs) * time.Second,
	}

	start := time.Now()
	results := runner.RunProbes(ctx, []probe.Prober{prober}, nil)
	result := results[0]
	if streaming {
		fmt.Println()
	}

	printResult(result)
	printRealtimeAnalysis(result)

	if runtimeCfg.TelemetryEnabled {
		if err := recordTelemetry(appCtx, prober.Name(), results, time.Since(start)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record telemetry: %v\n", err)
		}
	}

	if result.Status == probe.StatusError {
		return &ProbeFailedError{Probe: prober.Name(), Detail: result.Error}
	}
	return nil
}

// signalContext returns a context cancelled by SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// printResult prints the generic outcome block shared by all probes.
func printResult(result probe.Result) {
	marker := colorSuccess("✓")
	if result.Status == probe.StatusError {
		marker = colorError("✗")
	} else if result.Status == probe.StatusSkipped {
		marker = colorWarn("-")
	}

	fmt.Printf("%s %s: %s\n", marker, result.Probe, formatStatusWithColor(result.Status))
	if result.HTTPStatus != 0 {
		fmt.Printf("  %s %d\n", colorInfo("HTTP status:"), result.HTTPStatus)
	}
	if result.ResponseTime > 0 {
		fmt.Printf("  %s %.0f ms\n", colorInfo("Response time:"), result.ResponseTime)
	}
	if result.TokensUsed > 0 {
		fmt.Printf("  %s %d\n", colorInfo("Tokens used:"), result.TokensUsed)
	}
	if result.EstimatedCost > 0 {
		fmt.Printf("  %s $%.6f\n", colorInfo("Estimated cost:"), result.EstimatedCost)
	}
	if result.Notes != "" {
		fmt.Printf("  %s %s\n", colorInfo("Notes:"), result.Notes)
	}
	if result.Error != "" {
		fmt.Printf("  %s %s\n", colorError("Error:"), result.Error)
	}
}

func printModelsDetail(result probe.Result) {
	families, ok := result.Details["families"].(map[string]bool)
	if !ok {
		return
	}
	for _, name := range []string{"whisper", "gpt-4", "tts", "realtime"} {
		if families[name] {
			fmt.Printf("  %s %s models available\n", colorSuccess("✓"), name)
		} else {
			fmt.Printf("  %s %s models not visible\n", colorWarn("✗"), name)
		}
	}
}

func printChatDetail(result probe.Result) {
	if snippet, ok := result.Details["response_snippet"].(string); ok {
		fmt.Printf("  %s %s\n", colorInfo("AI response:"), snippet)
	}
}

func printTTSDetail(result probe.Result) {
	if size, ok := result.Details["audio_bytes"].(int); ok {
		fmt.Printf("  %s %d bytes\n", colorInfo("Audio size:"), size)
	}
	if path, ok := result.Details["audio_path"].(string); ok {
		fmt.Printf("  %s %s\n", colorInfo("Audio saved to:"), path)
	}
}

func printSTTDetail(result probe.Result) {
	if transcript, ok := result.Details["transcript"].(string); ok {
		fmt.Printf("  %s %s\n", colorInfo("Transcript:"), transcript)
	}
}

// printRealtimeAnalysis mirrors a manual access review: what the key can do
// with realtime access, or how to restore it.
func printRealtimeAnalysis(result probe.Result) {
	fmt.Println()
	if result.Status == probe.StatusOK {
		fmt.Println(colorSuccess("SUCCESS: this API key has realtime access."))
		if id, ok := result.Details["session_id"].(string); ok && id != "" {
			fmt.Printf("%s %s\n", colorInfo("Session ID:"), id)
		}
		if model, ok := result.Details["session_model"].(string); ok && model != "" {
			fmt.Printf("%s %s\n", colorInfo("Session model:"), model)
		}
		fmt.Println("You can stream real-time conversations over WebSocket.")
		fmt.Printf("Pricing: audio in $%.2f/min, audio out $%.2f/min, text at standard GPT-4 rates.\n",
			openai.RealtimeAudioInPerMin, openai.RealtimeAudioOutPerMin)
		return
	}

	fmt.Println(colorError("FAILED: cannot access the realtime API."))
	fmt.Println("How to fix:")
	fmt.Println("  1. Check your credits at: https://platform.openai.com/usage")
	fmt.Println("  2. Add credits if needed: https://platform.openai.com/billing")
	fmt.Println("  3. Verify the API key is valid and current")
	fmt.Println("Alternative: HTTP-based conversation with Whisper (STT), chat completions, and TTS.")
}

func init() {
	// Global probe flags (apply to all subcommands)
	probeCmd.PersistentFlags().IntVarP(&cliConfig.Probe.RateLimit, "rate", "r", cliConfig.Probe.RateLimit, "requests per second (global)")
	probeCmd.PersistentFlags().IntVarP(&cliConfig.Probe.TimeoutSecs, "timeout", "t", cliConfig.Probe.TimeoutSecs, "request timeout in seconds")
	probeCmd.PersistentFlags().BoolVar(&cliConfig.Probe.TelemetryEnabled, "telemetry", cliConfig.Probe.TelemetryEnabled, "Record telemetry metrics (durations, success rates, spend)")

	// Chat-specific flags
	probeChatCmd.Flags().StringVarP(&cliConfig.Probe.Chat.Model, "model", "m", cliConfig.Probe.Chat.Model, "chat model to probe")
	probeChatCmd.Flags().StringVar(&cliConfig.Probe.Chat.SystemPrompt, "system", cliConfig.Probe.Chat.SystemPrompt, "system prompt")
	probeChatCmd.Flags().StringVar(&cliConfig.Probe.Chat.UserMessage, "message", cliConfig.Probe.Chat.UserMessage, "user message")
	probeChatCmd.Flags().Float64Var(&cliConfig.Probe.Chat.Temperature, "temperature", cliConfig.Probe.Chat.Temperature, "sampling temperature")
	probeChatCmd.Flags().IntVar(&cliConfig.Probe.Chat.MaxTokens, "max-tokens", cliConfig.Probe.Chat.MaxTokens, "completion token cap")

	// TTS-specific flags
	probeTTSCmd.Flags().StringVarP(&cliConfig.Probe.TTS.Model, "model", "m", cliConfig.Probe.TTS.Model, "speech model to probe")
	probeTTSCmd.Flags().StringVar(&cliConfig.Probe.TTS.Voice, "voice", cliConfig.Probe.TTS.Voice, "voice selection")
	probeTTSCmd.Flags().StringVar(&cliConfig.Probe.TTS.Input, "text", cliConfig.Probe.TTS.Input, "text to synthesize")
	probeTTSCmd.Flags().StringVarP(&cliConfig.Probe.TTS.OutputPath, "output", "o", cliConfig.Probe.TTS.OutputPath, "audio output path (default: <results>/tts_probe.mp3)")

	// STT-specific flags
	probeSTTCmd.Flags().StringVarP(&cliConfig.Probe.STT.Model, "model", "m", cliConfig.Probe.STT.Model, "transcription model to probe")
	probeSTTCmd.Flags().StringVar(&cliConfig.Probe.STT.AudioPath, "audio", cliConfig.Probe.STT.AudioPath, "audio file to transcribe")

	// Realtime-specific flags
	probeRealtimeCmd.Flags().StringVarP(&cliConfig.Probe.Realtime.Model, "model", "m", cliConfig.Probe.Realtime.Model, "realtime model to probe")
	probeRealtimeCmd.Flags().StringVar(&cliConfig.Probe.Realtime.URL, "realtime-url", cliConfig.Probe.Realtime.URL, "override the realtime WebSocket URL")
	probeRealtimeCmd.Flags().StringVar(&cliConfig.Probe.Realtime.Voice, "voice", cliConfig.Probe.Realtime.Voice, "session voice")
	probeRealtimeCmd.Flags().StringVar(&cliConfig.Probe.Realtime.TestMessage, "message", cliConfig.Probe.Realtime.TestMessage, "test message to send")

	probeCmd.AddCommand(probeModelsCmd)
	probeCmd.AddCommand(probeChatCmd)
	probeCmd.AddCommand(probeTTSCmd)
	probeCmd.AddCommand(probeSTTCmd)
	probeCmd.AddCommand(probeRealtimeCmd)
	probeCmd.AddCommand(probeAllCmd)
}
