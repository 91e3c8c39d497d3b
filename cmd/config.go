package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultRequestTimeoutSecs = 30
	defaultRealtimeModel      = "gpt-4o-realtime-preview-2024-12-17"
	defaultChatModel          = "gpt-3.5-turbo"
	defaultTTSModel           = "tts-1-hd"
	defaultTTSVoice           = "nova"
	defaultSTTModel           = "whisper-1"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Defaults DefaultValues
	Probe    ProbeRuntimeConfig
}

// DefaultValues represent operator-level defaults, typically derived from
// the config file.
type DefaultValues struct {
	TimeoutSecs      int
	TelemetryEnabled bool
	EnvFile          string
	BaseURL          string
}

// ProbeRuntimeConfig consolidates flag-driven settings for probe commands.
type ProbeRuntimeConfig struct {
	Concurrency      int
	RateLimit        int
	TimeoutSecs      int
	TelemetryEnabled bool
	ProgressEnabled  bool
	Chat             ChatConfig
	TTS              TTSConfig
	STT              STTConfig
	Realtime         RealtimeConfig
}

// ChatConfig groups chat-probe runtime options.
type ChatConfig struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	Temperature  float64
	MaxTokens    int
}

// TTSConfig groups speech-synthesis probe options.
type TTSConfig struct {
	Model      string
	Voice      string
	Input      string
	OutputPath string
}

// STTConfig groups transcription probe options.
type STTConfig struct {
	Model     string
	AudioPath string
}

// RealtimeConfig groups realtime probe options.
type RealtimeConfig struct {
	URL          string
	Model        string
	Voice        string
	Instructions string
	TestMessage  string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Defaults: DefaultValues{
			TimeoutSecs:      defaultRequestTimeoutSecs,
			TelemetryEnabled: false,
			EnvFile:          ".env",
		},
		Probe: ProbeRuntimeConfig{
			Concurrency:      1,
			RateLimit:        1,
			TimeoutSecs:      defaultRequestTimeoutSecs,
			TelemetryEnabled: false,
			Chat: ChatConfig{
				Model:        defaultChatModel,
				SystemPrompt: "You are a helpful English tutor. Keep responses brief.",
				UserMessage:  "Hello, how are you today?",
				Temperature:  0.7,
				MaxTokens:    50,
			},
			TTS: TTSConfig{
				Model: defaultTTSModel,
				Voice: defaultTTSVoice,
				Input: "Hello! This is a test of the text to speech system.",
			},
			STT: STTConfig{
				Model: defaultSTTModel,
			},
			Realtime: RealtimeConfig{
				Model:        defaultRealtimeModel,
				Voice:        defaultTTSVoice,
				Instructions: "You are a helpful assistant.",
				TestMessage:  "Hello, this is a test.",
			},
		},
	}
}

type defaultOverrides struct {
	TimeoutSecs      *int
	TelemetryEnabled *bool
	EnvFile          string
	BaseURL          string
	RealtimeURL      string
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("defaults.timeout_secs") {
		val := viper.GetInt("defaults.timeout_secs")
		overrides.TimeoutSecs = &val
	}

	if viper.IsSet("defaults.telemetry") {
		val := viper.GetBool("defaults.telemetry")
		overrides.TelemetryEnabled = &val
	}

	if viper.IsSet("defaults.env_file") {
		overrides.EnvFile = viper.GetString("defaults.env_file")
	}

	if viper.IsSet("defaults.base_url") {
		overrides.BaseURL = viper.GetString("defaults.base_url")
	}

	if viper.IsSet("defaults.realtime_url") {
		overrides.RealtimeURL = viper.GetString("defaults.realtime_url")
	}

	return overrides
}

// applyConfigDefaults merges config file defaults into the runtime config
// when the user did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadDefaultOverrides()

	if overrides.TimeoutSecs != nil {
		applyIntDefault(probeCmd.PersistentFlags(), "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.Defaults.TimeoutSecs = v
			cliConfig.Probe.TimeoutSecs = v
		})
	}

	if overrides.TelemetryEnabled != nil {
		applyBoolDefault(probeCmd.PersistentFlags(), "telemetry", *overrides.TelemetryEnabled, func(v bool) {
			cliConfig.Defaults.TelemetryEnabled = v
			cliConfig.Probe.TelemetryEnabled = v
		})
	}

	if overrides.EnvFile != "" {
		cliConfig.Defaults.EnvFile = overrides.EnvFile
		setStringFlagIfUnset(cmd.Root().PersistentFlags(), "env-file", overrides.EnvFile)
	}

	if overrides.BaseURL != "" {
		cliConfig.Defaults.BaseURL = overrides.BaseURL
		setStringFlagIfUnset(cmd.Root().PersistentFlags(), "base-url", overrides.BaseURL)
	}

	if overrides.RealtimeURL != "" {
		setStringFlagIfUnset(probeRealtimeCmd.Flags(), "realtime-url", overrides.RealtimeURL)
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
