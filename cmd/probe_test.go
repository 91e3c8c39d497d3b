package cmd

import (
	"strings"
	"testing"

	"github.com/earlab/aiprobe/internal/probe"
)

func TestPrintResult_Success(t *testing.T) {
	disableColors(t)

	result := probe.Result{
		Probe:         "probe chat",
		Status:        probe.StatusOK,
		HTTPStatus:    200,
		ResponseTime:  321,
		TokensUsed:    33,
		EstimatedCost: 0.000049,
		Notes:         "looks healthy",
	}

	output := captureStdout(t, func() {
		printResult(result)
	})

	for _, want := range []string{
		"✓ probe chat: ok",
		"HTTP status: 200",
		"Response time: 321 ms",
		"Tokens used: 33",
		"Estimated cost: $0.000049",
		"Notes: looks healthy",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Error:") {
		t.Errorf("unexpected error line:\n%s", output)
	}
}

func TestPrintResult_ErrorAndSkip(t *testing.T) {
	disableColors(t)

	output := captureStdout(t, func() {
		printResult(probe.Result{Probe: "probe models", Status: probe.StatusError, Error: "invalid API key"})
		printResult(probe.Result{Probe: "probe stt", Status: probe.StatusSkipped, Notes: "no audio file"})
	})

	if !strings.Contains(output, "✗ probe models: error") || !strings.Contains(output, "Error: invalid API key") {
		t.Errorf("expected failure block, got:\n%s", output)
	}
	if !strings.Contains(output, "- probe stt: skipped") {
		t.Errorf("expected skip marker, got:\n%s", output)
	}
}

func TestPrintModelsDetail(t *testing.T) {
	disableColors(t)

	result := probe.Result{}
	result.SetDetail("families", map[string]bool{
		"whisper":  true,
		"gpt-4":    true,
		"tts":      false,
		"realtime": false,
	})

	output := captureStdout(t, func() {
		printModelsDetail(result)
	})

	if !strings.Contains(output, "✓ whisper models available") {
		t.Errorf("expected whisper availability, got:\n%s", output)
	}
	if !strings.Contains(output, "✗ tts models not visible") {
		t.Errorf("expected tts missing line, got:\n%s", output)
	}

	lines := strings.Count(output, "models")
	if lines != 4 {
		t.Errorf("expected 4 family lines, got %d:\n%s", lines, output)
	}
}

func TestPrintRealtimeAnalysis(t *testing.T) {
	disableColors(t)

	success := probe.Result{Status: probe.StatusOK}
	success.SetDetail("session_id", "sess_abc")
	success.SetDetail("session_model", "gpt-4o-realtime-preview-2024-12-17")

	output := captureStdout(t, func() {
		printRealtimeAnalysis(success)
	})
	if !strings.Contains(output, "SUCCESS: this API key has realtime access.") {
		t.Errorf("expected success banner, got:\n%s", output)
	}
	if !strings.Contains(output, "Session ID: sess_abc") {
		t.Errorf("expected session id, got:\n%s", output)
	}

	output = captureStdout(t, func() {
		printRealtimeAnalysis(probe.Result{Status: probe.StatusError})
	})
	if !strings.Contains(output, "FAILED: cannot access the realtime API.") {
		t.Errorf("expected failure banner, got:\n%s", output)
	}
	if !strings.Contains(output, "Alternative: HTTP-based conversation") {
		t.Errorf("expected fallback hint, got:\n%s", output)
	}
}

func TestPrintSuiteSummary(t *testing.T) {
	disableColors(t)

	output := captureStdout(t, func() {
		printSuiteSummary([]probe.Result{
			{Probe: "probe models", Status: probe.StatusOK},
			{Probe: "probe chat", Status: probe.StatusOK},
			{Probe: "probe stt", Status: probe.StatusSkipped},
			{Probe: "probe tts", Status: probe.StatusOK},
			{Probe: "probe realtime", Status: probe.StatusError},
		})
	})

	if !strings.Contains(output, "probe realtime: FAIL") {
		t.Errorf("expected realtime failure row, got:\n%s", output)
	}
	if !strings.Contains(output, "probe stt: PASS") {
		t.Errorf("skipped probes should count as passed, got:\n%s", output)
	}
	if !strings.Contains(output, "Total: 4/5 passed (80%)") {
		t.Errorf("expected totals line, got:\n%s", output)
	}
	if !strings.Contains(output, "Most probes passed.") {
		t.Errorf("expected 80%% verdict, got:\n%s", output)
	}
}

func TestPrintConversationCosts(t *testing.T) {
	disableColors(t)

	output := captureStdout(t, func() {
		printConversationCosts()
	})

	for _, want := range []string{
		"Estimated API costs (per 1000 conversations):",
		"GPT-4 chat:     $3.50",
		"Whisper STT:    $0.50",
		"TTS generation: $7.50",
		"Total:          $11.50 ($0.0115 per conversation)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}
