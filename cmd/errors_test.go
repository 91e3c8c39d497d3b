package cmd

import "testing"

func TestMissingCredentialError(t *testing.T) {
	err := &MissingCredentialError{EnvFile: ".env"}
	want := "no OPENAI_API_KEY found (checked --api-key, environment, and .env)"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}

func TestProbeFailedError(t *testing.T) {
	err := &ProbeFailedError{Probe: "probe chat", Detail: "invalid API key"}
	want := "probe chat failed: invalid API key"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}

	err = &ProbeFailedError{Probe: "probe tts"}
	want = "probe tts failed"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}
