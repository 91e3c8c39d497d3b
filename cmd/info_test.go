package cmd

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfoCommand(t *testing.T) {
	disableColors(t)
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_DATA_HOME", t.TempDir())
	}
	defer setupTestAppContext(t)()

	output := captureStdout(t, func() {
		if err := infoCmd.RunE(infoCmd, []string{}); err != nil {
			t.Fatalf("info command failed: %v", err)
		}
	})

	expectedSections := []string{
		"aiprobe configuration",
		"Data directory:",
		"Results directory:",
		"Config file:",
		"Env file:",
		"Credential:",
		"Platform:",
	}
	for _, section := range expectedSections {
		if !strings.Contains(output, section) {
			t.Errorf("Expected output to contain %q, got:\n%s", section, output)
		}
	}

	expectedPlatform := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(output, expectedPlatform) {
		t.Errorf("Expected platform %q in output, got:\n%s", expectedPlatform, output)
	}

	// The test context carries a credential, so it must show as resolved.
	if !strings.Contains(output, "✓ (resolved)") {
		t.Errorf("Expected resolved credential status, got:\n%s", output)
	}
}

func TestConfigFileInUse(t *testing.T) {
	original := cfgFile
	t.Cleanup(func() { cfgFile = original })

	cfgFile = ""
	if got := configFileInUse(); got != "$HOME/.aiprobe.yaml (default)" {
		t.Errorf("configFileInUse() = %q", got)
	}

	cfgFile = "/etc/aiprobe.yaml"
	if got := configFileInUse(); got != "/etc/aiprobe.yaml" {
		t.Errorf("configFileInUse() = %q", got)
	}
}
