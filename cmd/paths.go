package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// getDataDir returns the appropriate data directory for the current OS
// following XDG Base Directory specification on Linux/Unix
func getDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %LOCALAPPDATA%\aiprobe
		baseDir = os.Getenv("LOCALAPPDATA")
		if baseDir == "" {
			baseDir = os.Getenv("APPDATA")
		}
		if baseDir == "" {
			return "", fmt.Errorf("could not determine Windows data directory")
		}
		baseDir = filepath.Join(baseDir, "aiprobe")

	case "darwin":
		// macOS: ~/Library/Application Support/aiprobe
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support", "aiprobe")

	default:
		// Linux/Unix: $XDG_DATA_HOME/aiprobe > ~/.local/share/aiprobe
		xdgDataHome := os.Getenv("XDG_DATA_HOME")
		if xdgDataHome != "" {
			baseDir = filepath.Join(xdgDataHome, "aiprobe")
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("could not determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".local", "share", "aiprobe")
		}
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return baseDir, nil
}

// defaultTTSOutputPath places saved probe audio inside the results dir.
func defaultTTSOutputPath(resultsDir string) string {
	return filepath.Join(resultsDir, "tts_probe.mp3")
}
