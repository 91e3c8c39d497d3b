package credential

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	consts "github.com/earlab/aiprobe/internal/shared/constants"
)

// EnvVar is the environment variable and dotenv key the API credential is
// read from.
const EnvVar = "OPENAI_API_KEY"

// Resolve returns the API key using the first non-empty source in order:
// the explicit value (usually a --api-key flag), the process environment,
// then the dotenv file at envFile. A missing dotenv file is not an error
// unless no other source produced a key.
func Resolve(explicit, envFile string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(EnvVar)); key != "" {
		return key, nil
	}

	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err == nil {
			if key := strings.TrimSpace(values[EnvVar]); key != "" {
				return key, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	return "", fmt.Errorf("no %s found (checked --api-key, environment, %s)", EnvVar, envFile)
}

// Format classifies the key prefix.
type Format string

const (
	FormatProject  Format = "project"
	FormatStandard Format = "standard"
	FormatUnknown  Format = "unknown"
)

// Analysis summarizes what can be said about a key without calling the API.
type Analysis struct {
	Format     Format
	Length     int
	LongFormat bool // post-2024 long key layout
	Preview    string
}

// Analyze inspects the key format, length class, and builds a masked preview.
func Analyze(key string) Analysis {
	a := Analysis{
		Length:     len(key),
		LongFormat: len(key) > 100,
		Preview:    Preview(key),
	}
	switch {
	case strings.HasPrefix(key, "sk-proj-"):
		a.Format = FormatProject
	case strings.HasPrefix(key, "sk-"):
		a.Format = FormatStandard
	default:
		a.Format = FormatUnknown
	}
	return a
}

// Preview masks the key for console output, keeping only the leading and
// trailing characters. Keys too short to mask meaningfully are fully hidden.
func Preview(key string) string {
	head := consts.KeyPreviewHead
	tail := consts.KeyPreviewTail
	if len(key) <= head+tail {
		return strings.Repeat("*", len(key))
	}
	return key[:head] + "..." + key[len(key)-tail:]
}
