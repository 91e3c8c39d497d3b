package cmd

import "fmt"

// MissingCredentialError indicates no API key could be resolved from any
// source.
type MissingCredentialError struct {
	EnvFile string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no OPENAI_API_KEY found (checked --api-key, environment, and %s)", e.EnvFile)
}

// ProbeFailedError signals that a single-probe command observed a failure.
type ProbeFailedError struct {
	Probe  string
	Detail string
}

func (e *ProbeFailedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: %s", e.Probe, e.Detail)
	}
	return fmt.Sprintf("%s failed", e.Probe)
}
