// Package probe defines the aiprobe checking framework.
//
// Architecture overview:
//
//   - Probers implement the Prober interface (Probe + Name) for specific
//     API surfaces: quota diagnosis, model listing, chat completions, speech
//     synthesis, transcription, and the realtime WebSocket session.
//   - Runner coordinates execution with rate limiting and per-probe
//     timeouts, invoking a shared AuditFunc per probe so every run produces
//     consistent telemetry.
//   - Result models the outcome stored in results.json and echoed to the
//     console: status, HTTP status, latency, token usage, and an estimated
//     dollar cost where pricing data exists.
//
// This layout keeps API logic internal while allowing cmd/ to treat every
// probe uniformly.
package probe
