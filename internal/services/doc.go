// Package services defines shared utilities consumed by the ingestion
// pipeline and the API server.
//
// Key responsibilities:
//   - Context helpers that stamp catalog IDs, external card IDs, and run
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent caller-facing outcomes (invalid input vs store failure).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services
