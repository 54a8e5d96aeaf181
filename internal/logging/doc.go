// Package logging builds the slog loggers used across cardkeep.
//
// It supports a human-oriented console format and a machine-oriented JSON
// format, multiplexes output across stdout and the configured log file, and
// derives standardized structured fields (component, catalog, external id,
// run id) from context so every pipeline stage logs consistently.
package logging
