// Package cards defines the card domain model and the scan normalizer.
//
// Normalize maps raw, possibly incomplete scan output into a fully defaulted
// Record without performing any I/O. Every field left at its default is
// traceable to "not available from input", never to a swallowed error.
package cards
