// Package ingest orchestrates the card ingestion pipeline: validate the raw
// scan, normalize it into a record, enrich it through the remote lookup, pick
// the price, and reconcile the result into the catalog store.
package ingest
