// Package catalog persists card inventory in SQLite and owns the
// insert-or-increment reconciliation decision.
//
// The store applies WAL and busy-timeout pragmas, retries SQLITE_BUSY with
// backoff, and versions its schema. Reconcile is a single atomic upsert: two
// concurrent ingestions of the same (catalog, external id) pair can never
// produce two rows or lose a quantity increment.
package catalog
