// Package resolve performs the two-tier remote lookup that enriches a scanned
// card with canonical attributes and a market price.
//
// Tier one queries by exact identifier; tier two falls back to an exact-match
// name and set search. Every failure mode (network error, timeout, non-OK
// status, malformed payload, empty result set) degrades to "no data from this
// tier" and the resolver carries on, so callers always receive a usable,
// possibly defaulted result and never an error.
package resolve
