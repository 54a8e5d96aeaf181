// Package tcgapi provides the minimal card catalog API client used during
// ingestion.
//
// It authenticates requests with a static API key header and exposes exact-id
// card retrieval plus exact-match name and set search. Responses are strongly
// typed so the resolver can extract attributes and market prices from them.
// Options allow tests to supply custom HTTP clients without modifying
// production code.
package tcgapi
