package services

import "context"

type contextKey string

const (
	catalogIDKey  contextKey = "catalog_id"
	externalIDKey contextKey = "external_id"
	runIDKey      contextKey = "run_id"
)

// WithCatalogID annotates context with the target catalog identifier.
func WithCatalogID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, catalogIDKey, id)
}

// CatalogIDFromContext extracts the catalog identifier if present.
func CatalogIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(catalogIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithExternalID annotates context with the card's external identifier.
func WithExternalID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, externalIDKey, id)
}

// ExternalIDFromContext returns the external card identifier if present.
func ExternalIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(externalIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with an ingestion run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the ingestion run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
