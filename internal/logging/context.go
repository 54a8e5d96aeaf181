package logging

import (
	"context"
	"log/slog"

	"cardkeep/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCatalogID is the standardized structured logging key for catalog identifiers.
	FieldCatalogID = "catalog_id"
	// FieldExternalID is the standardized structured logging key for remote card identifiers.
	FieldExternalID = "external_id"
	// FieldRunID is the standardized structured logging key for ingestion run identifiers.
	FieldRunID = "run_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.CatalogIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldCatalogID, id))
	}
	if id, ok := services.ExternalIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldExternalID, id))
	}
	if rid, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		args = append(args, field)
	}
	return logger.With(args...)
}
