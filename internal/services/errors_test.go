package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"cardkeep/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrStore, "catalog", "reconcile", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"catalog", "reconcile", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	validationErr := services.Wrap(services.ErrValidation, "ingest", "validate", "invalid", nil)
	if status := services.HTTPStatus(validationErr); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for validation error, got %d", status)
	}

	storeErr := services.Wrap(services.ErrStore, "catalog", "insert", "insert failed", errors.New("io"))
	if status := services.HTTPStatus(storeErr); status != http.StatusBadGateway {
		t.Fatalf("expected 502 for store error, got %d", status)
	}

	if status := services.HTTPStatus(nil); status != http.StatusOK {
		t.Fatalf("expected 200 for nil error, got %d", status)
	}

	if status := services.HTTPStatus(errors.New("other")); status != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unclassified error, got %d", status)
	}
}
