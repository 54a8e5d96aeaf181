package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardkeep/internal/api"
	"cardkeep/internal/cards"
	"cardkeep/internal/ingest"
	"cardkeep/internal/testsupport"
)

func newTestServer(t *testing.T, opts ...testsupport.ConfigOption) (*api.Server, http.Handler) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenStore(t, cfg)
	ingestor := ingest.NewIngestor(nil, store, nil, false)
	srv := api.NewServer(cfg, ingestor, nil, store, nil)
	if srv == nil {
		t.Fatal("expected server")
	}
	return srv, srv.Handler()
}

func ingestBody(t *testing.T, catalogID int64, scan cards.RawScan) *bytes.Buffer {
	t.Helper()
	payload, err := json.Marshal(api.IngestRequest{CatalogID: catalogID, Scan: scan})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(payload)
}

func TestHealthReportsCounts(t *testing.T) {
	_, handler := newTestServer(t)

	scan := cards.RawScan{ID: "base1-58", Name: "Pikachu"}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", ingestBody(t, 1, scan)))
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest status %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status %d", rec.Code)
	}
	var health api.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.Rows != 1 || health.Copies != 1 {
		t.Fatalf("unexpected health: %#v", health)
	}
}

func TestIngestEndpointReconciles(t *testing.T) {
	_, handler := newTestServer(t)
	scan := cards.RawScan{ID: "base1-58", Name: "Pikachu", SetName: "Base Set"}

	var first api.IngestResponse
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", ingestBody(t, 1, scan)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Action != "inserted" || first.Quantity != 1 {
		t.Fatalf("unexpected first response: %#v", first)
	}

	var second api.IngestResponse
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", ingestBody(t, 1, scan)))
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second.Action != "quantity_bumped" || second.Quantity != 2 {
		t.Fatalf("unexpected second response: %#v", second)
	}
	if second.RowID != first.RowID {
		t.Fatalf("expected same row, got %d and %d", first.RowID, second.RowID)
	}
}

func TestIngestEndpointValidation(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", ingestBody(t, 0, cards.RawScan{Name: "Pikachu"})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad catalog id, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", bytes.NewBufferString("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ingest", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestCatalogRoutes(t *testing.T) {
	_, handler := newTestServer(t)

	for _, id := range []string{"base1-58", "base1-4"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest",
			ingestBody(t, 2, cards.RawScan{ID: id, Name: "Card " + id})))
		if rec.Code != http.StatusOK {
			t.Fatalf("ingest %s: %d", id, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs/2/cards", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	var list api.CardListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(list.Cards))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs/2/latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("latest status %d", rec.Code)
	}
	var latest api.CardView
	if err := json.Unmarshal(rec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if latest.ExternalID != "base1-4" {
		t.Fatalf("unexpected latest: %#v", latest)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs/99/latest", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty catalog, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs/abc/cards", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad catalog id, got %d", rec.Code)
	}
}

func TestRemoveCard(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest",
		ingestBody(t, 1, cards.RawScan{ID: "base1-58", Name: "Pikachu"})))
	var resp api.IngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cards/%d", resp.RowID), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cards/%d", resp.RowID), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing card, got %d", rec.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	_, handler := newTestServer(t, testsupport.WithAPIToken("secret"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalogs/1/cards", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/catalogs/1/cards", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/catalogs/1/cards", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	// Health stays open for probes.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", rec.Code)
	}
}
