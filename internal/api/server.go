package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"cardkeep/internal/catalog"
	"cardkeep/internal/config"
	"cardkeep/internal/ingest"
	"cardkeep/internal/logging"
	"cardkeep/internal/pricing"
	"cardkeep/internal/services"
)

// Ingestor is the pipeline surface the server drives.
type Ingestor interface {
	Ingest(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

// Refresher re-prices a catalog on demand.
type Refresher interface {
	RefreshCatalog(ctx context.Context, catalogID int64) (*pricing.Summary, error)
}

// Store is the read/remove slice of the catalog store the server needs.
type Store interface {
	ListByCatalog(ctx context.Context, catalogID int64) ([]*catalog.Row, error)
	Latest(ctx context.Context, catalogID int64) (*catalog.Row, error)
	Remove(ctx context.Context, id int64) error
	TotalCounts(ctx context.Context) (*catalog.Counts, error)
}

// Server serves the ingestion and inventory endpoints.
type Server struct {
	bind   string
	logger *slog.Logger

	ingestor  Ingestor
	refresher Refresher
	store     Store

	listener net.Listener
	server   *http.Server
}

// NewServer builds the HTTP server from configuration. An empty bind address
// disables the server and returns nil.
func NewServer(cfg *config.Config, ingestor Ingestor, refresher Refresher, store Store, logger *slog.Logger) *Server {
	if cfg == nil {
		return nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		bind:      bind,
		logger:    logging.NewComponentLogger(logger, "api-server"),
		ingestor:  ingestor,
		refresher: refresher,
		store:     store,
	}

	token := strings.TrimSpace(cfg.Paths.APIToken)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/ingest", authMiddleware(token, srv.handleIngest))
	mux.HandleFunc("/api/catalogs/", authMiddleware(token, srv.handleCatalog))
	mux.HandleFunc("/api/cards/", authMiddleware(token, srv.handleCard))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Start begins serving and shuts the server down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or the configured bind address
// when the server has not started yet.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

// Stop shuts the server down immediately.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	counts, err := s.store.TotalCounts(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Rows:   counts.Rows,
		Copies: counts.Copies,
	})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.ingestor.Ingest(r.Context(), ingest.Request{
		CatalogID:  req.CatalogID,
		Scan:       req.Scan,
		PriorPrice: req.PriorPrice,
	})
	if err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, IngestResponse{
		RunID:         result.RunID,
		Action:        string(result.Action),
		RowID:         result.RowID,
		Quantity:      result.Quantity,
		Name:          result.Record.Name,
		Price:         result.Record.Price,
		PriceResolved: result.PriceResolved,
	})
}

// handleCatalog routes /api/catalogs/{id}/cards, /api/catalogs/{id}/latest,
// and /api/catalogs/{id}/refresh.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/catalogs/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	catalogID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || catalogID <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid catalog id")
		return
	}

	switch parts[1] {
	case "cards":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.listCards(w, r, catalogID)
	case "latest":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.latestCard(w, r, catalogID)
	case "refresh":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.refreshCatalog(w, r, catalogID)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) listCards(w http.ResponseWriter, r *http.Request, catalogID int64) {
	rows, err := s.store.ListByCatalog(r.Context(), catalogID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]CardView, 0, len(rows))
	for _, row := range rows {
		views = append(views, viewFromRow(row))
	}
	s.writeJSON(w, http.StatusOK, CardListResponse{Cards: views})
}

func (s *Server) latestCard(w http.ResponseWriter, r *http.Request, catalogID int64) {
	row, err := s.store.Latest(r.Context(), catalogID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if row == nil {
		s.writeError(w, http.StatusNotFound, "catalog is empty")
		return
	}
	s.writeJSON(w, http.StatusOK, viewFromRow(row))
}

func (s *Server) refreshCatalog(w http.ResponseWriter, r *http.Request, catalogID int64) {
	if s.refresher == nil {
		s.writeError(w, http.StatusNotFound, "refresh unavailable")
		return
	}
	summary, err := s.refresher.RefreshCatalog(r.Context(), catalogID)
	if err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, RefreshResponse{
		Examined:  summary.Examined,
		Updated:   summary.Updated,
		Unchanged: summary.Unchanged,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
	})
}

// handleCard routes DELETE /api/cards/{id}.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/cards/")
	if idStr == "" || strings.Contains(idStr, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid card id")
		return
	}
	if err := s.store.Remove(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "card not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
