package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"number-persistence/internal/persistence"
	"number-persistence/internal/sink"
)

const (
	defaultRecordLimit = 50
	maxRecordLimit     = 1000
)

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface. Every request gets its own calculator,
// so handlers share no mutable state.
type Server struct {
	store     *sink.Store
	logger    *zap.Logger
	maxDigits int
	calcOpts  []persistence.Option
}

// NewServer creates a server. store may be nil, in which case /records
// answers 503. Numbers longer than maxDigits are rejected.
func NewServer(store *sink.Store, logger *zap.Logger, maxDigits int, opts ...persistence.Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:     store,
		logger:    logger,
		maxDigits: maxDigits,
		calcOpts:  opts,
	}
}

// Healthz reports liveness and whether the record store answers.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	h := Health{Status: "ok", CheckedAt: time.Now().UTC()}
	if s.store != nil {
		h.Store = s.store.Ping(r.Context()) == nil
	}
	writeJSON(w, http.StatusOK, h)
}

// GetPersistence computes the persistence and reduction steps of number.
func (s *Server) GetPersistence(w http.ResponseWriter, r *http.Request, number string) {
	if s.maxDigits > 0 && len(number) > s.maxDigits {
		writeJSON(w, http.StatusBadRequest, Error{
			Error: fmt.Sprintf("number has %d digits, limit is %d", len(number), s.maxDigits),
		})
		return
	}

	n, err := persistence.ParseNumber(number)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Error{Error: err.Error()})
		return
	}

	calc, err := persistence.New(s.calcOpts...)
	if err != nil {
		s.logger.Error("calculator setup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Error{Error: "Internal server error"})
		return
	}

	steps := calc.Steps(n)
	res := PersistenceResult{
		Number:      n.String(),
		Persistence: len(steps) - 1,
		Steps:       make([]string, len(steps)),
	}
	for i, v := range steps {
		res.Steps[i] = v.String()
	}

	writeJSON(w, http.StatusOK, res)
}

// ListRecords returns stored search records, newest first.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request, params ListRecordsParams) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, Error{Error: "Record store is not configured"})
		return
	}

	limit := defaultRecordLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit < 1 || limit > maxRecordLimit {
		writeJSON(w, http.StatusBadRequest, Error{
			Error: fmt.Sprintf("limit must be between 1 and %d", maxRecordLimit),
		})
		return
	}

	records, err := s.store.ListRecords(r.Context(), limit)
	if err != nil {
		s.logger.Error("list records failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Error{Error: "Failed to fetch records"})
		return
	}

	body := make([]Record, len(records))
	for i, rec := range records {
		body[i] = Record{
			Digits:      rec.Digits,
			FoundAt:     rec.FoundAt,
			Persistence: rec.Persistence,
			RunId:       rec.RunID,
			Value:       rec.Value,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
