package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodyBytes = 1 << 20

type Server struct {
	logger Logger
}

func NewServer(logger Logger) *Server {
	InitMetrics()
	return &Server{logger: logger}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/score", s.handleScore).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/adjust", s.handleAdjust).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/explain", s.handleExplain).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/metrics/{key}", s.handleMetric).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves the API on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info.Printf("Server shutting down ...\n")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error.Printf("Server shutdown error: %v\n", err)
		}
	}()

	s.logger.Info.Printf("Server listening on %s\n", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type scoreRequest struct {
	Vector string `json:"vector"`
}

type scoreResponse struct {
	Vector   string        `json:"vector"`
	Score    float64       `json:"score"`
	Severity cvss.Severity `json:"severity"`
}

type adjustRequest struct {
	Identifier  string            `json:"identifier"`
	Asset       string            `json:"asset"`
	Vector      string            `json:"vector"`
	Adjustments map[string]string `json:"adjustments"`
	Rationale   string            `json:"rationale"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type badRequestError struct {
	err error
}

func (e badRequestError) Error() string {
	return e.err.Error()
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req := scoreRequest{}
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, "score", err)
		return
	}
	m, err := cvss.Parse(req.Vector)
	if err != nil {
		s.writeError(w, "score", err)
		return
	}
	score := cvss.BaseScore(m)
	s.writeJSON(w, "score", http.StatusOK, scoreResponse{
		Vector:   m.String(),
		Score:    score,
		Severity: cvss.RenderSeverity(score),
	})
}

func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	req := adjustRequest{}
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, "adjust", err)
		return
	}
	if req.Identifier == "" {
		s.writeError(w, "adjust", badRequestError{fmt.Errorf("identifier is required")})
		return
	}
	record, err := Adjust(req.Identifier, req.Asset, req.Vector, req.Adjustments, req.Rationale)
	if err != nil {
		s.writeError(w, "adjust", err)
		return
	}
	observeScoreDelta(record)
	s.writeJSON(w, "adjust", http.StatusOK, record)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	req := scoreRequest{}
	if err := decodeRequest(w, r, &req); err != nil {
		s.writeError(w, "explain", err)
		return
	}
	explanation, err := Explain(req.Vector)
	if err != nil {
		s.writeError(w, "explain", err)
		return
	}
	s.writeJSON(w, "explain", http.StatusOK, explanation)
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["key"]
	k, ok := cvss.ParseKey(name)
	if !ok {
		observeRequest("metric", "not_found")
		s.writeJSONStatus(w, http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("unknown metric %q", name),
			Kind:  "not_found",
		})
		return
	}
	s.writeJSON(w, "metric", http.StatusOK, DescribeMetric(k))
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	d := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		return badRequestError{fmt.Errorf("unable to decode request: %w", err)}
	}
	return nil
}

// ErrorKind maps an error to the kind reported by the API.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, cvss.ErrIncompleteVector):
		return "incomplete_vector"
	case errors.Is(err, cvss.ErrInvalidAdjustment):
		return "invalid_adjustment"
	case errors.Is(err, cvss.ErrInvalidFormat):
		return "invalid_format"
	}
	return "bad_request"
}

func (s *Server) writeError(w http.ResponseWriter, operation string, err error) {
	kind := ErrorKind(err)
	observeRequest(operation, kind)
	s.logger.Debug.Printf("%s failed [%s]: %v\n", operation, kind, err)
	s.writeJSONStatus(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kind})
}

func (s *Server) writeJSON(w http.ResponseWriter, operation string, status int, v interface{}) {
	observeRequest(operation, "ok")
	s.writeJSONStatus(w, status, v)
}

func (s *Server) writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn.Printf("Unable to write response: %v\n", err)
	}
}
