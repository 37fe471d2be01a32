// Package handlers provides HTTP handlers for the seqmatch API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/aria-lang/seqmatch-go/pkg/seqmatch"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 20

// API serves alignment and search requests with a base configuration.
// Requests may override the mode, trace, strand and worker count; the worker
// count is capped at the configured one.
type API struct {
	cfg *seqmatch.Config
	log logrus.FieldLogger
}

// New creates the API. cfg must be valid.
func New(cfg *seqmatch.Config, logger logrus.FieldLogger) *API {
	if cfg == nil {
		cfg = seqmatch.DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &API{cfg: cfg, log: logger}
}

// Routes mounts the API endpoints on r.
func (a *API) Routes(r chi.Router) {
	r.Route("/sequence", func(r chi.Router) {
		r.Post("/reverse-complement", a.ReverseComplementHandler)
		r.Post("/validate", a.ValidateHandler)
		r.Post("/stats", a.SequenceSetStatsHandler)
	})

	r.Route("/alignment", func(r chi.Router) {
		r.Post("/local", a.LocalAlignHandler)
		r.Post("/global", a.GlobalAlignHandler)
		r.Post("/score", a.AlignmentScoreHandler)
	})

	r.Route("/search", func(r chi.Router) {
		r.Post("/best-match", a.BestMatchHandler)
	})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to status codes: bad input and bad
// settings are the client's, overflow is unprocessable, the rest is ours.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, seqmatch.ErrConfiguration), errors.Is(err, seqmatch.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, seqmatch.ErrOverflow):
		status = http.StatusUnprocessableEntity
	default:
		a.log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
