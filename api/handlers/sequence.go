package handlers

import (
	"net/http"
	"strings"

	"github.com/aria-lang/seqmatch-go/internal/stats"
	"github.com/aria-lang/seqmatch-go/pkg/seqmatch"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
}

// ReverseComplementResponse represents the response for reverse complement.
type ReverseComplementResponse struct {
	Original          string `json:"original"`
	ReverseComplement string `json:"reverse_complement"`
}

// ReverseComplementHandler handles reverse complement requests.
func (a *API) ReverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !decode(w, r, &req) {
		return
	}

	seq, err := seqmatch.NewSequence(req.Sequence)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ReverseComplementResponse{
		Original:          seq.Bases,
		ReverseComplement: seq.ReverseComplement().Bases,
	})
}

// ValidateResponse represents validation result.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidateHandler handles sequence validation requests.
func (a *API) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := seqmatch.NewSequence(req.Sequence); err != nil {
		writeJSON(w, http.StatusOK, ValidateResponse{Valid: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

// SequenceSetRequest holds a sequence collection as entries or FASTA text.
type SequenceSetRequest struct {
	Sequences []SequenceEntry `json:"sequences"`
	FASTA     string          `json:"fasta"`
}

// SequenceSetStatsHandler summarizes a sequence collection under the
// server alphabet.
func (a *API) SequenceSetStatsHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceSetRequest
	if !decode(w, r, &req) {
		return
	}

	seqs, err := requestSequences("sequence", req.Sequences, req.FASTA)
	if err != nil {
		a.writeError(w, err)
		return
	}
	alpha, err := seqmatch.NewAlphabet(strings.ToUpper(a.cfg.Alphabet))
	if err != nil {
		a.writeError(w, err)
		return
	}
	s, err := stats.FromSequences(seqs, alpha)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}
