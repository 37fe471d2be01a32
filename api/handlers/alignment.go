package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/seqmatch-go/pkg/seqmatch"
)

// AlignmentRequest represents an alignment request. Sequence1 is the query,
// Sequence2 the reference.
type AlignmentRequest struct {
	Sequence1 string `json:"sequence1"`
	Sequence2 string `json:"sequence2"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Score2      *int    `json:"score2,omitempty"`
	RefEnd2     *int    `json:"ref_end2,omitempty"`
	QueryBegin  int     `json:"query_begin"`
	QueryEnd    int     `json:"query_end"`
	RefBegin    int     `json:"ref_begin"`
	RefEnd      int     `json:"ref_end"`
	Identity    float64 `json:"identity"`
	CIGAR       string  `json:"cigar"`
	Extended    string  `json:"extended_cigar"`
	Matches     int     `json:"matches"`
	Mismatches  int     `json:"mismatches"`
	Gaps        int     `json:"gaps"`
}

// LocalAlignHandler handles local alignment requests.
func (a *API) LocalAlignHandler(w http.ResponseWriter, r *http.Request) {
	a.align(w, r, seqmatch.Local)
}

// GlobalAlignHandler handles global alignment requests.
func (a *API) GlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	a.align(w, r, seqmatch.Global)
}

func (a *API) align(w http.ResponseWriter, r *http.Request, mode seqmatch.Mode) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}
	seq1, seq2, model, err := a.pair(req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	aln, err := seqmatch.AlignWithScoring(seq1, seq2, model, mode)
	if err != nil {
		a.writeError(w, err)
		return
	}

	resp := AlignmentResponse{
		AlignedSeq1: aln.AlignedQuery,
		AlignedSeq2: aln.AlignedRef,
		Score:       aln.Score,
		QueryBegin:  aln.QueryBegin,
		QueryEnd:    aln.QueryEnd,
		RefBegin:    aln.RefBegin,
		RefEnd:      aln.RefEnd,
		Identity:    aln.Identity,
		CIGAR:       aln.Cigar.String(),
		Extended:    aln.ExtendedCIGAR(),
		Matches:     aln.MatchCount(),
		Mismatches:  aln.MismatchCount(),
		Gaps:        aln.TotalGaps(),
	}
	if aln.HasSecondary && aln.RefEnd2 >= 0 {
		resp.Score2 = &aln.Score2
		resp.RefEnd2 = &aln.RefEnd2
	}
	writeJSON(w, http.StatusOK, resp)
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Local  int `json:"local"`
	Global int `json:"global"`
}

// AlignmentScoreHandler returns the local and global scores of a pair
// without computing a trace.
func (a *API) AlignmentScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}
	seq1, seq2, model, err := a.pair(req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var resp ScoreResponse
	if resp.Local, err = seqmatch.Score(seq1, seq2, model, seqmatch.Local); err != nil {
		a.writeError(w, err)
		return
	}
	if resp.Global, err = seqmatch.Score(seq1, seq2, model, seqmatch.Global); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) pair(req AlignmentRequest) (*seqmatch.Sequence, *seqmatch.Sequence, *seqmatch.ScoringModel, error) {
	model, err := a.cfg.Model()
	if err != nil {
		return nil, nil, nil, err
	}
	seq1, err := a.sequence("sequence1", req.Sequence1)
	if err != nil {
		return nil, nil, nil, err
	}
	seq2, err := a.sequence("sequence2", req.Sequence2)
	if err != nil {
		return nil, nil, nil, err
	}
	return seq1, seq2, model, nil
}

// sequence validates DNA input strictly under the default alphabet; under
// other alphabets unknown symbols are accepted and scored as unknown.
func (a *API) sequence(name, bases string) (*seqmatch.Sequence, error) {
	if a.cfg.Alphabet != seqmatch.DefaultConfig().Alphabet {
		if bases == "" {
			return nil, fmt.Errorf("%s: %w", name, seqmatch.ErrInvalidInput)
		}
		return seqmatch.NewRecord(name, bases), nil
	}
	seq, err := seqmatch.NewSequenceWithID(bases, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return seq, nil
}
