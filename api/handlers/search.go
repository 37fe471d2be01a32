package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aria-lang/seqmatch-go/pkg/seqmatch"
)

// SequenceEntry is one named sequence of a request.
type SequenceEntry struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

// SearchRequest represents a best-match search request. Sequences are
// given as entries, as FASTA text, or both. Unset options use the server
// configuration.
type SearchRequest struct {
	Queries         []SequenceEntry `json:"queries"`
	References      []SequenceEntry `json:"references"`
	QueriesFASTA    string          `json:"queries_fasta"`
	ReferencesFASTA string          `json:"references_fasta"`

	Mode    string `json:"mode"`
	Strand  string `json:"strand"`
	Workers int    `json:"workers"`
	Trace   *bool  `json:"trace"`
}

// MatchResponse is the best match of one query. Reference is empty and
// Found false when no reference could be aligned.
type MatchResponse struct {
	Query      string `json:"query"`
	Found      bool   `json:"found"`
	Reference  string `json:"reference,omitempty"`
	Strand     string `json:"strand,omitempty"`
	Score      int    `json:"score"`
	Score2     *int   `json:"score2,omitempty"`
	QueryBegin int    `json:"query_begin"`
	QueryEnd   int    `json:"query_end"`
	RefBegin   int    `json:"ref_begin"`
	RefEnd     int    `json:"ref_end"`
	CIGAR      string `json:"cigar,omitempty"`
	Evaluated  int    `json:"evaluated"`
	Skipped    int    `json:"skipped"`
}

// SearchResponse lists the matches in query order.
type SearchResponse struct {
	Results []MatchResponse `json:"results"`
	Matched int             `json:"matched"`
	Missing int             `json:"missing"`
}

// BestMatchHandler finds the best reference of every query.
func (a *API) BestMatchHandler(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decode(w, r, &req) {
		return
	}

	cfg, err := a.searchConfig(req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	queries, err := requestSequences("query", req.Queries, req.QueriesFASTA)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if len(queries) == 0 {
		a.writeError(w, fmt.Errorf("no queries: %w", seqmatch.ErrInvalidInput))
		return
	}
	refs, err := requestSequences("reference", req.References, req.ReferencesFASTA)
	if err != nil {
		a.writeError(w, err)
		return
	}

	records := make([]seqmatch.Record, 0, len(queries))
	err = seqmatch.SearchEach(r.Context(), cfg, a.log, queries, refs, func(rec seqmatch.Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	sort.Slice(records, func(i, j int) bool { return records[i].QueryIndex < records[j].QueryIndex })

	summary := seqmatch.Summarize(records)
	resp := SearchResponse{
		Results: make([]MatchResponse, len(records)),
		Matched: summary.Matched,
		Missing: summary.NoReference,
	}
	for i, rec := range records {
		resp.Results[i] = matchResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) searchConfig(req SearchRequest) (*seqmatch.Config, error) {
	cfg := *a.cfg
	if req.Mode != "" {
		cfg.Mode = req.Mode
	}
	if req.Strand != "" {
		cfg.Strand = req.Strand
	}
	if req.Trace != nil {
		cfg.Trace = *req.Trace
	}
	if req.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative: %w", seqmatch.ErrConfiguration)
	}
	if req.Workers > 0 && req.Workers < cfg.Workers {
		cfg.Workers = req.Workers
	}
	if cfg.Secondary && !strings.EqualFold(cfg.Mode, seqmatch.Local.String()) {
		cfg.Secondary = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func requestSequences(kind string, entries []SequenceEntry, fasta string) ([]*seqmatch.Sequence, error) {
	seqs := make([]*seqmatch.Sequence, 0, len(entries))
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("%s_%d", kind, i+1)
		}
		seqs = append(seqs, seqmatch.NewRecord(id, e.Sequence))
	}
	if fasta != "" {
		parsed, err := seqmatch.ParseFASTA(strings.NewReader(fasta))
		if err != nil {
			return nil, fmt.Errorf("%s FASTA: %w", kind, err)
		}
		for _, s := range parsed {
			seqs = append(seqs, seqmatch.NewRecord(s.ID, s.Bases))
		}
	}
	return seqs, nil
}

func matchResponse(rec seqmatch.Record) MatchResponse {
	m := MatchResponse{
		Query:      rec.QueryID,
		Found:      rec.Found,
		QueryBegin: -1,
		QueryEnd:   -1,
		RefBegin:   -1,
		RefEnd:     -1,
		Evaluated:  rec.Evaluated,
		Skipped:    rec.Skipped,
	}
	if !rec.Found || rec.Result == nil {
		return m
	}

	res := rec.Result
	m.Reference = rec.ReferenceID
	m.Strand = rec.Strand
	m.Score = res.Score
	m.QueryBegin, m.QueryEnd = res.QueryBegin, res.QueryEnd
	m.RefBegin, m.RefEnd = res.RefBegin, res.RefEnd
	if res.HasSecondary && res.RefEnd2 >= 0 {
		score2 := res.Score2
		m.Score2 = &score2
	}
	if res.HasTrace() {
		m.CIGAR = res.Cigar.String()
	}
	return m
}
