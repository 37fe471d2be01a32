// Package alignment provides the pairwise alignment engine: an affine-gap
// scoring model over a symbol alphabet, reusable query profiles, and a
// Smith-Waterman / Needleman-Wunsch dynamic-programming kernel.
package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// Mode represents the type of alignment.
type Mode int

const (
	// Local represents Smith-Waterman local alignment
	Local Mode = iota
	// Global represents Needleman-Wunsch global alignment
	Global
)

func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// ParseMode parses "local" or "global", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "local", "sw", "smith-waterman":
		return Local, nil
	case "global", "nw", "needleman-wunsch":
		return Global, nil
	default:
		return 0, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown alignment mode %q", s)}
	}
}

// ScoringParams holds the scalar scoring parameters.
//
// All values are added to the alignment score: match must be positive,
// mismatch and unknown must not be positive, and both gap values must be
// negative. A gap of length L scores GapOpen + (L-1)*GapExtend.
type ScoringParams struct {
	Match     int
	Mismatch  int
	Unknown   int
	GapOpen   int
	GapExtend int
}

// DefaultParams returns the default DNA parameters (+2/-1, gaps -1/-1).
func DefaultParams() ScoringParams {
	return ScoringParams{
		Match:     2,
		Mismatch:  -1,
		Unknown:   -1,
		GapOpen:   -1,
		GapExtend: -1,
	}
}

// Validate checks the sign convention.
func (p ScoringParams) Validate() error {
	if p.Match <= 0 {
		return &ConfigError{Field: "match", Reason: fmt.Sprintf("score must be positive, got %d", p.Match)}
	}
	if p.Mismatch > 0 {
		return &ConfigError{Field: "mismatch", Reason: fmt.Sprintf("score must be <= 0, got %d", p.Mismatch)}
	}
	if p.Unknown > 0 {
		return &ConfigError{Field: "unknown", Reason: fmt.Sprintf("score must be <= 0, got %d", p.Unknown)}
	}
	if p.GapOpen >= 0 {
		return &ConfigError{Field: "gap open", Reason: fmt.Sprintf("penalty must be negative, got %d", p.GapOpen)}
	}
	if p.GapExtend >= 0 {
		return &ConfigError{Field: "gap extend", Reason: fmt.Sprintf("penalty must be negative, got %d", p.GapExtend)}
	}
	return nil
}

// ScoringModel is a flattened (n+1)x(n+1) substitution matrix over an
// alphabet of n symbols plus the unknown code, with affine gap penalties.
// It is immutable and safe for concurrent use.
type ScoringModel struct {
	alphabet *sequence.Alphabet
	params   ScoringParams
	size     int
	matrix   []int32
	maxAbs   int
}

// NewScoringModel builds the substitution matrix for alpha.
func NewScoringModel(alpha *sequence.Alphabet, params ScoringParams) (*ScoringModel, error) {
	if alpha == nil {
		return nil, &ConfigError{Field: "alphabet", Reason: "alphabet is required"}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	known := alpha.Len()
	size := known + 1
	m := &ScoringModel{
		alphabet: alpha,
		params:   params,
		size:     size,
		matrix:   make([]int32, size*size),
	}

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			var s int
			switch {
			case i == known || j == known:
				s = params.Unknown
			case i == j:
				s = params.Match
			default:
				s = params.Mismatch
			}
			m.matrix[i*size+j] = int32(s)
		}
	}

	for _, v := range []int{params.Match, params.Mismatch, params.Unknown, params.GapOpen, params.GapExtend} {
		if v < 0 {
			v = -v
		}
		if v > m.maxAbs {
			m.maxAbs = v
		}
	}

	return m, nil
}

// DefaultDNA creates the default DNA scoring model.
func DefaultDNA() *ScoringModel {
	m, err := NewScoringModel(sequence.DNA(), DefaultParams())
	if err != nil {
		panic(err)
	}
	return m
}

// Alphabet returns the alphabet the model was built for.
func (m *ScoringModel) Alphabet() *sequence.Alphabet {
	return m.alphabet
}

// Params returns the scalar parameters.
func (m *ScoringModel) Params() ScoringParams {
	return m.params
}

// Size returns the matrix dimension, alphabet length plus one.
func (m *ScoringModel) Size() int {
	return m.size
}

// MaxAbs returns the largest absolute value of any score or penalty.
func (m *ScoringModel) MaxAbs() int {
	return m.maxAbs
}

// Score returns the substitution score of two codes. Codes outside the
// matrix are scored as unknown.
func (m *ScoringModel) Score(a, b byte) int {
	if int(a) >= m.size {
		a = byte(m.size - 1)
	}
	if int(b) >= m.size {
		b = byte(m.size - 1)
	}
	return int(m.matrix[int(a)*m.size+int(b)])
}

// GapOpen returns the penalty of the first gap position.
func (m *ScoringModel) GapOpen() int {
	return m.params.GapOpen
}

// GapExtend returns the penalty of every further gap position.
func (m *ScoringModel) GapExtend() int {
	return m.params.GapExtend
}

// GapCost returns the penalty of a gap of length n.
func (m *ScoringModel) GapCost(n int) int {
	if n <= 0 {
		return 0
	}
	return m.params.GapOpen + (n-1)*m.params.GapExtend
}

// CheckOverflow fails with an OverflowError when aligning sequences of the
// given lengths could leave the range the kernels compute in.
func (m *ScoringModel) CheckOverflow(queryLen, refLen int) error {
	if bound := int64(queryLen+refLen) * int64(m.maxAbs); bound >= maxScoreBound {
		return &OverflowError{QueryLen: queryLen, RefLen: refLen, Bound: bound}
	}
	return nil
}

// String returns a string representation of the scoring model.
func (m *ScoringModel) String() string {
	return fmt.Sprintf("ScoringModel { alphabet: %s, match: %d, mismatch: %d, unknown: %d, gap_open: %d, gap_extend: %d }",
		m.alphabet.Symbols(), m.params.Match, m.params.Mismatch, m.params.Unknown, m.params.GapOpen, m.params.GapExtend)
}
