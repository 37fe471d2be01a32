package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// Aligned is a Result rendered against its two sequences as gapped rows.
//
// Invariant: len(AlignedQuery) == len(AlignedRef).
type Aligned struct {
	*Result
	AlignedQuery string
	AlignedRef   string
	Identity     float64
}

// NewAligned renders res, which must carry a trace, against the symbols of
// the query and the reference it was computed from.
func NewAligned(res *Result, query, ref string) (*Aligned, error) {
	if res == nil || !res.HasTrace() {
		return nil, fmt.Errorf("alignment has no trace to render")
	}

	a := &Aligned{Result: res}
	if !res.Empty() {
		q, r, err := res.Cigar.Render(query, ref, res.QueryBegin, res.RefBegin)
		if err != nil {
			return nil, err
		}
		a.AlignedQuery, a.AlignedRef = q, r
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

// calculateIdentity calculates the sequence identity.
func (a *Aligned) calculateIdentity() float64 {
	if len(a.AlignedQuery) == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(len(a.AlignedQuery))
}

// Length returns the number of alignment columns.
func (a *Aligned) Length() int {
	return len(a.AlignedQuery)
}

// MatchCount returns the number of identical columns.
func (a *Aligned) MatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedQuery); i++ {
		if a.AlignedQuery[i] == a.AlignedRef[i] && a.AlignedQuery[i] != '-' {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of mismatched columns.
func (a *Aligned) MismatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedQuery); i++ {
		if a.AlignedQuery[i] != a.AlignedRef[i] &&
			a.AlignedQuery[i] != '-' && a.AlignedRef[i] != '-' {
			count++
		}
	}
	return count
}

// GapsQuery returns the number of gap columns in the query row.
func (a *Aligned) GapsQuery() int {
	return strings.Count(a.AlignedQuery, "-")
}

// GapsRef returns the number of gap columns in the reference row.
func (a *Aligned) GapsRef() int {
	return strings.Count(a.AlignedRef, "-")
}

// TotalGaps returns the total number of gaps.
func (a *Aligned) TotalGaps() int {
	return a.GapsQuery() + a.GapsRef()
}

// GapOpenings counts the number of gap openings.
func (a *Aligned) GapOpenings() int {
	openings := 0
	inGapQ, inGapR := false, false

	for i := 0; i < len(a.AlignedQuery); i++ {
		if a.AlignedQuery[i] == '-' && !inGapQ {
			openings++
			inGapQ = true
		} else if a.AlignedQuery[i] != '-' {
			inGapQ = false
		}

		if a.AlignedRef[i] == '-' && !inGapR {
			openings++
			inGapR = true
		} else if a.AlignedRef[i] != '-' {
			inGapR = false
		}
	}

	return openings
}

// ExtendedCIGAR returns a CIGAR that separates matches (=) from mismatches (X).
func (a *Aligned) ExtendedCIGAR() string {
	if len(a.AlignedQuery) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := 0; i < len(a.AlignedQuery); i++ {
		var op byte
		switch {
		case a.AlignedRef[i] == '-':
			op = 'I'
		case a.AlignedQuery[i] == '-':
			op = 'D'
		case a.AlignedQuery[i] == a.AlignedRef[i]:
			op = '='
		default:
			op = 'X'
		}

		if op == currentOp {
			count++
		} else {
			if count > 0 {
				cigar.WriteString(fmt.Sprintf("%d%c", count, currentOp))
			}
			currentOp = op
			count = 1
		}
	}

	if count > 0 {
		cigar.WriteString(fmt.Sprintf("%d%c", count, currentOp))
	}

	return cigar.String()
}

// Format returns a formatted string representation of the alignment.
func (a *Aligned) Format() string {
	var matchLine strings.Builder
	for i := 0; i < len(a.AlignedQuery); i++ {
		if a.AlignedQuery[i] == a.AlignedRef[i] && a.AlignedQuery[i] != '-' {
			matchLine.WriteByte('|')
		} else if a.AlignedQuery[i] == '-' || a.AlignedRef[i] == '-' {
			matchLine.WriteByte(' ')
		} else {
			matchLine.WriteByte('.')
		}
	}

	return fmt.Sprintf("Query: %s\n       %s\nRef:   %s\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.AlignedQuery, matchLine.String(), a.AlignedRef,
		a.Score, a.Identity*100, a.Cigar)
}

func (a *Aligned) String() string {
	return fmt.Sprintf("Alignment { score: %d, identity: %.1f%%, length: %d }",
		a.Score, a.Identity*100, a.Length())
}

// Pair aligns two sequences with a traced kernel and renders the result.
func Pair(query, ref *sequence.Sequence, model *ScoringModel, mode Mode) (*Aligned, error) {
	if model == nil {
		model = DefaultDNA()
	}
	alpha := model.Alphabet()

	p, err := NewProfile(alpha.EncodeSequence(query), model)
	if err != nil {
		return nil, err
	}
	defer p.Release()

	res, err := NewKernel(model, Options{Mode: mode, Trace: true, Secondary: mode == Local}).
		Align(p, alpha.EncodeSequence(ref))
	if err != nil {
		return nil, err
	}
	return NewAligned(res, query.Bases, ref.Bases)
}

// SmithWaterman performs local alignment of two sequences.
func SmithWaterman(query, ref *sequence.Sequence, model *ScoringModel) (*Aligned, error) {
	return Pair(query, ref, model, Local)
}

// NeedlemanWunsch performs global alignment of two sequences.
func NeedlemanWunsch(query, ref *sequence.Sequence, model *ScoringModel) (*Aligned, error) {
	return Pair(query, ref, model, Global)
}

// ScoreOnly returns the alignment score without a trace, in O(m) memory.
func ScoreOnly(query, ref *sequence.Sequence, model *ScoringModel, mode Mode) (int, error) {
	if model == nil {
		model = DefaultDNA()
	}
	alpha := model.Alphabet()

	p, err := NewProfile(alpha.EncodeSequence(query), model)
	if err != nil {
		return 0, err
	}
	defer p.Release()

	res, err := NewKernel(model, Options{Mode: mode}).Align(p, alpha.EncodeSequence(ref))
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// PercentIdentity calculates percent identity between two aligned rows.
func PercentIdentity(aligned1, aligned2 string) (float64, error) {
	if len(aligned1) != len(aligned2) {
		return 0, fmt.Errorf("aligned sequences must have equal length")
	}
	if len(aligned1) == 0 {
		return 0, fmt.Errorf("aligned sequences cannot be empty")
	}

	matches := 0
	for i := 0; i < len(aligned1); i++ {
		if aligned1[i] == aligned2[i] && aligned1[i] != '-' {
			matches++
		}
	}

	return float64(matches) / float64(len(aligned1)) * 100.0, nil
}
