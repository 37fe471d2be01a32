// Package wfaalign implements alignment.Aligner over the wavefront
// alignment algorithm of github.com/shenwei356/wfa.
//
// The wavefront path is computed end to end in global mode and with free
// reference flanks (semi-global) in local mode, then re-scored under the
// scoring model, so reported scores always follow the model's parameters.
// In local mode the best-scoring contiguous stretch of that path is
// reported. The path is a heuristic for the model's optimum; use
// alignment.Kernel when exact scores are required.
package wfaalign

import (
	"fmt"

	"github.com/shenwei356/wfa"

	"github.com/aria-lang/seqmatch-go/internal/alignment"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// wavefront operations, as encoded in the upper 32 bits of a CIGAR op
const (
	opM = uint64('M') // match
	opX = uint64('X') // mismatch
	opI = uint64('I') // consumes reference only
	opD = uint64('D') // consumes query only
	opH = uint64('H') // consumes query only
)

// Options of the adapter.
type Options struct {
	Mode  alignment.Mode
	Trace bool
}

// Aligner is safe for concurrent use.
type Aligner struct {
	model     *alignment.ScoringModel
	opt       Options
	penalties *wfa.Penalties
	wopt      *wfa.Options
}

// New creates an Aligner for model.
func New(model *alignment.ScoringModel, opt Options) *Aligner {
	if model == nil {
		model = alignment.DefaultDNA()
	}
	return &Aligner{
		model:     model,
		opt:       opt,
		penalties: Penalties(model),
		wopt:      &wfa.Options{GlobalAlignment: opt.Mode == alignment.Global},
	}
}

// Penalties derives wavefront penalties from the model: the wavefront
// scores a match as 0, so mismatches cost match-mismatch and a gap of
// length L costs open' + L*extend'.
func Penalties(model *alignment.ScoringModel) *wfa.Penalties {
	p := model.Params()
	return &wfa.Penalties{
		Mismatch: atLeastOne(p.Match - p.Mismatch),
		GapOpen:  atLeastOne(p.GapExtend - p.GapOpen),
		GapExt:   atLeastOne(-p.GapExtend),
	}
}

func atLeastOne(v int) uint32 {
	if v < 1 {
		return 1
	}
	return uint32(v)
}

// column is one alignment column; i and j are the query and reference
// positions it consumes, or -1.
type column struct {
	op   alignment.Op
	i, j int
}

// Align aligns p against ref.
func (a *Aligner) Align(p *alignment.Profile, ref sequence.Encoded) (*alignment.Result, error) {
	if p == nil || p.Len() == 0 {
		return nil, &alignment.InvalidInputError{What: "empty query sequence"}
	}
	if len(ref) == 0 {
		return nil, &alignment.InvalidInputError{What: "empty reference sequence"}
	}
	query := p.Query()
	if err := a.model.CheckOverflow(len(query), len(ref)); err != nil {
		return nil, err
	}

	cols, err := a.path(query, ref)
	if err != nil {
		return nil, err
	}

	if a.opt.Mode == alignment.Global {
		return a.result(alignment.Global, a.score(cols, query, ref, 0, len(cols)-1), cols, 0, len(cols)-1), nil
	}
	best, lo, hi := a.bestStretch(cols, query, ref)
	if best <= 0 {
		res := &alignment.Result{
			Mode:       alignment.Local,
			QueryBegin: -1,
			QueryEnd:   -1,
			RefBegin:   -1,
			RefEnd:     -1,
			RefEnd2:    -1,
		}
		if a.opt.Trace {
			res.Cigar = alignment.Cigar{}
		}
		return res, nil
	}
	return a.result(alignment.Local, best, cols, lo, hi), nil
}

// path runs the wavefront alignment over the decoded symbols and expands
// its CIGAR into columns.
func (a *Aligner) path(query, ref sequence.Encoded) ([]column, error) {
	alpha := a.model.Alphabet()
	q := []byte(alpha.Decode(query))
	t := []byte(alpha.Decode(ref))

	algn := wfa.New(a.penalties, a.wopt)
	defer wfa.RecycleAligner(algn)

	cigar, err := algn.Align(q, t)
	if err != nil {
		return nil, &alignment.InvalidInputError{What: fmt.Sprintf("wavefront alignment failed: %s", err)}
	}
	defer wfa.RecycleAlignmentResult(cigar)

	cols := make([]column, 0, len(q)+len(t))
	i, j := 0, 0
	for _, op := range cigar.Ops {
		n := int(op & 0xffffffff)
		var c column
		for k := 0; k < n; k++ {
			switch op >> 32 {
			case opM, opX:
				c = column{op: alignment.OpMatch, i: i, j: j}
				i++
				j++
			case opI:
				c = column{op: alignment.OpDeletion, i: -1, j: j}
				j++
			case opD, opH:
				c = column{op: alignment.OpInsertion, i: i, j: -1}
				i++
			default:
				return nil, fmt.Errorf("wavefront alignment: unexpected operation %q", rune(op>>32))
			}
			cols = append(cols, c)
		}
	}
	if i != len(q) || j != len(t) {
		return nil, fmt.Errorf("wavefront alignment: path covers query %d/%d and reference %d/%d",
			i, len(q), j, len(t))
	}
	return cols, nil
}

// delta is the score change of column k within a stretch starting at lo.
func (a *Aligner) delta(cols []column, k, lo int, query, ref sequence.Encoded) int {
	c := cols[k]
	if c.op == alignment.OpMatch {
		return a.model.Score(query[c.i], ref[c.j])
	}
	if k > lo && cols[k-1].op == c.op {
		return a.model.GapExtend()
	}
	return a.model.GapOpen()
}

func (a *Aligner) score(cols []column, query, ref sequence.Encoded, lo, hi int) int {
	s := 0
	for k := lo; k <= hi; k++ {
		s += a.delta(cols, k, lo, query, ref)
	}
	return s
}

// bestStretch returns the best-scoring contiguous run of columns that
// starts and ends with an aligned pair; among equal scores the earliest.
func (a *Aligner) bestStretch(cols []column, query, ref sequence.Encoded) (best, lo, hi int) {
	cur, start := 0, -1
	lo, hi = -1, -1
	for k, c := range cols {
		if cur <= 0 {
			if c.op != alignment.OpMatch {
				continue
			}
			cur, start = 0, k
		}
		cur += a.delta(cols, k, start, query, ref)
		if cur > best {
			best, lo, hi = cur, start, k
		}
	}
	return best, lo, hi
}

func (a *Aligner) result(mode alignment.Mode, score int, cols []column, lo, hi int) *alignment.Result {
	res := &alignment.Result{
		Mode:       mode,
		Score:      score,
		QueryBegin: -1,
		QueryEnd:   -1,
		RefBegin:   -1,
		RefEnd:     -1,
		RefEnd2:    -1,
	}
	for k := lo; k <= hi; k++ {
		c := cols[k]
		if c.i >= 0 {
			if res.QueryBegin < 0 {
				res.QueryBegin = c.i
			}
			res.QueryEnd = c.i
		}
		if c.j >= 0 {
			if res.RefBegin < 0 {
				res.RefBegin = c.j
			}
			res.RefEnd = c.j
		}
	}
	if a.opt.Trace {
		res.Cigar = alignment.Cigar{}
		for k := lo; k <= hi; k++ {
			res.Cigar.Add(cols[k].op, 1)
		}
	}
	return res
}
