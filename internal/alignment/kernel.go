package alignment

import (
	"fmt"
	"sync"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// Aligner aligns one query profile against one encoded reference.
//
// Implementations must be safe for concurrent use; the same profile is
// passed to many Align calls at once.
type Aligner interface {
	Align(p *Profile, ref sequence.Encoded) (*Result, error)
}

// Options control what the kernel computes besides the score.
type Options struct {
	Mode Mode
	// Trace requests a CIGAR trace. It costs one byte per DP cell.
	Trace bool
	// Secondary requests the secondary local score (local mode only).
	Secondary bool
}

// Kernel is the in-process dynamic-programming Aligner.
//
// Three states are kept per cell: M (ends in a match or mismatch), Iq (ends
// in a gap in the query) and Ir (ends in a gap in the reference):
//
//	M[i][j]  = s(q[i], r[j]) + max(M, Iq, Ir)[i-1][j-1]
//	Iq[i][j] = max(M[i][j-1] + open, Iq[i][j-1] + extend)
//	Ir[i][j] = max(M[i-1][j] + open, Ir[i-1][j] + extend)
//
// Rows are query positions and columns reference positions. The reference
// is the outer loop so that one profile row serves a whole column.
//
// Local mode floors M at 0 and reports the maximum M cell; among equal
// maxima the smallest (row, column) wins. Global mode reports the best of
// the three states at the last cell.
//
// Without a trace the kernel needs O(m) memory: start coordinates travel
// with each cell as the origin of its path. With a trace it keeps one
// direction byte per cell. Both resolve predecessor ties the same way (M
// before Iq before Ir, gap open before extend, a zero predecessor starts a
// new local alignment), so reported coordinates do not depend on Trace.
type Kernel struct {
	model *ScoringModel
	opt   Options
	pool  sync.Pool
}

// NewKernel creates a kernel for model.
func NewKernel(model *ScoringModel, opt Options) *Kernel {
	if model == nil {
		model = DefaultDNA()
	}
	k := &Kernel{model: model, opt: opt}
	k.pool.New = func() interface{} { return &workspace{} }
	return k
}

// Model returns the kernel's scoring model.
func (k *Kernel) Model() *ScoringModel {
	return k.model
}

// Options returns the kernel's options.
func (k *Kernel) Options() Options {
	return k.opt
}

const (
	// maxScoreBound bounds (m+n) * MaxAbs so that no int32 cell overflows,
	// negInf included.
	maxScoreBound = 1 << 29
	negInf        = -(1 << 30)

	// MaxTraceCells bounds the direction matrix of a traced alignment,
	// (m+1)*(n+1) bytes.
	MaxTraceCells = 1 << 28
)

// direction bits, one byte per cell
const (
	srcStop byte = iota // M starts here (local) or boundary
	srcM
	srcQ
	srcR

	srcMask byte = 3
	extQ    byte = 1 << 2 // Iq extends Iq[i][j-1]
	extR    byte = 1 << 3 // Ir extends Ir[i-1][j]
)

type workspace struct {
	scores  []int32
	origins []int64
	colMax  []int32
	dir     []byte
}

func (w *workspace) prepare(m, n int, origins, trace, secondary bool) {
	if need := 6 * (m + 1); cap(w.scores) < need {
		w.scores = make([]int32, need)
	} else {
		w.scores = w.scores[:need]
	}
	if origins {
		if need := 6 * (m + 1); cap(w.origins) < need {
			w.origins = make([]int64, need)
		} else {
			w.origins = w.origins[:need]
		}
	}
	if secondary {
		if cap(w.colMax) < n+1 {
			w.colMax = make([]int32, n+1)
		} else {
			w.colMax = w.colMax[:n+1]
		}
	}
	if trace {
		need := (m + 1) * (n + 1)
		if cap(w.dir) < need {
			w.dir = make([]byte, need)
		} else {
			w.dir = w.dir[:need]
		}
	}
}

func split32(s []int32, m int) (a, b, c, d, e, f []int32) {
	l := m + 1
	return s[0:l], s[l : 2*l], s[2*l : 3*l], s[3*l : 4*l], s[4*l : 5*l], s[5*l : 6*l]
}

func split64(s []int64, m int) (a, b, c, d, e, f []int64) {
	l := m + 1
	return s[0:l], s[l : 2*l], s[2*l : 3*l], s[3*l : 4*l], s[4*l : 5*l], s[5*l : 6*l]
}

func pack(i, j int) int64 {
	return int64(i)<<32 | int64(uint32(j))
}

func unpack(o int64) (int, int) {
	return int(o >> 32), int(uint32(o))
}

// Align aligns p against ref.
func (k *Kernel) Align(p *Profile, ref sequence.Encoded) (*Result, error) {
	if p == nil || p.Len() == 0 {
		return nil, &InvalidInputError{What: "empty query sequence"}
	}
	if len(ref) == 0 {
		return nil, &InvalidInputError{What: "empty reference sequence"}
	}
	if p.Model().Size() != k.model.Size() {
		panic("alignment: profile built for a scoring model of a different size")
	}

	m, n := p.Len(), len(ref)
	if err := k.model.CheckOverflow(m, n); err != nil {
		return nil, err
	}
	if k.opt.Trace {
		if cells := int64(m+1) * int64(n+1); cells > MaxTraceCells {
			return nil, &InvalidInputError{What: fmt.Sprintf(
				"traced alignment of query length %d and reference length %d needs %d cells, limit is %d",
				m, n, cells, int64(MaxTraceCells))}
		}
	}

	ws := k.pool.Get().(*workspace)
	defer k.pool.Put(ws)

	if k.opt.Mode == Global {
		ws.prepare(m, n, false, k.opt.Trace, false)
		return k.global(p, ref, ws), nil
	}
	ws.prepare(m, n, true, k.opt.Trace, k.opt.Secondary)
	return k.local(p, ref, ws), nil
}

func (k *Kernel) local(p *Profile, ref sequence.Encoded, ws *workspace) *Result {
	m, n := p.Len(), len(ref)
	open, ext := int32(k.model.GapOpen()), int32(k.model.GapExtend())
	stride := m + 1

	mPrev, mCur, qPrev, qCur, rPrev, rCur := split32(ws.scores, m)
	oMPrev, oMCur, oQPrev, oQCur, oRPrev, oRCur := split64(ws.origins, m)

	var dir []byte
	if k.opt.Trace {
		dir = ws.dir
	}
	var colMax []int32
	if k.opt.Secondary {
		colMax = ws.colMax
		colMax[0] = 0
	}

	for i := 0; i <= m; i++ {
		mPrev[i], qPrev[i], rPrev[i] = 0, negInf, negInf
	}

	var best int32
	var bestOrigin int64
	bi, bj := 0, 0

	for j := 1; j <= n; j++ {
		row := p.Row(ref[j-1])
		mCur[0], qCur[0], rCur[0] = 0, negInf, negInf
		var cmax int32

		for i := 1; i <= m; i++ {
			// M: diagonal predecessor, or a fresh start
			diag, src, org := mPrev[i-1], srcM, oMPrev[i-1]
			if qPrev[i-1] > diag {
				diag, src, org = qPrev[i-1], srcQ, oQPrev[i-1]
			}
			if rPrev[i-1] > diag {
				diag, src, org = rPrev[i-1], srcR, oRPrev[i-1]
			}
			if diag <= 0 {
				diag, src, org = 0, srcStop, pack(i, j)
			}
			v := diag + row[i-1]
			if v <= 0 {
				v, src = 0, srcStop
			}
			mCur[i], oMCur[i] = v, org
			d := src

			// Iq: gap in the query, from column j-1
			q, qo := mPrev[i]+open, oMPrev[i]
			if e := qPrev[i] + ext; e > q {
				q, qo = e, oQPrev[i]
				d |= extQ
			}
			if q < negInf {
				q = negInf
			}
			qCur[i], oQCur[i] = q, qo

			// Ir: gap in the reference, from row i-1
			r, ro := mCur[i-1]+open, oMCur[i-1]
			if e := rCur[i-1] + ext; e > r {
				r, ro = e, oRCur[i-1]
				d |= extR
			}
			if r < negInf {
				r = negInf
			}
			rCur[i], oRCur[i] = r, ro

			if dir != nil {
				dir[j*stride+i] = d
			}

			if v > best || (v == best && v > 0 && (i < bi || (i == bi && j < bj))) {
				best, bestOrigin, bi, bj = v, org, i, j
			}
			if v > cmax {
				cmax = v
			}
		}

		if colMax != nil {
			colMax[j] = cmax
		}

		mPrev, mCur = mCur, mPrev
		qPrev, qCur = qCur, qPrev
		rPrev, rCur = rCur, rPrev
		oMPrev, oMCur = oMCur, oMPrev
		oQPrev, oQCur = oQCur, oQPrev
		oRPrev, oRCur = oRCur, oRPrev
	}

	res := &Result{
		Mode:       Local,
		Score:      int(best),
		QueryBegin: -1,
		QueryEnd:   -1,
		RefBegin:   -1,
		RefEnd:     -1,
		RefEnd2:    -1,
	}

	if best > 0 {
		oi, oj := unpack(bestOrigin)
		res.QueryBegin, res.RefBegin = oi-1, oj-1
		res.QueryEnd, res.RefEnd = bi-1, bj-1
	}

	if dir != nil {
		res.Cigar = Cigar{}
		if best > 0 {
			res.Cigar = backtrack(dir, stride, bi, bj, srcM)
		}
	}

	if colMax != nil {
		res.HasSecondary = true
		if best > 0 {
			mask := m / 2
			if mask < 15 {
				mask = 15
			}
			var s2 int32
			e2 := 0
			for j := 1; j <= n; j++ {
				if j >= bj-mask && j <= bj+mask {
					continue
				}
				if colMax[j] > s2 {
					s2, e2 = colMax[j], j
				}
			}
			res.Score2 = int(s2)
			if s2 > 0 {
				res.RefEnd2 = e2 - 1
			}
		}
	}

	return res
}

func (k *Kernel) global(p *Profile, ref sequence.Encoded, ws *workspace) *Result {
	m, n := p.Len(), len(ref)
	open, ext := int32(k.model.GapOpen()), int32(k.model.GapExtend())
	stride := m + 1

	mPrev, mCur, qPrev, qCur, rPrev, rCur := split32(ws.scores, m)

	var dir []byte
	if k.opt.Trace {
		dir = ws.dir
	}

	// column 0: only a leading gap in the reference is possible
	mPrev[0], qPrev[0], rPrev[0] = 0, negInf, negInf
	for i := 1; i <= m; i++ {
		mPrev[i], qPrev[i] = negInf, negInf
		rPrev[i] = open + int32(i-1)*ext
		if dir != nil {
			var d byte
			if i > 1 {
				d = extR
			}
			dir[i] = d
		}
	}

	for j := 1; j <= n; j++ {
		row := p.Row(ref[j-1])

		// row 0: only a leading gap in the query is possible
		mCur[0], rCur[0] = negInf, negInf
		q := mPrev[0] + open
		var d0 byte
		if e := qPrev[0] + ext; e > q {
			q, d0 = e, extQ
		}
		if q < negInf {
			q = negInf
		}
		qCur[0] = q
		if dir != nil {
			dir[j*stride] = d0
		}

		for i := 1; i <= m; i++ {
			diag, src := mPrev[i-1], srcM
			if qPrev[i-1] > diag {
				diag, src = qPrev[i-1], srcQ
			}
			if rPrev[i-1] > diag {
				diag, src = rPrev[i-1], srcR
			}
			v := diag + row[i-1]
			if v < negInf {
				v = negInf
			}
			mCur[i] = v
			d := src

			q := mPrev[i] + open
			if e := qPrev[i] + ext; e > q {
				q = e
				d |= extQ
			}
			if q < negInf {
				q = negInf
			}
			qCur[i] = q

			r := mCur[i-1] + open
			if e := rCur[i-1] + ext; e > r {
				r = e
				d |= extR
			}
			if r < negInf {
				r = negInf
			}
			rCur[i] = r

			if dir != nil {
				dir[j*stride+i] = d
			}
		}

		mPrev, mCur = mCur, mPrev
		qPrev, qCur = qCur, qPrev
		rPrev, rCur = rCur, rPrev
	}

	best, state := mPrev[m], srcM
	if qPrev[m] > best {
		best, state = qPrev[m], srcQ
	}
	if rPrev[m] > best {
		best, state = rPrev[m], srcR
	}

	res := &Result{
		Mode:       Global,
		Score:      int(best),
		QueryBegin: 0,
		QueryEnd:   m - 1,
		RefBegin:   0,
		RefEnd:     n - 1,
		RefEnd2:    -1,
	}
	if dir != nil {
		res.Cigar = backtrack(dir, stride, m, n, state)
	}
	return res
}

// backtrack walks the direction matrix from cell (i, j) in the given state
// back to the alignment start and returns the trace in query order.
func backtrack(dir []byte, stride, i, j int, state byte) Cigar {
	var c Cigar
	for i > 0 || j > 0 {
		d := dir[j*stride+i]
		switch state {
		case srcM:
			c.Add(OpMatch, 1)
			src := d & srcMask
			i--
			j--
			if src == srcStop {
				c.reverse()
				return c
			}
			state = src
		case srcQ:
			c.Add(OpDeletion, 1)
			j--
			if d&extQ == 0 {
				state = srcM
			}
		case srcR:
			c.Add(OpInsertion, 1)
			i--
			if d&extR == 0 {
				state = srcM
			}
		default:
			panic("alignment: corrupt direction matrix")
		}
	}
	c.reverse()
	return c
}
