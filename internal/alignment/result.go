package alignment

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is an edit operation of an alignment trace.
type Op byte

const (
	// OpMatch aligns one query symbol to one reference symbol, equal or not.
	OpMatch Op = 'M'
	// OpInsertion consumes a query symbol against a gap in the reference.
	OpInsertion Op = 'I'
	// OpDeletion consumes a reference symbol against a gap in the query.
	OpDeletion Op = 'D'
)

// CigarOp is a run of one edit operation.
type CigarOp struct {
	Op  Op
	Len int
}

// Cigar is a run-length encoded alignment trace, in query order.
type Cigar []CigarOp

// Add appends n operations, merging with the last run when possible.
func (c *Cigar) Add(op Op, n int) {
	if n <= 0 {
		return
	}
	if l := len(*c); l > 0 && (*c)[l-1].Op == op {
		(*c)[l-1].Len += n
		return
	}
	*c = append(*c, CigarOp{Op: op, Len: n})
}

// reverse reverses the runs in place and merges neighbours of equal type.
func (c *Cigar) reverse() {
	s := *c
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	merged := s[:0]
	for _, op := range s {
		if l := len(merged); l > 0 && merged[l-1].Op == op.Op {
			merged[l-1].Len += op.Len
			continue
		}
		merged = append(merged, op)
	}
	*c = merged
}

// QueryLen returns the number of query symbols the trace consumes.
func (c Cigar) QueryLen() int {
	n := 0
	for _, op := range c {
		if op.Op == OpMatch || op.Op == OpInsertion {
			n += op.Len
		}
	}
	return n
}

// RefLen returns the number of reference symbols the trace consumes.
func (c Cigar) RefLen() int {
	n := 0
	for _, op := range c {
		if op.Op == OpMatch || op.Op == OpDeletion {
			n += op.Len
		}
	}
	return n
}

// String returns the CIGAR text, e.g. "4M1I2M".
func (c Cigar) String() string {
	var sb strings.Builder
	for _, op := range c {
		sb.WriteString(strconv.Itoa(op.Len))
		sb.WriteByte(byte(op.Op))
	}
	return sb.String()
}

// ParseCigar parses CIGAR text made of M, I and D runs.
func ParseCigar(s string) (Cigar, error) {
	var c Cigar
	n := 0
	digits := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			n = n*10 + int(ch-'0')
			digits = true
		case ch == 'M' || ch == 'I' || ch == 'D':
			if !digits || n == 0 {
				return nil, fmt.Errorf("cigar %q: missing length before %c", s, ch)
			}
			c.Add(Op(ch), n)
			n, digits = 0, false
		default:
			return nil, fmt.Errorf("cigar %q: unexpected %q at %d", s, ch, i)
		}
	}
	if digits {
		return nil, fmt.Errorf("cigar %q: trailing length without operation", s)
	}
	return c, nil
}

// Render applies the trace to query and reference, starting at qBegin and
// rBegin, and returns the gapped alignment rows.
func (c Cigar) Render(query, ref string, qBegin, rBegin int) (string, string, error) {
	if qBegin < 0 || rBegin < 0 || qBegin+c.QueryLen() > len(query) || rBegin+c.RefLen() > len(ref) {
		return "", "", fmt.Errorf("cigar %s does not fit query[%d:] of %d and reference[%d:] of %d",
			c, qBegin, len(query), rBegin, len(ref))
	}

	var q, r strings.Builder
	i, j := qBegin, rBegin
	for _, op := range c {
		for k := 0; k < op.Len; k++ {
			switch op.Op {
			case OpMatch:
				q.WriteByte(query[i])
				r.WriteByte(ref[j])
				i++
				j++
			case OpInsertion:
				q.WriteByte(query[i])
				r.WriteByte('-')
				i++
			case OpDeletion:
				q.WriteByte('-')
				r.WriteByte(ref[j])
				j++
			}
		}
	}
	return q.String(), r.String(), nil
}

// Result is the outcome of aligning one query against one reference.
//
// Coordinates are 0-based and inclusive. A local alignment with score 0
// aligns nothing and has all coordinates set to -1.
type Result struct {
	Mode  Mode
	Score int

	// Score2 is the best local score whose reference end lies outside a
	// window around RefEnd; RefEnd2 is its reference end, -1 if none.
	// Only set when HasSecondary is true.
	HasSecondary bool
	Score2       int
	RefEnd2      int

	QueryBegin int
	QueryEnd   int
	RefBegin   int
	RefEnd     int

	// Cigar is nil unless a trace was requested.
	Cigar Cigar
}

// Empty reports whether the result aligns no symbols.
func (r *Result) Empty() bool {
	return r.QueryEnd < r.QueryBegin || r.QueryBegin < 0
}

// HasTrace reports whether the result carries a CIGAR trace.
func (r *Result) HasTrace() bool {
	return r.Cigar != nil
}

func (r *Result) String() string {
	return fmt.Sprintf("Result { mode: %s, score: %d, query: [%d,%d], reference: [%d,%d], cigar: %s }",
		r.Mode, r.Score, r.QueryBegin, r.QueryEnd, r.RefBegin, r.RefEnd, r.Cigar)
}
