package alignment

import (
	"sync"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// Profile is a query sequence with its substitution scores precomputed for
// every alphabet code: Row(c)[i] is the score of query[i] against code c.
//
// A profile is built once per query and read concurrently by every
// reference evaluation of that query. Release returns its storage to a
// pool; acquire it with
//
//	p, err := alignment.NewProfile(query, model)
//	if err != nil {
//		return err
//	}
//	defer p.Release()
type Profile struct {
	model *ScoringModel
	query sequence.Encoded
	rows  *[]int32

	once sync.Once
}

var poolProfileRows = &sync.Pool{New: func() interface{} {
	rows := make([]int32, 0, 1024)
	return &rows
}}

// NewProfile builds the profile of an encoded query under model.
func NewProfile(query sequence.Encoded, model *ScoringModel) (*Profile, error) {
	if model == nil {
		return nil, &ConfigError{Field: "scoring model", Reason: "model is required"}
	}
	if len(query) == 0 {
		return nil, &InvalidInputError{What: "empty query sequence"}
	}

	m := len(query)
	size := model.Size()

	rows := poolProfileRows.Get().(*[]int32)
	if cap(*rows) < size*m {
		*rows = make([]int32, size*m)
	} else {
		*rows = (*rows)[:size*m]
	}

	r := *rows
	for c := 0; c < size; c++ {
		off := c * m
		for i, q := range query {
			r[off+i] = int32(model.Score(q, byte(c)))
		}
	}

	return &Profile{model: model, query: query, rows: rows}, nil
}

// Len returns the query length.
func (p *Profile) Len() int {
	return len(p.query)
}

// Query returns the encoded query.
func (p *Profile) Query() sequence.Encoded {
	return p.query
}

// Model returns the scoring model the profile was built for.
func (p *Profile) Model() *ScoringModel {
	return p.model
}

// Row returns the scores of every query position against code c. Codes
// outside the model score as unknown.
func (p *Profile) Row(c byte) []int32 {
	if p.rows == nil {
		panic("alignment: use of released profile")
	}
	size := p.model.Size()
	if int(c) >= size {
		c = byte(size - 1)
	}
	m := len(p.query)
	off := int(c) * m
	return (*p.rows)[off : off+m]
}

// Release returns the profile storage to the pool. It is safe to call more
// than once; the profile must not be used afterwards.
func (p *Profile) Release() {
	p.once.Do(func() {
		rows := p.rows
		p.rows = nil
		*rows = (*rows)[:0]
		poolProfileRows.Put(rows)
	})
}
