// Package bestmatch reduces the alignments of one query against a reference
// collection to the single best-scoring reference.
//
// Reduction uses a total order (see Better), so a sequential scan and any
// parallel split of the references merged with Merge pick the same record.
package bestmatch

import (
	"fmt"
	"sort"

	"github.com/aria-lang/seqmatch-go/internal/alignment"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// Strands of a record.
const (
	Forward = "+"
	Reverse = "-"
)

// Reference is one encoded reference sequence. Index is its position in the
// reference collection and breaks ties between equal identifiers.
type Reference struct {
	ID    string
	Index int
	Seq   sequence.Encoded
}

// Record is the best match of one query.
type Record struct {
	QueryID    string
	QueryIndex int

	ReferenceID    string
	ReferenceIndex int
	Strand         string
	Result         *alignment.Result

	// Found is false when no reference could be aligned.
	Found bool
	// Evaluated counts the references aligned, Skipped those rejected by
	// the aligner with a pair error.
	Evaluated int
	Skipped   int
}

// Score returns the best score, or 0 if nothing was found.
func (r Record) Score() int {
	if !r.Found || r.Result == nil {
		return 0
	}
	return r.Result.Score
}

// Err returns an error wrapping alignment.ErrNoReferences when the record
// holds no match, nil otherwise.
func (r Record) Err() error {
	if r.Found {
		return nil
	}
	return fmt.Errorf("query %s: %w", r.QueryID, alignment.ErrNoReferences)
}

func (r Record) String() string {
	if !r.Found {
		return fmt.Sprintf("Record { query: %s, reference: none, skipped: %d }", r.QueryID, r.Skipped)
	}
	return fmt.Sprintf("Record { query: %s, reference: %s, strand: %s, score: %d }",
		r.QueryID, r.ReferenceID, r.Strand, r.Result.Score)
}

// Better reports whether a ranks strictly before b: a found record beats a
// missing one, then the higher score wins, then the smaller reference ID,
// then the smaller reference index, then the forward strand.
func Better(a, b Record) bool {
	if a.Found != b.Found {
		return a.Found
	}
	if !a.Found {
		return false
	}
	if sa, sb := a.Result.Score, b.Result.Score; sa != sb {
		return sa > sb
	}
	if a.ReferenceID != b.ReferenceID {
		return a.ReferenceID < b.ReferenceID
	}
	if a.ReferenceIndex != b.ReferenceIndex {
		return a.ReferenceIndex < b.ReferenceIndex
	}
	return a.Strand == Forward && b.Strand != Forward
}

// Merge combines two partial reductions of the same query. It is
// associative and commutative.
func Merge(a, b Record) Record {
	best := a
	if Better(b, a) {
		best = b
	}
	if best.QueryID == "" {
		best.QueryID, best.QueryIndex = a.QueryID, a.QueryIndex
		if best.QueryID == "" {
			best.QueryID, best.QueryIndex = b.QueryID, b.QueryIndex
		}
	}
	best.Evaluated = a.Evaluated + b.Evaluated
	best.Skipped = a.Skipped + b.Skipped
	return best
}

// Reduce aligns p against every reference and keeps the best one.
//
// Pair errors (empty reference, overflow) skip the reference. Any other
// aligner error aborts the reduction and is returned. An empty reference
// set yields a record with Found false.
func Reduce(aligner alignment.Aligner, p *alignment.Profile, refs []Reference) (Record, error) {
	var best Record
	skipped, err := each(aligner, p, refs, func(rec Record) {
		best = Merge(best, rec)
	})
	best.Skipped += skipped
	return best, err
}

// Rank aligns p against every reference and returns one record per aligned
// reference, best first.
func Rank(aligner alignment.Aligner, p *alignment.Profile, refs []Reference) ([]Record, error) {
	records := make([]Record, 0, len(refs))
	_, err := each(aligner, p, refs, func(rec Record) {
		records = append(records, rec)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return Better(records[i], records[j])
	})
	return records, nil
}

// each calls fn with the record of every reference aligned without error and
// returns the number of references skipped.
func each(aligner alignment.Aligner, p *alignment.Profile, refs []Reference, fn func(Record)) (int, error) {
	skipped := 0
	for _, ref := range refs {
		res, err := aligner.Align(p, ref.Seq)
		if err != nil {
			if alignment.IsPairError(err) {
				skipped++
				continue
			}
			return skipped, fmt.Errorf("aligning reference %s: %w", ref.ID, err)
		}
		fn(Record{
			ReferenceID:    ref.ID,
			ReferenceIndex: ref.Index,
			Strand:         Forward,
			Result:         res,
			Found:          true,
			Evaluated:      1,
		})
	}
	return skipped, nil
}
