// Package stats provides summaries of sequence collections and of search
// results, for logging and reporting.
package stats

import (
	"fmt"
	"sort"

	"github.com/aria-lang/seqmatch-go/internal/bestmatch"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

// SequenceSetStats represents aggregated statistics for multiple sequences.
type SequenceSetStats struct {
	Count         int     `json:"count"`
	TotalBases    int     `json:"total_bases"`
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
	MeanLength    float64 `json:"mean_length"`
	MedianLength  int     `json:"median_length"`
	MeanGCContent float64 `json:"mean_gc_content"`
	N50           int     `json:"n50"`
	// Empty counts zero-length sequences.
	Empty int `json:"empty"`
	// Unknown counts symbols outside the alphabet.
	Unknown int `json:"unknown"`
}

// FromSequences calculates statistics for a collection of sequences.
// Unknown symbols are counted against alpha, or the DNA alphabet if nil.
func FromSequences(sequences []*sequence.Sequence, alpha *sequence.Alphabet) (*SequenceSetStats, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}
	if alpha == nil {
		alpha = sequence.DNA()
	}

	count := len(sequences)
	lengths := make([]int, count)
	totalBases := 0
	empty := 0
	unknown := 0
	gcSum := 0.0

	for i, seq := range sequences {
		lengths[i] = seq.Len()
		totalBases += seq.Len()
		if seq.IsEmpty() {
			empty++
		}
		unknown += countUnknown(seq.Bases, alpha)
		gcSum += gcContent(seq.Bases)
	}

	sortedLengths := make([]int, count)
	copy(sortedLengths, lengths)
	sort.Ints(sortedLengths)

	mid := count / 2
	var medianLen int
	if count%2 == 0 {
		medianLen = (sortedLengths[mid-1] + sortedLengths[mid]) / 2
	} else {
		medianLen = sortedLengths[mid]
	}

	// N50: length where 50% of bases are in sequences at least as long
	halfTotal := totalBases / 2
	runningSum := 0
	n50 := sortedLengths[count-1]
	for i := count - 1; i >= 0; i-- {
		runningSum += sortedLengths[i]
		if runningSum >= halfTotal {
			n50 = sortedLengths[i]
			break
		}
	}

	return &SequenceSetStats{
		Count:         count,
		TotalBases:    totalBases,
		MinLength:     sortedLengths[0],
		MaxLength:     sortedLengths[count-1],
		MeanLength:    float64(totalBases) / float64(count),
		MedianLength:  medianLen,
		MeanGCContent: gcSum / float64(count),
		N50:           n50,
		Empty:         empty,
		Unknown:       unknown,
	}, nil
}

func countUnknown(bases string, alpha *sequence.Alphabet) int {
	n := 0
	u := alpha.Unknown()
	for i := 0; i < len(bases); i++ {
		if alpha.Code(bases[i]) == u {
			n++
		}
	}
	return n
}

func gcContent(bases string) float64 {
	if len(bases) == 0 {
		return 0.0
	}
	gc := 0
	for i := 0; i < len(bases); i++ {
		switch bases[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(bases))
}

func (s *SequenceSetStats) String() string {
	return fmt.Sprintf(`SequenceSetStats {
  count: %d
  total_bases: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  mean GC: %.1f%%
  N50: %d
  empty: %d
  unknown symbols: %d
}`, s.Count, s.TotalBases, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.MeanGCContent*100, s.N50, s.Empty, s.Unknown)
}

// ResultSummary aggregates best-match records. The zero value is ready to
// use; feed it with Add.
type ResultSummary struct {
	Queries     int
	Matched     int
	NoReference int
	Reverse     int

	EvaluatedPairs int
	SkippedPairs   int

	MinScore int
	MaxScore int
	sumScore int64
}

// FromRecords summarizes a list of records.
func FromRecords(records []bestmatch.Record) *ResultSummary {
	s := &ResultSummary{}
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Add accounts for one record.
func (s *ResultSummary) Add(r bestmatch.Record) {
	s.Queries++
	s.EvaluatedPairs += r.Evaluated
	s.SkippedPairs += r.Skipped

	if !r.Found {
		s.NoReference++
		return
	}

	score := r.Score()
	if s.Matched == 0 || score < s.MinScore {
		s.MinScore = score
	}
	if s.Matched == 0 || score > s.MaxScore {
		s.MaxScore = score
	}
	s.Matched++
	s.sumScore += int64(score)
	if r.Strand == bestmatch.Reverse {
		s.Reverse++
	}
}

// MeanScore returns the mean best score over matched queries.
func (s *ResultSummary) MeanScore() float64 {
	if s.Matched == 0 {
		return 0.0
	}
	return float64(s.sumScore) / float64(s.Matched)
}

// MatchedRatio returns the proportion of queries with a best match.
func (s *ResultSummary) MatchedRatio() float64 {
	if s.Queries == 0 {
		return 0.0
	}
	return float64(s.Matched) / float64(s.Queries)
}

func (s *ResultSummary) String() string {
	return fmt.Sprintf(`ResultSummary {
  queries: %d
  matched: %d (%.1f%%)
  no reference: %d
  reverse strand: %d
  pairs evaluated: %d, skipped: %d
  score range: %d - %d
  mean score: %.1f
}`, s.Queries, s.Matched, s.MatchedRatio()*100, s.NoReference, s.Reverse,
		s.EvaluatedPairs, s.SkippedPairs, s.MinScore, s.MaxScore, s.MeanScore())
}
