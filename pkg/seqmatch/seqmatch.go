// Package seqmatch provides a high-level API for pairwise alignment and
// best-match search of query sequences against a reference collection.
//
// Example usage:
//
//	queries, err := seqmatch.ReadSequences("queries.fa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	refs, err := seqmatch.ReadSequences("refs.fa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	records, err := seqmatch.Search(ctx, seqmatch.DefaultConfig(), queries, refs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range records {
//	    fmt.Println(r)
//	}
package seqmatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aria-lang/seqmatch-go/internal/alignment"
	"github.com/aria-lang/seqmatch-go/internal/bestmatch"
	"github.com/aria-lang/seqmatch-go/internal/config"
	"github.com/aria-lang/seqmatch-go/internal/pipeline"
	"github.com/aria-lang/seqmatch-go/internal/seqio"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
	"github.com/aria-lang/seqmatch-go/internal/stats"
)

// Re-export types for convenience
type (
	Sequence     = sequence.Sequence
	Alphabet     = sequence.Alphabet
	ScoringModel = alignment.ScoringModel
	Params       = alignment.ScoringParams
	Mode         = alignment.Mode
	Result       = alignment.Result
	Alignment    = alignment.Aligned
	Aligner      = alignment.Aligner
	Record       = bestmatch.Record
	Config       = config.Config
	Summary      = stats.ResultSummary
)

// Constants
const (
	Local  = alignment.Local
	Global = alignment.Global
)

// Errors
var (
	ErrInvalidInput  = alignment.ErrInvalidInput
	ErrConfiguration = alignment.ErrConfiguration
	ErrOverflow      = alignment.ErrOverflow
	ErrNoReferences  = alignment.ErrNoReferences
)

// NewSequence creates a new validated DNA sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a new validated DNA sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// NewRecord creates an unvalidated sequence, upper-cased. Symbols outside
// the alphabet of a search are scored as unknown.
func NewRecord(id, bases string) *Sequence {
	return sequence.Record(id, strings.ToUpper(bases))
}

// NewAlphabet creates an alphabet from an ordered list of symbols.
func NewAlphabet(symbols string) (*Alphabet, error) {
	return sequence.NewAlphabet(symbols)
}

// NewScoringModel creates a scoring model over alpha.
func NewScoringModel(alpha *Alphabet, params Params) (*ScoringModel, error) {
	return alignment.NewScoringModel(alpha, params)
}

// DefaultScoring returns the default DNA scoring model.
func DefaultScoring() *ScoringModel {
	return alignment.DefaultDNA()
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Align performs local alignment between two sequences.
func Align(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.SmithWaterman(seq1, seq2, nil)
}

// AlignGlobal performs global alignment between two sequences.
func AlignGlobal(seq1, seq2 *Sequence) (*Alignment, error) {
	return alignment.NeedlemanWunsch(seq1, seq2, nil)
}

// AlignWithScoring aligns two sequences with a custom model.
func AlignWithScoring(seq1, seq2 *Sequence, model *ScoringModel, mode Mode) (*Alignment, error) {
	return alignment.Pair(seq1, seq2, model, mode)
}

// Score returns the alignment score of two sequences without a trace.
func Score(seq1, seq2 *Sequence, model *ScoringModel, mode Mode) (int, error) {
	return alignment.ScoreOnly(seq1, seq2, model, mode)
}

// NewAligner builds the aligner the configuration selects.
func NewAligner(cfg *Config) (Aligner, *ScoringModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	model, err := cfg.Model()
	if err != nil {
		return nil, nil, err
	}
	a, err := cfg.Aligner(model)
	if err != nil {
		return nil, nil, err
	}
	return a, model, nil
}

// Search finds the best reference of every query. Records are ordered as
// the queries.
func Search(ctx context.Context, cfg *Config, queries, refs []*Sequence) ([]Record, error) {
	pc, err := cfg.Pipeline(quietLogger())
	if err != nil {
		return nil, err
	}
	return pipeline.Collect(ctx, pc, queries, refs)
}

// SearchEach streams the best-match records of a search to visit in
// completion order, logging to logger.
func SearchEach(ctx context.Context, cfg *Config, logger logrus.FieldLogger, queries, refs []*Sequence, visit func(Record) error) error {
	pc, err := cfg.Pipeline(logger)
	if err != nil {
		return err
	}
	return pipeline.Run(ctx, pc, queries, refs, visit)
}

// Rank aligns query against every reference and returns one record per
// reference, best first.
func Rank(cfg *Config, query *Sequence, refs []*Sequence) ([]Record, error) {
	aligner, model, err := NewAligner(cfg)
	if err != nil {
		return nil, err
	}
	alpha := model.Alphabet()

	p, err := alignment.NewProfile(alpha.EncodeSequence(query), model)
	if err != nil {
		return nil, err
	}
	defer p.Release()

	encoded := make([]bestmatch.Reference, len(refs))
	for i, r := range refs {
		encoded[i] = bestmatch.Reference{ID: r.ID, Index: i, Seq: alpha.EncodeSequence(r)}
	}
	records, err := bestmatch.Rank(aligner, p, encoded)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].QueryID = query.ID
	}
	return records, nil
}

// Summarize aggregates search records.
func Summarize(records []Record) *Summary {
	return stats.FromRecords(records)
}

// ReadSequences reads a FASTA or FASTQ file, optionally gzipped.
func ReadSequences(path string) ([]*Sequence, error) {
	return seqio.ReadFile(path)
}

// ParseFASTA parses FASTA format from a reader.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	return seqio.ParseFASTA(r)
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := seqio.WriteFASTA(file, sequences); err != nil {
		return fmt.Errorf("writing sequences: %w", err)
	}
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Version returns the seqmatch version.
func Version() string {
	return "1.0.0"
}

// Info returns information about seqmatch.
func Info() string {
	return fmt.Sprintf(`seqmatch v%s - pairwise alignment and best-match search

Features:
  - Affine-gap Smith-Waterman local alignment
  - Affine-gap Needleman-Wunsch global alignment
  - Configurable alphabets and scoring
  - CIGAR traces and secondary local scores
  - Parallel best-match search with deterministic ties
  - Optional wavefront (WFA) engine
  - FASTA/FASTQ input, gzip supported

For more information, see: https://github.com/aria-lang/seqmatch-go
`, Version())
}
