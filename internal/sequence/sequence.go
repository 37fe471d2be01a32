// Package sequence provides sequence records, symbol alphabets and the
// compact integer encoding used by the alignment engine.
//
// Records are plain (identifier, symbols) pairs as they come out of a
// sequence source. They are not validated: any character is accepted and
// resolved to the alphabet's unknown code at encoding time. The validated
// constructors (New, WithID) are for interactive inputs where a typo should
// be reported instead of silently scored as unknown.
package sequence

import (
	"fmt"
	"strings"
)

// Sequence is a named symbol sequence.
type Sequence struct {
	ID          string
	Description string
	Bases       string
}

// Record creates an unvalidated sequence as produced by a sequence source.
func Record(id, bases string) *Sequence {
	return &Sequence{ID: id, Bases: bases}
}

// New creates a new DNA sequence with validation.
//
// Lower-case input is normalized to upper case. Empty input and symbols
// outside ACGTN are rejected.
func New(bases string) (*Sequence, error) {
	normalized := strings.ToUpper(bases)

	if len(normalized) == 0 {
		return nil, &EmptySequenceError{}
	}

	if err := ValidateDNA(normalized); err != nil {
		return nil, err
	}

	return &Sequence{Bases: normalized}, nil
}

// WithID creates a new validated DNA sequence with an identifier.
func WithID(bases, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	seq, err := New(bases)
	if err != nil {
		return nil, err
	}

	seq.ID = id
	return seq, nil
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

// IsEmpty reports whether the sequence has no symbols.
func (s *Sequence) IsEmpty() bool {
	return len(s.Bases) == 0
}

// complementBase returns the complement of a nucleotide, keeping case.
// Anything that is not A, C, G, T or U becomes N.
func complementBase(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T', 'U':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'a':
		return 't'
	case 't', 'u':
		return 'a'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	case 'n':
		return 'n'
	default:
		return 'N'
	}
}

// Reverse returns the reverse of the sequence.
func (s *Sequence) Reverse() *Sequence {
	b := []byte(s.Bases)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return &Sequence{
		ID:          s.ID,
		Description: s.Description,
		Bases:       string(b),
	}
}

// ReverseComplement returns the reverse complement of a nucleotide sequence.
func (s *Sequence) ReverseComplement() *Sequence {
	n := len(s.Bases)
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[n-1-i] = complementBase(s.Bases[i])
	}

	return &Sequence{
		ID:          s.ID,
		Description: s.Description,
		Bases:       string(b),
	}
}

// ToFASTA returns the sequence in FASTA format.
func (s *Sequence) ToFASTA() string {
	var header string
	if s.ID != "" {
		header = ">" + s.ID
		if s.Description != "" {
			header += " " + s.Description
		}
	} else {
		header = ">sequence"
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')

	// 80 columns per line
	for i := 0; i < len(s.Bases); i += 80 {
		end := i + 80
		if end > len(s.Bases) {
			end = len(s.Bases)
		}
		sb.WriteString(s.Bases[i:end])
		sb.WriteByte('\n')
	}

	return sb.String()
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Bases)
	}
	return s.Bases
}
