package sequence

import (
	"fmt"
	"strings"
)

// MaxAlphabetSize is the largest number of symbols an alphabet may hold.
// Codes are bytes and the code len(symbols) is reserved for unknown.
const MaxAlphabetSize = 254

// DNASymbols is the default nucleotide alphabet, N included.
const DNASymbols = "ACGTN"

// unknownSymbol is what Decode renders for the unknown code.
const unknownSymbol = '?'

// Encoded is a sequence of alphabet codes.
type Encoded []byte

// Alphabet maps symbols to the codes [0, Len()) case-insensitively. Every
// other byte maps to Unknown(). An Alphabet is immutable once built.
type Alphabet struct {
	symbols string
	lookup  [256]byte
}

// NewAlphabet builds an alphabet from an ordered list of distinct symbols.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, &AlphabetError{Reason: "no symbols"}
	}
	if len(symbols) > MaxAlphabetSize {
		return nil, &AlphabetError{Reason: fmt.Sprintf("%d symbols, at most %d allowed", len(symbols), MaxAlphabetSize)}
	}

	canonical := strings.ToUpper(symbols)
	a := &Alphabet{symbols: canonical}
	unknown := byte(len(canonical))
	for i := range a.lookup {
		a.lookup[i] = unknown
	}

	for i := 0; i < len(canonical); i++ {
		c := canonical[i]
		if c <= ' ' || c > '~' {
			return nil, &AlphabetError{Reason: fmt.Sprintf("symbol %q at position %d is not printable ASCII", symbols[i], i)}
		}
		if a.lookup[c] != unknown {
			return nil, &AlphabetError{Reason: fmt.Sprintf("duplicate symbol %q", c)}
		}
		a.lookup[c] = byte(i)
		if lc := toLower(c); lc != c {
			a.lookup[lc] = byte(i)
		}
	}

	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error. For package-level
// alphabets built from constants.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// DNA returns the default nucleotide alphabet.
func DNA() *Alphabet {
	return dna
}

var dna = MustAlphabet(DNASymbols)

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Len returns the number of known symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Unknown returns the code assigned to symbols outside the alphabet.
func (a *Alphabet) Unknown() byte {
	return byte(len(a.symbols))
}

// Symbols returns the canonical (upper-case) symbols in code order.
func (a *Alphabet) Symbols() string {
	return a.symbols
}

// Code returns the code of one symbol.
func (a *Alphabet) Code(c byte) byte {
	return a.lookup[c]
}

// Encode maps every byte of s to its code. It never fails.
func (a *Alphabet) Encode(s string) Encoded {
	e := make(Encoded, len(s))
	for i := 0; i < len(s); i++ {
		e[i] = a.lookup[s[i]]
	}
	return e
}

// EncodeSequence encodes the symbols of a sequence.
func (a *Alphabet) EncodeSequence(s *Sequence) Encoded {
	return a.Encode(s.Bases)
}

// Decode renders codes as canonical symbols; the unknown code becomes '?'.
func (a *Alphabet) Decode(e Encoded) string {
	b := make([]byte, len(e))
	for i, c := range e {
		if int(c) < len(a.symbols) {
			b[i] = a.symbols[c]
		} else {
			b[i] = unknownSymbol
		}
	}
	return string(b)
}

func (a *Alphabet) String() string {
	return fmt.Sprintf("Alphabet { symbols: %s, unknown: %d }", a.symbols, a.Unknown())
}
