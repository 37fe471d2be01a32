package sequence

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the class of errors caused by unusable input: empty
// sequences, malformed alphabets, invalid symbols.
var ErrInvalidInput = errors.New("invalid input")

// ValidDNABases are the symbols accepted by ValidateDNA.
var ValidDNABases = map[rune]bool{'A': true, 'C': true, 'G': true, 'T': true, 'N': true}

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct{}

func (e *EmptySequenceError) Error() string {
	return "sequence must have at least one base"
}

func (e *EmptySequenceError) IsSequenceError() {}

func (e *EmptySequenceError) Unwrap() error { return ErrInvalidInput }

// InvalidBaseError is returned when an invalid base is encountered.
type InvalidBaseError struct {
	Position int
	Found    rune
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

func (e *InvalidBaseError) Unwrap() error { return ErrInvalidInput }

// AlphabetError is returned when an alphabet cannot be built.
type AlphabetError struct {
	Reason string
}

func (e *AlphabetError) Error() string {
	return "malformed alphabet: " + e.Reason
}

func (e *AlphabetError) IsSequenceError() {}

func (e *AlphabetError) Unwrap() error { return ErrInvalidInput }

// ValidateDNA validates that a string contains only valid DNA bases.
func ValidateDNA(bases string) error {
	for i, b := range bases {
		if !ValidDNABases[b] {
			return &InvalidBaseError{Position: i, Found: b}
		}
	}
	return nil
}

// IsValidDNABase checks if a character is a valid DNA base.
func IsValidDNABase(c rune) bool {
	return ValidDNABases[c]
}
