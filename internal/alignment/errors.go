package alignment

import (
	"errors"
	"fmt"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
)

var (
	// ErrInvalidInput is returned for empty sequences and malformed
	// alphabets. It is the same value as sequence.ErrInvalidInput.
	ErrInvalidInput = sequence.ErrInvalidInput
	// ErrConfiguration is returned for inconsistent scoring parameters.
	ErrConfiguration = errors.New("configuration error")
	// ErrOverflow is returned when a score could leave the representable range.
	ErrOverflow = errors.New("score overflow")
	// ErrNoReferences marks a query for which no reference could be scored.
	ErrNoReferences = errors.New("no references")
)

// ConfigError reports one invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// InvalidInputError reports an unusable alignment input.
type InvalidInputError struct {
	What string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.What
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// OverflowError reports a pair whose scores are not guaranteed to fit.
type OverflowError struct {
	QueryLen int
	RefLen   int
	Bound    int64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("score overflow: query length %d, reference length %d, score bound %d exceeds %d",
		e.QueryLen, e.RefLen, e.Bound, int64(maxScoreBound))
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// IsPairError reports whether err only concerns a single (query, reference)
// pair and may be skipped without aborting a search.
func IsPairError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrOverflow)
}
