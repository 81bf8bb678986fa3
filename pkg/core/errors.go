package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus indicates the corpus has no documents or no tokens, so
	// no vocabulary can be built from it.
	ErrEmptyCorpus = errors.New("corpus contains no tokens")
	// ErrInvalidWindow indicates a context window smaller than one position.
	ErrInvalidWindow = errors.New("window size must be at least 1")
	// ErrInvalidDimension indicates a target dimensionality outside [1, V).
	ErrInvalidDimension = errors.New("dimensions must be at least 1 and below the vocabulary size")
)

// ZeroNormError reports a row that cannot be scaled to unit length because
// its L2 norm is zero. Row is the vocabulary index of the offending word;
// Word is filled in by Train, where the vocabulary is at hand.
type ZeroNormError struct {
	Row  int
	Word string
}

func (e *ZeroNormError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("cannot normalize zero-norm embedding for word %q (row %d)", e.Word, e.Row)
	}
	return fmt.Sprintf("cannot normalize zero-norm embedding at row %d", e.Row)
}

// UnknownWordError reports a query for a word that is not in the vocabulary.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("word %q is not in the vocabulary", e.Word)
}
