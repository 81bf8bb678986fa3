// Package core implements the count-based embedding pipeline: vocabulary
// construction, windowed co-occurrence counting, truncated SVD reduction
// and row normalization, plus the trained Model and its query operations.
package core

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sanonone/lexvek/pkg/corpus"
)

// Options controls a training run. The zero value is not usable; start
// from DefaultOptions and override what you need.
type Options struct {
	// WindowSize is the number of context positions counted on each side
	// of a center word. Must be at least 1.
	WindowSize int
	// Dimensions is the embedding size k produced by the SVD step. Must
	// satisfy 1 <= k < V.
	Dimensions int
	// MinCount drops words that occur fewer than this many times in the
	// corpus before any counting happens. 1 keeps everything.
	MinCount int
	// StopWordLanguage, when set, removes that language's stop words from
	// every document before the vocabulary is built. Empty means no
	// filtering.
	StopWordLanguage string
	// Stem reduces every token to its English Porter2 stem before the
	// vocabulary is built, merging inflected forms into one word.
	Stem bool
	// Parallel splits co-occurrence counting across CPU cores. The result
	// is identical to the sequential count.
	Parallel bool
}

// DefaultOptions returns the standard training configuration.
func DefaultOptions() Options {
	return Options{
		WindowSize: 4,
		Dimensions: 2,
		MinCount:   1,
	}
}

// Train runs the full pipeline over the corpus and returns the trained
// model. Each stage's validation errors pass through unchanged, so the
// caller can match ErrEmptyCorpus, ErrInvalidWindow, ErrInvalidDimension
// and ZeroNormError with the errors package.
func Train(c corpus.Corpus, opts Options) (*Model, error) {
	runID := uuid.NewString()
	start := time.Now()
	slog.Info("[TRAIN] starting run",
		"run_id", runID,
		"documents", len(c),
		"window", opts.WindowSize,
		"dimensions", opts.Dimensions,
		"min_count", opts.MinCount)

	if opts.StopWordLanguage != "" {
		before := c.TokenCount()
		c = c.Filter(opts.StopWordLanguage)
		slog.Info("[TRAIN] stop words filtered",
			"run_id", runID,
			"language", opts.StopWordLanguage,
			"tokens_removed", before-c.TokenCount())
	}

	if opts.Stem {
		c = c.Stemmed()
		slog.Info("[TRAIN] tokens stemmed", "run_id", runID)
	}

	vocab, err := BuildVocabulary(c, opts.MinCount)
	if err != nil {
		return nil, err
	}
	slog.Info("[TRAIN] vocabulary built",
		"run_id", runID,
		"words", vocab.Size(),
		"tokens", vocab.TotalTokens())

	var counts CooccurrenceCounter = CooccurrenceMatrix
	if opts.Parallel {
		counts = CooccurrenceMatrixParallel
	}
	cooc, err := counts(c, vocab, opts.WindowSize)
	if err != nil {
		return nil, err
	}
	slog.Info("[TRAIN] co-occurrence counted", "run_id", runID, "size", vocab.Size())

	reduced, err := ReduceDimensions(cooc, opts.Dimensions)
	if err != nil {
		return nil, err
	}

	normalized, err := NormalizeRows(reduced)
	if err != nil {
		// Attach the offending word so the error reads as more than a
		// row number.
		var zn *ZeroNormError
		if errors.As(err, &zn) && zn.Row < vocab.Size() {
			zn.Word = vocab.Word(zn.Row)
		}
		return nil, err
	}

	slog.Info("[TRAIN] run complete",
		"run_id", runID,
		"words", vocab.Size(),
		"dimensions", opts.Dimensions,
		"duration", time.Since(start).String())

	return &Model{
		Vocab:      vocab,
		Vectors:    normalized,
		WindowSize: opts.WindowSize,
		Dimensions: opts.Dimensions,
		MinCount:   opts.MinCount,
		RunID:      runID,
	}, nil
}
