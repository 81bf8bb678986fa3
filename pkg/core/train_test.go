package core

import (
	"errors"
	"math"
	"testing"

	"github.com/sanonone/lexvek/pkg/corpus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestTrain(t *testing.T) {
	c := corpus.Corpus{
		{"a", "b", "c"},
		{"b", "c", "d"},
	}

	t.Run("EndToEnd", func(t *testing.T) {
		opts := DefaultOptions()
		opts.WindowSize = 1

		model, err := Train(c, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if model.Size() != 4 || model.Dim() != 2 {
			t.Fatalf("got %dx%d model, want 4x2", model.Size(), model.Dim())
		}
		for i := 0; i < model.Size(); i++ {
			norm := floats.Norm(model.Vectors.RawRowView(i), 2)
			if math.Abs(norm-1) > 1e-6 {
				t.Errorf("row %d (%s): norm %g, want 1", i, model.Vocab.Word(i), norm)
			}
		}
		if model.RunID == "" {
			t.Error("model has no run ID")
		}
		if model.WindowSize != 1 || model.Dimensions != 2 || model.MinCount != 1 {
			t.Errorf("training parameters not recorded: %+v", model)
		}
	})

	t.Run("IdenticalContextsAlign", func(t *testing.T) {
		// a and b occur in exactly the same contexts, so their co-occurrence
		// rows match and their embeddings must coincide.
		twin := corpus.Corpus{
			{"x", "a", "x"},
			{"x", "b", "x"},
		}
		opts := DefaultOptions()
		opts.WindowSize = 1

		model, err := Train(twin, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sim, err := model.Similarity("a", "b")
		if err != nil {
			t.Fatalf("Similarity: %v", err)
		}
		if math.Abs(sim-1) > 1e-6 {
			t.Errorf("cosine(a, b): got %f, want 1", sim)
		}
	})

	t.Run("ParallelMatchesSequential", func(t *testing.T) {
		opts := DefaultOptions()
		opts.WindowSize = 2

		sequential, err := Train(c, opts)
		if err != nil {
			t.Fatalf("sequential: %v", err)
		}
		opts.Parallel = true
		parallel, err := Train(c, opts)
		if err != nil {
			t.Fatalf("parallel: %v", err)
		}
		if !mat.EqualApprox(sequential.Vectors, parallel.Vectors, 1e-12) {
			t.Fatal("parallel training produced different vectors")
		}
	})

	t.Run("StopWordFiltering", func(t *testing.T) {
		noisy := corpus.Corpus{
			{"the", "cat", "sat", "on", "the", "mat"},
			{"the", "dog", "sat", "on", "the", "mat"},
		}
		opts := DefaultOptions()
		opts.WindowSize = 1
		opts.StopWordLanguage = "english"

		model, err := Train(noisy, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := model.Vocab.Index("the"); ok {
			t.Error("stop word survived filtering")
		}
		if _, ok := model.Vocab.Index("cat"); !ok {
			t.Error("content word was lost")
		}
	})

	t.Run("StemmingMergesInflections", func(t *testing.T) {
		inflected := corpus.Corpus{
			{"falling", "rates"},
			{"fall", "rate"},
		}
		opts := Options{WindowSize: 1, Dimensions: 1, MinCount: 1, Stem: true}

		model, err := Train(inflected, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if model.Size() != 2 {
			t.Fatalf("vocabulary size: got %d, want 2", model.Size())
		}
		if model.Vocab.Count("fall") != 2 || model.Vocab.Count("rate") != 2 {
			t.Errorf("stemmed counts not merged: fall=%d rate=%d",
				model.Vocab.Count("fall"), model.Vocab.Count("rate"))
		}
		if _, ok := model.Vocab.Index("falling"); ok {
			t.Error("unstemmed form survived")
		}
	})

	t.Run("EmptyCorpus", func(t *testing.T) {
		if _, err := Train(corpus.Corpus{}, DefaultOptions()); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("got %v, want ErrEmptyCorpus", err)
		}
	})

	t.Run("InvalidWindow", func(t *testing.T) {
		opts := DefaultOptions()
		opts.WindowSize = 0
		if _, err := Train(c, opts); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("got %v, want ErrInvalidWindow", err)
		}
	})

	t.Run("DimensionsTooLarge", func(t *testing.T) {
		opts := DefaultOptions()
		opts.WindowSize = 1
		opts.Dimensions = 4 // equals the vocabulary size
		if _, err := Train(c, opts); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("got %v, want ErrInvalidDimension", err)
		}
	})

	t.Run("IsolatedWordFailsWithItsName", func(t *testing.T) {
		iso := corpus.Corpus{
			{"x"},
			{"a", "b"},
			{"a", "b"},
		}
		opts := DefaultOptions()
		opts.WindowSize = 1

		_, err := Train(iso, opts)
		var zn *ZeroNormError
		if !errors.As(err, &zn) {
			t.Fatalf("got %v, want ZeroNormError", err)
		}
		if zn.Word != "x" {
			t.Errorf("Word: got %q, want %q", zn.Word, "x")
		}
	})
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.WindowSize != 4 {
		t.Errorf("WindowSize: got %d, want 4", opts.WindowSize)
	}
	if opts.Dimensions != 2 {
		t.Errorf("Dimensions: got %d, want 2", opts.Dimensions)
	}
	if opts.MinCount != 1 {
		t.Errorf("MinCount: got %d, want 1", opts.MinCount)
	}
}
