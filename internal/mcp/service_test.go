package mcp

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sanonone/lexvek/pkg/core"
	"gonum.org/v1/gonum/mat"
)

func testService(t *testing.T) *Service {
	t.Helper()
	vocab, err := core.NewVocabulary([]string{"ant", "bee", "cat", "dog"}, []int{4, 3, 2, 1})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	s := math.Sqrt2 / 2
	return NewService(&core.Model{
		Vocab: vocab,
		Vectors: mat.NewDense(4, 2, []float64{
			1, 0,
			s, s,
			0, 1,
			-1, 0,
		}),
		Dimensions: 2,
	})
}

func TestSimilarWordsTool(t *testing.T) {
	svc := testService(t)

	_, result, err := svc.SimilarWords(context.Background(), nil, SimilarWordsArgs{Word: "ant", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].Word != "bee" {
		t.Errorf("matches: %+v", result.Matches)
	}

	_, _, err = svc.SimilarWords(context.Background(), nil, SimilarWordsArgs{Word: "ghost"})
	var unknown *core.UnknownWordError
	if !errors.As(err, &unknown) {
		t.Errorf("got %v, want UnknownWordError", err)
	}
}

func TestWordVectorTool(t *testing.T) {
	svc := testService(t)

	_, result, err := svc.WordVector(context.Background(), nil, WordVectorArgs{Word: "cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Dimensions != 2 || len(result.Vector) != 2 {
		t.Errorf("result: %+v", result)
	}

	if _, _, err := svc.WordVector(context.Background(), nil, WordVectorArgs{Word: "ghost"}); err == nil {
		t.Error("expected error for unknown word")
	}
}

func TestWordAnalogyTool(t *testing.T) {
	svc := testService(t)

	_, result, err := svc.WordAnalogy(context.Background(), nil, WordAnalogyArgs{A: "ant", B: "bee", C: "cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].Word != "dog" {
		t.Errorf("matches: %+v", result.Matches)
	}
}

func TestWordSimilarityTool(t *testing.T) {
	svc := testService(t)

	_, result, err := svc.WordSimilarity(context.Background(), nil, WordSimilarityArgs{Word1: "ant", Word2: "cat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.Similarity) > 1e-9 {
		t.Errorf("similarity: got %f, want 0", result.Similarity)
	}
}
