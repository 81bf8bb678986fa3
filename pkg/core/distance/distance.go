// Package distance provides the similarity kernels used to rank embedding
// vectors. It supports dot product and cosine similarity on float64 data.
//
// Implementations are registered in a per-metric catalog. Pure Go reference
// versions are the defaults; init replaces them with Gonum (BLAS/SIMD)
// versions, which dispatch to vectorized code internally.
package distance

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/klauspost/cpuid/v2"
	"gonum.org/v1/gonum/blas/gonum"
)

func init() {
	// Override defaults with optimized versions from Gonum.
	// Gonum handles SIMD dispatch internally.
	float64Funcs[Dot] = dotProductGonum
	float64Funcs[Cosine] = cosineSimilarityGonum

	simd := "portable"
	switch {
	case cpuid.CPU.Has(cpuid.AVX512F):
		simd = "AVX-512"
	case cpuid.CPU.Has(cpuid.AVX2):
		simd = "AVX2"
	case cpuid.CPU.Has(cpuid.SSE42):
		simd = "SSE4.2"
	}
	log.Printf("lexvek compute engine: Gonum BLAS kernels (%s CPU)", simd)
}

// --- Public Types ---

// SimilarityMetric defines the type of similarity calculation to perform.
type SimilarityMetric string

const (
	// Dot represents the plain dot product. On unit-norm vectors it equals
	// cosine similarity and skips the two norm computations.
	Dot SimilarityMetric = "dot"
	// Cosine represents cosine similarity, safe on vectors of any length.
	Cosine SimilarityMetric = "cosine"
)

// SimilarityFuncF64 computes a similarity score between two float64 vectors.
type SimilarityFuncF64 func(v1, v2 []float64) (float64, error)

// --- REFERENCE IMPLEMENTATIONS (PURE GO) ---

// dotProductGo is the pure Go reference implementation for the dot product.
func dotProductGo(v1, v2 []float64) (float64, error) {
	if len(v1) != len(v2) {
		return 0, errors.New("dotProduct: vectors must have the same length")
	}
	var sum float64
	for i := range v1 {
		sum += v1[i] * v2[i]
	}
	return sum, nil
}

// cosineSimilarityGo is the pure Go reference implementation for cosine
// similarity. Vectors with zero norm score 0 against everything.
func cosineSimilarityGo(v1, v2 []float64) (float64, error) {
	dot, err := dotProductGo(v1, v2)
	if err != nil {
		return 0, err
	}
	var n1, n2 float64
	for i := range v1 {
		n1 += v1[i] * v1[i]
		n2 += v2[i] * v2[i]
	}
	if n1 == 0 || n2 == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(n1) * math.Sqrt(n2)), nil
}

// --- Gonum-based Implementations ---

var gonumEngine = gonum.Implementation{}

// dotProductGonum uses the Gonum BLAS library for an optimized dot product.
func dotProductGonum(v1, v2 []float64) (float64, error) {
	if len(v1) != len(v2) {
		return 0, errors.New("vectors must have the same length")
	}
	return gonumEngine.Ddot(len(v1), v1, 1, v2, 1), nil
}

// cosineSimilarityGonum uses Gonum BLAS for the dot product and both norms.
func cosineSimilarityGonum(v1, v2 []float64) (float64, error) {
	n := len(v1)
	if n != len(v2) {
		return 0, errors.New("vectors must have the same length")
	}
	n1 := gonumEngine.Dnrm2(n, v1, 1)
	n2 := gonumEngine.Dnrm2(n, v2, 1)
	if n1 == 0 || n2 == 0 {
		return 0, nil
	}
	dot := gonumEngine.Ddot(n, v1, 1, v2, 1)
	return dot / (n1 * n2), nil
}

// --- Function Catalog and Dispatcher ---

// float64Funcs maps a similarity metric to its current implementation.
var float64Funcs = map[SimilarityMetric]SimilarityFuncF64{
	Dot:    dotProductGo,       // default
	Cosine: cosineSimilarityGo, // default
}

// GetFloat64Func returns the similarity function registered for a metric.
// It returns an error if the metric is not supported.
func GetFloat64Func(metric SimilarityMetric) (SimilarityFuncF64, error) {
	fn, ok := float64Funcs[metric]
	if !ok {
		return nil, fmt.Errorf("metric '%s' not supported for float64 precision", metric)
	}
	return fn, nil
}
