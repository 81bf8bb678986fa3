package core

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ReduceDimensions compresses the rows of m to k dimensions via truncated
// singular value decomposition. The embedding of row i is row i of U*Sigma
// restricted to the k largest singular values, so column j of the result
// carries the j-th most significant direction.
//
// Gonum's SVD is a deterministic LAPACK-style solver with no randomized
// projection step, so the same input always produces the same factors.
//
// Returns ErrInvalidDimension unless 1 <= k < min(rows, cols); for the
// square co-occurrence matrix that bound is the vocabulary size V.
func ReduceDimensions(m mat.Matrix, k int) (*mat.Dense, error) {
	rows, cols := m.Dims()
	limit := rows
	if cols < limit {
		limit = cols
	}
	if k < 1 || k >= limit {
		return nil, fmt.Errorf("cannot reduce a %dx%d matrix to %d dimensions: %w", rows, cols, k, ErrInvalidDimension)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization did not converge")
	}

	var u mat.Dense
	svd.UTo(&u)
	sigma := svd.Values(nil)

	out := mat.NewDense(rows, k, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < k; j++ {
			out.Set(i, j, u.At(i, j)*sigma[j])
		}
	}
	return out, nil
}
