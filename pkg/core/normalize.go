package core

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// zeroNormTolerance is the threshold below which a row norm is treated as
// zero rather than scaled, to keep underflow from turning into Inf or NaN.
const zeroNormTolerance = 1e-12

// NormalizeRows returns a copy of m with every row scaled to unit L2 norm.
// On already normalized input the operation is the identity.
//
// A zero-norm row has no direction to preserve; the first one encountered is
// reported as a ZeroNormError carrying the row index, and no NaN or Inf
// values are ever produced.
func NormalizeRows(m *mat.Dense) (*mat.Dense, error) {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		norm := floats.Norm(row, 2)
		if norm <= zeroNormTolerance {
			return nil, &ZeroNormError{Row: i}
		}
		outRow := out.RawRowView(i)
		for j, val := range row {
			outRow[j] = val / norm
		}
	}
	return out, nil
}
