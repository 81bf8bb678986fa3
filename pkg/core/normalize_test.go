package core

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestNormalizeRows(t *testing.T) {
	t.Run("UnitNorms", func(t *testing.T) {
		m := mat.NewDense(3, 2, []float64{
			3, 4,
			-1, 1,
			0.001, 0,
		})
		out, err := NormalizeRows(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 3; i++ {
			norm := floats.Norm(out.RawRowView(i), 2)
			if math.Abs(norm-1) > 1e-6 {
				t.Errorf("row %d: norm %g, want 1", i, norm)
			}
		}
	})

	t.Run("DirectionPreserved", func(t *testing.T) {
		m := mat.NewDense(1, 2, []float64{3, 4})
		out, err := NormalizeRows(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(out.At(0, 0)-0.6) > 1e-9 || math.Abs(out.At(0, 1)-0.8) > 1e-9 {
			t.Errorf("got (%g, %g), want (0.6, 0.8)", out.At(0, 0), out.At(0, 1))
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		m := mat.NewDense(2, 3, []float64{
			1, 2, 3,
			-4, 0, 5,
		})
		once, err := NormalizeRows(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		twice, err := NormalizeRows(once)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !mat.EqualApprox(once, twice, 1e-12) {
			t.Fatal("normalizing a normalized matrix changed it")
		}
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		m := mat.NewDense(1, 2, []float64{3, 4})
		if _, err := NormalizeRows(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.At(0, 0) != 3 || m.At(0, 1) != 4 {
			t.Error("input matrix was modified")
		}
	})

	t.Run("ZeroRow", func(t *testing.T) {
		m := mat.NewDense(3, 2, []float64{
			1, 0,
			0, 0,
			0, 1,
		})
		_, err := NormalizeRows(m)
		var zn *ZeroNormError
		if !errors.As(err, &zn) {
			t.Fatalf("got %v, want ZeroNormError", err)
		}
		if zn.Row != 1 {
			t.Errorf("Row: got %d, want 1", zn.Row)
		}
	})
}
