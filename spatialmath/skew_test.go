package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestSkew(t *testing.T) {
	w := r3.Vector{X: 1, Y: 2, Z: 3}
	expected := mat.NewDense(3, 3, []float64{
		0, -3, 2,
		3, 0, -1,
		-2, 1, 0,
	})
	test.That(t, mat.Equal(Skew(w), expected), test.ShouldBeTrue)

	v := r3.Vector{X: -0.5, Y: 4, Z: 0.25}
	var got mat.VecDense
	got.MulVec(Skew(w), mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	cross := w.Cross(v)
	test.That(t, got.AtVec(0), test.ShouldAlmostEqual, cross.X)
	test.That(t, got.AtVec(1), test.ShouldAlmostEqual, cross.Y)
	test.That(t, got.AtVec(2), test.ShouldAlmostEqual, cross.Z)
}

func TestUnskew(t *testing.T) {
	w := r3.Vector{X: 1, Y: 2, Z: 3}

	t.Run("exact", func(t *testing.T) {
		omega := mat.NewDense(3, 3, []float64{
			0, -3, 2,
			3, 0, -1,
			-2, 1, 0,
		})
		got, err := Unskew(omega)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got.X, test.ShouldAlmostEqual, w.X, 1e-12)
		test.That(t, got.Y, test.ShouldAlmostEqual, w.Y, 1e-12)
		test.That(t, got.Z, test.ShouldAlmostEqual, w.Z, 1e-12)
	})

	t.Run("symmetric part is ignored", func(t *testing.T) {
		sym := mat.NewDense(3, 3, []float64{
			0.1, 0.02, -0.03,
			0.02, 0.2, 0.04,
			-0.03, 0.04, 0.3,
		})
		var omega mat.Dense
		omega.Add(Skew(w), sym)
		got, err := Unskew(&omega)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got.X, test.ShouldAlmostEqual, w.X, 1e-12)
		test.That(t, got.Y, test.ShouldAlmostEqual, w.Y, 1e-12)
		test.That(t, got.Z, test.ShouldAlmostEqual, w.Z, 1e-12)
	})

	t.Run("bad dims", func(t *testing.T) {
		_, err := Unskew(mat.NewDense(3, 4, nil))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "3x4")
	})
}
