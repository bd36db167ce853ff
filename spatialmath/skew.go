package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Skew returns the cross product matrix of w, so that Skew(w)*v == w.Cross(v).
func Skew(w r3.Vector) *mat.Dense {
	cross := mat.NewDense(3, 3, nil)
	cross.Set(0, 1, -w.Z)
	cross.Set(0, 2, w.Y)
	cross.Set(1, 0, w.Z)
	cross.Set(1, 2, -w.X)
	cross.Set(2, 0, -w.Y)
	cross.Set(2, 1, w.X)
	return cross
}

// Unskew returns the axis of the antisymmetric part of omega,
// w = 0.5 * (Ω32-Ω23, Ω13-Ω31, Ω21-Ω12). Any 3x3 matrix is accepted, so an omega that is only
// approximately skew-symmetric (e.g. built from composed noisy rotations) still gives a sensible
// axis. An error is returned only for a matrix that is not 3x3.
func Unskew(omega mat.Matrix) (r3.Vector, error) {
	if r, c := omega.Dims(); r != 3 || c != 3 {
		return r3.Vector{}, errors.Errorf("cannot unskew a %dx%d matrix, need 3x3", r, c)
	}
	return r3.Vector{
		X: omega.At(2, 1) - omega.At(1, 2),
		Y: omega.At(0, 2) - omega.At(2, 0),
		Z: omega.At(1, 0) - omega.At(0, 1),
	}.Mul(0.5), nil
}
