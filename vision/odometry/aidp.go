// Package odometry contains the landmark parameterizations used by the visual-inertial odometry
// estimator.
package odometry

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/vio/spatialmath"
)

// numericalJacobianStep is the forward-difference step of NumericalAIDPJacobian.
const numericalJacobianStep = 1e-8

// AIDP is an anchored inverse-depth point. The point expressed in its anchor camera frame is
// (1/Rho) * (Alpha, Beta, 1).
type AIDP struct {
	Alpha float64
	Beta  float64
	Rho   float64
}

// NewAIDPFromVector returns the inverse-depth form of a point given in its anchor frame.
func NewAIDPFromVector(pt r3.Vector) (AIDP, error) {
	if pt.Z == 0 {
		return AIDP{}, errors.New("point at zero depth has no inverse-depth form")
	}
	return AIDP{Alpha: pt.X / pt.Z, Beta: pt.Y / pt.Z, Rho: 1 / pt.Z}, nil
}

// Vector returns the point in its anchor frame.
func (p AIDP) Vector() r3.Vector {
	return r3.Vector{X: p.Alpha, Y: p.Beta, Z: 1}.Mul(1 / p.Rho)
}

func (p AIDP) slice() []float64 {
	return []float64{p.Alpha, p.Beta, p.Rho}
}

// CameraPose is the orientation and position of a camera frame in a common reference frame.
type CameraPose struct {
	Rotation *spatialmath.RotationMatrix
	Position r3.Vector
}

// RelativeTransform returns the 4x4 homogeneous transform taking frame-i coordinates into
// frame j: [[Rjᵗ*Ri, Rjᵗ*(pi-pj)], [0 0 0 1]].
func RelativeTransform(anchorI, anchorJ CameraPose) *mat.Dense {
	rjT := anchorJ.Rotation.Transpose()
	rot := rjT.Mul(anchorI.Rotation)
	trans := rjT.MulVec(anchorI.Position.Sub(anchorJ.Position))

	tij := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			tij.Set(i, j, rot.At(i, j))
		}
	}
	tij.Set(0, 3, trans.X)
	tij.Set(1, 3, trans.Y)
	tij.Set(2, 3, trans.Z)
	tij.Set(3, 3, 1)
	return tij
}

// ReparameterizeAIDP moves abrhoI, anchored at frame i, to the equivalent point anchored at
// frame j. A zero Rho or a point on frame j's principal plane produce Inf/NaN components.
func ReparameterizeAIDP(anchorI, anchorJ CameraPose, abrhoI AIDP) AIDP {
	abrhoJ, _, _, _ := reparameterize(anchorI, anchorJ, abrhoI)
	return abrhoJ
}

// ReparameterizeAIDPWithJacobian is ReparameterizeAIDP that also returns the analytic 3x9
// Jacobian of abrhoJ with respect to [abrhoI, anchorI.Position, anchorJ.Position].
func ReparameterizeAIDPWithJacobian(anchorI, anchorJ CameraPose, abrhoI AIDP) (AIDP, *mat.Dense) {
	abrhoJ, tij, homogI, ratio := reparameterize(anchorI, anchorJ, abrhoI)

	// d(x/z) chain rule: lhs = I with its last column replaced by -abrhoJ.
	lhs := mat.NewDense(3, 3, []float64{
		1, 0, -abrhoJ.Alpha,
		0, 1, -abrhoJ.Beta,
		0, 0, -abrhoJ.Rho,
	})

	jacobian := mat.NewDense(3, 9, nil)

	subrhs := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		subrhs.Set(i, 0, tij.At(i, 0))
		subrhs.Set(i, 1, tij.At(i, 1))
		subrhs.Set(i, 2, tij.At(i, 3))
	}
	abrhoBlock := jacobian.Slice(0, 3, 0, 3).(*mat.Dense)
	abrhoBlock.Mul(lhs, subrhs)
	abrhoBlock.Scale(ratio, abrhoBlock)
	// rhoJ = rhoI*ratio, and ratio itself depends on rhoI
	var row2 float64
	for k := 0; k < 3; k++ {
		row2 += tij.At(2, k) * homogI[k]
	}
	jacobian.Set(2, 2, ratio*ratio*row2)

	rhs := mat.NewDense(3, 6, nil)
	rjT := anchorJ.Rotation.Transpose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := abrhoI.Rho * rjT.At(i, j)
			rhs.Set(i, j, v)
			rhs.Set(i, j+3, -v)
		}
	}
	positionBlock := jacobian.Slice(0, 3, 3, 9).(*mat.Dense)
	positionBlock.Mul(lhs, rhs)
	positionBlock.Scale(ratio, positionBlock)

	return abrhoJ, jacobian
}

// NumericalAIDPJacobian approximates the Jacobian of ReparameterizeAIDPWithJacobian by forward
// differences, perturbing alpha, beta, rho, then anchorI.Position and anchorJ.Position. It
// exists to check the analytic Jacobian.
func NumericalAIDPJacobian(anchorI, anchorJ CameraPose, abrhoI AIDP) (AIDP, *mat.Dense) {
	abrhoJ := ReparameterizeAIDP(anchorI, anchorJ, abrhoI)
	base := abrhoJ.slice()
	jacobian := mat.NewDense(3, 9, nil)

	setColumn := func(col int, perturbed AIDP) {
		diff := perturbed.slice()
		floats.Sub(diff, base)
		floats.Scale(1/numericalJacobianStep, diff)
		jacobian.SetCol(col, diff)
	}

	for k := 0; k < 3; k++ {
		inputs := abrhoI.slice()
		inputs[k] += numericalJacobianStep
		perturbed := AIDP{Alpha: inputs[0], Beta: inputs[1], Rho: inputs[2]}
		setColumn(k, ReparameterizeAIDP(anchorI, anchorJ, perturbed))
	}
	for k := 0; k < 3; k++ {
		poseI := anchorI
		poseI.Position = perturbAxis(anchorI.Position, k)
		setColumn(k+3, ReparameterizeAIDP(poseI, anchorJ, abrhoI))
	}
	for k := 0; k < 3; k++ {
		poseJ := anchorJ
		poseJ.Position = perturbAxis(anchorJ.Position, k)
		setColumn(k+6, ReparameterizeAIDP(anchorI, poseJ, abrhoI))
	}
	return abrhoJ, jacobian
}

func perturbAxis(v r3.Vector, axis int) r3.Vector {
	switch axis {
	case 0:
		v.X += numericalJacobianStep
	case 1:
		v.Y += numericalJacobianStep
	default:
		v.Z += numericalJacobianStep
	}
	return v
}

// reparameterize returns abrhoJ along with the intermediates the Jacobian needs: Tij, the
// homogeneous (alpha, beta, 1, rho) of abrhoI, and rhoJ/rhoI.
func reparameterize(anchorI, anchorJ CameraPose, abrhoI AIDP) (AIDP, *mat.Dense, []float64, float64) {
	tij := RelativeTransform(anchorI, anchorJ)
	homogI := []float64{abrhoI.Alpha, abrhoI.Beta, 1, abrhoI.Rho}

	var projected mat.VecDense
	projected.MulVec(tij.Slice(0, 3, 0, 4), mat.NewVecDense(4, homogI))
	ratio := 1 / projected.AtVec(2)

	return AIDP{
		Alpha: ratio * projected.AtVec(0),
		Beta:  ratio * projected.AtVec(1),
		Rho:   abrhoI.Rho * ratio,
	}, tij, homogI, ratio
}
