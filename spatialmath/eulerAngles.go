package spatialmath

import (
	"fmt"
	"math"

	"go.viam.com/vio/utils"
)

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D
// Euclidean space. Rotations compose as heading about z, then pitch about y, then roll about x,
// i.e. R = Rz(Yaw) * Ry(Pitch) * Rx(Roll). Yaw is the heading.
type EulerAngles struct {
	Roll  float64 `json:"roll"`  // phi
	Pitch float64 `json:"pitch"` // theta
	Yaw   float64 `json:"yaw"`   // psi
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// String returns the angles in degrees.
func (ea *EulerAngles) String() string {
	return fmt.Sprintf("Roll:%.2f, Pitch:%.2f, Yaw:%.2f",
		utils.RadToDeg(ea.Roll), utils.RadToDeg(ea.Pitch), utils.RadToDeg(ea.Yaw))
}

// RotationMatrix returns the direction cosine matrix for the euler angles.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	cr, sr := math.Cos(ea.Roll), math.Sin(ea.Roll)
	cp, sp := math.Cos(ea.Pitch), math.Sin(ea.Pitch)
	ch, sh := math.Cos(ea.Yaw), math.Sin(ea.Yaw)

	return &RotationMatrix{[9]float64{
		cp * ch, sp*sr*ch - cr*sh, cr*sp*ch + sh*sr,
		cp * sh, sr*sp*sh + cr*ch, cr*sp*sh - sr*ch,
		-sp, sr * cp, cr * cp,
	}}
}

// EulerAngles extracts roll, pitch and heading from the rotation matrix. It inverts
// EulerAngles.RotationMatrix everywhere except at the pitch = ±90° singularity.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	r20 := rm.At(2, 0)
	// rounding can push 1-r20² slightly below zero near ±90° pitch
	cosPitch := math.Sqrt(math.Max(0, 1-r20*r20))

	return &EulerAngles{
		Roll:  math.Atan2(rm.At(2, 1), rm.At(2, 2)),
		Pitch: -math.Atan2(r20, cosPitch),
		Yaw:   math.Atan2(rm.At(1, 0), rm.At(0, 0)),
	}
}
