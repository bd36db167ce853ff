package spatialmath

import (
	"math"

	geo "github.com/kellydunn/golang-geo"

	"go.viam.com/vio/utils"
)

// EcefToNavDCM returns Ce2n, the direction cosine matrix rotating earth-centered earth-fixed
// vectors into the local north-east-down navigation frame at the given geodetic latitude and
// longitude (radians). Height does not affect the rotation.
func EcefToNavDCM(lat, lon float64) *RotationMatrix {
	sL, cL := math.Sin(lat), math.Cos(lat)
	sl, cl := math.Sin(lon), math.Cos(lon)

	return &RotationMatrix{[9]float64{
		-sL * cl, -sL * sl, cL,
		-sl, cl, 0,
		-cL * cl, -cL * sl, -sL,
	}}
}

// EcefToNavDCMFromPoint is EcefToNavDCM for a geo.Point, whose coordinates are in degrees.
func EcefToNavDCMFromPoint(pt *geo.Point) *RotationMatrix {
	return EcefToNavDCM(utils.DegToRad(pt.Lat()), utils.DegToRad(pt.Lng()))
}
