// Package frames implements rotations between the inertial ICRF/J2000
// equatorial frame used by SPK ephemerides and the ecliptic frames needed
// for lunar-phase, Sankranti, and conjunction searches: obliquity, ecliptic
// precession (selectable model), equatorial nutation, and the Cartesian/
// spherical conversions the search layer works in.
package frames

import "math"

// OBLIQUITYJ2000Deg is the IAU 1976 mean obliquity of the ecliptic at
// J2000.0, in degrees (23 deg 26' 21.448").
const OBLIQUITYJ2000Deg = 23.4392911111

// OBLIQUITYJ2000Rad is OBLIQUITYJ2000Deg in radians.
const OBLIQUITYJ2000Rad = OBLIQUITYJ2000Deg * math.Pi / 180.0

// cosObl and sinObl are precomputed for the fixed-obliquity rotation.
var (
	cosObl = math.Cos(OBLIQUITYJ2000Rad)
	sinObl = math.Sin(OBLIQUITYJ2000Rad)
)

// MeanObliquityOfDateArcsec returns the IAU 2006 mean obliquity of the
// ecliptic at epoch t (Julian centuries of TDB since J2000), in arcseconds.
// At t=0 this is 84381.406", the IAU 2006 value (0.042" from the IAU 1976
// constant used above for the fixed J2000 rotation).
func MeanObliquityOfDateArcsec(t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t
	return 84381.406 - 46.836769*t - 0.0001831*t2 + 0.00200340*t3 -
		0.000000576*t4 - 0.0000000434*t5
}

// MeanObliquityOfDateRad is MeanObliquityOfDateArcsec converted to radians.
func MeanObliquityOfDateRad(t float64) float64 {
	return (MeanObliquityOfDateArcsec(t) / 3600.0) * math.Pi / 180.0
}
