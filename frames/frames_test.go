package frames

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func TestRoundtripICRFEcliptic(t *testing.T) {
	v := [3]float64{1.0e8, -5.0e7, 3.0e7}
	ecl := ICRFToEcliptic(v)
	back := EclipticToICRF(ecl)
	for i := range v {
		assert.InDelta(t, v[i], back[i], eps*math.Max(math.Abs(v[i]), 1.0))
	}
}

func TestXAxisUnchangedByICRFToEcliptic(t *testing.T) {
	ecl := ICRFToEcliptic([3]float64{1, 0, 0})
	assert.InDelta(t, 1.0, ecl[0], eps)
	assert.InDelta(t, 0.0, ecl[1], eps)
	assert.InDelta(t, 0.0, ecl[2], eps)
}

func TestMagnitudePreservedByRotation(t *testing.T) {
	v := [3]float64{1.234e8, -5.678e7, 9.012e6}
	rOrig := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	ecl := ICRFToEcliptic(v)
	rEcl := math.Sqrt(ecl[0]*ecl[0] + ecl[1]*ecl[1] + ecl[2]*ecl[2])
	assert.InDelta(t, rOrig, rEcl, eps*rOrig)
}

func TestGeneralPrecessionZeroAtJ2000(t *testing.T) {
	for _, m := range []PrecessionModel{IAU2006, Vondrak2011, Linear} {
		assert.Equal(t, 0.0, GeneralPrecessionLongitudeArcsec(0, m))
	}
}

func TestGeneralPrecessionOneCenturyIAU2006(t *testing.T) {
	p := GeneralPrecessionLongitudeArcsec(1.0, IAU2006)
	assert.InDelta(t, 5029.90, p, 1.0)
}

func TestPrecessEclipticIdentityAtT0(t *testing.T) {
	v := [3]float64{1.0, 0.5, -0.3}
	for _, m := range []PrecessionModel{IAU2006, Vondrak2011, Linear} {
		out := PrecessEclipticJ2000ToDate(v, 0, m)
		for i := range v {
			assert.InDelta(t, v[i], out[i], 1e-15)
		}
	}
}

func TestPrecessEclipticRoundTrip(t *testing.T) {
	v := [3]float64{0.8, 0.5, 0.1}
	for _, m := range []PrecessionModel{IAU2006, Vondrak2011, Linear} {
		for _, tc := range []float64{0.5, 1.0, -1.0, 5.0} {
			fwd := PrecessEclipticJ2000ToDate(v, tc, m)
			back := PrecessEclipticDateToJ2000(fwd, tc, m)
			for i := range v {
				assert.InDelta(t, v[i], back[i], 1e-10)
			}
		}
	}
}

func TestPrecessEclipticPreservesLength(t *testing.T) {
	v := [3]float64{0.6, 0.8, 0.0}
	lenIn := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	for _, m := range []PrecessionModel{IAU2006, Vondrak2011} {
		out := PrecessEclipticJ2000ToDate(v, 1.0, m)
		lenOut := math.Sqrt(out[0]*out[0] + out[1]*out[1] + out[2]*out[2])
		assert.InDelta(t, lenIn, lenOut, 1e-12)
	}
}

func TestNutationSmallAtJ2000(t *testing.T) {
	dpsi, deps := NutationIAU2000B(0)
	// Both terms are under about 20 arcseconds (~1e-4 rad); confirm sane
	// magnitude rather than an exact value, since the series is truncated.
	assert.Less(t, math.Abs(dpsi), 0.001)
	assert.Less(t, math.Abs(deps), 0.001)
}

func TestNutationMatrixIsOrthogonal(t *testing.T) {
	dpsi, deps := NutationIAU2000B(0.25)
	epsM := MeanObliquityOfDateRad(0.25)
	n := NutationMatrix(dpsi, deps, epsM)
	nt := TransposeMatrix(n)
	v := [3]float64{1, 2, 3}
	roundTrip := ApplyMatrix(nt, ApplyMatrix(n, v))
	for i := range v {
		assert.InDelta(t, v[i], roundTrip[i], 1e-9)
	}
}

func TestCartesianSphericalRoundtrip(t *testing.T) {
	xyz := [3]float64{1.234e8, -5.678e7, 3.456e7}
	s := CartesianToSpherical(xyz)
	back := SphericalToCartesian(s)
	for i := range xyz {
		assert.InDelta(t, xyz[i], back[i], 1e-6*math.Max(math.Abs(xyz[i]), 1.0))
	}
}

func TestCartesianSphericalAlongAxes(t *testing.T) {
	s := CartesianToSpherical([3]float64{1e8, 0, 0})
	assert.InDelta(t, 0.0, s.LonRad, 1e-10)
	assert.InDelta(t, 0.0, s.LatRad, 1e-10)

	s = CartesianToSpherical([3]float64{0, 0, 1e8})
	assert.InDelta(t, math.Pi/2, s.LatRad, 1e-10)
}

func TestCartesianSphericalZeroVector(t *testing.T) {
	s := CartesianToSpherical([3]float64{0, 0, 0})
	assert.Equal(t, 0.0, s.DistanceKm)
}

func TestCartesianStateToSphericalStateCircularOrbit(t *testing.T) {
	// A body on a circular orbit in the x-y plane at radius r with
	// angular rate omega: position (r*cos, r*sin, 0), velocity
	// (-r*omega*sin, r*omega*cos, 0). lon_dot should equal omega exactly.
	r := 1.5e8
	omega := 0.017 // rad/day, roughly Earth's mean motion
	theta := 0.7
	pos := [3]float64{r * math.Cos(theta), r * math.Sin(theta), 0}
	vel := [3]float64{-r * omega * math.Sin(theta), r * omega * math.Cos(theta), 0}

	state := CartesianStateToSphericalState(pos, vel)
	assert.InDelta(t, omega, state.LonRadPerDay, 1e-9)
	assert.InDelta(t, 0.0, state.LatRadPerDay, 1e-9)
	assert.InDelta(t, 0.0, state.DistKmPerDay, 1e-6)
}
