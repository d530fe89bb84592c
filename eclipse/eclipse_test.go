package eclipse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLunarShadowGeometryOnAxisSeparationZero(t *testing.T) {
	// Sun 1 AU along +X from Earth, Moon exactly on the anti-solar axis:
	// the Moon sits dead-center in the shadow, so the perpendicular
	// separation must be (numerically) zero.
	sunPos := [3]float64{1.496e8, 0, 0}
	moonPos := [3]float64{-384400, 0, 0}

	sep, along, sunDist := lunarShadowGeometry(sunPos, moonPos)
	assert.InDelta(t, 0.0, sep, 1e-6)
	assert.InDelta(t, 384400.0, along, 1e-6)
	assert.InDelta(t, 1.496e8, sunDist, 1e-6)
}

func TestLunarShadowGeometryOffAxis(t *testing.T) {
	sunPos := [3]float64{1.496e8, 0, 0}
	moonPos := [3]float64{-384400, 1000, 0}

	sep, _, _ := lunarShadowGeometry(sunPos, moonPos)
	assert.InDelta(t, 1000.0, sep, 1e-3)
}

func TestClassifyLunarFromGeometry(t *testing.T) {
	rUmbra, rPenumbra := 4500.0, 9500.0

	tests := []struct {
		name    string
		sepKm   float64
		wantKnd int
	}{
		{"deep total", 0, Total},
		{"grazing umbra", rUmbra + moonRadiusKm - 10, Partial},
		{"penumbra only", rUmbra + moonRadiusKm + 500, Penumbral},
		{"no eclipse", rPenumbra + moonRadiusKm + 1000, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ecl := classifyLunarFromGeometry(2451545.0, tc.sepKm, rUmbra, rPenumbra)
			assert.Equal(t, tc.wantKnd, ecl.Kind)
		})
	}
}

func TestClassifyLunarFromGeometryTotalHasMagnitudeAtLeastOne(t *testing.T) {
	ecl := classifyLunarFromGeometry(2451545.0, 0, 4500.0, 9500.0)
	assert.GreaterOrEqual(t, ecl.UmbralMag, 1.0)
	assert.Greater(t, ecl.PenumbralMag, ecl.UmbralMag)
}

func TestAngularSeparationDegParallelVectorsIsZero(t *testing.T) {
	a := [3]float64{1.496e8, 0, 0}
	b := [3]float64{2 * 1.496e8, 0, 0}
	assert.InDelta(t, 0.0, angularSeparationDeg(a, b), 1e-9)
}

func TestAngularSeparationDegPerpendicularVectorsIsNinety(t *testing.T) {
	a := [3]float64{1, 0, 0}
	b := [3]float64{0, 1, 0}
	assert.InDelta(t, 90.0, angularSeparationDeg(a, b), 1e-9)
}

func TestAngularRadiusDegMatchesSmallAngleApproximation(t *testing.T) {
	// At 1 AU, the Sun's angular radius is close to its well-known ~0.267 deg.
	got := angularRadiusDeg(sunRadiusKm, 1.496e8)
	assert.InDelta(t, 0.2666, got, 0.001)
}

func TestClassifySolarFromGeometry(t *testing.T) {
	sunAng := angularRadiusDeg(sunRadiusKm, 1.496e8)
	moonAng := angularRadiusDeg(moonRadiusKm, 363300.0) // Moon near perigee: larger than the Sun's disc

	tests := []struct {
		name    string
		sepDeg  float64
		wantKnd SolarKind
	}{
		{"total", 0, SolarTotal},
		{"partial", sunAng + moonAng - 0.05, SolarPartial},
		{"no eclipse", sunAng + moonAng + 1.0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			se := classifySolarFromGeometry(2451545.0, tc.sepDeg, sunAng, moonAng)
			assert.Equal(t, tc.wantKnd, se.Kind)
		})
	}
}

func TestClassifySolarFromGeometryAnnularWhenMoonDiscSmaller(t *testing.T) {
	sunAng := angularRadiusDeg(sunRadiusKm, 1.47e8) // Earth near perihelion: Sun looks slightly larger
	moonAng := angularRadiusDeg(moonRadiusKm, 406000.0) // Moon near apogee: looks slightly smaller

	se := classifySolarFromGeometry(2451545.0, 0, sunAng, moonAng)
	assert.Equal(t, SolarAnnular, se.Kind)
}

func TestShadowRadiiKmAppliesDanjonEnlargement(t *testing.T) {
	rUmbra, rPenumbra := shadowRadiiKm(384400.0, 1.496e8)
	// Without the 2% enlargement both radii would be strictly smaller.
	rUmbraNoEnlargement := rUmbra / danjonFactor
	rPenumbraNoEnlargement := rPenumbra / danjonFactor
	assert.Greater(t, rUmbra, rUmbraNoEnlargement*0.999)
	assert.Greater(t, rPenumbra, rPenumbraNoEnlargement*0.999)
	assert.InDelta(t, rUmbra, rUmbraNoEnlargement*danjonFactor, 1e-9)
	assert.InDelta(t, rPenumbra, rPenumbraNoEnlargement*danjonFactor, 1e-9)
}

func TestGreatestEclipseAngleDMSRoundTrips(t *testing.T) {
	se := SolarEclipse{SeparationDeg: 1.5}
	sign, deg, min, sec := se.GreatestEclipseAngle()
	assert.Equal(t, 1.0, sign)
	assert.Equal(t, 1, deg)
	assert.Equal(t, 30, min)
	assert.InDelta(t, 0.0, sec, 1e-6)
}

func TestDefaultRiseSetConfig(t *testing.T) {
	cfg := DefaultRiseSetConfig()
	assert.True(t, cfg.UpperLimb)
	assert.True(t, cfg.RefractionEnabled)
	assert.Equal(t, 0.0, cfg.AltitudeCorrectionDeg)
}

func TestVecDotAndNorm(t *testing.T) {
	v := [3]float64{3, 4, 0}
	assert.InDelta(t, 5.0, vecNorm(v), 1e-9)
	assert.InDelta(t, 25.0, vecDot(v, v), 1e-9)
	assert.True(t, math.Abs(vecNorm(v)*vecNorm(v)-vecDot(v, v)) < 1e-9)
}
