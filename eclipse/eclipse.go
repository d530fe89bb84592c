// Package eclipse finds lunar and solar eclipse candidates and their
// contact times.
//
// Both searches follow the same two-stage shape: pre-screen with a lunar
// phase search (Purnima for lunar eclipses, Amavasya for solar), then
// refine the syzygy to the instant of least angular/linear separation and
// classify the geometry there. Contact times are root-found on the
// separation between the Moon's center and the relevant shadow/disc edge,
// using search.FindZeroCrossing the same way the conjunction package's
// Sankranti search does.
package eclipse

import (
	"math"

	"github.com/ashwinpai/goephemeris/conjunction"
	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/search"
	"github.com/ashwinpai/goephemeris/units"
)

// Physical constants (km). Geometric, not limb-darkened or topocentric.
const (
	sunRadiusKm   = 695700.0
	earthRadiusKm = 6371.0
	moonRadiusKm  = 1737.4

	// danjonFactor enlarges Earth's shadow cones by 2% to account for
	// atmospheric refraction, per Danjon's classical correction.
	danjonFactor = 1.02
)

// Lunar eclipse classification.
const (
	Penumbral = 1
	Partial   = 2
	Total     = 3
)

// SolarKind classifies a solar eclipse by how the Moon's disc covers the
// Sun's disc at greatest eclipse.
type SolarKind int

const (
	SolarPartial SolarKind = iota + 1
	SolarAnnular
	SolarTotal
)

func (k SolarKind) String() string {
	switch k {
	case SolarPartial:
		return "Partial"
	case SolarAnnular:
		return "Annular"
	case SolarTotal:
		return "Total"
	default:
		return "Unknown"
	}
}

// GeoLocation is a surface observing site: geodetic latitude/longitude in
// degrees and altitude in meters above the reference ellipsoid. It is a
// plain value type consumed by the delegated rise/set collaborator (see
// RiseSetConfig); the eclipse package itself is purely geocentric.
type GeoLocation struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeM    float64
}

// RiseSetConfig documents the contract of the external rise/set
// collaborator eclipse-visibility callers wrap around FindLunarEclipses
// and FindSolarEclipses. This package never computes a rise/set time
// itself — DefaultRiseSetConfig fixes the defaults reimplementers should
// treat as part of that collaborator's documented interface rather than
// hard-coding them here.
type RiseSetConfig struct {
	// UpperLimb times rise/set to the Sun or Moon's upper limb crossing
	// the horizon, rather than its center.
	UpperLimb bool
	// RefractionEnabled applies standard atmospheric refraction at the
	// horizon (~34').
	RefractionEnabled bool
	// AltitudeCorrectionDeg is an additional fixed horizon-dip correction,
	// e.g. for an observer above sea level. Zero disables it.
	AltitudeCorrectionDeg float64
}

// DefaultRiseSetConfig returns {UpperLimb: true, RefractionEnabled: true,
// AltitudeCorrectionDeg: 0}, the conventional civil rise/set definition.
func DefaultRiseSetConfig() RiseSetConfig {
	return RiseSetConfig{UpperLimb: true, RefractionEnabled: true}
}

// ComputeRiseSetFunc is the shape of the delegated rise/set collaborator:
// given an observing site, a body, a config, and a UTC-day window, return
// the rise and set times (TDB Julian date) within it. The core does not
// provide an implementation; eclipse-visibility helpers accept one as a
// parameter.
type ComputeRiseSetFunc func(loc GeoLocation, body engine.Body, cfg RiseSetConfig, jdStart, jdEnd float64) (riseJD, setJD float64, err error)

// LunarEclipse describes one lunar eclipse: geometry and magnitudes at
// greatest eclipse, plus whichever contact times were found. Contact
// fields are nil when that stage of the eclipse never occurs (e.g. U1-U4
// are nil for a purely penumbral eclipse).
type LunarEclipse struct {
	// EpochTDBJD is the TDB Julian date of greatest eclipse: the closest
	// approach of the Moon's center to the shadow axis.
	EpochTDBJD float64
	Kind       int // Penumbral, Partial, or Total

	UmbralMag    float64
	PenumbralMag float64

	ClosestApproachKm float64
	UmbralRadiusKm    float64
	PenumbralRadiusKm float64

	// P1/P4 are penumbral first/last contact, U1/U4 are umbral (partial)
	// first/last contact, U2/U3 are totality start/end. All TDB Julian
	// dates, nil if that contact never occurs for this eclipse.
	P1, U1, U2, U3, U4, P4 *float64
}

// SolarEclipse describes one geocentric solar eclipse: the Moon's disc
// against the Sun's disc as seen from Earth's center, with no topocentric
// parallax correction (the core is geocentric throughout; a caller wanting
// a local circumstance applies its own parallax beyond this package).
type SolarEclipse struct {
	EpochTDBJD          float64
	Kind                SolarKind
	MagnitudeAtGreatest float64
	SeparationDeg       float64

	// C1/C4 are first/last contact (limbs of Sun and Moon discs touch),
	// C2/C3 are second/third contact (totality or annularity start/end).
	// C2/C3 are nil for a SolarPartial eclipse.
	C1, C2, C3, C4 *float64
}

func vecDot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func vecNorm(a [3]float64) float64 { return math.Sqrt(vecDot(a, a)) }

// geocentricSunMoon returns the Sun and Moon's geometric ICRF position
// relative to Earth's center, in km, at jdTDB.
func geocentricSunMoon(eng *engine.Engine, jdTDB float64) (sunPos, moonPos [3]float64, err error) {
	sv, err := eng.Query(engine.Query{Target: engine.Sun, Observer: engine.Earth, Frame: engine.ICRF, EpochTDBJD: jdTDB})
	if err != nil {
		return sunPos, moonPos, err
	}
	mv, err := eng.Query(engine.Query{Target: engine.Moon, Observer: engine.Earth, Frame: engine.ICRF, EpochTDBJD: jdTDB})
	if err != nil {
		return sunPos, moonPos, err
	}
	return sv.PositionKm, mv.PositionKm, nil
}

// lunarShadowGeometry returns the perpendicular distance (km) of the
// Moon's center from Earth's shadow axis, the Moon's distance along that
// axis from Earth, and the Sun's distance from Earth.
func lunarShadowGeometry(sunPos, moonPos [3]float64) (sepKm, alongKm, sunDistKm float64) {
	sunDistKm = vecNorm(sunPos)
	axis := [3]float64{-sunPos[0] / sunDistKm, -sunPos[1] / sunDistKm, -sunPos[2] / sunDistKm}
	alongKm = vecDot(moonPos, axis)
	perp := [3]float64{
		moonPos[0] - alongKm*axis[0],
		moonPos[1] - alongKm*axis[1],
		moonPos[2] - alongKm*axis[2],
	}
	sepKm = vecNorm(perp)
	return sepKm, alongKm, sunDistKm
}

// shadowRadiiKm returns the umbral and penumbral shadow-cone radii at
// distance alongKm behind Earth along the anti-solar axis, with the
// Danjon atmospheric enlargement applied.
func shadowRadiiKm(alongKm, sunDistKm float64) (rUmbraKm, rPenumbraKm float64) {
	rUmbraKm = (earthRadiusKm - alongKm*(sunRadiusKm-earthRadiusKm)/sunDistKm) * danjonFactor
	rPenumbraKm = (earthRadiusKm + alongKm*(sunRadiusKm+earthRadiusKm)/sunDistKm) * danjonFactor
	return rUmbraKm, rPenumbraKm
}

// classifyLunarFromGeometry builds the non-contact fields of a
// LunarEclipse from pure geometry, so the classification logic is testable
// without an Engine. Kind is 0 (not returned as an eclipse) when the Moon
// never enters the penumbra.
func classifyLunarFromGeometry(tdbJD, sepKm, rUmbraKm, rPenumbraKm float64) LunarEclipse {
	umbralMag := (rUmbraKm + moonRadiusKm - sepKm) / (2.0 * moonRadiusKm)
	penumbralMag := (rPenumbraKm + moonRadiusKm - sepKm) / (2.0 * moonRadiusKm)

	ecl := LunarEclipse{
		EpochTDBJD:        tdbJD,
		UmbralMag:         umbralMag,
		PenumbralMag:      penumbralMag,
		ClosestApproachKm: sepKm,
		UmbralRadiusKm:    rUmbraKm,
		PenumbralRadiusKm: rPenumbraKm,
	}
	switch {
	case umbralMag >= 1.0:
		ecl.Kind = Total
	case umbralMag > 0:
		ecl.Kind = Partial
	case penumbralMag > 0:
		ecl.Kind = Penumbral
	}
	return ecl
}

// lunarSeparationFunc returns the Moon-shadow-axis separation (km) as a
// plain float64-returning function of TDB Julian date, for use with
// search.FindMinima; evalErr captures any Engine failure so the caller can
// check it once after the search returns.
func lunarSeparationFunc(eng *engine.Engine, evalErr *error) func(float64) float64 {
	return func(t float64) float64 {
		sunPos, moonPos, err := geocentricSunMoon(eng, t)
		if err != nil {
			*evalErr = err
			return 0
		}
		sep, _, _ := lunarShadowGeometry(sunPos, moonPos)
		return sep
	}
}

const (
	lunarRefineWindowDays = 1.5
	lunarRefineStepDays   = 0.02
	contactStepDays       = 0.01
	contactMaxSteps       = 80
	contactConvergenceJD  = 1e-8
)

// FindLunarEclipses returns every lunar eclipse (at least partially
// penumbral) whose greatest-eclipse epoch falls in [jdStart, jdEnd].
// Candidates are pre-screened at every Purnima in range, then each is
// refined to the true minimum Moon-shadow-axis separation before
// classification, per the spec's eclipse-candidate algorithm.
func FindLunarEclipses(eng *engine.Engine, jdStart, jdEnd float64) ([]LunarEclipse, error) {
	purnimas, err := conjunction.SearchPurnimas(eng, jdStart, jdEnd)
	if err != nil {
		return nil, err
	}

	var eclipses []LunarEclipse
	for _, pm := range purnimas {
		var evalErr error
		sepFunc := lunarSeparationFunc(eng, &evalErr)
		minima, err := search.FindMinima(pm.EpochTDBJD-lunarRefineWindowDays, pm.EpochTDBJD+lunarRefineWindowDays, lunarRefineStepDays, sepFunc, 0)
		if err != nil {
			return nil, err
		}
		if evalErr != nil {
			return nil, evalErr
		}
		if len(minima) == 0 {
			continue
		}
		best := minima[0]
		for _, m := range minima[1:] {
			if math.Abs(m.T-pm.EpochTDBJD) < math.Abs(best.T-pm.EpochTDBJD) {
				best = m
			}
		}

		sunPos, moonPos, err := geocentricSunMoon(eng, best.T)
		if err != nil {
			return nil, err
		}
		sep, along, sunDist := lunarShadowGeometry(sunPos, moonPos)
		rUmbra, rPenumbra := shadowRadiiKm(along, sunDist)
		ecl := classifyLunarFromGeometry(best.T, sep, rUmbra, rPenumbra)
		if ecl.Kind == 0 {
			continue
		}
		if err := fillLunarContacts(eng, &ecl); err != nil {
			return nil, err
		}
		eclipses = append(eclipses, ecl)
	}
	return eclipses, nil
}

// fillLunarContacts root-finds P1/U1/U2/U3/U4/P4 around ecl's greatest
// eclipse, scanning backward for ingress contacts and forward for egress.
func fillLunarContacts(eng *engine.Engine, ecl *LunarEclipse) error {
	edgeFunc := func(radiusFn func(rUmbra, rPenumbra float64) float64) search.ZeroCrossingFunc {
		return func(t float64) (float64, error) {
			sunPos, moonPos, err := geocentricSunMoon(eng, t)
			if err != nil {
				return 0, err
			}
			sep, along, sunDist := lunarShadowGeometry(sunPos, moonPos)
			rUmbra, rPenumbra := shadowRadiiKm(along, sunDist)
			return sep - radiusFn(rUmbra, rPenumbra), nil
		}
	}

	penumbralEdge := edgeFunc(func(_, rPenumbra float64) float64 { return rPenumbra + moonRadiusKm })
	umbralEdge := edgeFunc(func(rUmbra, _ float64) float64 { return rUmbra + moonRadiusKm })
	totalityEdge := edgeFunc(func(rUmbra, _ float64) float64 { return rUmbra - moonRadiusKm })

	find := func(f search.ZeroCrossingFunc, step float64) (*float64, error) {
		t, ok, err := search.FindZeroCrossing(f, ecl.EpochTDBJD, step, contactMaxSteps, 50, contactConvergenceJD)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &t, nil
	}

	var err error
	if ecl.P1, err = find(penumbralEdge, -contactStepDays); err != nil {
		return err
	}
	if ecl.P4, err = find(penumbralEdge, contactStepDays); err != nil {
		return err
	}
	if ecl.Kind >= Partial {
		if ecl.U1, err = find(umbralEdge, -contactStepDays); err != nil {
			return err
		}
		if ecl.U4, err = find(umbralEdge, contactStepDays); err != nil {
			return err
		}
	}
	if ecl.Kind == Total {
		if ecl.U2, err = find(totalityEdge, -contactStepDays); err != nil {
			return err
		}
		if ecl.U3, err = find(totalityEdge, contactStepDays); err != nil {
			return err
		}
	}
	return nil
}

// angularRadiusDeg returns the apparent semi-diameter (degrees) of a body
// of physicalRadiusKm seen from distKm away.
func angularRadiusDeg(physicalRadiusKm, distKm float64) float64 {
	return math.Asin(physicalRadiusKm/distKm) * 180.0 / math.Pi
}

// angularSeparationDeg returns the angle (degrees) between two geocentric
// position vectors, i.e. the Sun-Moon apparent separation as seen from
// Earth's center.
func angularSeparationDeg(a, b [3]float64) float64 {
	cosSep := vecDot(a, b) / (vecNorm(a) * vecNorm(b))
	cosSep = math.Max(-1.0, math.Min(1.0, cosSep))
	return math.Acos(cosSep) * 180.0 / math.Pi
}

// classifySolarFromGeometry builds the non-contact fields of a
// SolarEclipse from apparent angular radii and separation. Kind is 0 (not
// a solar eclipse) when the two discs never overlap.
func classifySolarFromGeometry(tdbJD, sepDeg, sunAngDeg, moonAngDeg float64) SolarEclipse {
	sum := sunAngDeg + moonAngDeg
	diff := math.Abs(sunAngDeg - moonAngDeg)

	se := SolarEclipse{
		EpochTDBJD:          tdbJD,
		SeparationDeg:       sepDeg,
		MagnitudeAtGreatest: (sum - sepDeg) / (2.0 * sunAngDeg),
	}
	switch {
	case sepDeg > sum:
		// not an eclipse
	case sepDeg <= diff:
		if moonAngDeg >= sunAngDeg {
			se.Kind = SolarTotal
		} else {
			se.Kind = SolarAnnular
		}
	default:
		se.Kind = SolarPartial
	}
	return se
}

func solarSeparationFunc(eng *engine.Engine, evalErr *error) func(float64) float64 {
	return func(t float64) float64 {
		sunPos, moonPos, err := geocentricSunMoon(eng, t)
		if err != nil {
			*evalErr = err
			return 0
		}
		return angularSeparationDeg(sunPos, moonPos)
	}
}

const (
	solarRefineWindowDays = 1.0
	solarRefineStepDays   = 0.02
)

// FindSolarEclipses returns every geocentric solar eclipse candidate whose
// greatest-eclipse epoch falls in [jdStart, jdEnd], pre-screened at every
// Amavasya in range and refined to the true minimum Sun-Moon angular
// separation.
func FindSolarEclipses(eng *engine.Engine, jdStart, jdEnd float64) ([]SolarEclipse, error) {
	amavasyas, err := conjunction.SearchAmavasyas(eng, jdStart, jdEnd)
	if err != nil {
		return nil, err
	}

	var eclipses []SolarEclipse
	for _, nm := range amavasyas {
		var evalErr error
		sepFunc := solarSeparationFunc(eng, &evalErr)
		minima, err := search.FindMinima(nm.EpochTDBJD-solarRefineWindowDays, nm.EpochTDBJD+solarRefineWindowDays, solarRefineStepDays, sepFunc, 0)
		if err != nil {
			return nil, err
		}
		if evalErr != nil {
			return nil, evalErr
		}
		if len(minima) == 0 {
			continue
		}
		best := minima[0]
		for _, m := range minima[1:] {
			if math.Abs(m.T-nm.EpochTDBJD) < math.Abs(best.T-nm.EpochTDBJD) {
				best = m
			}
		}

		sunPos, moonPos, err := geocentricSunMoon(eng, best.T)
		if err != nil {
			return nil, err
		}
		sunDist, moonDist := vecNorm(sunPos), vecNorm(moonPos)
		sunAng := angularRadiusDeg(sunRadiusKm, sunDist)
		moonAng := angularRadiusDeg(moonRadiusKm, moonDist)
		sep := angularSeparationDeg(sunPos, moonPos)

		se := classifySolarFromGeometry(best.T, sep, sunAng, moonAng)
		if se.Kind == 0 {
			continue
		}
		if err := fillSolarContacts(eng, &se); err != nil {
			return nil, err
		}
		eclipses = append(eclipses, se)
	}
	return eclipses, nil
}

func fillSolarContacts(eng *engine.Engine, se *SolarEclipse) error {
	edgeFunc := func(target func(sunAng, moonAng float64) float64) search.ZeroCrossingFunc {
		return func(t float64) (float64, error) {
			sunPos, moonPos, err := geocentricSunMoon(eng, t)
			if err != nil {
				return 0, err
			}
			sunAng := angularRadiusDeg(sunRadiusKm, vecNorm(sunPos))
			moonAng := angularRadiusDeg(moonRadiusKm, vecNorm(moonPos))
			sep := angularSeparationDeg(sunPos, moonPos)
			return sep - target(sunAng, moonAng), nil
		}
	}

	outerEdge := edgeFunc(func(sunAng, moonAng float64) float64 { return sunAng + moonAng })
	innerEdge := edgeFunc(func(sunAng, moonAng float64) float64 { return math.Abs(sunAng - moonAng) })

	find := func(f search.ZeroCrossingFunc, step float64) (*float64, error) {
		t, ok, err := search.FindZeroCrossing(f, se.EpochTDBJD, step, contactMaxSteps, 50, contactConvergenceJD)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &t, nil
	}

	var err error
	if se.C1, err = find(outerEdge, -contactStepDays); err != nil {
		return err
	}
	if se.C4, err = find(outerEdge, contactStepDays); err != nil {
		return err
	}
	if se.Kind != SolarPartial {
		if se.C2, err = find(innerEdge, -contactStepDays); err != nil {
			return err
		}
		if se.C3, err = find(innerEdge, contactStepDays); err != nil {
			return err
		}
	}
	return nil
}

// GreatestEclipseAngle formats the Sun-Moon angular separation at greatest
// solar eclipse as a sexagesimal angle, using the units package's DMS
// decomposition.
func (se SolarEclipse) GreatestEclipseAngle() (sign float64, deg, min int, sec float64) {
	return units.AngleFromDegrees(se.SeparationDeg).DMS()
}
