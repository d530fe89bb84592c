// Package lunarnodes computes the Moon's ascending (Rahu) and descending
// (Ketu) node longitudes: the mean node from its linear-plus-quadratic
// regression formula, and the true node by adding the dominant periodic
// perturbation terms to it. Ketu is Rahu+180 deg exactly for both, per the
// invariant every consumer of these longitudes relies on.
package lunarnodes

import "math"

const j2000JD = 2451545.0

// MeanLunarNodes returns the mean ascending (Rahu) and descending (Ketu)
// node ecliptic longitudes (degrees, [0, 360)) for the given TDB Julian
// date, via the standard linear-plus-quadratic regression on Julian
// centuries of TDB since J2000 (Meeus, Astronomical Algorithms ch. 47).
func MeanLunarNodes(tdbJD float64) (rahuLon, ketuLon float64) {
	T := (tdbJD - j2000JD) / 36525.0

	omega := 125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000.0

	rahuLon = math.Mod(omega, 360.0)
	if rahuLon < 0 {
		rahuLon += 360.0
	}
	ketuLon = math.Mod(rahuLon+180.0, 360.0)
	return
}

// TrueLunarNodes returns the true (osculating) ascending and descending
// node longitudes: the mean node corrected by the dominant periodic
// perturbation terms driven by the Sun-Moon elongation and the Moon's mean
// anomaly. This is a best-effort reduction of the much larger true-node
// series (dozens of additional small-amplitude terms exist); callers
// needing sub-arcminute true-node accuracy should use a dedicated lunar
// theory instead.
func TrueLunarNodes(tdbJD float64) (rahuLon, ketuLon float64) {
	T := (tdbJD - j2000JD) / 36525.0

	meanRahu, _ := MeanLunarNodes(tdbJD)

	// Fundamental arguments (degrees), Meeus ch. 47: D is the Moon's mean
	// elongation from the Sun, Mprime is the Moon's mean anomaly.
	d := 297.8501921 + 445267.1114034*T
	mPrime := 134.9633964 + 477198.8675055*T

	dRad := d * math.Pi / 180.0
	mPrimeRad := mPrime * math.Pi / 180.0

	correction := -1.4979*math.Sin(2*dRad) -
		0.1500*math.Sin(mPrimeRad) +
		0.1226*math.Sin(2*dRad-mPrimeRad) -
		0.1176*math.Sin(2*dRad) +
		0.0588*math.Sin(2*mPrimeRad)

	rahuLon = math.Mod(meanRahu+correction, 360.0)
	if rahuLon < 0 {
		rahuLon += 360.0
	}
	ketuLon = math.Mod(rahuLon+180.0, 360.0)
	return
}
