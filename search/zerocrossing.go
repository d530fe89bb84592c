package search

import "math"

// NormalizeToPM180 wraps an angle in degrees into (-180, 180].
func NormalizeToPM180(deg float64) float64 {
	d := math.Mod(deg, 360.0)
	if d > 180.0 {
		d -= 360.0
	} else if d <= -180.0 {
		d += 360.0
	}
	return d
}

// IsGenuineCrossing reports whether fA, fB bracket an actual zero of a
// PM180-normalized function, as opposed to a spurious sign flip caused by
// the function wrapping from just under +180 to just over -180 (or vice
// versa). A genuine crossing has opposite signs and a small jump; a wrap
// discontinuity has opposite signs but a jump close to 360.
func IsGenuineCrossing(fA, fB float64) bool {
	return fA*fB < 0.0 && math.Abs(fA-fB) < 270.0
}

// ZeroCrossingFunc is a scalar function of Julian date that FindZeroCrossing
// scans for a sign change in.
type ZeroCrossingFunc func(jdTDB float64) (float64, error)

// FindZeroCrossing scans f from jdStart in increments of step (negative
// steps search backward) until IsGenuineCrossing fires between consecutive
// samples, then bisects to convergenceDays. Returns (0, false, nil) if no
// crossing is found within maxSteps — exhausting the scan window is not an
// error, per the coarse-scan failure semantics shared across this package's
// search routines.
func FindZeroCrossing(f ZeroCrossingFunc, jdStart, step float64, maxSteps, maxIterations int, convergenceDays float64) (float64, bool, error) {
	fPrev, err := f(jdStart)
	if err != nil {
		return 0, false, err
	}
	tPrev := jdStart

	for i := 0; i < maxSteps; i++ {
		tCurr := tPrev + step
		fCurr, err := f(tCurr)
		if err != nil {
			return 0, false, err
		}

		if IsGenuineCrossing(fPrev, fCurr) {
			tA, fA, tB := tPrev, fPrev, tCurr
			if tCurr < tPrev {
				tA, fA, tB = tCurr, fCurr, tPrev
			}

			for j := 0; j < maxIterations; j++ {
				tMid := 0.5 * (tA + tB)
				fMid, err := f(tMid)
				if err != nil {
					return 0, false, err
				}
				if fA*fMid <= 0.0 {
					tB = tMid
				} else {
					tA, fA = tMid, fMid
				}
				if math.Abs(tB-tA) < convergenceDays {
					break
				}
			}
			return 0.5 * (tA + tB), true, nil
		}

		tPrev, fPrev = tCurr, fCurr
	}

	return 0, false, nil
}
