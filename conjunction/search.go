package conjunction

import (
	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/search"
	"github.com/ashwinpai/goephemeris/xerr"
)

func separationFunction(eng *engine.Engine, body1, body2 engine.Body, targetDeg, jdTDB float64) (f, lon1, lon2, lat1, lat2 float64, err error) {
	lon1, lat1, err = search.BodyEclipticLonLat(eng, body1, jdTDB)
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	lon2, lat2, err = search.BodyEclipticLonLat(eng, body2, jdTDB)
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	f = search.NormalizeToPM180(lon1 - lon2 - targetDeg)
	return f, lon1, lon2, lat1, lat2, nil
}

// computeActualSeparation returns the raw (lon1-lon2) mod 360 value nearest
// targetDeg, so a near-zero separation reads as ~0 rather than ~360 when
// the target is 0.
func computeActualSeparation(lon1, lon2, targetDeg float64) float64 {
	raw := mod360(lon1 - lon2)
	delta := search.NormalizeToPM180(raw - targetDeg)
	return targetDeg + delta
}

func mod360(deg float64) float64 {
	m := deg
	for m < 0 {
		m += 360
	}
	for m >= 360 {
		m -= 360
	}
	return m
}

func bisectRefine(eng *engine.Engine, body1, body2 engine.Body, targetDeg, tA, fA, tB float64, cfg Config) (Event, error) {
	var lon1, lon2, lat1, lat2 float64
	for i := 0; i < cfg.MaxIterations; i++ {
		tMid := 0.5 * (tA + tB)
		fMid, l1, l2, la1, la2, err := separationFunction(eng, body1, body2, targetDeg, tMid)
		if err != nil {
			return Event{}, err
		}
		lon1, lon2, lat1, lat2 = l1, l2, la1, la2

		if fA*fMid <= 0 {
			tB = tMid
		} else {
			tA, fA = tMid, fMid
		}
		if absF(tB-tA) < cfg.ConvergenceDays {
			break
		}
	}

	tFinal := 0.5 * (tA + tB)
	return Event{
		EpochTDBJD:          tFinal,
		ActualSeparationDeg: computeActualSeparation(lon1, lon2, targetDeg),
		Body1:               body1,
		Body2:               body2,
		Body1LongitudeDeg:   lon1,
		Body2LongitudeDeg:   lon2,
		Body1LatitudeDeg:    lat1,
		Body2LatitudeDeg:    lat2,
	}, nil
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func findEvent(eng *engine.Engine, body1, body2 engine.Body, jdStart float64, forward bool, cfg Config) (*Event, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	step := cfg.StepDays
	if !forward {
		step = -step
	}
	maxSteps := int(maxScanDays/cfg.StepDays) + 1

	fPrev, _, _, _, _, err := separationFunction(eng, body1, body2, cfg.TargetSeparationDeg, jdStart)
	if err != nil {
		return nil, err
	}
	tPrev := jdStart

	for i := 0; i < maxSteps; i++ {
		tCurr := tPrev + step
		fCurr, _, _, _, _, err := separationFunction(eng, body1, body2, cfg.TargetSeparationDeg, tCurr)
		if err != nil {
			return nil, err
		}

		if search.IsGenuineCrossing(fPrev, fCurr) {
			tA, fA, tB := tPrev, fPrev, tCurr
			if tCurr < tPrev {
				tA, fA, tB = tCurr, fCurr, tPrev
			}
			event, err := bisectRefine(eng, body1, body2, cfg.TargetSeparationDeg, tA, fA, tB, cfg)
			if err != nil {
				return nil, err
			}
			return &event, nil
		}

		tPrev, fPrev = tCurr, fCurr
	}

	return nil, nil
}

// NextConjunction finds the next matching event after jdTDB. A nil Event
// with a nil error means the scan window was exhausted without finding one.
func NextConjunction(eng *engine.Engine, body1, body2 engine.Body, jdTDB float64, cfg Config) (*Event, error) {
	return findEvent(eng, body1, body2, jdTDB, true, cfg)
}

// PrevConjunction finds the previous matching event before jdTDB.
func PrevConjunction(eng *engine.Engine, body1, body2 engine.Body, jdTDB float64, cfg Config) (*Event, error) {
	return findEvent(eng, body1, body2, jdTDB, false, cfg)
}

// SearchConjunctions returns every matching event in [jdStart, jdEnd].
func SearchConjunctions(eng *engine.Engine, body1, body2 engine.Body, jdStart, jdEnd float64, cfg Config) ([]Event, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if jdEnd <= jdStart {
		return nil, xerr.New(xerr.InvalidConfig, "jd_end must be after jd_start")
	}

	var events []Event
	step := cfg.StepDays

	fPrev, _, _, _, _, err := separationFunction(eng, body1, body2, cfg.TargetSeparationDeg, jdStart)
	if err != nil {
		return nil, err
	}
	tPrev := jdStart

	for {
		tCurr := tPrev + step
		if tCurr > jdEnd {
			tCurr = jdEnd
		}
		fCurr, _, _, _, _, err := separationFunction(eng, body1, body2, cfg.TargetSeparationDeg, tCurr)
		if err != nil {
			return nil, err
		}

		if search.IsGenuineCrossing(fPrev, fCurr) {
			event, err := bisectRefine(eng, body1, body2, cfg.TargetSeparationDeg, tPrev, fPrev, tCurr, cfg)
			if err != nil {
				return nil, err
			}
			if event.EpochTDBJD >= jdStart && event.EpochTDBJD <= jdEnd {
				events = append(events, event)
			}
		}

		if tCurr >= jdEnd {
			break
		}
		tPrev, fPrev = tCurr, fCurr
	}

	return events, nil
}
