package conjunction

import "github.com/ashwinpai/goephemeris/engine"

// lunarStepDays is the coarse scan step for Sun-Moon searches: half a day
// reliably resolves the ~29.53-day synodic cycle.
const lunarStepDays = 0.5

// LunarPhase distinguishes Amavasya (new moon) from Purnima (full moon).
type LunarPhase int

const (
	NewMoon LunarPhase = iota
	FullMoon
)

// PhaseEvent is a lunar-phase match: the epoch plus the Sun and Moon's
// ecliptic-of-date longitudes at that instant.
type PhaseEvent struct {
	EpochTDBJD      float64
	Phase           LunarPhase
	SunLongitudeDeg float64
	MoonLongitudeDeg float64
}

func phaseFromEvent(e Event, phase LunarPhase) PhaseEvent {
	return PhaseEvent{
		EpochTDBJD:       e.EpochTDBJD,
		Phase:            phase,
		SunLongitudeDeg:  e.Body1LongitudeDeg,
		MoonLongitudeDeg: e.Body2LongitudeDeg,
	}
}

func lunarConfig(targetDeg float64) Config { return newConfig(targetDeg, lunarStepDays) }

// NextPurnima finds the next full moon (Sun-Moon opposition) after jdTDB.
func NextPurnima(eng *engine.Engine, jdTDB float64) (*PhaseEvent, error) {
	e, err := NextConjunction(eng, engine.Sun, engine.Moon, jdTDB, lunarConfig(180.0))
	if e == nil || err != nil {
		return nil, err
	}
	p := phaseFromEvent(*e, FullMoon)
	return &p, nil
}

// PrevPurnima finds the previous full moon before jdTDB.
func PrevPurnima(eng *engine.Engine, jdTDB float64) (*PhaseEvent, error) {
	e, err := PrevConjunction(eng, engine.Sun, engine.Moon, jdTDB, lunarConfig(180.0))
	if e == nil || err != nil {
		return nil, err
	}
	p := phaseFromEvent(*e, FullMoon)
	return &p, nil
}

// NextAmavasya finds the next new moon (Sun-Moon conjunction) after jdTDB.
func NextAmavasya(eng *engine.Engine, jdTDB float64) (*PhaseEvent, error) {
	e, err := NextConjunction(eng, engine.Sun, engine.Moon, jdTDB, lunarConfig(0.0))
	if e == nil || err != nil {
		return nil, err
	}
	p := phaseFromEvent(*e, NewMoon)
	return &p, nil
}

// PrevAmavasya finds the previous new moon before jdTDB.
func PrevAmavasya(eng *engine.Engine, jdTDB float64) (*PhaseEvent, error) {
	e, err := PrevConjunction(eng, engine.Sun, engine.Moon, jdTDB, lunarConfig(0.0))
	if e == nil || err != nil {
		return nil, err
	}
	p := phaseFromEvent(*e, NewMoon)
	return &p, nil
}

// SearchPurnimas returns every full moon in [jdStart, jdEnd].
func SearchPurnimas(eng *engine.Engine, jdStart, jdEnd float64) ([]PhaseEvent, error) {
	events, err := SearchConjunctions(eng, engine.Sun, engine.Moon, jdStart, jdEnd, lunarConfig(180.0))
	if err != nil {
		return nil, err
	}
	return mapPhases(events, FullMoon), nil
}

// SearchAmavasyas returns every new moon in [jdStart, jdEnd].
func SearchAmavasyas(eng *engine.Engine, jdStart, jdEnd float64) ([]PhaseEvent, error) {
	events, err := SearchConjunctions(eng, engine.Sun, engine.Moon, jdStart, jdEnd, lunarConfig(0.0))
	if err != nil {
		return nil, err
	}
	return mapPhases(events, NewMoon), nil
}

func mapPhases(events []Event, phase LunarPhase) []PhaseEvent {
	out := make([]PhaseEvent, len(events))
	for i, e := range events {
		out[i] = phaseFromEvent(e, phase)
	}
	return out
}
