package stationary

import (
	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/search"
)

func speedFunc(eng *engine.Engine, body engine.Body) func(float64) (float64, error) {
	return func(t float64) (float64, error) {
		_, _, speed, err := search.BodyEclipticLonLatSpeed(eng, body, t)
		return speed, err
	}
}

func speedSign(speed float64) int {
	if speed < 0 {
		return -1
	}
	return 1
}

// dspeedDt estimates d(speed)/dt by central difference over
// +/- cfg.DerivativeWindowDays.
func dspeedDt(eng *engine.Engine, body engine.Body, jdTDB float64, cfg Config) (float64, error) {
	_, _, sPlus, err := search.BodyEclipticLonLatSpeed(eng, body, jdTDB+cfg.DerivativeWindowDays)
	if err != nil {
		return 0, err
	}
	_, _, sMinus, err := search.BodyEclipticLonLatSpeed(eng, body, jdTDB-cfg.DerivativeWindowDays)
	if err != nil {
		return 0, err
	}
	return (sPlus - sMinus) / (2.0 * cfg.DerivativeWindowDays), nil
}

// FindStationaryPoints returns every epoch in [jdStart, jdEnd] at which
// body's ecliptic longitude speed crosses zero. Per the zero's slope,
// dspeed/dt > 0 is classified Retrograde (the body is emerging from
// retrograde motion into direct), dspeed/dt < 0 is classified Direct.
func FindStationaryPoints(eng *engine.Engine, body engine.Body, jdStart, jdEnd float64, cfg Config) ([]Event, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	speed := speedFunc(eng, body)
	var evalErr error
	discreteF := func(t float64) int {
		s, err := speed(t)
		if err != nil {
			evalErr = err
			return 0
		}
		return speedSign(s)
	}

	transitions, err := search.FindDiscrete(jdStart, jdEnd, cfg.StepDays, discreteF, cfg.ConvergenceDays)
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, evalErr
	}

	events := make([]Event, 0, len(transitions))
	for _, tr := range transitions {
		slope, err := dspeedDt(eng, body, tr.T, cfg)
		if err != nil {
			return nil, err
		}
		lon, _, err := search.BodyEclipticLonLat(eng, body, tr.T)
		if err != nil {
			return nil, err
		}

		motion := Direct
		if slope > 0 {
			motion = Retrograde
		}

		events = append(events, Event{
			EpochTDBJD:   tr.T,
			LongitudeDeg: lon,
			Motion:       motion,
		})
	}
	return events, nil
}

// FindMaxSpeedPoints returns every local extremum of body's ecliptic
// longitude speed in [jdStart, jdEnd]: the fastest direct-motion epochs
// (positive-speed maxima) and the fastest retrograde-motion epochs
// (negative-speed minima).
func FindMaxSpeedPoints(eng *engine.Engine, body engine.Body, jdStart, jdEnd float64, cfg Config) ([]MaxSpeedEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var evalErr error
	f := func(t float64) float64 {
		s, err := speedFunc(eng, body)(t)
		if err != nil {
			evalErr = err
			return 0
		}
		return s
	}

	maxima, err := search.FindMaxima(jdStart, jdEnd, cfg.StepDays, f, cfg.ConvergenceDays)
	if err != nil {
		return nil, err
	}
	minima, err := search.FindMinima(jdStart, jdEnd, cfg.StepDays, f, cfg.ConvergenceDays)
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, evalErr
	}

	events := make([]MaxSpeedEvent, 0, len(maxima)+len(minima))
	for _, m := range maxima {
		lon, _, err := search.BodyEclipticLonLat(eng, body, m.T)
		if err != nil {
			return nil, err
		}
		events = append(events, MaxSpeedEvent{
			EpochTDBJD:     m.T,
			LongitudeDeg:   lon,
			SpeedDegPerDay: m.Value,
			Retrograde:     false,
		})
	}
	for _, m := range minima {
		lon, _, err := search.BodyEclipticLonLat(eng, body, m.T)
		if err != nil {
			return nil, err
		}
		events = append(events, MaxSpeedEvent{
			EpochTDBJD:     m.T,
			LongitudeDeg:   lon,
			SpeedDegPerDay: m.Value,
			Retrograde:     m.Value < 0,
		})
	}
	return events, nil
}
