package conjunction

import (
	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/search"
	"github.com/ashwinpai/goephemeris/timescale"
	"github.com/ashwinpai/goephemeris/xerr"
)

// maxSankrantiScanDays bounds a next/prev Sankranti scan; 400 days covers
// more than a full solar year.
const maxSankrantiScanDays = 400.0

// Rashi is one of the twelve 30-degree sidereal zodiac signs, indexed from
// Mesha (Aries) at index 0.
type Rashi int

const (
	Mesha Rashi = iota
	Vrishabha
	Mithuna
	Karka
	Simha
	Kanya
	Tula
	Vrischika
	Dhanu
	Makara
	Kumbha
	Meena
)

var rashiNames = [...]string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrischika", "Dhanu", "Makara", "Kumbha", "Meena",
}

func (r Rashi) String() string {
	if r < 0 || int(r) >= len(rashiNames) {
		return "Unknown"
	}
	return rashiNames[r]
}

// AyanamshaFunc computes the precession offset (degrees) between the
// tropical and sidereal zodiacs at a given TDB Julian century from J2000.
// The sidereal-longitude search is a pass-through to whichever ayanamsha
// system the caller supplies; LahiriApprox is provided as a default.
type AyanamshaFunc func(centuriesTDB float64) float64

// LahiriApprox is a linear approximation of the Lahiri ayanamsha: ~23.85
// degrees at J2000, precessing at ~1.396 degrees/century. Good to a few
// arcminutes over a several-century span; callers needing higher fidelity
// should supply their own AyanamshaFunc.
func LahiriApprox(centuriesTDB float64) float64 {
	return 23.85 + 1.396*centuriesTDB
}

// SankrantiConfig controls a Sankranti (sidereal sign ingress) search.
type SankrantiConfig struct {
	Ayanamsha       AyanamshaFunc
	StepDays        float64
	MaxIterations   int
	ConvergenceDays float64
}

// DefaultSankrantiConfig returns a Sankranti search configuration using
// LahiriApprox and a 1-day coarse step.
func DefaultSankrantiConfig() SankrantiConfig {
	return SankrantiConfig{
		Ayanamsha:       LahiriApprox,
		StepDays:        1.0,
		MaxIterations:   50,
		ConvergenceDays: 1e-8,
	}
}

func (c SankrantiConfig) validate() error {
	if c.Ayanamsha == nil {
		return xerr.New(xerr.InvalidConfig, "SankrantiConfig.Ayanamsha must not be nil")
	}
	if c.StepDays <= 0 {
		return xerr.New(xerr.InvalidConfig, "step_size_days must be positive")
	}
	if c.MaxIterations <= 0 {
		return xerr.New(xerr.InvalidConfig, "max_iterations must be > 0")
	}
	if c.ConvergenceDays <= 0 {
		return xerr.New(xerr.InvalidConfig, "convergence_days must be positive")
	}
	return nil
}

// SankrantiEvent is the Sun entering a new rashi.
type SankrantiEvent struct {
	EpochTDBJD              float64
	Rashi                   Rashi
	SunSiderealLongitudeDeg float64
	SunTropicalLongitudeDeg float64
}

func jdToCenturies(jdTDB float64) float64 {
	return (jdTDB - timescale.J2000JD) / 36525.0
}

func sunSiderealLongitude(eng *engine.Engine, jdTDB float64, cfg SankrantiConfig) (float64, error) {
	tropical, _, err := search.BodyEclipticLonLat(eng, engine.Sun, jdTDB)
	if err != nil {
		return 0, err
	}
	aya := cfg.Ayanamsha(jdToCenturies(jdTDB))
	return mod360(tropical - aya), nil
}

func nextBoundary(siderealLon float64) float64 {
	rashi := float64(int(siderealLon / 30.0))
	return mod360((rashi + 1.0) * 30.0)
}

func prevBoundary(siderealLon float64) float64 {
	rashi := float64(int(siderealLon / 30.0))
	return mod360(rashi * 30.0)
}

func buildSankrantiEvent(eng *engine.Engine, jdTDB, boundaryDeg float64, cfg SankrantiConfig) (SankrantiEvent, error) {
	tropical, _, err := search.BodyEclipticLonLat(eng, engine.Sun, jdTDB)
	if err != nil {
		return SankrantiEvent{}, err
	}
	aya := cfg.Ayanamsha(jdToCenturies(jdTDB))
	sid := mod360(tropical - aya)
	rashiIndex := int(boundaryDeg/30.0+0.5) % 12

	return SankrantiEvent{
		EpochTDBJD:              jdTDB,
		Rashi:                   Rashi(rashiIndex),
		SunSiderealLongitudeDeg: sid,
		SunTropicalLongitudeDeg: tropical,
	}, nil
}

func sankrantiZeroFunc(eng *engine.Engine, boundaryDeg float64, cfg SankrantiConfig) search.ZeroCrossingFunc {
	return func(t float64) (float64, error) {
		sid, err := sunSiderealLongitude(eng, t, cfg)
		if err != nil {
			return 0, err
		}
		return search.NormalizeToPM180(sid - boundaryDeg), nil
	}
}

// NextSankranti finds the next rashi ingress after jdTDB.
func NextSankranti(eng *engine.Engine, jdTDB float64, cfg SankrantiConfig) (*SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sidLon, err := sunSiderealLongitude(eng, jdTDB, cfg)
	if err != nil {
		return nil, err
	}
	boundary := nextBoundary(sidLon)

	degToGo := mod360(boundary - sidLon)
	estimateDays := degToGo / 0.986
	if estimateDays < 0.5 {
		estimateDays = 0.5
	}
	searchStart := jdTDB + estimateDays - 2.0

	maxSteps := int(maxSankrantiScanDays/cfg.StepDays) + 1
	f := sankrantiZeroFunc(eng, boundary, cfg)

	t, found, err := search.FindZeroCrossing(f, searchStart, cfg.StepDays, maxSteps, cfg.MaxIterations, cfg.ConvergenceDays)
	if err != nil {
		return nil, err
	}
	if found && t < jdTDB {
		t, found, err = search.FindZeroCrossing(f, jdTDB, cfg.StepDays, maxSteps, cfg.MaxIterations, cfg.ConvergenceDays)
		if err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, nil
	}

	event, err := buildSankrantiEvent(eng, t, boundary, cfg)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// PrevSankranti finds the previous rashi ingress before jdTDB.
func PrevSankranti(eng *engine.Engine, jdTDB float64, cfg SankrantiConfig) (*SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sidLon, err := sunSiderealLongitude(eng, jdTDB, cfg)
	if err != nil {
		return nil, err
	}
	boundary := prevBoundary(sidLon)

	degSince := mod360(sidLon - boundary)
	estimateDays := degSince / 0.986
	if estimateDays < 0.5 {
		estimateDays = 0.5
	}
	searchStart := jdTDB - estimateDays + 2.0

	maxSteps := int(maxSankrantiScanDays/cfg.StepDays) + 1
	f := sankrantiZeroFunc(eng, boundary, cfg)

	t, found, err := search.FindZeroCrossing(f, searchStart, -cfg.StepDays, maxSteps, cfg.MaxIterations, cfg.ConvergenceDays)
	if err != nil {
		return nil, err
	}
	if found && t > jdTDB {
		t, found, err = search.FindZeroCrossing(f, jdTDB, -cfg.StepDays, maxSteps, cfg.MaxIterations, cfg.ConvergenceDays)
		if err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, nil
	}

	event, err := buildSankrantiEvent(eng, t, boundary, cfg)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// SearchSankrantis returns every rashi ingress in [jdStart, jdEnd].
func SearchSankrantis(eng *engine.Engine, jdStart, jdEnd float64, cfg SankrantiConfig) ([]SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if jdEnd <= jdStart {
		return nil, xerr.New(xerr.InvalidConfig, "jd_end must be after jd_start")
	}

	var events []SankrantiEvent
	cursor := jdStart
	for {
		event, err := NextSankranti(eng, cursor, cfg)
		if err != nil {
			return nil, err
		}
		if event == nil || event.EpochTDBJD > jdEnd {
			break
		}
		events = append(events, *event)
		cursor = event.EpochTDBJD + 0.01
	}
	return events, nil
}

// NextSpecificSankranti finds the next time the Sun enters rashi.
func NextSpecificSankranti(eng *engine.Engine, jdTDB float64, rashi Rashi, cfg SankrantiConfig) (*SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	boundary := float64(rashi) * 30.0
	maxSteps := int(maxSankrantiScanDays/cfg.StepDays) + 1
	f := sankrantiZeroFunc(eng, boundary, cfg)

	t, found, err := search.FindZeroCrossing(f, jdTDB, cfg.StepDays, maxSteps, cfg.MaxIterations, cfg.ConvergenceDays)
	if err != nil || !found {
		return nil, err
	}
	event, err := buildSankrantiEvent(eng, t, boundary, cfg)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// PrevSpecificSankranti finds the previous time the Sun entered rashi.
func PrevSpecificSankranti(eng *engine.Engine, jdTDB float64, rashi Rashi, cfg SankrantiConfig) (*SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	boundary := float64(rashi) * 30.0
	maxSteps := int(maxSankrantiScanDays/cfg.StepDays) + 1
	f := sankrantiZeroFunc(eng, boundary, cfg)

	t, found, err := search.FindZeroCrossing(f, jdTDB, -cfg.StepDays, maxSteps, cfg.MaxIterations, cfg.ConvergenceDays)
	if err != nil || !found {
		return nil, err
	}
	event, err := buildSankrantiEvent(eng, t, boundary, cfg)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
