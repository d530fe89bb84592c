// Package conjunction finds when two bodies reach a target ecliptic
// longitude separation (conjunction, opposition, or an arbitrary aspect
// angle), plus the two higher-level searches built on that primitive: lunar
// phases (Amavasya/Purnima) and Sankranti (the Sun crossing a sidereal sign
// boundary).
package conjunction

import (
	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/xerr"
)

// maxScanDays bounds how far a next/prev search will scan before giving up;
// ~800 days covers the synodic period of every planet pair.
const maxScanDays = 800.0

// Config controls a conjunction/opposition/aspect search.
type Config struct {
	// TargetSeparationDeg is the longitude separation being searched for,
	// in [0, 360). 0 is conjunction, 180 is opposition.
	TargetSeparationDeg float64
	// StepDays is the coarse scan step: 0.5 for Moon pairs, 1 for inner
	// planets, 2 for outer planets.
	StepDays float64
	// MaxIterations bounds the bisection refinement (default 50 via the
	// New*Config constructors).
	MaxIterations int
	// ConvergenceDays is the bisection stop threshold (default 1e-8 via the
	// New*Config constructors).
	ConvergenceDays float64
}

// NewConjunctionConfig returns a Config searching for a 0-degree conjunction.
func NewConjunctionConfig(stepDays float64) Config { return newConfig(0.0, stepDays) }

// NewOppositionConfig returns a Config searching for a 180-degree opposition.
func NewOppositionConfig(stepDays float64) Config { return newConfig(180.0, stepDays) }

// NewAspectConfig returns a Config searching for an arbitrary aspect angle.
func NewAspectConfig(targetDeg, stepDays float64) Config { return newConfig(targetDeg, stepDays) }

func newConfig(targetDeg, stepDays float64) Config {
	return Config{
		TargetSeparationDeg: targetDeg,
		StepDays:            stepDays,
		MaxIterations:       50,
		ConvergenceDays:     1e-8,
	}
}

func (c Config) validate() error {
	if c.TargetSeparationDeg < 0 || c.TargetSeparationDeg >= 360 {
		return xerr.New(xerr.InvalidConfig, "target separation must be in [0, 360)")
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

// Event is one conjunction/aspect/opposition match: the epoch and both
// bodies' ecliptic-of-date longitude/latitude at that epoch.
type Event struct {
	EpochTDBJD            float64
	ActualSeparationDeg    float64
	Body1, Body2           engine.Body
	Body1LongitudeDeg      float64
	Body2LongitudeDeg      float64
	Body1LatitudeDeg       float64
	Body2LatitudeDeg       float64
}
