// Package stationary finds stationary points (where a body's ecliptic
// longitude momentarily stops advancing or retreating) and max-speed
// points (where its angular rate peaks), by scanning and refining
// BodyEclipticLonLatSpeed's derivative the way the search package scans
// and refines any other time-series quantity.
package stationary

import "github.com/ashwinpai/goephemeris/xerr"

// Motion is the direction of a body's apparent ecliptic motion relative
// to Earth immediately before a stationary point, i.e. the motion the
// station ends.
type Motion int

const (
	// Direct is normal eastward (prograde) motion; a Direct station is
	// one where the longitude speed falls through zero.
	Direct Motion = iota
	// Retrograde is apparent westward motion, caused by Earth overtaking
	// (or being overtaken by) the body along its orbit; a Retrograde
	// station is one where the longitude speed rises through zero.
	Retrograde
)

func (m Motion) String() string {
	if m == Retrograde {
		return "Retrograde"
	}
	return "Direct"
}

// Config controls a stationary-point or max-speed search.
type Config struct {
	// StepDays is the coarse scan step. Must be small enough that no two
	// sign changes of the speed function occur within one step; outer
	// planets can use several days, the Moon needs well under a day.
	StepDays float64
	// ConvergenceDays is the bisection/refinement stop threshold.
	ConvergenceDays float64
	// DerivativeWindowDays is the central-difference half-window used to
	// estimate dspeed/dt when classifying a stationary point. Max-speed
	// searches do not use it: they locate speed extrema directly.
	DerivativeWindowDays float64
}

// DefaultConfig returns a Config with a 1-day scan step, suitable for the
// outer and superior planets; callers should shrink StepDays for the Moon
// or inner planets.
func DefaultConfig() Config {
	return Config{
		StepDays:             1.0,
		ConvergenceDays:      1e-6,
		DerivativeWindowDays: 0.5,
	}
}

func (c Config) validate() error {
	if c.StepDays <= 0 {
		return xerr.New(xerr.InvalidConfig, "step_size_days must be positive")
	}
	if c.ConvergenceDays <= 0 {
		return xerr.New(xerr.InvalidConfig, "convergence_days must be positive")
	}
	if c.DerivativeWindowDays <= 0 {
		return xerr.New(xerr.InvalidConfig, "derivative_window_days must be positive")
	}
	return nil
}

// Event is a stationary point: the body's ecliptic longitude speed
// crosses zero at EpochTDBJD.
type Event struct {
	EpochTDBJD  float64
	LongitudeDeg float64
	Motion      Motion
}

// MaxSpeedEvent is a local extremum of a body's ecliptic longitude speed:
// the fastest direct or retrograde motion around EpochTDBJD.
type MaxSpeedEvent struct {
	EpochTDBJD       float64
	LongitudeDeg     float64
	SpeedDegPerDay   float64
	Retrograde       bool
}
