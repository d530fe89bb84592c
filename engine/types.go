// Package engine is the validated, cached query surface over one or more
// loaded SPK kernels: it resolves a (target, observer, frame, epoch)
// query to a state vector, applying frame rotations from the frames
// package and memoising results keyed on the exact epoch requested.
package engine

import "github.com/ashwinpai/goephemeris/frames"

// Body is a NAIF integer body code (Sun=10, Moon=301, Earth=399, planet
// barycenters 1..9, SSB=0). Observer uses the same type: SSB or a body.
type Body int32

// Common NAIF codes used across the package and its tests. Not an
// exhaustive registry — any NAIF code the loaded kernels cover is valid.
const (
	SSB               Body = 0
	MercuryBarycenter Body = 1
	VenusBarycenter   Body = 2
	EarthMoonBary     Body = 3
	MarsBarycenter    Body = 4
	JupiterBarycenter Body = 5
	SaturnBarycenter  Body = 6
	UranusBarycenter  Body = 7
	NeptuneBarycenter Body = 8
	PlutoBarycenter   Body = 9
	Sun               Body = 10
	Moon              Body = 301
	Earth             Body = 399
	Mercury           Body = 199
	Venus             Body = 299
	Mars              Body = 499
	Jupiter           Body = 599
	Saturn            Body = 699
	Uranus            Body = 799
	Neptune           Body = 899
	Pluto             Body = 999
)

// Frame is the reference frame a query's state vector is expressed in.
type Frame int

const (
	// ICRF is the native frame of the loaded SPK kernels: the International
	// Celestial Reference Frame, equivalent to J2000 equatorial to the
	// precision this engine cares about.
	ICRF Frame = iota
	// EclipticJ2000 is ICRF rotated by the fixed J2000 obliquity.
	EclipticJ2000
	// EclipticOfDate additionally applies 3-D ecliptic precession to the
	// query epoch, using the engine's configured precession model, and then
	// shifts the longitude by IAU-2000B nutation in longitude.
	EclipticOfDate
)

func (f Frame) valid() bool {
	return f == ICRF || f == EclipticJ2000 || f == EclipticOfDate
}

func (f Frame) String() string {
	switch f {
	case ICRF:
		return "ICRF"
	case EclipticJ2000:
		return "EclipticJ2000"
	case EclipticOfDate:
		return "EclipticOfDate"
	default:
		return "Unknown"
	}
}

// Query is one state-vector request: a target and observer body, the
// frame the result should be expressed in, and the epoch as a TDB Julian
// date.
type Query struct {
	Target     Body
	Observer   Body
	Frame      Frame
	EpochTDBJD float64
}

// StateVector is a position/velocity six-vector: position in km, velocity
// in km/s, in the frame the query requested.
type StateVector struct {
	PositionKm  [3]float64
	VelocityKmS [3]float64
}

// EngineConfig configures an Engine: the kernel files to load (merged at
// the segment-list level, so a body may resolve through different files
// for different chain hops), the LSK path, an optional EOP table path,
// cache capacity, a strict-validation flag, and the default precession
// model used for EclipticOfDate queries.
type EngineConfig struct {
	SPKPaths         []string
	LSKPath          string
	EOPPath          string // optional; carried through from LoadConfig, not read by New
	CacheCapacity    int
	StrictValidation bool
	PrecessionModel  frames.PrecessionModel
}
