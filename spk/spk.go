// Package spk loads NAIF SPK ephemeris kernels (DAF files holding Type-2
// Chebyshev position segments) and resolves body states relative to the
// Solar System Barycenter by walking each body's parent-centre chain.
package spk

import (
	"encoding/binary"
	"math"
	"os"
	"sort"

	"github.com/ashwinpai/goephemeris/chebyshev"
	"github.com/ashwinpai/goephemeris/daf"
	"github.com/ashwinpai/goephemeris/xerr"
)

const (
	j2000JD   = 2451545.0
	secPerDay = 86400.0
	// spkType2 is the only SPK data type this package evaluates; see
	// the Non-goals on data-type support.
	spkType2 = 2
)

// segment is one Type-2 SPK segment: a run of fixed-length Chebyshev
// records covering target's position relative to center over
// [startSec, endSec] (TDB seconds past J2000).
type segment struct {
	target, center int
	startSec       float64
	endSec         float64
	init           float64 // first record's start epoch, TDB seconds past J2000
	intLen         float64 // seconds covered by one record
	rsize          int     // doubles per record (2 + 3*nCoeffs)
	n              int     // number of records
	nCoeffs        int
	data           []float64 // record data only, descriptor words stripped
}

// Kernel is a parsed, in-memory SPK file. A Kernel is immutable after
// Load and safe to query concurrently.
type Kernel struct {
	byTarget map[int][]*segment // preserves file order, not epoch order
}

// Load reads an SPK file into memory and indexes its Type-2 segments.
func Load(path string) (*Kernel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerr.Wrapf(xerr.KernelLoad, err, "reading SPK file %q", path)
	}

	fr, err := daf.ParseFileRecord(data)
	if err != nil {
		return nil, err
	}
	if fr.ND != 2 || fr.NI != 6 {
		return nil, xerr.Newf(xerr.KernelLoad, "unexpected SPK summary shape ND=%d NI=%d", fr.ND, fr.NI)
	}

	summaries, err := daf.ReadSummaries(data, fr)
	if err != nil {
		return nil, err
	}

	k := &Kernel{byTarget: make(map[int][]*segment)}
	for _, s := range summaries {
		startSec, endSec := s.Doubles[0], s.Doubles[1]
		target := int(s.Ints[0])
		center := int(s.Ints[1])
		dataType := int(s.Ints[3])
		startWord := int(s.Ints[4])
		endWord := int(s.Ints[5])

		if dataType != spkType2 {
			return nil, xerr.Newf(xerr.UnsupportedDataType, "SPK segment target=%d center=%d has unsupported data type %d (only Type 2 is supported)", target, center, dataType)
		}

		nWords := endWord - startWord + 1
		if nWords < 4 {
			return nil, xerr.Newf(xerr.KernelLoad, "SPK segment target=%d center=%d too small (%d words)", target, center, nWords)
		}
		byteOff := (startWord - 1) * 8
		raw := data[byteOff : byteOff+nWords*8]

		order := fr.Order.binary()
		words := make([]float64, nWords)
		for i := range words {
			words[i] = readF64(raw, i*8, order)
		}

		seg := &segment{
			target:   target,
			center:   center,
			startSec: startSec,
			endSec:   endSec,
			init:     words[nWords-4],
			intLen:   words[nWords-3],
			rsize:    int(words[nWords-2]),
			n:        int(words[nWords-1]),
			data:     words[:nWords-4],
		}
		if (seg.rsize-2)%3 != 0 {
			return nil, xerr.Newf(xerr.KernelLoad, "SPK segment target=%d center=%d has malformed record size %d", target, center, seg.rsize)
		}
		seg.nCoeffs = (seg.rsize - 2) / 3

		k.byTarget[target] = append(k.byTarget[target], seg)
	}

	return k, nil
}

func readF64(data []byte, offset int, order binary.ByteOrder) float64 {
	return math.Float64frombits(order.Uint64(data[offset : offset+8]))
}

// isPlanetCode reports whether code is a planet's own NAIF ID (x99, for
// x in 1..9), as opposed to its barycenter (x) or a satellite/Sun code.
func isPlanetCode(code int) bool {
	return code >= 199 && code <= 999 && code%100 == 99
}

func planetBarycenter(code int) int { return code / 100 }

// resolve picks the segment target to actually look up for code: code
// itself if the kernel has a direct segment, otherwise its barycenter
// fallback for planet codes lacking a dedicated segment.
func (k *Kernel) resolve(code int) (int, bool) {
	if _, ok := k.byTarget[code]; ok {
		return code, true
	}
	if isPlanetCode(code) {
		bary := planetBarycenter(code)
		if _, ok := k.byTarget[bary]; ok {
			return bary, true
		}
	}
	return 0, false
}

// pickSegment returns the first segment (in file order) for target whose
// epoch range contains seconds, per the kernel's segment-selection rule.
func pickSegment(segs []*segment, seconds float64) (*segment, error) {
	for _, seg := range segs {
		if seconds >= seg.startSec && seconds <= seg.endSec {
			return seg, nil
		}
	}
	return nil, xerr.Newf(xerr.EpochOutOfRange, "no segment covers epoch %.6f seconds past J2000 for target %d", seconds, segs[0].target)
}

// evaluate returns position (km) and velocity (km/s) for target relative
// to its segment's center, at the given TDB epoch (seconds past J2000),
// along with that center's NAIF code.
func (k *Kernel) evaluate(target int, seconds float64) (pos, vel [3]float64, center int, err error) {
	segs, ok := k.byTarget[target]
	if !ok {
		return pos, vel, 0, xerr.Newf(xerr.SegmentNotFound, "no segment for target %d", target)
	}
	seg, err := pickSegment(segs, seconds)
	if err != nil {
		return pos, vel, 0, err
	}

	idx := int((seconds - seg.init) / seg.intLen)
	if idx < 0 {
		idx = 0
	}
	if idx >= seg.n {
		idx = seg.n - 1
	}

	offset := seconds - seg.init - float64(idx)*seg.intLen
	tc := 2.0*offset/seg.intLen - 1.0

	recStart := idx * seg.rsize
	for comp := 0; comp < 3; comp++ {
		cStart := recStart + 2 + comp*seg.nCoeffs
		coeffs := seg.data[cStart : cStart+seg.nCoeffs]
		pos[comp] = chebyshev.Value(coeffs, tc)
		// Chain rule: d(pos)/d(seconds) = chebyshevDerivative(tc) * d(tc)/d(seconds)
		vel[comp] = chebyshev.Derivative(coeffs, tc) * (2.0 / seg.intLen)
	}
	return pos, vel, seg.center, nil
}

// Step resolves one hop of the parent-centre chain for code: the segment
// position/velocity of code relative to its centre, the centre's NAIF
// code, and whether this kernel has a segment (or barycenter fallback) for
// code at all. A false ok with a nil err means "try another kernel", the
// shape a multi-kernel engine needs to merge segment lists across files.
func (k *Kernel) Step(code int, tdbSecondsPastJ2000 float64) (pos, vel [3]float64, center int, ok bool, err error) {
	eff, found := k.resolve(code)
	if !found {
		return pos, vel, 0, false, nil
	}
	pos, vel, center, err = k.evaluate(eff, tdbSecondsPastJ2000)
	if err != nil {
		return pos, vel, 0, true, err
	}
	return pos, vel, center, true, nil
}

// StateWRTSSB returns body's geometric position (km) and velocity (km/s)
// relative to the Solar System Barycenter at the given TDB epoch (seconds
// past J2000), by summing states along the chain of segments from body to
// SSB, applying the planet-to-barycenter fallback where needed.
func (k *Kernel) StateWRTSSB(body int, tdbSecondsPastJ2000 float64) (pos, vel [3]float64, err error) {
	if body == 0 {
		return pos, vel, nil
	}

	current := body
	visited := make(map[int]bool)
	for current != 0 {
		if visited[current] {
			return pos, vel, xerr.Newf(xerr.SegmentNotFound, "cycle detected resolving body %d to SSB at body %d", body, current)
		}
		visited[current] = true

		segPos, segVel, center, ok, err := k.Step(current, tdbSecondsPastJ2000)
		if err != nil {
			return pos, vel, err
		}
		if !ok {
			return pos, vel, xerr.Newf(xerr.SegmentNotFound, "body %d has no segment and no barycenter fallback (needed in chain for body %d)", current, body)
		}
		pos[0] += segPos[0]
		pos[1] += segPos[1]
		pos[2] += segPos[2]
		vel[0] += segVel[0]
		vel[1] += segVel[1]
		vel[2] += segVel[2]
		current = center
	}
	return pos, vel, nil
}

// State returns the geometric (observer-to-target) state vector: position
// in km and velocity in km/s, ICRF frame, at the given TDB epoch (seconds
// past J2000).
func (k *Kernel) State(observer, target int, tdbSecondsPastJ2000 float64) (pos, vel [3]float64, err error) {
	obsPos, obsVel, err := k.StateWRTSSB(observer, tdbSecondsPastJ2000)
	if err != nil {
		return pos, vel, err
	}
	tgtPos, tgtVel, err := k.StateWRTSSB(target, tdbSecondsPastJ2000)
	if err != nil {
		return pos, vel, err
	}
	return [3]float64{tgtPos[0] - obsPos[0], tgtPos[1] - obsPos[1], tgtPos[2] - obsPos[2]},
		[3]float64{tgtVel[0] - obsVel[0], tgtVel[1] - obsVel[1], tgtVel[2] - obsVel[2]},
		nil
}

// Targets reports the distinct NAIF target codes this kernel has segments
// for, sorted ascending. Diagnostic helper, not used on any hot path.
func (k *Kernel) Targets() []int {
	out := make([]int, 0, len(k.byTarget))
	for t := range k.byTarget {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
