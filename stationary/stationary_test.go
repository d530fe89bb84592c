package stationary

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinpai/goephemeris/engine"
)

const sampleLSK = `
\begindata
DELTET/DELTA_T_A       =   32.184
DELTET/K               =    1.657D-3
DELTET/EB              =    1.671D-2
DELTET/M               = (  6.239996   1.99096871D-7  )
DELTET/DELTA_AT        = ( 37,   @2017-JAN-1  )
\begintext
`

type linearSeg struct {
	target, center int
	startSec       float64
	endSec         float64
	posA, posB     [3]float64
}

func buildLinearSPK(t *testing.T, specs []linearSeg) string {
	t.Helper()
	const nd, ni = 2, 6
	const nCoeffs = 2
	const rsize = 2 + 3*nCoeffs
	const recordBytes = 1024

	var dataBlob []byte
	var summaryBufs [][]byte
	wordCursor := 0

	for _, s := range specs {
		mid := (s.startSec + s.endSec) / 2
		radius := (s.endSec - s.startSec) / 2

		words := []float64{mid, radius}
		for axis := 0; axis < 3; axis++ {
			c0 := (s.posA[axis] + s.posB[axis]) / 2
			c1 := (s.posB[axis] - s.posA[axis]) / 2
			words = append(words, c0, c1)
		}
		descriptor := []float64{s.startSec, s.endSec - s.startSec, float64(rsize), 1}
		words = append(words, descriptor...)

		buf := make([]byte, len(words)*8)
		for i, w := range words {
			binary.LittleEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(w))
		}
		dataBlob = append(dataBlob, buf...)

		// DAF word addresses are absolute and 1-based: the data blob
		// follows the file record and the summary record.
		startWord := 2*recordBytes/8 + wordCursor + 1
		endWord := 2*recordBytes/8 + wordCursor + len(words)
		wordCursor += len(words)

		ssBytes := nd*8 + ((ni+1)/2)*8
		sumBuf := make([]byte, ssBytes)
		binary.LittleEndian.PutUint64(sumBuf[0:8], math.Float64bits(s.startSec))
		binary.LittleEndian.PutUint64(sumBuf[8:16], math.Float64bits(s.endSec))
		ints := []int32{int32(s.target), int32(s.center), 1, 2, int32(startWord), int32(endWord)}
		for i, v := range ints {
			binary.LittleEndian.PutUint32(sumBuf[nd*8+i*4:nd*8+i*4+4], uint32(v))
		}
		summaryBufs = append(summaryBufs, sumBuf)
	}

	fileRecord := make([]byte, recordBytes)
	copy(fileRecord[0:8], "DAF/SPK ")
	binary.LittleEndian.PutUint32(fileRecord[8:12], uint32(nd))
	binary.LittleEndian.PutUint32(fileRecord[12:16], uint32(ni))
	copy(fileRecord[16:76], "synthetic stationary test kernel")
	binary.LittleEndian.PutUint32(fileRecord[76:80], 2)
	binary.LittleEndian.PutUint32(fileRecord[80:84], 2)
	binary.LittleEndian.PutUint32(fileRecord[84:88], 2*uint32(recordBytes)/8+1)
	copy(fileRecord[88:96], "LTL-IEEE")

	summaryRecord := make([]byte, recordBytes)
	binary.LittleEndian.PutUint64(summaryRecord[0:8], math.Float64bits(0))
	binary.LittleEndian.PutUint64(summaryRecord[8:16], math.Float64bits(0))
	binary.LittleEndian.PutUint64(summaryRecord[16:24], math.Float64bits(float64(len(summaryBufs))))
	pos := 24
	for _, sb := range summaryBufs {
		copy(summaryRecord[pos:pos+len(sb)], sb)
		pos += len(sb)
	}

	all := append(append(fileRecord, summaryRecord...), dataBlob...)

	path := filepath.Join(t.TempDir(), "synthetic.bsp")
	require.NoError(t, os.WriteFile(path, all, 0o644))
	return path
}

func writeLSK(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "naif.tls")
	require.NoError(t, os.WriteFile(path, []byte(sampleLSK), 0o644))
	return path
}

// loopEngine builds a fixed Earth at the origin and Mars tracing a 4-day
// diamond loop directly around it (target 499, center 399), so Mars's
// geocentric longitude sweeps monotonically through a full circle: always
// direct motion, with four speed maxima (fastest at each edge midpoint,
// closest approach to Earth) and no stationary points.
func loopEngine(t *testing.T) (*engine.Engine, float64) {
	t.Helper()
	const d = 2.28e8
	const day = 86400.0

	a := [3]float64{d, 0, 0}
	b := [3]float64{0, d, 0}
	c := [3]float64{-d, 0, 0}
	e := [3]float64{0, -d, 0}

	marsSegs := []linearSeg{
		{target: 499, center: 399, startSec: 0, endSec: day, posA: a, posB: b},
		{target: 499, center: 399, startSec: day, endSec: 2 * day, posA: b, posB: c},
		{target: 499, center: 399, startSec: 2 * day, endSec: 3 * day, posA: c, posB: e},
		{target: 499, center: 399, startSec: 3 * day, endSec: 4 * day, posA: e, posB: a},
	}
	earthFixed := linearSeg{target: 399, center: 0, startSec: -1e9, endSec: 1e9}

	specs := append([]linearSeg{earthFixed}, marsSegs...)
	path := buildLinearSPK(t, specs)

	e, err := engine.New(engine.EngineConfig{
		SPKPaths:      []string{path},
		LSKPath:       writeLSK(t),
		CacheCapacity: 256,
	})
	require.NoError(t, err)

	const j2000JD = 2451545.0
	return e, j2000JD
}

func TestConfigValidateRejectsBadFields(t *testing.T) {
	assert.Error(t, Config{StepDays: 0, ConvergenceDays: 1e-6, DerivativeWindowDays: 0.5}.validate())
	assert.Error(t, Config{StepDays: 1, ConvergenceDays: 0, DerivativeWindowDays: 0.5}.validate())
	assert.Error(t, Config{StepDays: 1, ConvergenceDays: 1e-6, DerivativeWindowDays: 0}.validate())
	assert.NoError(t, DefaultConfig().validate())
}

func TestMotionStringNames(t *testing.T) {
	assert.Equal(t, "Direct", Direct.String())
	assert.Equal(t, "Retrograde", Retrograde.String())
}

// searchMargin keeps every sample FindMaxima/FindDiscrete take (FindMaxima
// overshoots the requested range by one step, and each sample probes +/- a
// finite difference window on top of that) inside the kernel's covered span.
const searchMargin = 0.1

func TestFindStationaryPointsEmptyForMonotonicDirectLoop(t *testing.T) {
	eng, epoch0 := loopEngine(t)
	cfg := Config{StepDays: 0.05, ConvergenceDays: 1e-6, DerivativeWindowDays: 0.02}

	events, err := FindStationaryPoints(eng, engine.Mars, epoch0+searchMargin, epoch0+4.0-searchMargin, cfg)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFindMaxSpeedPointsFindsDirectExtrema(t *testing.T) {
	eng, epoch0 := loopEngine(t)
	cfg := Config{StepDays: 0.05, ConvergenceDays: 1e-6, DerivativeWindowDays: 0.02}

	start, end := epoch0+searchMargin, epoch0+4.0-searchMargin
	events, err := FindMaxSpeedPoints(eng, engine.Mars, start, end, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	for _, e := range events {
		assert.GreaterOrEqual(t, e.EpochTDBJD, start)
		assert.LessOrEqual(t, e.EpochTDBJD, end)
	}
}
