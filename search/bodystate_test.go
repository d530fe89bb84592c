package search

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

type segSpec struct {
	target, center int
	startSec       float64
	endSec         float64
	constPos       [3]float64
}

func buildSPK(t *testing.T, specs []segSpec) string {
	t.Helper()
	const nd, ni = 2, 6
	const nCoeffs = 1
	const rsize = 2 + 3*nCoeffs
	const recordBytes = 1024

	var dataBlob []byte
	var summaryBufs [][]byte
	wordCursor := 0

	for _, s := range specs {
		record := []float64{
			(s.startSec + s.endSec) / 2,
			(s.endSec - s.startSec) / 2,
			s.constPos[0], s.constPos[1], s.constPos[2],
		}
		descriptor := []float64{s.startSec, s.endSec - s.startSec, float64(rsize), 1}
		words := append(append([]float64{}, record...), descriptor...)

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
	copy(fileRecord[16:76], "synthetic search test kernel")
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

// testEngine builds an Engine over a single Sun-at-origin, Earth-offset
// synthetic kernel, for exercising the body-state helpers without a real
// SPK file.
func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	path := buildSPK(t, []segSpec{
		{target: 10, center: 0, startSec: -1e10, endSec: 1e10, constPos: [3]float64{0, 0, 0}},
		{target: 399, center: 0, startSec: -1e10, endSec: 1e10, constPos: [3]float64{1.496e8, 0, 0}},
	})
	e, err := engine.New(engine.EngineConfig{
		SPKPaths:      []string{path},
		LSKPath:       writeLSK(t),
		CacheCapacity: 64,
	})
	require.NoError(t, err)
	return e
}

func TestBodyEclipticLonLatReturnsFiniteValues(t *testing.T) {
	e := testEngine(t)
	lon, lat, err := BodyEclipticLonLat(e, engine.Sun, 2451545.0)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(lon))
	assert.False(t, math.IsNaN(lat))
	assert.GreaterOrEqual(t, lon, 0.0)
	assert.Less(t, lon, 360.0)
}

func TestBodyEclipticLonLatSpeedZeroForFixedBody(t *testing.T) {
	// The synthetic Sun sits at a constant ICRF position. Its ecliptic-of-date
	// longitude still drifts (from precession) a century away from J2000, but
	// near the reference epoch the drift over a 1-minute window is negligible.
	e := testEngine(t)
	_, _, speed, err := BodyEclipticLonLatSpeed(e, engine.Sun, 2451545.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, speed, 1e-3)
}
