// Package eop parses IERS Earth-orientation-parameter tables
// (finals2000A.all) and derives UT1 from UTC via linear interpolation of
// the tabulated UT1-UTC offset.
package eop

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ashwinpai/goephemeris/timescale"
	"github.com/ashwinpai/goephemeris/xerr"
)

// mjdEpoch is the Julian Date corresponding to Modified Julian Date 0.
const mjdEpoch = 2400000.5

// Row is one parsed finals2000A.all record: a UTC Julian Date and the
// corresponding UT1-UTC offset in seconds.
type Row struct {
	JDUTC float64
	DUT1  float64
}

// Table is a sorted, immutable set of EOP rows, safe to share across
// goroutines once constructed.
type Table struct {
	rows []Row
}

// Load reads and parses a finals2000A.all file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerr.Wrapf(xerr.KernelLoad, err, "opening EOP file %q", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads finals2000A.all fixed-column records from r. Only the MJD
// (columns 1-9) and the UT1-UTC column (columns 59-68, the "UT1-UTC" field
// of the IERS Bulletin A prediction/final section) are consumed; rows
// without a parseable UT1-UTC are skipped rather than failing the whole
// file, since recent rows in the file commonly lack predictions.
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 1024)

	var rows []Row
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 68 {
			continue
		}
		mjdStr := strings.TrimSpace(line[0:9])
		dut1Str := strings.TrimSpace(line[58:68])
		if mjdStr == "" || dut1Str == "" {
			continue
		}
		mjd, err := strconv.ParseFloat(mjdStr, 64)
		if err != nil {
			continue
		}
		dut1, err := strconv.ParseFloat(dut1Str, 64)
		if err != nil {
			continue
		}
		rows = append(rows, Row{JDUTC: mjd + mjdEpoch, DUT1: dut1})
	}
	if err := scanner.Err(); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "scanning EOP table")
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].JDUTC < rows[j].JDUTC })
	return &Table{rows: rows}, nil
}

// UTCToUT1JD linearly interpolates DUT1 between the bracketing rows and
// returns jdUTC + dut1/86400. Fails with TimeConversion if jdUTC falls
// outside the tabulated range.
func (t *Table) UTCToUT1JD(jdUTC float64) (float64, error) {
	n := len(t.rows)
	if n == 0 {
		return 0, xerr.New(xerr.TimeConversion, "EOP table is empty")
	}
	if jdUTC < t.rows[0].JDUTC || jdUTC > t.rows[n-1].JDUTC {
		return 0, xerr.Newf(xerr.TimeConversion, "epoch %.6f JD outside EOP table range [%.6f, %.6f]", jdUTC, t.rows[0].JDUTC, t.rows[n-1].JDUTC)
	}

	i := sort.Search(n, func(i int) bool { return t.rows[i].JDUTC >= jdUTC })
	if i < n && t.rows[i].JDUTC == jdUTC {
		return jdUTC + t.rows[i].DUT1/timescale.SecPerDay, nil
	}

	lo, hi := t.rows[i-1], t.rows[i]
	frac := (jdUTC - lo.JDUTC) / (hi.JDUTC - lo.JDUTC)
	dut1 := lo.DUT1 + frac*(hi.DUT1-lo.DUT1)
	return jdUTC + dut1/timescale.SecPerDay, nil
}

// Len reports the number of parsed rows.
func (t *Table) Len() int { return len(t.rows) }
