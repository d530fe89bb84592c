package eop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two fixed-column rows. Columns 1-9 hold MJD; columns 59-68 hold UT1-UTC.
// Padding mirrors the real finals2000A.all layout closely enough for the
// parser's slice offsets.
func sampleLine(mjd string, dut1 string) string {
	line := make([]byte, 68)
	for i := range line {
		line[i] = ' '
	}
	copy(line[0:len(mjd)], mjd)
	copy(line[58:58+len(dut1)], dut1)
	return string(line)
}

func TestParseAndInterpolate(t *testing.T) {
	content := strings.Join([]string{
		sampleLine("59000.00", "0.100"),
		sampleLine("59001.00", "0.200"),
	}, "\n")

	table, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	jdUTC := 59000.5 + mjdEpoch
	ut1, err := table.UTCToUT1JD(jdUTC)
	require.NoError(t, err)
	assert.InDelta(t, jdUTC+0.150/86400.0, ut1, 1e-9)
}

func TestOutOfRangeFails(t *testing.T) {
	content := sampleLine("59000.00", "0.100")
	table, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	_, err = table.UTCToUT1JD(1.0)
	require.Error(t, err)
}

func TestEmptyTableFails(t *testing.T) {
	table, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	_, err = table.UTCToUT1JD(2451545.0)
	require.Error(t, err)
}
