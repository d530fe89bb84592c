package daf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarySizeSPK(t *testing.T) {
	// SPK: ND=2, NI=6 -> SS = 2 + ceil(6/2) = 5.
	assert.Equal(t, 5, summarySize(2, 6))
}

func TestParseFileRecordBadEndianness(t *testing.T) {
	data := make([]byte, RecordBytes)
	copy(data[0:8], "DAF/SPK ")
	copy(data[88:96], "UNKNOWN!")

	_, err := ParseFileRecord(data)
	require.Error(t, err)
}

func TestParseFileRecordBadFileID(t *testing.T) {
	data := make([]byte, RecordBytes)
	copy(data[0:8], "NOTADAF!")
	copy(data[88:96], ltlIEEE)

	_, err := ParseFileRecord(data)
	require.Error(t, err)
}

func TestParseFileRecordTooSmall(t *testing.T) {
	_, err := ParseFileRecord(make([]byte, 10))
	require.Error(t, err)
}

func TestParseFileRecordHappyPath(t *testing.T) {
	data := make([]byte, RecordBytes)
	copy(data[0:8], "DAF/SPK ")
	copy(data[88:96], ltlIEEE)
	littleEndianPutI32(data[8:12], 2)
	littleEndianPutI32(data[12:16], 6)
	copy(data[16:76], "TEST KERNEL")
	littleEndianPutI32(data[76:80], 0)

	fr, err := ParseFileRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "DAF/SPK", fr.FileID)
	assert.Equal(t, 2, fr.ND)
	assert.Equal(t, 6, fr.NI)
	assert.Equal(t, LittleEndian, fr.Order)
}

func littleEndianPutI32(b []byte, v int32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
