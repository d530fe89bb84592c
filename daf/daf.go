// Package daf parses the NAIF DAF (Double-precision Array File) binary
// container: the 1024-byte file record and the linked chain of summary
// records that follows it. SPK, PCK, and CK kernels are all DAF files;
// this package only concerns itself with the generic container, leaving
// segment-type interpretation (e.g. SPK Type 2) to higher layers.
package daf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/ashwinpai/goephemeris/xerr"
)

// RecordBytes is the fixed size of every DAF record.
const RecordBytes = 1024

var (
	ltlIEEE = []byte("LTL-IEEE")
	bigIEEE = []byte("BIG-IEEE")
)

// ByteOrder identifies the detected endianness of a DAF file's numeric data.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (b ByteOrder) binary() binary.ByteOrder {
	if b == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// FileRecord is the parsed first 1024-byte record of a DAF file.
type FileRecord struct {
	FileID       string
	ND           int
	NI           int
	InternalName string
	Fward        int
	Bward        int
	Free         int
	Order        ByteOrder
}

// Summary holds one DAF summary: ND doubles followed by NI packed integers.
type Summary struct {
	Doubles []float64
	Ints    []int32
}

func readF64(data []byte, offset int, order binary.ByteOrder) float64 {
	return math.Float64frombits(order.Uint64(data[offset : offset+8]))
}

func readI32(data []byte, offset int, order binary.ByteOrder) int32 {
	return int32(order.Uint32(data[offset : offset+4]))
}

// ParseFileRecord parses the DAF file record (bytes 0..1024 of the file).
func ParseFileRecord(data []byte) (FileRecord, error) {
	if len(data) < RecordBytes {
		return FileRecord{}, xerr.Newf(xerr.KernelLoad, "DAF file record too small: expected %d bytes, got %d", RecordBytes, len(data))
	}

	locfmt := data[88:96]
	var order ByteOrder
	switch {
	case string(locfmt) == string(ltlIEEE):
		order = LittleEndian
	case string(locfmt) == string(bigIEEE):
		order = BigEndian
	default:
		return FileRecord{}, xerr.Newf(xerr.KernelLoad, "unrecognised DAF byte-order marker %q", string(locfmt))
	}
	bo := order.binary()

	fileID := strings.TrimSpace(string(data[0:8]))
	if !strings.HasPrefix(fileID, "DAF/") {
		return FileRecord{}, xerr.Newf(xerr.KernelLoad, "not a DAF file: file ID is %q", fileID)
	}

	return FileRecord{
		FileID:       fileID,
		ND:           int(readI32(data, 8, bo)),
		NI:           int(readI32(data, 12, bo)),
		InternalName: strings.TrimSpace(string(data[16:76])),
		Fward:        int(readI32(data, 76, bo)),
		Bward:        int(readI32(data, 80, bo)),
		Free:         int(readI32(data, 84, bo)),
		Order:        order,
	}, nil
}

// summarySize is the number of doubles occupied by one summary: ND doubles
// plus ceil(NI/2) doubles worth of packed 4-byte integers.
func summarySize(nd, ni int) int {
	return nd + (ni+1)/2
}

// ReadSummaries walks the summary-record linked list starting at the file
// record's forward pointer and returns every summary found.
func ReadSummaries(data []byte, fr FileRecord) ([]Summary, error) {
	bo := fr.Order.binary()
	ss := summarySize(fr.ND, fr.NI)
	ssBytes := ss * 8

	var summaries []Summary
	recNum := fr.Fward

	for recNum != 0 {
		recOffset := (recNum - 1) * RecordBytes
		if recOffset+RecordBytes > len(data) {
			return nil, xerr.Newf(xerr.KernelLoad, "summary record %d extends past end of file", recNum)
		}
		rec := data[recOffset : recOffset+RecordBytes]

		next := int(readF64(rec, 0, bo))
		nsum := int(readF64(rec, 16, bo))

		for i := 0; i < nsum; i++ {
			sumOffset := 24 + i*ssBytes
			if sumOffset+ssBytes > RecordBytes {
				return nil, xerr.Newf(xerr.KernelLoad, "summary %d in record %d overflows record boundary", i, recNum)
			}
			sum := rec[sumOffset : sumOffset+ssBytes]

			doubles := make([]float64, fr.ND)
			for d := 0; d < fr.ND; d++ {
				doubles[d] = readF64(sum, d*8, bo)
			}

			intBase := fr.ND * 8
			ints := make([]int32, fr.NI)
			for j := 0; j < fr.NI; j++ {
				ints[j] = readI32(sum, intBase+j*4, bo)
			}

			summaries = append(summaries, Summary{Doubles: doubles, Ints: ints})
		}

		recNum = next
	}

	return summaries, nil
}

// String is a small debug helper, not used on any hot path.
func (fr FileRecord) String() string {
	return fmt.Sprintf("DAF{id=%q nd=%d ni=%d name=%q}", fr.FileID, fr.ND, fr.NI, fr.InternalName)
}
