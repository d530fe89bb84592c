// Package ephc is the cgo C ABI surface for the engine package: a
// fixed-layout config/query/state struct triplet plus an opaque handle,
// so a C (or any FFI-capable) caller can load kernels and run state
// queries without linking against Go's runtime types directly. The
// struct shapes mirror a bounded-capacity, no-heap-on-the-C-side
// convention: path fields are fixed-size UTF-8 byte arrays, not
// caller-owned pointers, so the Go side never has to reason about the
// lifetime of memory it didn't allocate.
package ephc

/*
#include "ephc_types.h"
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/frames"
	"github.com/ashwinpai/goephemeris/xerr"
)

const (
	pathCapacity = 512
	maxSPKPaths  = 8

	// apiVersion is bumped whenever a struct layout or status code changes
	// in a way that breaks binary compatibility with existing callers.
	apiVersion = 2
)

// Status codes returned by every exported function. Ok is the only
// success value; everything else tells the caller which stage failed.
const (
	statusOk               C.int = 0
	statusInvalidConfig    C.int = 1
	statusInvalidQuery     C.int = 2
	statusKernelLoad       C.int = 3
	statusTimeConversion   C.int = 4
	statusUnsupportedQuery C.int = 5
	statusEpochOutOfRange  C.int = 6
	statusNullPointer      C.int = 7
	statusInternal         C.int = 255
)

func statusFromErr(err error) C.int {
	switch {
	case xerr.Is(err, xerr.InvalidConfig):
		return statusInvalidConfig
	case xerr.Is(err, xerr.InvalidQuery):
		return statusInvalidQuery
	case xerr.Is(err, xerr.KernelLoad):
		return statusKernelLoad
	case xerr.Is(err, xerr.TimeConversion):
		return statusTimeConversion
	case xerr.Is(err, xerr.UnsupportedDataType):
		return statusUnsupportedQuery
	case xerr.Is(err, xerr.EpochOutOfRange):
		return statusEpochOutOfRange
	default:
		return statusInternal
	}
}

// decodePath reads a nul-terminated (or capacity-filling) UTF-8 path out
// of a fixed pathCapacity-byte C array.
func decodePath(arr *C.char) string {
	buf := C.GoBytes(unsafe.Pointer(arr), C.int(pathCapacity))
	end := pathCapacity
	for i, b := range buf {
		if b == 0 {
			end = i
			break
		}
	}
	return string(buf[:end])
}

// configFromC validates and converts a C-compatible engine config into
// the engine package's native EngineConfig.
func configFromC(c *C.EphEngineConfig) (engine.EngineConfig, C.int) {
	count := int(c.spk_path_count)
	if count == 0 || count > maxSPKPaths {
		return engine.EngineConfig{}, statusInvalidConfig
	}

	paths := make([]string, count)
	for i := 0; i < count; i++ {
		ptr := (*C.char)(unsafe.Pointer(&c.spk_paths_utf8[i][0]))
		path := decodePath(ptr)
		if path == "" {
			return engine.EngineConfig{}, statusInvalidConfig
		}
		paths[i] = path
	}

	lskPath := decodePath((*C.char)(unsafe.Pointer(&c.lsk_path_utf8[0])))
	if lskPath == "" {
		return engine.EngineConfig{}, statusInvalidConfig
	}

	return engine.EngineConfig{
		SPKPaths:         paths,
		LSKPath:          lskPath,
		CacheCapacity:    int(c.cache_capacity),
		StrictValidation: c.strict_validation != 0,
		PrecessionModel:  frames.DefaultPrecessionModel,
	}, statusOk
}

func queryFromC(q *C.EphQuery) engine.Query {
	return engine.Query{
		Target:     engine.Body(q.target),
		Observer:   engine.Body(q.observer),
		Frame:      engine.Frame(q.frame),
		EpochTDBJD: float64(q.epoch_tdb_jd),
	}
}

func stateToC(sv engine.StateVector, out *C.EphStateVector) {
	for i := 0; i < 3; i++ {
		out.position_km[i] = C.double(sv.PositionKm[i])
		out.velocity_km_s[i] = C.double(sv.VelocityKmS[i])
	}
}

// ffiBoundary runs f and converts any panic crossing the Go/C boundary
// into statusInternal rather than letting it unwind into C's stack.
func ffiBoundary(f func() C.int) (status C.int) {
	defer func() {
		if r := recover(); r != nil {
			status = statusInternal
		}
	}()
	return f()
}

//export eph_api_version
func eph_api_version() C.uint32_t {
	return C.uint32_t(apiVersion)
}

//export eph_engine_new
func eph_engine_new(config *C.EphEngineConfig, outHandle *C.uintptr_t) C.int {
	return ffiBoundary(func() C.int {
		if config == nil || outHandle == nil {
			return statusNullPointer
		}

		cfg, status := configFromC(config)
		if status != statusOk {
			return status
		}

		eng, err := engine.New(cfg)
		if err != nil {
			return statusFromErr(err)
		}

		h := cgo.NewHandle(eng)
		*outHandle = C.uintptr_t(uintptr(h))
		return statusOk
	})
}

//export eph_engine_query
func eph_engine_query(handle C.uintptr_t, query *C.EphQuery, outState *C.EphStateVector) C.int {
	return ffiBoundary(func() C.int {
		if query == nil || outState == nil {
			return statusNullPointer
		}
		if handle == 0 {
			return statusNullPointer
		}

		eng, ok := cgo.Handle(uintptr(handle)).Value().(*engine.Engine)
		if !ok {
			return statusInternal
		}

		sv, err := eng.Query(queryFromC(query))
		if err != nil {
			return statusFromErr(err)
		}
		stateToC(sv, outState)
		return statusOk
	})
}

//export eph_engine_free
func eph_engine_free(handle C.uintptr_t) C.int {
	return ffiBoundary(func() C.int {
		if handle == 0 {
			return statusOk
		}
		cgo.Handle(uintptr(handle)).Delete()
		return statusOk
	})
}

//export eph_query_once
func eph_query_once(config *C.EphEngineConfig, query *C.EphQuery, outState *C.EphStateVector) C.int {
	return ffiBoundary(func() C.int {
		if config == nil || query == nil || outState == nil {
			return statusNullPointer
		}

		cfg, status := configFromC(config)
		if status != statusOk {
			return status
		}

		eng, err := engine.New(cfg)
		if err != nil {
			return statusFromErr(err)
		}

		sv, err := eng.Query(queryFromC(query))
		if err != nil {
			return statusFromErr(err)
		}
		stateToC(sv, outState)
		return statusOk
	})
}
