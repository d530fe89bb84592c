package engine

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ashwinpai/goephemeris/frames"
	"github.com/ashwinpai/goephemeris/spk"
	"github.com/ashwinpai/goephemeris/timescale"
	"github.com/ashwinpai/goephemeris/xerr"
)

// finiteDiffWindowDays is the +-1 minute window used to finite-difference
// ecliptic-of-date velocity, per the Frames component's design note that
// this captures time-dependent rotation terms exactly rather than
// approximating them with a scalar precession rate.
const finiteDiffWindowDays = 1.0 / 1440.0

// Engine is the validated, cached query surface over a set of loaded SPK
// kernels. An Engine is safe for concurrent use: the Kernel/LSK it wraps
// are immutable post-construction and the state cache is mutex-guarded.
type Engine struct {
	kernels []*spk.Kernel
	lsk     *timescale.LSK
	cfg     EngineConfig
	cache   *stateCache
	log     zerolog.Logger
}

// Option customizes Engine construction beyond EngineConfig's fields —
// currently just where logs and metrics go.
type Option func(*engineOptions)

type engineOptions struct {
	logger   zerolog.Logger
	registry prometheus.Registerer
	instance string
}

// WithLogger sets the zerolog.Logger the Engine writes kernel/LSK load and
// query-failure events to. Defaults to a disabled (zerolog.Nop) logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithMetricsRegisterer registers the Engine's cache metrics with reg.
// Defaults to no registration (metrics are still tracked internally, just
// not exposed to a Prometheus scrape).
func WithMetricsRegisterer(reg prometheus.Registerer, instanceLabel string) Option {
	return func(o *engineOptions) {
		o.registry = reg
		o.instance = instanceLabel
	}
}

// New validates cfg, loads every configured SPK file and the LSK, and
// returns a ready-to-query Engine.
func New(cfg EngineConfig, opts ...Option) (*Engine, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	options := engineOptions{logger: zerolog.Nop(), instance: "default"}
	for _, opt := range opts {
		opt(&options)
	}

	kernels := make([]*spk.Kernel, 0, len(cfg.SPKPaths))
	for _, path := range cfg.SPKPaths {
		k, err := spk.Load(path)
		if err != nil {
			return nil, err
		}
		kernels = append(kernels, k)
		options.logger.Debug().Str("path", path).Msg("loaded SPK kernel")
	}

	lsk, err := timescale.Load(cfg.LSKPath)
	if err != nil {
		return nil, err
	}
	options.logger.Debug().Str("path", cfg.LSKPath).Msg("loaded LSK")

	metrics := newCacheMetrics(options.registry, options.instance)

	return &Engine{
		kernels: kernels,
		lsk:     lsk,
		cfg:     cfg,
		cache:   newStateCache(cfg.CacheCapacity, metrics),
		log:     options.logger,
	}, nil
}

func validateConfig(cfg EngineConfig) error {
	if len(cfg.SPKPaths) == 0 {
		return xerr.New(xerr.InvalidConfig, "EngineConfig.SPKPaths must not be empty")
	}
	if cfg.LSKPath == "" {
		return xerr.New(xerr.InvalidConfig, "EngineConfig.LSKPath must not be empty")
	}
	if cfg.CacheCapacity <= 0 {
		return xerr.New(xerr.InvalidConfig, "EngineConfig.CacheCapacity must be positive")
	}
	return nil
}

func validateQuery(q Query) error {
	if math.IsNaN(q.EpochTDBJD) || math.IsInf(q.EpochTDBJD, 0) {
		return xerr.Newf(xerr.InvalidQuery, "epoch %v is not finite", q.EpochTDBJD)
	}
	if !q.Frame.valid() {
		return xerr.Newf(xerr.InvalidQuery, "unknown frame code %d", q.Frame)
	}
	return nil
}

// Query resolves one state-vector request: validate, cache lookup,
// resolve via the Kernel chain, rotate into the requested frame, cache.
func (e *Engine) Query(q Query) (StateVector, error) {
	if err := validateQuery(q); err != nil {
		return StateVector{}, err
	}

	key := newCacheKey(q)
	if sv, ok := e.cache.get(key); ok {
		return sv, nil
	}

	sv, err := e.evaluate(q)
	if err != nil {
		e.log.Warn().
			Int32("target", int32(q.Target)).
			Int32("observer", int32(q.Observer)).
			Float64("epoch_tdb_jd", q.EpochTDBJD).
			Err(err).
			Msg("engine query failed")
		return StateVector{}, err
	}

	e.cache.insert(key, sv)
	return sv, nil
}

// QueryBatch evaluates every query in qs by calling Query on each in turn.
// A query identical to an earlier one is served from the state cache;
// distinct queries that share an epoch each walk their own target and
// observer chains to the SSB, since SSB states are neither cached nor
// shared between queries. Results are returned in the same order as qs; a failing query's
// slot holds the zero StateVector and its error is returned as the first
// non-nil error encountered, after all queries have been attempted.
func (e *Engine) QueryBatch(qs []Query) ([]StateVector, error) {
	out := make([]StateVector, len(qs))
	var firstErr error
	for i, q := range qs {
		sv, err := e.Query(q)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out[i] = sv
	}
	return out, firstErr
}

// evaluate performs the uncached resolve-and-rotate work for q.
func (e *Engine) evaluate(q Query) (StateVector, error) {
	switch q.Frame {
	case ICRF, EclipticJ2000:
		pos, vel, err := e.resolveICRF(int(q.Target), int(q.Observer), q.EpochTDBJD)
		if err != nil {
			return StateVector{}, err
		}
		if q.Frame == EclipticJ2000 {
			pos = frames.ICRFToEcliptic(pos)
			vel = frames.ICRFToEcliptic(vel)
		}
		return StateVector{PositionKm: pos, VelocityKmS: vel}, nil

	case EclipticOfDate:
		return e.evaluateEclipticOfDate(q)

	default:
		return StateVector{}, xerr.Newf(xerr.InvalidQuery, "unknown frame code %d", q.Frame)
	}
}

func (e *Engine) evaluateEclipticOfDate(q Query) (StateVector, error) {
	posAt := func(jd float64) ([3]float64, error) {
		pos, _, err := e.resolveICRF(int(q.Target), int(q.Observer), jd)
		if err != nil {
			return [3]float64{}, err
		}
		t := (jd - timescale.J2000JD) / 36525.0
		meanOfDate := frames.PrecessEclipticJ2000ToDate(frames.ICRFToEcliptic(pos), t, e.cfg.PrecessionModel)
		dpsi, _ := frames.NutationIAU2000B(t)
		return frames.ApparentEclipticLongitude(meanOfDate, dpsi), nil
	}

	posNow, err := posAt(q.EpochTDBJD)
	if err != nil {
		return StateVector{}, err
	}
	posPlus, err := posAt(q.EpochTDBJD + finiteDiffWindowDays)
	if err != nil {
		return StateVector{}, err
	}
	posMinus, err := posAt(q.EpochTDBJD - finiteDiffWindowDays)
	if err != nil {
		return StateVector{}, err
	}

	var vel [3]float64
	denomDays := 2 * finiteDiffWindowDays
	for i := range vel {
		vel[i] = (posPlus[i] - posMinus[i]) / denomDays / timescale.SecPerDay
	}

	return StateVector{PositionKm: posNow, VelocityKmS: vel}, nil
}

// resolveICRF returns the geometric observer-to-target state in the
// native ICRF frame at epoch (TDB Julian date), merging segment lookups
// across every loaded kernel.
func (e *Engine) resolveICRF(target, observer int, epochTDBJD float64) (pos, vel [3]float64, err error) {
	seconds := timescale.JDToSeconds(epochTDBJD)

	obsPos, obsVel, err := e.stateWRTSSB(observer, seconds)
	if err != nil {
		return pos, vel, err
	}
	tgtPos, tgtVel, err := e.stateWRTSSB(target, seconds)
	if err != nil {
		return pos, vel, err
	}

	return [3]float64{tgtPos[0] - obsPos[0], tgtPos[1] - obsPos[1], tgtPos[2] - obsPos[2]},
		[3]float64{tgtVel[0] - obsVel[0], tgtVel[1] - obsVel[1], tgtVel[2] - obsVel[2]},
		nil
}

// stateWRTSSB resolves code's position/velocity relative to the Solar
// System Barycenter by walking the parent-centre chain, trying every
// loaded kernel at each hop — the "merging segment lists at the Engine
// level" multi-file support.
func (e *Engine) stateWRTSSB(code int, tdbSecondsPastJ2000 float64) (pos, vel [3]float64, err error) {
	if code == 0 {
		return pos, vel, nil
	}

	current := code
	visited := make(map[int]bool)
	for current != 0 {
		if visited[current] {
			return pos, vel, xerr.Newf(xerr.SegmentNotFound, "cycle detected resolving body %d to SSB at body %d", code, current)
		}
		visited[current] = true

		var stepped bool
		for _, k := range e.kernels {
			segPos, segVel, center, ok, stepErr := k.Step(current, tdbSecondsPastJ2000)
			if stepErr != nil {
				return pos, vel, stepErr
			}
			if !ok {
				continue
			}
			pos[0] += segPos[0]
			pos[1] += segPos[1]
			pos[2] += segPos[2]
			vel[0] += segVel[0]
			vel[1] += segVel[1]
			vel[2] += segVel[2]
			current = center
			stepped = true
			break
		}
		if !stepped {
			return pos, vel, xerr.Newf(xerr.SegmentNotFound, "body %d has no segment in any loaded kernel and no barycenter fallback (needed in chain for body %d)", current, code)
		}
	}
	return pos, vel, nil
}
