package search

import (
	"github.com/ashwinpai/goephemeris/engine"
	"github.com/ashwinpai/goephemeris/frames"
)

// dtDays is the +-1 minute finite-difference window used by
// BodyEclipticLonLatSpeed, matching the window the Engine itself uses to
// finite-difference ecliptic-of-date velocity.
const dtDays = 1.0 / 1440.0

// BodyEclipticLonLat returns a body's geocentric ecliptic-of-date longitude
// (wrapped to [0, 360)) and latitude in degrees, at jdTDB. This is the
// choke point every conjunction, sankranti, stationary, and eclipse search
// routine goes through to get a tropical longitude.
func BodyEclipticLonLat(eng *engine.Engine, body engine.Body, jdTDB float64) (lonDeg, latDeg float64, err error) {
	sv, err := eng.Query(engine.Query{
		Target:     body,
		Observer:   engine.Earth,
		Frame:      engine.EclipticOfDate,
		EpochTDBJD: jdTDB,
	})
	if err != nil {
		return 0, 0, err
	}
	sph := frames.CartesianToSpherical(sv.PositionKm)
	return sph.LonDeg(), sph.LatDeg(), nil
}

// BodyEclipticLonLatSpeed returns a body's ecliptic-of-date longitude,
// latitude, and longitude speed (degrees/day) at jdTDB. The speed is
// obtained by central-differencing BodyEclipticLonLat at t +/- 1 minute
// and normalizing the numerator through NormalizeToPM180, so a longitude
// that happens to wrap past 0/360 within the window does not corrupt the
// rate.
func BodyEclipticLonLatSpeed(eng *engine.Engine, body engine.Body, jdTDB float64) (lonDeg, latDeg, lonSpeedDegPerDay float64, err error) {
	lon, lat, err := BodyEclipticLonLat(eng, body, jdTDB)
	if err != nil {
		return 0, 0, 0, err
	}

	lonPlus, _, err := BodyEclipticLonLat(eng, body, jdTDB+dtDays)
	if err != nil {
		return 0, 0, 0, err
	}
	lonMinus, _, err := BodyEclipticLonLat(eng, body, jdTDB-dtDays)
	if err != nil {
		return 0, 0, 0, err
	}

	speed := NormalizeToPM180(lonPlus-lonMinus) / (2.0 * dtDays)
	return lon, lat, speed, nil
}
