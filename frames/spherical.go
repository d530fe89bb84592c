package frames

import "math"

// SphericalCoords is a longitude/latitude/distance triple.
type SphericalCoords struct {
	LonRad     float64 // [0, 2pi), measured in the x-y plane from +x toward +y
	LatRad     float64 // [-pi/2, pi/2], elevation above the x-y plane
	DistanceKm float64
}

// LonDeg returns Lon in degrees, range [0, 360).
func (s SphericalCoords) LonDeg() float64 { return s.LonRad * 180.0 / math.Pi }

// LatDeg returns Lat in degrees, range [-90, 90].
func (s SphericalCoords) LatDeg() float64 { return s.LatRad * 180.0 / math.Pi }

// SphericalState extends SphericalCoords with the corresponding angular
// and radial rates, used when a search needs a body's speed in longitude
// rather than just its position.
type SphericalState struct {
	SphericalCoords
	LonRadPerDay float64
	LatRadPerDay float64
	DistKmPerDay float64
}

// CartesianToSpherical converts a Cartesian position (km) to spherical
// coordinates.
func CartesianToSpherical(xyz [3]float64) SphericalCoords {
	x, y, z := xyz[0], xyz[1], xyz[2]
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return SphericalCoords{}
	}

	lon := math.Atan2(y, x)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	lat := math.Asin(z / r)

	return SphericalCoords{LonRad: lon, LatRad: lat, DistanceKm: r}
}

// SphericalToCartesian converts spherical coordinates back to a Cartesian
// position (km).
func SphericalToCartesian(s SphericalCoords) [3]float64 {
	cosLat := math.Cos(s.LatRad)
	return [3]float64{
		s.DistanceKm * cosLat * math.Cos(s.LonRad),
		s.DistanceKm * cosLat * math.Sin(s.LonRad),
		s.DistanceKm * math.Sin(s.LatRad),
	}
}

// CartesianStateToSphericalState converts a Cartesian position/velocity
// pair (km, km/day) to a spherical position plus the rates of change of
// longitude, latitude, and distance, via the analytic Jacobian of
// CartesianToSpherical.
func CartesianStateToSphericalState(pos, vel [3]float64) SphericalState {
	pc := CartesianToSpherical(pos)
	x, y, z := pos[0], pos[1], pos[2]
	vx, vy, vz := vel[0], vel[1], vel[2]

	rho2 := x*x + y*y
	r := pc.DistanceKm

	state := SphericalState{SphericalCoords: pc}
	if r == 0 || rho2 == 0 {
		return state
	}

	rDot := (x*vx + y*vy + z*vz) / r
	lonDot := (x*vy - y*vx) / rho2
	cosLat := math.Sqrt(rho2) / r
	latDot := (vz/r - z*rDot/(r*r)) / cosLat

	state.DistKmPerDay = rDot
	state.LonRadPerDay = lonDot
	state.LatRadPerDay = latDot
	return state
}
