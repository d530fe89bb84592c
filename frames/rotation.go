package frames

// ICRFToEcliptic rotates a 3-vector from ICRF/J2000 equatorial to Ecliptic
// J2000, a single rotation about the X axis by the J2000 obliquity.
func ICRFToEcliptic(v [3]float64) [3]float64 {
	return [3]float64{
		v[0],
		cosObl*v[1] + sinObl*v[2],
		-sinObl*v[1] + cosObl*v[2],
	}
}

// EclipticToICRF rotates a 3-vector from Ecliptic J2000 back to ICRF/J2000
// equatorial. This is the transpose of ICRFToEcliptic's matrix.
func EclipticToICRF(v [3]float64) [3]float64 {
	return [3]float64{
		v[0],
		cosObl*v[1] - sinObl*v[2],
		sinObl*v[1] + cosObl*v[2],
	}
}
