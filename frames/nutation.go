package frames

import "math"

const arcsecToRad = math.Pi / (180.0 * 3600.0)
const tenthMicroArcsecToRad = arcsecToRad / 1e7

// FundamentalArguments returns the Delaunay arguments (l, l', F, D, Omega)
// of the IAU 2000 nutation theory, in radians, for epoch t (Julian
// centuries of TDB since J2000). Source: IERS Conventions 2003 Eq. 5.43
// (Simon et al. 1994).
func FundamentalArguments(t float64) (l, lp, f, d, om float64) {
	l = (485868.249036 + t*(1717915923.2178+t*(31.8792+t*(0.051635-t*0.00024470)))) * arcsecToRad
	lp = (1287104.79305 + t*(129596581.0481+t*(-0.5532+t*(0.000136+t*0.00001149)))) * arcsecToRad
	f = (335779.526232 + t*(1739527262.8478+t*(-12.7512+t*(-0.001037+t*0.00000417)))) * arcsecToRad
	d = (1072260.70369 + t*(1602961601.2090+t*(-6.3706+t*(0.006593-t*0.00003169)))) * arcsecToRad
	om = (450160.398036 + t*(-6962890.5431+t*(7.4722+t*(0.007702-t*0.00005939)))) * arcsecToRad
	return
}

// nutationTerm is one row of the IAU 2000B luni-solar nutation series: the
// Delaunay multipliers and the longitude/obliquity amplitude coefficients,
// in units of 0.1 microarcseconds.
type nutationTerm struct {
	nl, nlp, nf, nd, nom int
	s, sdot, cp          float64
	c, cdot, sp          float64
}

// nutationTerms holds the full 77-term IAU 2000B luni-solar series (the
// abbreviated model IAU 2000B specifies in place of IAU 2000A's 1365
// luni-solar-plus-planetary terms). Source: IERS Conventions 2003 Table
// 5.3a / McCarthy & Luzum 2003, reproduced from the SOFA/ERFA nut00b
// implementation of the same published table.
var nutationTerms = []nutationTerm{
	{0, 0, 0, 0, 1, -172064161, -174666, 33386, 92052331, 9086, 15377},
	{0, 0, 2, -2, 2, -13170906, -1675, -13696, 5730336, -3015, -4587},
	{0, 0, 2, 0, 2, -2276413, -234, 2796, 978459, -485, 1374},
	{0, 0, 0, 0, 2, 2074554, 207, -698, -897492, 470, -291},
	{0, 1, 0, 0, 0, 1475877, -3633, 11817, 73871, -184, -1924},
	{0, 1, 2, -2, 2, -516821, 1226, -524, 224386, -677, -174},
	{1, 0, 0, 0, 0, 711159, 73, -872, -6750, 0, 358},
	{0, 0, 2, 0, 1, -387298, -367, 380, 200728, 18, 318},
	{1, 0, 2, 0, 2, -301461, -36, 816, 129025, -63, 367},
	{0, -1, 2, -2, 2, 215829, -494, 111, -95929, 299, 132},
	{0, 0, 2, -2, 1, 128227, 137, 181, -68982, -9, 39},
	{-1, 0, 2, 0, 2, 123457, 11, 19, -53311, 32, -4},
	{-1, 0, 0, 2, 0, 156994, 10, -168, -1235, 0, 82},
	{1, 0, 0, 0, 1, 63110, 63, 27, -33228, 0, -9},
	{-1, 0, 0, 0, 1, -57976, -63, -189, 31429, 0, -75},
	{-1, 0, 2, 2, 2, -59641, -11, 149, 25543, -11, 66},
	{1, 0, 2, 0, 1, -51613, -42, 129, 26366, 0, 78},
	{-2, 0, 2, 0, 1, 45893, 50, 31, -24236, -10, 20},
	{0, 0, 0, 2, 0, 63384, 11, -150, -1220, 0, 29},
	{0, 0, 2, 2, 2, -38571, -1, 158, 16452, -11, 68},
	{0, -2, 2, -2, 1, 32481, 0, 0, -13870, 0, 0},
	{-2, 0, 0, 2, 0, -47722, 0, -18, 477, 0, -25},
	{2, 0, 2, 0, 2, -31046, -1, 131, 13238, -11, 59},
	{1, 0, 2, -2, 2, 28593, 0, -1, -12338, 10, -3},
	{-1, 0, 2, 0, 1, 20441, 21, 10, -10758, 0, -3},
	{2, 0, 0, 0, 0, 29243, 0, -74, -609, 0, 13},
	{0, 0, 2, 0, 0, 25887, 0, -66, -550, 0, 11},
	{0, 1, 0, 0, 1, -14053, -25, 79, 8703, -2, -45},
	{-1, 0, 0, 2, 1, 15164, 10, 11, -8038, -1, -4},
	{0, 2, 2, -2, 2, -15794, 72, -16, 6850, -42, -5},
	{0, 0, -2, 2, 0, 21783, 0, 13, -167, 0, 13},
	{1, 0, 0, -2, 1, -12873, -10, -37, 6953, 0, -14},
	{0, -1, 0, 0, 1, -12654, 11, 63, 6415, 0, 26},
	{-1, 0, 2, 2, 1, -10204, 0, 25, 5222, 0, 15},
	{0, 2, 0, 0, 0, 16707, -85, -10, 168, -1, 10},
	{1, 0, 2, 2, 2, -7691, 0, 44, 3268, 0, 19},
	{-2, 0, 2, 0, 0, -11024, 0, -14, 104, 0, 2},
	{0, 1, 2, 0, 2, 7566, -21, -11, -3250, 0, -5},
	{0, 0, 2, 2, 1, -6637, -11, 25, 3353, 0, 14},
	{0, -1, 2, 0, 2, -7141, 21, 8, 3070, 0, 4},
	{0, 0, 0, 2, 1, -6302, -11, 2, 3272, 0, 4},
	{1, 0, 2, -2, 1, 5800, 10, 2, -3045, 0, -1},
	{2, 0, 2, -2, 2, 6443, 0, -7, -2768, 0, -4},
	{-2, 0, 0, 2, 1, -5774, -11, -15, 3041, 0, -5},
	{2, 0, 2, 0, 1, -5350, 0, 21, 2695, 0, 12},
	{0, -1, 2, -2, 1, -4752, -11, -3, 2719, 0, -3},
	{0, 0, 0, -2, 1, -4940, -11, -21, 2720, 0, -9},
	{-1, -1, 0, 2, 0, 7350, 0, -8, -51, 0, 4},
	{2, 0, 0, -2, 1, 4065, 0, 6, -2206, 0, 1},
	{1, 0, 0, 2, 0, 6579, 0, -24, -199, 0, 2},
	{0, 1, 2, -2, 1, 3579, 0, 5, -1900, 0, 1},
	{1, -1, 0, 0, 0, 4725, 0, -6, -41, 0, 3},
	{-2, 0, 2, 0, 2, -3075, 0, -2, 1313, 0, -1},
	{3, 0, 2, 0, 2, -2904, 0, 15, 1233, 0, 7},
	{0, -1, 0, 2, 0, 4348, 0, -10, -81, 0, 2},
	{1, -1, 2, 0, 2, -2878, 0, 8, 1232, 0, 4},
	{0, 0, 0, 1, 0, -4230, 0, 5, -20, 0, -2},
	{-1, -1, 2, 2, 2, -2819, 0, 7, 1207, 0, 3},
	{-1, 0, 2, 0, 0, -4056, 0, 5, 40, 0, -2},
	{0, -1, 2, 2, 2, -2647, 0, 11, 1129, 0, 5},
	{-2, 0, 0, 0, 1, -2294, 0, -10, 1266, 0, -4},
	{1, 1, 2, 0, 2, 2481, 0, -7, -1062, 0, -3},
	{2, 0, 0, 0, 1, 2179, 0, -2, -1129, 0, -2},
	{-1, 1, 0, 1, 0, 3276, 0, 1, -9, 0, 0},
	{1, 1, 0, 0, 0, -3389, 0, 5, 35, 0, -2},
	{1, 0, 2, 0, 0, 3339, 0, -13, -107, 0, 1},
	{-1, 0, 2, -2, 1, -1987, 0, -6, 1073, 0, -2},
	{1, 0, 0, 0, 2, -1981, 0, 0, 854, 0, 0},
	{-1, 0, 0, 1, 0, 4026, 0, -353, -553, 0, -139},
	{0, 0, 2, 1, 2, 1660, 0, -5, -710, 0, -2},
	{-1, 0, 2, 4, 2, -1521, 0, 9, 647, 0, 4},
	{-1, 1, 0, 1, 1, 1314, 0, 0, -700, 0, 0},
	{0, -2, 2, -2, 1, -1283, 0, 0, 672, 0, 0},
	{1, 0, 2, 2, 1, -1331, 0, 8, 663, 0, 4},
	{-2, 0, 2, 2, 2, 1383, 0, -2, -594, 0, -2},
	{-1, 0, 0, 0, 2, 1405, 0, 4, -610, 0, 2},
	{1, 1, 2, -2, 2, 1517, 0, -1, -528, 0, -1},
}

// truncationBiasPsiArcsec and truncationBiasEpsArcsec are the fixed
// longitude/obliquity offsets IAU 2000B adds in place of the planetary
// nutation terms IAU 2000A carries and IAU 2000B drops. Source: IERS
// Conventions 2003 Table 5.3a footnote.
const (
	truncationBiasPsiArcsec = -0.000135
	truncationBiasEpsArcsec = 0.000388
)

// NutationIAU2000B computes nutation in longitude (dpsi) and obliquity
// (deps) at epoch t (Julian centuries of TDB since J2000), both in
// radians, using the IAU 2000B luni-solar series plus its fixed
// planetary-term bias correction.
func NutationIAU2000B(t float64) (dpsiRad, depsRad float64) {
	l, lp, f, d, om := FundamentalArguments(t)

	var dpsi, deps float64
	for i := range nutationTerms {
		term := &nutationTerms[i]
		arg := float64(term.nl)*l + float64(term.nlp)*lp + float64(term.nf)*f +
			float64(term.nd)*d + float64(term.nom)*om
		sinArg, cosArg := math.Sincos(arg)
		dpsi += (term.s+term.sdot*t)*sinArg + term.cp*cosArg
		deps += (term.c+term.cdot*t)*cosArg + term.sp*sinArg
	}

	dpsiRad = dpsi*tenthMicroArcsecToRad + truncationBiasPsiArcsec*arcsecToRad
	depsRad = deps*tenthMicroArcsecToRad + truncationBiasEpsArcsec*arcsecToRad
	return
}

// NutationMatrix returns N, the rotation that carries a vector from the
// mean equator and equinox of date to the true equator and equinox of
// date: N = R1(-epsTrue) . R3(-dpsi) . R1(epsMean).
func NutationMatrix(dpsiRad, depsRad, epsMeanRad float64) [3][3]float64 {
	epsTrueRad := epsMeanRad + depsRad

	sinDpsi, cosDpsi := math.Sincos(dpsiRad)
	sinEpsM, cosEpsM := math.Sincos(epsMeanRad)
	sinEpsT, cosEpsT := math.Sincos(epsTrueRad)

	return [3][3]float64{
		{cosDpsi, -sinDpsi * cosEpsM, -sinDpsi * sinEpsM},
		{sinDpsi * cosEpsT, cosDpsi*cosEpsM*cosEpsT + sinEpsM*sinEpsT, cosDpsi*sinEpsM*cosEpsT - cosEpsM*sinEpsT},
		{sinDpsi * sinEpsT, cosDpsi*cosEpsM*sinEpsT - sinEpsM*cosEpsT, cosDpsi*sinEpsM*sinEpsT + cosEpsM*cosEpsT},
	}
}

// ApplyMatrix multiplies a 3x3 rotation matrix by a 3-vector.
func ApplyMatrix(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// TransposeMatrix returns the transpose of a 3x3 matrix, which for a
// rotation matrix is also its inverse.
func TransposeMatrix(m [3][3]float64) [3][3]float64 {
	return [3][3]float64{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// ApparentEclipticLongitude shifts a mean-equinox-of-date ecliptic
// position by nutation in longitude (dpsiRad), producing the apparent
// (true-equinox-of-date) position. Ecliptic latitude and distance are
// unaffected: nutation in longitude is a rotation about the ecliptic
// pole, and nutation in obliquity only enters the ecliptic<->equator
// rotation, not the ecliptic coordinates themselves.
func ApparentEclipticLongitude(meanOfDate [3]float64, dpsiRad float64) [3]float64 {
	s := CartesianToSpherical(meanOfDate)
	s.LonRad += dpsiRad
	if s.LonRad >= 2*math.Pi {
		s.LonRad -= 2 * math.Pi
	} else if s.LonRad < 0 {
		s.LonRad += 2 * math.Pi
	}
	return SphericalToCartesian(s)
}
