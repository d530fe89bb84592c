// Package chebyshev evaluates Chebyshev-of-the-first-kind polynomial series
// via the Clenshaw recurrence, and their derivatives, the way NAIF SPK
// Type-2 segments store position data.
package chebyshev

// Value evaluates sum(c[k] * T_k(s)) for k in [0, len(c)) via the Clenshaw
// recurrence: b_k = 2s*b_{k+1} - b_{k+2} + c_k, descending from k=n-1 to
// k=1, returning c_0 + s*b_1 - b_2.
//
// s should lie in [-1, 1]; callers evaluating slightly outside that range
// (segment boundary rounding) still get a finite, merely less accurate,
// result — Clenshaw has no singularities.
func Value(c []float64, s float64) float64 {
	n := len(c)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return c[0]
	}

	s2 := 2.0 * s
	b1, b2 := c[n-1], 0.0
	for k := n - 2; k >= 1; k-- {
		b1, b2 = c[k]+s2*b1-b2, b1
	}
	return c[0] + s*b1 - b2
}

// Derivative evaluates d/ds of the same series at s, via the standard
// coefficient-transform recurrence (derivative of a Chebyshev series is
// itself a Chebyshev series of degree n-2) followed by Value on the
// transformed coefficients.
//
//	dc[j] = dc[j+2] + 2*(j+1)*c[j+1]   for j descending from n-2 to 1
//	dc[0] = (dc[2] + 2*c[1]) / 2
func Derivative(c []float64, s float64) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}

	m := n - 1
	dc := make([]float64, m)
	for j := m - 1; j >= 1; j-- {
		var next float64
		if j+2 < m {
			next = dc[j+2]
		}
		dc[j] = next + 2.0*float64(j+1)*c[j+1]
	}
	var d2 float64
	if m > 2 {
		d2 = dc[2]
	}
	dc[0] = (d2 + 2.0*c[1]) / 2.0

	return Value(dc, s)
}
