package chebyshev

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstant(t *testing.T) {
	got := Value([]float64{3.5}, 0.7)
	require.InDelta(t, 3.5, got, 1e-15)
}

func TestValueMatchesDirectSum(t *testing.T) {
	c := []float64{1.0, -2.0, 0.5, 0.25, -0.1}
	s := 0.37

	// Direct evaluation via T_0=1, T_1=s, T_k=2s*T_{k-1}-T_{k-2}.
	t0, t1 := 1.0, s
	want := c[0]*t0 + c[1]*t1
	for k := 2; k < len(c); k++ {
		tk := 2*s*t1 - t0
		want += c[k] * tk
		t0, t1 = t1, tk
	}

	got := Value(c, s)
	assert.InDelta(t, want, got, 1e-12)
}

func TestDerivativeMatchesFiniteDifference(t *testing.T) {
	c := []float64{0.3, -1.2, 0.8, 0.15, -0.05, 0.02}
	s := 0.2
	d := 1e-6

	fd := (Value(c, s+d) - Value(c, s-d)) / (2 * d)
	analytic := Derivative(c, s)

	assert.InDelta(t, fd, analytic, 1e-6)
}

func TestEmptyAndShortSeries(t *testing.T) {
	assert.Equal(t, 0.0, Value(nil, 0.5))
	assert.Equal(t, 0.0, Derivative(nil, 0.5))
	assert.Equal(t, 0.0, Derivative([]float64{1.0}, 0.5))
}

func TestValueOutsideRangeStaysFinite(t *testing.T) {
	c := []float64{1, 2, 3, 4}
	got := Value(c, 1.2)
	require.False(t, math.IsNaN(got))
	require.False(t, math.IsInf(got, 0))
}
