package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToPM180Basic(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeToPM180(0.0), 1e-10)
	assert.InDelta(t, 180.0, NormalizeToPM180(180.0), 1e-10)
	assert.InDelta(t, -90.0, NormalizeToPM180(270.0), 1e-10)
	assert.InDelta(t, 0.0, NormalizeToPM180(360.0), 1e-10)
}

func TestIsGenuineCrossingAcceptsRealZero(t *testing.T) {
	assert.True(t, IsGenuineCrossing(5.0, -3.0))
	assert.True(t, IsGenuineCrossing(-10.0, 10.0))
}

func TestIsGenuineCrossingRejectsWraparound(t *testing.T) {
	assert.False(t, IsGenuineCrossing(170.0, -170.0))
	assert.False(t, IsGenuineCrossing(-170.0, 170.0))
}

func TestFindZeroCrossingLinearForward(t *testing.T) {
	f := func(t float64) (float64, error) { return t - 10.3, nil }
	tCross, found, err := FindZeroCrossing(f, 0.0, 1.0, 100, 50, 1e-10)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 10.3, tCross, 1e-8)
}

func TestFindZeroCrossingNoneFound(t *testing.T) {
	f := func(t float64) (float64, error) { return t + 10.0, nil }
	_, found, err := FindZeroCrossing(f, 0.0, 1.0, 50, 50, 1e-10)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindZeroCrossingBackward(t *testing.T) {
	f := func(t float64) (float64, error) { return t - 5.7, nil }
	tCross, found, err := FindZeroCrossing(f, 10.0, -1.0, 100, 50, 1e-10)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 5.7, tCross, 1e-8)
}

func TestFindZeroCrossingPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	f := func(t float64) (float64, error) {
		if t > 2 {
			return 0, boom
		}
		return t - 5, nil
	}
	_, _, err := FindZeroCrossing(f, 0.0, 1.0, 10, 10, 1e-10)
	require.Error(t, err)
}
