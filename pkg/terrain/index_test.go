package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/Terrainx/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPI(t *testing.T) {
	cellSize := 30.0
	flow := buildGrid(t, [][]float64{
		{1, 50},
		{400, pkg.DEM_NODATA},
	}, cellSize)
	slope := buildGrid(t, [][]float64{
		{0, 12.5},
		{80, 3},
	}, cellSize)

	result, err := SPI(flow, slope)
	require.NoError(t, err)
	require.Equal(t, flow.Width(), result.Width())
	require.Equal(t, flow.Height(), result.Height())
	assert.Equal(t, cellSize, result.CellSize())

	spi := func(f, s float64) float64 {
		return math.Log(cellSize * (f + 0.001) * (s/100 + 0.001))
	}
	assert.InDelta(t, spi(1, 0), result.At(0, 0), 1e-12)
	assert.InDelta(t, spi(50, 12.5), result.At(1, 0), 1e-12)
	assert.InDelta(t, spi(400, 80), result.At(0, 1), 1e-12)
	assert.Equal(t, pkg.INDEX_NODATA, result.At(1, 1))
}

func TestCTI(t *testing.T) {
	cellSize := 10.0
	flow := buildGrid(t, [][]float64{
		{25, 1000},
	}, cellSize)
	slope := buildGrid(t, [][]float64{
		{5, pkg.DEM_NODATA},
	}, cellSize)

	result, err := CTI(flow, slope)
	require.NoError(t, err)

	want := math.Log(cellSize * (25 + 0.001) / (5.0/100 + 0.001))
	assert.InDelta(t, want, result.At(0, 0), 1e-12)
	assert.Equal(t, pkg.INDEX_NODATA, result.At(1, 0))
}

func TestDerivedIndexDimensionMismatch(t *testing.T) {
	flow := buildGrid(t, [][]float64{
		{1, 2},
		{3, 4},
	}, 1)
	slope := buildGrid(t, [][]float64{
		{1, 2, 3},
	}, 1)

	_, err := SPI(flow, slope)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = CTI(flow, slope)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}
