package plotting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaletteCountAndRange(t *testing.T) {
	for _, mode := range []SpreadMode{SpreadInterior, SpreadExtrema} {
		for n := 1; n <= 8; n++ {
			colors, err := Palette(n, mode)
			require.NoError(t, err)
			require.Len(t, colors, n)
			for _, c := range colors {
				for _, component := range c {
					require.GreaterOrEqual(t, component, 0.0)
					require.LessOrEqual(t, component, 1.0)
				}
			}
		}
	}
}

func TestPaletteDeterministic(t *testing.T) {
	first, err := Palette(5, SpreadInterior)
	require.NoError(t, err)
	second, err := Palette(5, SpreadInterior)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPaletteDistinctColors(t *testing.T) {
	for _, mode := range []SpreadMode{SpreadInterior, SpreadExtrema} {
		colors, err := Palette(6, mode)
		require.NoError(t, err)
		seen := make(map[RGB]bool)
		for _, c := range colors {
			require.False(t, seen[c], "duplicate color %v", c)
			seen[c] = true
		}
	}
}

func TestPaletteRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Palette(n, SpreadInterior)
		require.Error(t, err)
	}
}

func TestPaletteInteriorExcludesEndpoints(t *testing.T) {
	interior, err := Palette(3, SpreadInterior)
	require.NoError(t, err)
	extrema, err := Palette(3, SpreadExtrema)
	require.NoError(t, err)
	// extrema mode pins the first sample to the gradient start
	require.NotEqual(t, extrema[0], interior[0])
	require.NotEqual(t, extrema[2], interior[2])
}

func TestLinspace(t *testing.T) {
	require.Equal(t, []float64{0}, linspace(0, 1, 1))
	require.Equal(t, []float64{0, 0.5, 1}, linspace(0, 1, 3))
}
