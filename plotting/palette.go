package plotting

import (
	"image/color"

	"github.com/pingcap/errors"
	"gonum.org/v1/plot/palette/moreland"
)

// RGB is a color sampled from the gradient, components in [0, 1].
type RGB [3]float64

// Color converts the triple to a fully opaque color.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: 255,
	}
}

// SpreadMode selects how palette samples are spread over the gradient.
type SpreadMode int

const (
	// SpreadInterior samples n evenly spaced interior points, excluding the
	// gradient endpoints: every other point of a doubled-resolution split
	// with the first and last trimmed.
	SpreadInterior SpreadMode = iota
	// SpreadExtrema samples evenly including both gradient endpoints.
	SpreadExtrema
)

// Palette returns n visually distinct colors sampled from a continuous
// colormap. Output is deterministic for fixed n and mode.
func Palette(n int, mode SpreadMode) ([]RGB, error) {
	if n < 1 {
		return nil, errors.Errorf("palette size must be at least 1, got %d", n)
	}

	var bins []float64
	switch mode {
	case SpreadExtrema:
		bins = linspace(0, 1, n)
	case SpreadInterior:
		full := linspace(0, 1, 2*n+1)
		for i := 1; i < len(full)-1; i += 2 {
			bins = append(bins, full[i])
		}
	default:
		return nil, errors.Errorf("unknown spread mode %d", mode)
	}

	cmap := moreland.ExtendedKindlmann()
	cmap.SetMin(0)
	cmap.SetMax(1)

	palette := make([]RGB, n)
	for i, bin := range bins {
		c, err := cmap.At(bin)
		if err != nil {
			return nil, errors.Annotatef(err, "sample colormap at %v", bin)
		}
		r, g, b, _ := c.RGBA()
		palette[i] = RGB{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
	}
	return palette, nil
}

// linspace returns n evenly spaced values from start to stop inclusive.
func linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	values[n-1] = stop
	return values
}
