package palette

import (
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap maps a position in [0, 1] to a color.
type Colormap interface {
	At(x float64) colorful.Color
}

// listed is a colormap made of N discrete colors. Position x selects
// color floor(x*N), with x == 1 mapping to the last color.
type listed []colorful.Color

func (l listed) At(x float64) colorful.Color {
	n := len(l)
	i := int(math.Floor(clamp01(x) * float64(n)))
	if i >= n {
		i = n - 1
	}
	return l[i]
}

// segmented interpolates linearly in RGB between evenly spaced anchors.
type segmented []colorful.Color

func (s segmented) At(x float64) colorful.Color {
	if len(s) == 1 {
		return s[0]
	}
	pos := clamp01(x) * float64(len(s)-1)
	i := int(math.Floor(pos))
	if i >= len(s)-1 {
		return s[len(s)-1]
	}
	return s[i].BlendRgb(s[i+1], pos-float64(i)).Clamped()
}

// reverse returns cm with its colors in the opposite order.
func reverse(cm Colormap) Colormap {
	switch m := cm.(type) {
	case listed:
		r := slices.Clone(m)
		slices.Reverse(r)
		return listed(r)
	case segmented:
		r := slices.Clone(m)
		slices.Reverse(r)
		return segmented(r)
	}
	return cm
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// hexColors parses a list of "rrggbb" strings. The tables in this package
// are constant, so a bad entry is a programming error.
func hexColors(codes ...string) []colorful.Color {
	out := make([]colorful.Color, len(codes))
	for i, c := range codes {
		col, err := colorful.Hex("#" + c)
		if err != nil {
			panic("palette: bad color " + c)
		}
		out[i] = col
	}
	return out
}

// linspace returns n evenly spaced points on [lo, hi], endpoints included.
func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
