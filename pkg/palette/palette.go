// Package palette generates deterministic discrete color palettes from named
// color schemes.
//
// Qualitative schemes (Set1, tab20, ...) are fixed lists of categorical
// colors. Asking for more colors than a qualitative scheme has either
// borrows from its extension scheme (tab20 continues with tab20b) or falls
// back to sampling the scheme as a colormap. Continuous schemes (viridis,
// Blues, ...) are sampled evenly on the open interval (0, 1), so the pale or
// dark endpoint colors never appear.
//
// Once the distinct colors are exhausted the palette repeats: color i is
// colors[i % len(colors)]. Repetition is intentional and [Get] never fails
// for a large count.
package palette

import (
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/ssnmovie/pkg/errors"
)

// Default is the scheme used when none is configured.
const Default = "tab20"

// reverseSuffix selects the reversed variant of a scheme, e.g. "viridis_r".
const reverseSuffix = "_r"

// Lookup returns the scheme registered under name. A name ending in "_r"
// returns the reversed scheme.
func Lookup(name string) (Scheme, bool) {
	if s, ok := schemes[name]; ok {
		return s, true
	}
	base, ok := strings.CutSuffix(name, reverseSuffix)
	if !ok {
		return Scheme{}, false
	}
	s, ok := schemes[base]
	if !ok {
		return Scheme{}, false
	}
	skip := make([]int, len(s.Skip))
	for i, k := range s.Skip {
		skip[i] = s.Size - 1 - k
	}
	s.Name = name
	s.Extension = ""
	s.Skip = skip
	s.forward = s.cmap
	s.cmap = reverse(s.cmap)
	return s, true
}

// Names returns all registered scheme names, sorted case-insensitively.
// Reversed variants are not listed.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// Get returns exactly count colors of the named scheme as lowercase
// "#rrggbb" strings. The result depends only on (name, count).
//
// Get fails with INVALID_INPUT when count < 1 and INVALID_SCHEME when the
// scheme is unknown.
func Get(name string, count int) ([]string, error) {
	if count < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "palette size must be at least 1, got %d", count)
	}
	s, ok := Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScheme, "unknown color scheme %q (see 'ssnmovie palette --list')", name)
	}
	return hexes(s.colors(count), count), nil
}

// MustGet is like [Get] but panics on error. It is intended for tests and
// for scheme names known at compile time.
func MustGet(name string, count int) []string {
	p, err := Get(name, count)
	if err != nil {
		panic(err)
	}
	return p
}

// colors returns the distinct colors backing a palette of count entries.
// The slice may be shorter than count; callers cycle over it.
func (s Scheme) colors(count int) []colorful.Color {
	if s.Qualitative() {
		base := s.base()
		if count <= len(base) {
			return base[:count]
		}
		if ext, ok := s.extension(); ok {
			more := ext.base()
			return append(slices.Clip(base), more[:min(count-len(base), len(more))]...)
		}
	}
	xs := linspace(0, 1, count+2)[1 : count+1]
	if s.forward != nil {
		// Mirrored sample points differ in the last bit, so a reversed
		// scheme reverses the forward samples instead.
		out := sample(s.forward, xs)
		slices.Reverse(out)
		return out
	}
	return sample(s.cmap, xs)
}

func (s Scheme) extension() (Scheme, bool) {
	if s.Extension == "" {
		return Scheme{}, false
	}
	ext, ok := Lookup(s.Extension)
	return ext, ok && ext.Qualitative()
}

// base samples a qualitative scheme at Size evenly spaced points on [0, 1]
// and drops the Skip indices.
func (s Scheme) base() []colorful.Color {
	xs := linspace(0, 1, s.Size)
	out := make([]colorful.Color, 0, len(xs))
	for i, x := range xs {
		if slices.Contains(s.Skip, i) {
			continue
		}
		out = append(out, s.cmap.At(x))
	}
	return out
}

func sample(cm Colormap, xs []float64) []colorful.Color {
	out := make([]colorful.Color, len(xs))
	for i, x := range xs {
		out[i] = cm.At(x)
	}
	return out
}

// hexes cycles over colors to produce exactly count hex strings.
func hexes(colors []colorful.Color, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = colors[i%len(colors)].Hex()
	}
	return out
}
