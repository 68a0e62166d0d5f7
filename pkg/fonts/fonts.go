// Package fonts provides the typefaces used to label rendered frames.
//
// The Go fonts ship inside golang.org/x/image, so frames render the same on
// every machine without any system font lookup.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects a typeface.
type Style int

const (
	Regular Style = iota
	Bold
)

var (
	parseOnce sync.Once
	parsed    map[Style]*truetype.Font
	parseErr  error
)

func load() (map[Style]*truetype.Font, error) {
	parseOnce.Do(func() {
		parsed = make(map[Style]*truetype.Font, 2)
		for style, data := range map[Style][]byte{Regular: goregular.TTF, Bold: gobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse font: %w", err)
				return
			}
			parsed[style] = f
		}
	})
	return parsed, parseErr
}

// Face returns a new face of the given style, size in points, at dpi. The
// caller must Close the face when done.
func Face(style Style, points, dpi float64) (font.Face, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	f, ok := all[style]
	if !ok {
		return nil, fmt.Errorf("unknown font style %d", style)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}
