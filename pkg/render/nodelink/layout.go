package nodelink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ssnmovie/pkg/cache"
	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/observability"
)

// Point is a node center in layout inches, origin bottom-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout holds node positions keyed by DOT node name.
type Layout struct {
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	Positions map[string]Point `json:"positions"`
}

// LayoutEngine computes node positions for DOT source.
type LayoutEngine interface {
	Layout(ctx context.Context, dot, algorithm string) (*Layout, error)
}

// GraphvizEngine lays out graphs with the embedded Graphviz runtime.
type GraphvizEngine struct{}

// Layout runs Graphviz with the named engine and parses its plain output.
func (GraphvizEngine) Layout(ctx context.Context, dot, algorithm string) (*Layout, error) {
	if err := errors.ValidateLayoutAlgorithm(algorithm); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gv.SetLayout(graphviz.Layout(algorithm))

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format("plain"), &buf); err != nil {
		return nil, fmt.Errorf("%s layout: %w", algorithm, err)
	}
	return parsePlain(&buf)
}

// parsePlain reads the Graphviz "plain" format:
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	edge tail head n x1 y1 ... xn yn [label xl yl] style color
//	stop
func parsePlain(r io.Reader) (*Layout, error) {
	l := &Layout{Positions: make(map[string]Point)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sawGraph := false
	for line := 1; sc.Scan(); line++ {
		f := plainFields(sc.Text())
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "graph":
			if len(f) < 4 {
				return nil, fmt.Errorf("plain line %d: short graph record", line)
			}
			scale, err1 := strconv.ParseFloat(f[1], 64)
			w, err2 := strconv.ParseFloat(f[2], 64)
			h, err3 := strconv.ParseFloat(f[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("plain line %d: bad graph record %q", line, sc.Text())
			}
			if scale == 0 {
				scale = 1
			}
			l.Width, l.Height = w*scale, h*scale
			sawGraph = true
		case "node":
			if len(f) < 4 {
				return nil, fmt.Errorf("plain line %d: short node record", line)
			}
			x, err1 := strconv.ParseFloat(f[2], 64)
			y, err2 := strconv.ParseFloat(f[3], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("plain line %d: bad node position %q", line, sc.Text())
			}
			l.Positions[f[1]] = Point{X: x, Y: y}
		case "stop":
			if !sawGraph {
				return nil, fmt.Errorf("plain output has no graph record")
			}
			return l, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawGraph {
		return nil, fmt.Errorf("plain output has no graph record")
	}
	return l, nil
}

// plainFields splits a plain record on blanks, honoring double quotes.
func plainFields(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote bool
		open  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			quote = !quote
			open = true
		case !quote && (c == ' ' || c == '\t'):
			if open {
				out = append(out, cur.String())
				cur.Reset()
				open = false
			}
		default:
			cur.WriteByte(c)
			open = true
		}
	}
	if open {
		out = append(out, cur.String())
	}
	return out
}

// CachedEngine memoizes another engine's layouts in a cache. Sources of
// one run sweep the same thresholds, so each pruned topology is laid out
// once.
type CachedEngine struct {
	Engine LayoutEngine
	Cache  cache.Cache
	Keyer  cache.Keyer
}

// Layout returns the cached layout of dot, computing and storing it on a
// miss. Cache failures fall through to the wrapped engine.
func (c *CachedEngine) Layout(ctx context.Context, dot, algorithm string) (*Layout, error) {
	start := time.Now()
	key := c.Keyer.LayoutKey(cache.Hash([]byte(dot)), cache.LayoutKeyOpts{Algorithm: algorithm})

	if data, ok, err := c.Cache.Get(ctx, key); err == nil && ok {
		var l Layout
		if json.Unmarshal(data, &l) == nil {
			observability.Render().OnLayoutComplete(ctx, algorithm, len(l.Positions), true, time.Since(start), nil)
			return &l, nil
		}
	}

	l, err := c.Engine.Layout(ctx, dot, algorithm)
	if err != nil {
		observability.Render().OnLayoutComplete(ctx, algorithm, 0, false, time.Since(start), err)
		return nil, err
	}
	if data, err := json.Marshal(l); err == nil {
		_ = c.Cache.Set(ctx, key, data, cache.TTLLayout)
	}
	observability.Render().OnLayoutComplete(ctx, algorithm, len(l.Positions), false, time.Since(start), nil)
	return l, nil
}
