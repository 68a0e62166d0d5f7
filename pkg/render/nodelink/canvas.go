package nodelink

import (
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/ssnmovie/pkg/fonts"
)

// Font sizes in points.
const (
	titlePoints  = 12
	legendPoints = 5.79 // xx-small
)

// canvas is the drawing context of a single frame. Close must be called on
// every path once the frame is encoded.
type canvas struct {
	dc     *gg.Context
	dpi    float64
	title  font.Face
	legend font.Face
}

func newCanvas(widthIn, heightIn, dpi float64) (*canvas, error) {
	title, err := fonts.Face(fonts.Regular, titlePoints, dpi)
	if err != nil {
		return nil, err
	}
	legend, err := fonts.Face(fonts.Regular, legendPoints, dpi)
	if err != nil {
		title.Close()
		return nil, err
	}
	dc := gg.NewContext(int(widthIn*dpi+0.5), int(heightIn*dpi+0.5))
	dc.SetHexColor("#ffffff")
	dc.Clear()
	return &canvas{dc: dc, dpi: dpi, title: title, legend: legend}, nil
}

// pt converts points to pixels.
func (c *canvas) pt(points float64) float64 { return points * c.dpi / 72 }

func (c *canvas) width() float64  { return float64(c.dc.Width()) }
func (c *canvas) height() float64 { return float64(c.dc.Height()) }

func (c *canvas) line(x1, y1, x2, y2 float64, color string, widthPt float64) {
	c.dc.SetHexColor(color)
	c.dc.SetLineWidth(c.pt(widthPt))
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *canvas) disc(x, y, radius float64, fill string, outlinePt float64) {
	c.dc.DrawCircle(x, y, radius)
	c.dc.SetHexColor(fill)
	c.dc.FillPreserve()
	c.dc.SetHexColor("#000000")
	c.dc.SetLineWidth(c.pt(outlinePt))
	c.dc.Stroke()
}

func (c *canvas) text(face font.Face, s string, x, y, ax, ay float64) {
	c.dc.SetFontFace(face)
	c.dc.SetHexColor("#000000")
	c.dc.DrawStringAnchored(s, x, y, ax, ay)
}

func (c *canvas) measure(face font.Face, s string) (w, h float64) {
	c.dc.SetFontFace(face)
	return c.dc.MeasureString(s)
}

func (c *canvas) encode(w io.Writer) error { return c.dc.EncodePNG(w) }

// Close releases the font faces.
func (c *canvas) Close() error {
	c.title.Close()
	c.legend.Close()
	c.dc = nil
	return nil
}
