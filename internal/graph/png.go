package graph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PNGSurface rasterises drawing calls onto an RGBA image.
type PNGSurface struct {
	img *image.RGBA
}

// NewPNGSurface returns a surface of the given pixel size filled with the backdrop colour.
func NewPNGSurface(width, height int) *PNGSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: ParseColor(ColorBackdrop)}, image.Point{}, draw.Src)
	return &PNGSurface{img: img}
}

// Size implements Surface.
func (p *PNGSurface) Size() (float64, float64) {
	b := p.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Line implements Surface by stamping discs along the segment.
func (p *PNGSurface) Line(x1, y1, x2, y2 float64, c string, width float64) {
	col := ParseColor(c)
	r := math.Max(width/2, 0.5)
	steps := int(math.Ceil(math.Hypot(x2-x1, y2-y1)))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.disc(x1+(x2-x1)*t, y1+(y2-y1)*t, r, 0, col)
	}
}

// FillCircle implements Surface.
func (p *PNGSurface) FillCircle(cx, cy, r float64, c string) {
	p.disc(cx, cy, r, 0, ParseColor(c))
}

// StrokeCircle implements Surface. The stroke is centred on the circle edge.
func (p *PNGSurface) StrokeCircle(cx, cy, r float64, c string, width float64) {
	p.disc(cx, cy, r+width/2, r-width/2, ParseColor(c))
}

// Text implements Surface with a fixed bitmap face; size is advisory.
func (p *PNGSurface) Text(x, y float64, s, c string, _ float64) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(ParseColor(c)),
		Face: face,
	}
	w := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(x))) - w/2,
		Y: fixed.I(int(math.Round(y))) + face.Metrics().Ascent,
	}
	d.DrawString(s)
}

// disc blends col over every pixel whose centre lies in the ring inner < d <= outer.
func (p *PNGSurface) disc(cx, cy, outer, inner float64, col color.NRGBA) {
	bounds := image.Rect(
		int(math.Floor(cx-outer)), int(math.Floor(cy-outer)),
		int(math.Ceil(cx+outer))+1, int(math.Ceil(cy+outer))+1,
	).Intersect(p.img.Bounds())
	src := image.NewUniform(col)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d > outer || (inner > 0 && d <= inner) {
				continue
			}
			draw.Draw(p.img, image.Rect(x, y, x+1, y+1), src, image.Point{}, draw.Over)
		}
	}
}

// Image returns the underlying raster.
func (p *PNGSurface) Image() *image.RGBA {
	return p.img
}

// Encode writes the image as PNG.
func (p *PNGSurface) Encode(w io.Writer) error {
	if err := png.Encode(w, p.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// ParseColor understands "#rrggbb", "#rgb" and "rgba(r, g, b, a)". Anything else is opaque black.
func ParseColor(s string) color.NRGBA {
	s = strings.TrimSpace(s)
	black := color.NRGBA{A: 255}
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return black
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return black
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("rgba("):len(s)-1], ",")
		if len(parts) != 4 {
			return black
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || n < 0 || n > 255 {
				return black
			}
			rgb[i] = uint8(n)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return black
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(a * 255))}
	}
	return black
}
