package graph

import (
	"bytes"
	"fmt"
	"html"
	"io"
)

// SVGSurface records drawing calls as SVG elements.
type SVGSurface struct {
	width, height float64
	body          bytes.Buffer
}

// NewSVGSurface returns a surface of the given size.
func NewSVGSurface(width, height float64) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

// Size implements Surface.
func (s *SVGSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Line implements Surface.
func (s *SVGSurface) Line(x1, y1, x2, y2 float64, color string, width float64) {
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%g"/>`+"\n",
		x1, y1, x2, y2, color, width)
}

// FillCircle implements Surface.
func (s *SVGSurface) FillCircle(cx, cy, r float64, color string) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%g" fill="%s"/>`+"\n", cx, cy, r, color)
}

// StrokeCircle implements Surface.
func (s *SVGSurface) StrokeCircle(cx, cy, r float64, color string, width float64) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%g" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
		cx, cy, r, color, width)
}

// Text implements Surface.
func (s *SVGSurface) Text(x, y float64, text, color string, size float64) {
	fmt.Fprintf(&s.body,
		`<text x="%.2f" y="%.2f" fill="%s" font-size="%g" font-family="Inter, system-ui, sans-serif" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
		x, y, color, size, html.EscapeString(text))
}

// WriteTo writes the complete SVG document.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&doc, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", ColorBackdrop)
	doc.Write(s.body.Bytes())
	doc.WriteString("</svg>\n")
	return doc.WriteTo(w)
}
