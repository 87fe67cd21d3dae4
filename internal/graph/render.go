package graph

// Surface is a 2D drawing target. Colours are CSS colour strings.
type Surface interface {
	// Size returns the drawable area.
	Size() (width, height float64)
	Line(x1, y1, x2, y2 float64, color string, width float64)
	FillCircle(cx, cy, r float64, color string)
	StrokeCircle(cx, cy, r float64, color string, width float64)
	// Text draws s horizontally centred on x with its top edge at y.
	Text(x, y float64, s, color string, size float64)
}

// Render draws l onto s: every edge first, then for each node its shadow,
// fill, selection outline and label. A nil surface, a surface with no area,
// or an empty layout draws nothing.
func Render(s Surface, l *Layout, selectedID string) {
	if s == nil || l == nil || l.Empty() {
		return
	}
	if w, h := s.Size(); w <= 0 || h <= 0 {
		return
	}

	for _, e := range l.Edges {
		s.Line(e.X1, e.Y1, e.X2, e.Y2, ColorEdge, EdgeWidth)
	}

	for _, n := range l.Nodes {
		selected := n.ID == selectedID
		r := l.opts.NodeRadius
		if selected {
			r = l.opts.SelectedRadius
		}
		s.FillCircle(n.X+ShadowOffset, n.Y+ShadowOffset, r, ColorShadow)
		s.FillCircle(n.X, n.Y, r, n.Color)
		if selected {
			s.StrokeCircle(n.X, n.Y, r, ColorOutline, OutlineWidth)
		}
		s.Text(n.X, n.Y+r+LabelGap, n.Label, ColorLabel, LabelFontSize)
	}
}
