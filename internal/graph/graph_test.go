package graph

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/notegraph/internal/models"
)

func fourNotes() []*models.Note {
	return []*models.Note{
		{ID: "a", Title: "Arrays", Status: models.StatusMastered, Links: []string{"b", "missing"}},
		{ID: "b", Title: "Recursion & Backtracking", Status: models.StatusInProgress, Links: []string{"a"}},
		{ID: "c", Title: "Strings", Status: models.StatusToRevisit, AIGenerated: true},
		{ID: "d", Title: "Trees", Status: "archived"},
	}
}

func TestNew_FourNotesOn400Square(t *testing.T) {
	l := New(fourNotes(), 400, 400, DefaultOptions())

	assert.Equal(t, 100.0, l.Radius)
	assert.Equal(t, 200.0, l.CenterX)
	assert.Equal(t, 200.0, l.CenterY)
	require.Len(t, l.Nodes, 4)
	assert.InDelta(t, 300, l.Nodes[0].X, 1e-9)
	assert.InDelta(t, 200, l.Nodes[0].Y, 1e-9)
	assert.InDelta(t, 200, l.Nodes[1].X, 1e-9)
	assert.InDelta(t, 300, l.Nodes[1].Y, 1e-9)
	assert.InDelta(t, 100, l.Nodes[2].X, 1e-9)
}

func TestNew_RadiusUsesShorterSide(t *testing.T) {
	l := New(fourNotes(), 800, 200, DefaultOptions())
	assert.Equal(t, 50.0, l.Radius)
	assert.Equal(t, 400.0, l.CenterX)
	assert.Equal(t, 100.0, l.CenterY)
}

func TestNew_NodesLieOnCircle(t *testing.T) {
	notes := make([]*models.Note, 7)
	for i := range notes {
		notes[i] = &models.Note{ID: fmt.Sprint(i)}
	}
	l := New(notes, 640, 480, DefaultOptions())
	for _, n := range l.Nodes {
		assert.InDelta(t, l.Radius, math.Hypot(n.X-l.CenterX, n.Y-l.CenterY), 1e-9)
	}
}

func TestNew_NoArea(t *testing.T) {
	for _, size := range [][2]float64{{0, 400}, {400, 0}, {-1, -1}} {
		l := New(fourNotes(), size[0], size[1], DefaultOptions())
		assert.True(t, l.Empty())
		assert.Empty(t, l.Edges)
		_, hit := l.HitTest(size[0]/2, size[1]/2)
		assert.False(t, hit)
	}
}

func TestEdges_SkipMissingTargetsAndKeepBothDirections(t *testing.T) {
	l := New(fourNotes(), 400, 400, DefaultOptions())
	require.Len(t, l.Edges, 2)
	assert.Equal(t, "a", l.Edges[0].From)
	assert.Equal(t, "b", l.Edges[0].To)
	assert.Equal(t, "b", l.Edges[1].From)
	assert.Equal(t, "a", l.Edges[1].To)
}

func TestEdges_FilteredOutTargetSkipped(t *testing.T) {
	notes := fourNotes()
	notes[0].Folder = "Arrays"
	notes[1].Folder = "Recursion"
	visible := FilterByFolder(notes, "Arrays")
	require.Len(t, visible, 1)
	l := New(visible, 400, 400, DefaultOptions())
	assert.Empty(t, l.Edges)
}

func TestNodeColor(t *testing.T) {
	tests := []struct {
		status models.Status
		ai     bool
		want   string
	}{
		{models.StatusMastered, false, "#10b981"},
		{models.StatusInProgress, false, "#3b82f6"},
		{models.StatusToRevisit, false, "#f59e0b"},
		{"archived", false, "#9ca3af"},
		{models.StatusMastered, true, "#8b5cf6"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NodeColor(tt.status, tt.ai), "status=%s ai=%v", tt.status, tt.ai)
	}
}

func TestLabelsTruncated(t *testing.T) {
	l := New(fourNotes(), 400, 400, DefaultOptions())
	assert.Equal(t, "Arrays", l.Nodes[0].Label)
	assert.Equal(t, "Recursion & Bac...", l.Nodes[1].Label)
}

func TestHitTest(t *testing.T) {
	l := New(fourNotes(), 400, 400, DefaultOptions())

	n, ok := l.HitTest(300, 200)
	require.True(t, ok)
	assert.Equal(t, "a", n.ID)

	n, ok = l.HitTest(300, 214)
	require.True(t, ok, "boundary distance counts as a hit")
	assert.Equal(t, "a", n.ID)

	_, ok = l.HitTest(300, 214.5)
	assert.False(t, ok)

	_, ok = l.HitTest(200, 200)
	assert.False(t, ok)
}

func TestHitTest_FirstMatchWins(t *testing.T) {
	notes := []*models.Note{{ID: "x"}, {ID: "y"}}
	// tiny surface puts both nodes within the hit radius of the centre
	l := New(notes, 20, 20, DefaultOptions())
	n, ok := l.HitTest(10, 10)
	require.True(t, ok)
	assert.Equal(t, "x", n.ID)
}

func TestFilterByFolder(t *testing.T) {
	notes := []*models.Note{{ID: "1", Folder: "Arrays"}, {ID: "2", Folder: "Graphs"}}
	assert.Len(t, FilterByFolder(notes, models.FolderAll), 2)
	assert.Len(t, FilterByFolder(notes, ""), 2)
	got := FilterByFolder(notes, "Graphs")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

type call struct {
	op    string
	color string
	r     float64
}

type recordingSurface struct {
	w, h  float64
	calls []call
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) Line(_, _, _, _ float64, c string, _ float64) {
	s.calls = append(s.calls, call{op: "line", color: c})
}
func (s *recordingSurface) FillCircle(_, _, r float64, c string) {
	s.calls = append(s.calls, call{op: "fill", color: c, r: r})
}
func (s *recordingSurface) StrokeCircle(_, _, r float64, c string, _ float64) {
	s.calls = append(s.calls, call{op: "stroke", color: c, r: r})
}
func (s *recordingSurface) Text(_, _ float64, text, c string, _ float64) {
	s.calls = append(s.calls, call{op: "text:" + text, color: c})
}

func TestRender_Order(t *testing.T) {
	l := New(fourNotes()[:2], 400, 400, DefaultOptions())
	s := &recordingSurface{w: 400, h: 400}
	Render(s, l, "b")

	want := []call{
		{op: "line", color: ColorEdge},
		{op: "line", color: ColorEdge},
		{op: "fill", color: ColorShadow, r: 10},
		{op: "fill", color: ColorMastered, r: 10},
		{op: "text:Arrays", color: ColorLabel},
		{op: "fill", color: ColorShadow, r: 14},
		{op: "fill", color: ColorInProgress, r: 14},
		{op: "stroke", color: ColorOutline, r: 14},
		{op: "text:Recursion & Bac...", color: ColorLabel},
	}
	assert.Equal(t, want, s.calls)
}

func TestRender_NothingToDraw(t *testing.T) {
	l := New(fourNotes(), 400, 400, DefaultOptions())

	Render(nil, l, "")

	zero := &recordingSurface{}
	Render(zero, l, "")
	assert.Empty(t, zero.calls)

	empty := &recordingSurface{w: 400, h: 400}
	Render(empty, New(nil, 400, 400, DefaultOptions()), "")
	assert.Empty(t, empty.calls)
}

func TestSVGSurface(t *testing.T) {
	l := New(fourNotes(), 400, 400, DefaultOptions())
	s := NewSVGSurface(400, 400)
	Render(s, l, "a")

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `fill="#8b5cf6"`)
	assert.Contains(t, out, `stroke="#1f2937"`)
	assert.Contains(t, out, "Recursion &amp; Bac...")
	assert.Equal(t, 4, strings.Count(out, `fill="rgba(0, 0, 0, 0.1)"`))
}

func TestPNGSurface(t *testing.T) {
	l := New(fourNotes(), 200, 200, DefaultOptions())
	s := NewPNGSurface(200, 200)
	Render(s, l, "")

	// node 0 sits at (150, 100) and is mastered
	got := s.Image().RGBAAt(150, 100)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}, got)

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 255}, ParseColor("#8b5cf6"))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 255}, ParseColor("#fff"))
	assert.Equal(t, color.NRGBA{A: 26}, ParseColor("rgba(0, 0, 0, 0.1)"))
	assert.Equal(t, color.NRGBA{A: 255}, ParseColor("teal"))
}
