// Package graph lays notes out on a circle, draws them, and hit-tests pointer positions.
package graph

import (
	"math"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// Options controls layout geometry and drawing sizes.
type Options struct {
	RadiusFactor   float64 `json:"radius_factor"`
	NodeRadius     float64 `json:"node_radius"`
	SelectedRadius float64 `json:"selected_radius"`
	HitRadius      float64 `json:"hit_radius"`
	LabelMax       int     `json:"label_max"`
}

// DefaultOptions returns the stock geometry.
func DefaultOptions() Options {
	return Options{
		RadiusFactor:   0.25,
		NodeRadius:     10,
		SelectedRadius: 14,
		HitRadius:      14,
		LabelMax:       15,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RadiusFactor <= 0 {
		o.RadiusFactor = d.RadiusFactor
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = d.NodeRadius
	}
	if o.SelectedRadius <= 0 {
		o.SelectedRadius = d.SelectedRadius
	}
	if o.HitRadius <= 0 {
		o.HitRadius = d.HitRadius
	}
	if o.LabelMax <= 0 {
		o.LabelMax = d.LabelMax
	}
	return o
}

// Node is a positioned note.
type Node struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Label       string        `json:"label"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
	Status      models.Status `json:"status"`
	AIGenerated bool          `json:"ai_generated"`
	Color       string        `json:"color"`
}

// Edge is a straight segment between two positioned notes, in link order.
type Edge struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// Layout is the computed circular arrangement for one surface size.
type Layout struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Radius  float64 `json:"radius"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Nodes   []Node  `json:"nodes"`
	Edges   []Edge  `json:"edges"`
	opts    Options
	index   map[string]int
}

// New places notes on a circle of radius RadiusFactor*min(width, height)
// centred on the surface, note i at angle 2πi/n. A surface with no area
// yields an empty layout with no nodes to draw or hit.
func New(notes []*models.Note, width, height float64, opts Options) *Layout {
	opts = opts.withDefaults()
	l := &Layout{
		Width:  width,
		Height: height,
		Nodes:  []Node{},
		Edges:  []Edge{},
		opts:   opts,
		index:  map[string]int{},
	}
	if width <= 0 || height <= 0 {
		return l
	}
	l.Radius = math.Min(width, height) * opts.RadiusFactor
	l.CenterX = width / 2
	l.CenterY = height / 2

	n := len(notes)
	for i, note := range notes {
		angle := float64(i) / float64(n) * 2 * math.Pi
		l.Nodes = append(l.Nodes, Node{
			ID:          note.ID,
			Title:       note.Title,
			Label:       utils.Truncate(note.Title, opts.LabelMax),
			X:           l.CenterX + math.Cos(angle)*l.Radius,
			Y:           l.CenterY + math.Sin(angle)*l.Radius,
			Status:      note.Status,
			AIGenerated: note.AIGenerated,
			Color:       NodeColor(note.Status, note.AIGenerated),
		})
		if _, dup := l.index[note.ID]; !dup {
			l.index[note.ID] = i
		}
	}
	l.Edges = l.edges(notes)
	return l
}

// edges emits one segment per stored link whose endpoints are both laid
// out. A mutual link therefore yields two overlapping segments.
func (l *Layout) edges(notes []*models.Note) []Edge {
	out := []Edge{}
	for _, note := range notes {
		src, ok := l.Node(note.ID)
		if !ok {
			continue
		}
		for _, target := range note.Links {
			dst, ok := l.Node(target)
			if !ok {
				continue
			}
			out = append(out, Edge{From: src.ID, To: dst.ID, X1: src.X, Y1: src.Y, X2: dst.X, Y2: dst.Y})
		}
	}
	return out
}

// Node returns the positioned node for id.
func (l *Layout) Node(id string) (Node, bool) {
	i, ok := l.index[id]
	if !ok {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Empty reports whether there is nothing to draw or hit.
func (l *Layout) Empty() bool {
	return len(l.Nodes) == 0
}

// HitTest returns the first node, in layout order, whose centre lies
// within the hit radius of (x, y).
func (l *Layout) HitTest(x, y float64) (Node, bool) {
	for _, n := range l.Nodes {
		if utils.Distance(x, y, n.X, n.Y) <= l.opts.HitRadius {
			return n, true
		}
	}
	return Node{}, false
}

// FilterByFolder returns the notes in folder; "all" keeps every note.
func FilterByFolder(notes []*models.Note, folder string) []*models.Note {
	if folder == "" || folder == models.FolderAll {
		return notes
	}
	out := make([]*models.Note, 0, len(notes))
	for _, n := range notes {
		if n.Folder == folder {
			out = append(out, n)
		}
	}
	return out
}
