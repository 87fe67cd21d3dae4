package graph

import "github.com/hyperjump/notegraph/internal/models"

// Palette.
const (
	ColorAI         = "#8b5cf6"
	ColorMastered   = "#10b981"
	ColorInProgress = "#3b82f6"
	ColorToRevisit  = "#f59e0b"
	ColorUnknown    = "#9ca3af"

	ColorEdge     = "#64748b"
	ColorOutline  = "#1f2937"
	ColorLabel    = "#374151"
	ColorShadow   = "rgba(0, 0, 0, 0.1)"
	ColorBackdrop = "#f8fafc"
)

// Stroke widths and text metrics.
const (
	EdgeWidth     = 2.0
	OutlineWidth  = 3.0
	ShadowOffset  = 2.0
	LabelGap      = 8.0
	LabelFontSize = 13.0
)

// NodeColor picks the fill for a node. AI-generated notes take precedence over status.
func NodeColor(status models.Status, aiGenerated bool) string {
	if aiGenerated {
		return ColorAI
	}
	switch status {
	case models.StatusMastered:
		return ColorMastered
	case models.StatusInProgress:
		return ColorInProgress
	case models.StatusToRevisit:
		return ColorToRevisit
	default:
		return ColorUnknown
	}
}
