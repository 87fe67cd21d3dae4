// Package cli formats notegraph results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// OutputFormat selects how results are written.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one line per result.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates s as an output format.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, response)
	case OutputCompact:
		for i, r := range response.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.Note.ID, r.Note.Folder, r.Note.Title)
		}
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d notes for %q (%s)\n\n", response.Total, response.Query, response.Mode)
	for i, r := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		if r.Score > 0 {
			fmt.Fprintf(w, "%d. %s | Score: %.4f\n", i+1, r.Note.Title, r.Score)
		} else {
			fmt.Fprintf(w, "%d. %s\n", i+1, r.Note.Title)
		}
		fmt.Fprintf(w, "ID: %s | Folder: %s | Status: %s\n", r.Note.ID, r.Note.Folder, r.Note.Status)
		if len(r.Tags) > 0 {
			fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Tags, ", "))
		}
		fmt.Fprintf(w, "\n%s\n\n", r.Snippet)
	}
}

// WriteDynamicPlan writes a packed weekly plan.
func WriteDynamicPlan(w io.Writer, plan *models.DynamicPlan, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, plan)
	}
	s := plan.Summary
	fmt.Fprintf(w, "%d questions, %d minutes\n", s.TotalQuestions, s.TotalMinutes)
	if format == OutputText {
		fmt.Fprintf(w, "Difficulty: %s\n", formatCounts(s.Difficulty))
		fmt.Fprintf(w, "Topics: %s\n", formatCounts(s.Topics))
	}
	for i, week := range plan.WeekWise {
		fmt.Fprintf(w, "\nWeek %d\n", i+1)
		for _, q := range week {
			if format == OutputCompact {
				fmt.Fprintf(w, "  %d\t%s\n", q.ID, q.Title)
				continue
			}
			fmt.Fprintf(w, "  - %s (%s, %s) %s\n", q.Title, q.Difficulty, q.EstimatedTime, q.URL)
		}
	}
	return nil
}

// formatCounts renders counts as "a: 1, b: 2" in key order.
func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

// WriteStatus writes service status.
func WriteStatus(w io.Writer, status *models.ServiceStatus, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, status)
	}
	fmt.Fprintf(w, "Storage:   %s\n", status.Driver)
	fmt.Fprintf(w, "Notes:     %d\n", status.Notes)
	fmt.Fprintf(w, "Questions: %d\n", status.Questions)
	fmt.Fprintf(w, "Ranked:    %t\n", status.RankedSearch)
	fmt.Fprintf(w, "Disk:      %s\n", FormatBytes(status.DiskUsageBytes))
	if format == OutputText {
		for _, u := range status.DiskUsage {
			fmt.Fprintf(w, "  %s  %s\n", FormatBytes(u.Bytes), u.Path)
		}
	}
	return nil
}

// WriteAnswer writes an assistant answer under a heading.
func WriteAnswer(w io.Writer, title, query, answer string) {
	fmt.Fprintf(w, "%s: %s\n\n%s\n", title, utils.Truncate(query, 60), answer)
}

// FormatBytes renders n using binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
