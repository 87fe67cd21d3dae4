// Package models defines core data structures for notes, questions, study plans, and profiles.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid marks input rejected by validation.
var ErrInvalid = errors.New("invalid input")

// Status is a note's learning status.
type Status string

const (
	StatusToRevisit  Status = "to-revisit"
	StatusInProgress Status = "in-progress"
	StatusMastered   Status = "mastered"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToRevisit, StatusInProgress, StatusMastered:
		return true
	}
	return false
}

// Fixed folder names.
const (
	FolderAll        = "all"
	FolderAI         = "AI Generated"
	FolderStudyPlans = "Study Plans"
)

// Folders is the fixed, ordered set of topic folders shown in the sidebar.
var Folders = []string{
	"Arrays",
	"Strings",
	"Linked Lists",
	"Recursion",
	"Stacks & Queues",
	"Trees",
	"Graphs",
	"Dynamic Programming",
	"Searching",
	"Sorting",
	FolderAI,
	FolderStudyPlans,
}

// IsFolder reports whether name is one of Folders.
func IsFolder(name string) bool {
	for _, f := range Folders {
		if f == name {
			return true
		}
	}
	return false
}

// Defaults for a blank note.
const (
	UntitledTitle  = "Untitled Note"
	BlankContent   = "# New Note\n\nStart writing your notes here..."
	AIGeneratedTag = "ai-generated"
)

// Note is a study record with folder, status, tags, and links to other notes.
type Note struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	Folder      string    `json:"folder" db:"folder"`
	Status      Status    `json:"status" db:"status"`
	Tags        []string  `json:"tags" db:"tags"`
	Links       []string  `json:"links" db:"links"`
	AIGenerated bool      `json:"ai_generated" db:"ai_generated"`
	SourceAPI   *string   `json:"source_api" db:"source_api"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Clone returns a deep copy of n.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	c.Links = append([]string{}, n.Links...)
	if n.SourceAPI != nil {
		s := *n.SourceAPI
		c.SourceAPI = &s
	}
	return &c
}

// HasLink reports whether n links to id.
func (n *Note) HasLink(id string) bool {
	for _, l := range n.Links {
		if l == id {
			return true
		}
	}
	return false
}

// Normalize collapses duplicate tags and links, trims tag whitespace, and
// drops empty values. Order of first occurrence is kept.
func (n *Note) Normalize() {
	n.Tags = dedupe(n.Tags, true)
	n.Links = dedupe(n.Links, false)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Links == nil {
		n.Links = []string{}
	}
}

// Validate checks the fields a caller may set.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if !n.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, n.Status)
	}
	if n.Folder == "" {
		return fmt.Errorf("%w: folder is required", ErrInvalid)
	}
	if !IsFolder(n.Folder) {
		return fmt.Errorf("%w: unknown folder %q", ErrInvalid, n.Folder)
	}
	return nil
}

func dedupe(in []string, trim bool) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if trim {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
