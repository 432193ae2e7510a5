// Package core holds the notes domain: entities, the Manager that owns them,
// and the ports the Manager and its persistence depend on.
package core

import (
	"slices"
	"time"
)

const (
	// UntitledTitle is the title given to notes created without one.
	UntitledTitle = "Untitled Note"
	// CopySuffix is appended to the title of a duplicated note.
	CopySuffix = " (Copy)"
)

// Note is the central entity of the domain.
// It represents a short user-authored text with organizing metadata.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Category  string    `json:"category" yaml:"category"`
	Tags      []string  `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	Pinned    bool      `json:"pinned" yaml:"pinned"`
}

// Clone returns a copy of n that shares no mutable state with it.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}

// HasTag reports whether the note carries tag exactly.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Category is a named, colored grouping label applied to notes.
// Notes reference categories by ID; the reference is not enforced.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// DefaultCategories returns the categories seeded when none are persisted.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Personal", Color: "#6366f1"},
		{ID: "2", Name: "Work", Color: "#10b981"},
		{ID: "3", Name: "Ideas", Color: "#f59e0b"},
	}
}

// NotePatch carries the caller-provided fields of a note.
// A nil field means "not provided". Identity fields (ID and timestamps)
// are owned by the Manager and cannot be set through a patch.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *string
	Tags     []string
	Pinned   *bool
}

// apply overlays the provided fields of p onto n.
func (p NotePatch) apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Tags != nil {
		n.Tags = slices.Clone(p.Tags)
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
}

// Ptr returns a pointer to v. It keeps NotePatch and FilterPatch literals short.
func Ptr[T any](v T) *T {
	return &v
}

// EventType represents the type of change observed in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a stored key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
