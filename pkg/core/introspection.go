package core

import (
	"github.com/aretw0/introspection"
)

// ManagerState exposes internal state for observability.
type ManagerState struct {
	Notes      int    `json:"notes"`
	Pinned     int    `json:"pinned"`
	Categories int    `json:"categories"`
	Tags       int    `json:"tags"`
	Filter     Filter `json:"filter"`
	Locale     string `json:"locale"`
	Observed   bool   `json:"observed"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	m.mu.Lock()
	defer m.mu.Unlock()

	pinned := 0
	for _, n := range m.notes {
		if n.Pinned {
			pinned++
		}
	}

	return ManagerState{
		Notes:      len(m.notes),
		Pinned:     pinned,
		Categories: len(m.categories),
		Tags:       len(CollectTags(m.notes)),
		Filter:     m.filter.clone(),
		Locale:     m.locale.String(),
		Observed:   m.observer != nil,
	}
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "manager"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)
