package core

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Manager owns the canonical notes, categories and active filter.
//
// All state is reached through its methods, which are serialized by an
// internal lock; returned values are copies. Every mutation that changes a
// collection reports a snapshot of it to the configured Observer.
type Manager struct {
	mu         sync.Mutex
	notes      []Note
	categories []Category
	filter     Filter

	now      func() time.Time
	newID    func() string
	observer Observer
	locale   language.Tag
	collator *collate.Collator
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock sets the time source used for note timestamps.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator sets the generator for note and category identifiers.
// Generated values must be unique within the process.
func WithIDGenerator(newID func() string) ManagerOption {
	return func(m *Manager) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// WithObserver registers the receiver of collection snapshots.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) {
		m.observer = o
	}
}

// WithLocale sets the language used to order note titles.
func WithLocale(tag language.Tag) ManagerOption {
	return func(m *Manager) {
		m.locale = tag
	}
}

// WithLogger sets the logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager over the given collections.
// A nil categories slice seeds DefaultCategories; an empty one is kept empty.
func NewManager(notes []Note, categories []Category, opts ...ManagerOption) *Manager {
	m := &Manager{
		filter: DefaultFilter(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		locale: language.English,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.collator = collate.New(m.locale)
	m.replace(notes, categories)
	return m
}

// Replace swaps both collections wholesale, e.g. after the underlying store
// was changed by someone else. Observers are not notified.
func (m *Manager) Replace(notes []Note, categories []Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replace(notes, categories)
	m.logger.Debug("state replaced", "notes", len(m.notes), "categories", len(m.categories))
}

func (m *Manager) replace(notes []Note, categories []Category) {
	m.notes = cloneNotes(notes)
	if categories == nil {
		categories = DefaultCategories()
	}
	m.categories = slices.Clone(categories)
}

// CreateNote creates a note from p and inserts it at the head of the list.
//
// Omitted fields default to: title UntitledTitle, empty content, the first
// category's ID (or ""), no tags, unpinned. The ID and both timestamps are
// always generated.
func (m *Manager) CreateNote(p NotePatch) Note {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.createNote(p)
	m.notesChanged()
	return n.Clone()
}

func (m *Manager) createNote(p NotePatch) Note {
	n := Note{
		Title: UntitledTitle,
		Tags:  []string{},
	}
	if len(m.categories) > 0 {
		n.Category = m.categories[0].ID
	}
	p.apply(&n)

	now := m.now()
	n.ID = m.newID()
	n.CreatedAt = now
	n.UpdatedAt = now

	m.notes = slices.Insert(m.notes, 0, n)
	m.logger.Debug("note created", "id", n.ID)
	return n
}

// UpdateNote overlays p onto the note with the given id and refreshes its
// UpdatedAt, keeping its position. It reports false if no such note exists.
func (m *Manager) UpdateNote(id string, p NotePatch) (Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	n := m.notes[i].Clone()
	p.apply(&n)
	m.touch(&n)
	m.notes[i] = n

	m.logger.Debug("note updated", "id", id)
	m.notesChanged()
	return n.Clone(), true
}

// DeleteNote removes the note with the given id, reporting whether it existed.
func (m *Manager) DeleteNote(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.notes = slices.Delete(m.notes, i, i+1)

	m.logger.Debug("note deleted", "id", id)
	m.notesChanged()
	return true
}

// TogglePin flips the pinned flag of the note with the given id and
// refreshes its UpdatedAt. It reports false if no such note exists.
func (m *Manager) TogglePin(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	n := &m.notes[i]
	n.Pinned = !n.Pinned
	m.touch(n)

	m.logger.Debug("note pin toggled", "id", id, "pinned", n.Pinned)
	m.notesChanged()
	return true
}

// DuplicateNote creates an unpinned copy of the note with the given id,
// titled with CopySuffix, at the head of the list.
func (m *Manager) DuplicateNote(id string) (Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	src := m.notes[i]
	tags := slices.Clone(src.Tags)
	if tags == nil {
		tags = []string{}
	}
	n := m.createNote(NotePatch{
		Title:    Ptr(src.Title + CopySuffix),
		Content:  Ptr(src.Content),
		Category: Ptr(src.Category),
		Tags:     tags,
		Pinned:   Ptr(false),
	})

	m.notesChanged()
	return n.Clone(), true
}

// CreateCategory appends a new category. Names are not required to be unique.
func (m *Manager) CreateCategory(name, color string) Category {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := Category{ID: m.newID(), Name: name, Color: color}
	m.categories = append(m.categories, c)

	m.logger.Debug("category created", "id", c.ID, "name", name)
	m.categoriesChanged()
	return c
}

// UpdateFilter merges p over the active filter.
func (m *Manager) UpdateFilter(p FilterPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = m.filter.Merge(p)
}

// ClearFilter restores DefaultFilter.
func (m *Manager) ClearFilter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = DefaultFilter()
}

// Filter returns the active filter.
func (m *Manager) Filter() Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter.clone()
}

// Notes returns all notes in storage order (newest created first).
func (m *Manager) Notes() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneNotes(m.notes)
}

// Note returns the note with the given id.
func (m *Manager) Note(id string) (Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return m.notes[i].Clone(), true
}

// Categories returns all categories in creation order.
func (m *Manager) Categories() []Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.categories)
}

// Category returns the category with the given id.
func (m *Manager) Category(id string) (Category, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return Category{}, false
	}
	return m.categories[i], true
}

// FilteredNotes derives the visible notes for the active filter.
// See FilterNotes for the ordering rules.
func (m *Manager) FilteredNotes() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return FilterNotes(m.notes, m.filter, m.collator.CompareString)
}

// AllTags returns the distinct tags of all notes, sorted.
func (m *Manager) AllTags() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CollectTags(m.notes)
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.notes, func(n Note) bool { return n.ID == id })
}

// touch refreshes UpdatedAt, never letting it fall behind CreatedAt.
func (m *Manager) touch(n *Note) {
	now := m.now()
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

func (m *Manager) notesChanged() {
	if m.observer != nil {
		m.observer.NotesChanged(cloneNotes(m.notes))
	}
}

func (m *Manager) categoriesChanged() {
	if m.observer != nil {
		m.observer.CategoriesChanged(slices.Clone(m.categories))
	}
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
