package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("id-%d", i)
	}
}

// recorder counts observer notifications and keeps the last snapshots.
type recorder struct {
	noteSaves     int
	categorySaves int
	lastNotes     []core.Note
	lastCats      []core.Category
}

func (r *recorder) NotesChanged(notes []core.Note) {
	r.noteSaves++
	r.lastNotes = notes
}

func (r *recorder) CategoriesChanged(categories []core.Category) {
	r.categorySaves++
	r.lastCats = categories
}

func newManager(t *testing.T) (*core.Manager, *fakeClock, *recorder) {
	t.Helper()
	clock := newFakeClock()
	rec := &recorder{}
	m := core.NewManager(nil, nil,
		core.WithClock(clock.Now),
		core.WithIDGenerator(sequentialIDs()),
		core.WithObserver(rec),
	)
	return m, clock, rec
}

func titles(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestManager_DefaultCategories(t *testing.T) {
	m, _, _ := newManager(t)

	cats := m.Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, "Personal", cats[0].Name)
	assert.Equal(t, "Work", cats[1].Name)
	assert.Equal(t, "Ideas", cats[2].Name)
	assert.Empty(t, m.Notes())
}

func TestManager_EmptyPersistedCategoriesStayEmpty(t *testing.T) {
	m := core.NewManager(nil, []core.Category{})
	assert.Empty(t, m.Categories())

	n := m.CreateNote(core.NotePatch{})
	assert.Equal(t, "", n.Category)
}

func TestManager_CreateNote(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		m, clock, rec := newManager(t)

		n := m.CreateNote(core.NotePatch{})

		assert.Equal(t, "id-1", n.ID)
		assert.Equal(t, core.UntitledTitle, n.Title)
		assert.Equal(t, "", n.Content)
		assert.Equal(t, m.Categories()[0].ID, n.Category)
		assert.Equal(t, []string{}, n.Tags)
		assert.False(t, n.Pinned)
		assert.Equal(t, clock.Now(), n.CreatedAt)
		assert.Equal(t, n.CreatedAt, n.UpdatedAt)
		assert.Equal(t, 1, rec.noteSaves)
		assert.Equal(t, 0, rec.categorySaves)
	})

	t.Run("Provided Fields Override Defaults", func(t *testing.T) {
		m, _, _ := newManager(t)

		n := m.CreateNote(core.NotePatch{
			Title:    core.Ptr("New Note"),
			Content:  core.Ptr("New content"),
			Category: core.Ptr("personal"),
			Tags:     []string{"test"},
			Pinned:   core.Ptr(true),
		})

		assert.Equal(t, "New Note", n.Title)
		assert.Equal(t, "New content", n.Content)
		assert.Equal(t, "personal", n.Category)
		assert.Equal(t, []string{"test"}, n.Tags)
		assert.True(t, n.Pinned)
	})

	t.Run("Inserts At Head", func(t *testing.T) {
		m, _, _ := newManager(t)

		m.CreateNote(core.NotePatch{Title: core.Ptr("first")})
		m.CreateNote(core.NotePatch{Title: core.Ptr("second")})

		assert.Equal(t, []string{"second", "first"}, titles(m.Notes()))
	})

	t.Run("Caller Tags Are Copied", func(t *testing.T) {
		m, _, _ := newManager(t)
		tags := []string{"a"}

		n := m.CreateNote(core.NotePatch{Tags: tags})
		tags[0] = "mutated"

		got, ok := m.Note(n.ID)
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, got.Tags)
	})
}

func TestManager_UpdateNote(t *testing.T) {
	m, clock, rec := newManager(t)
	n := m.CreateNote(core.NotePatch{Title: core.Ptr("Original Title"), Content: core.Ptr("body")})
	m.CreateNote(core.NotePatch{Title: core.Ptr("other")})
	clock.Advance(time.Minute)

	updated, ok := m.UpdateNote(n.ID, core.NotePatch{Title: core.Ptr("Updated Title")})

	require.True(t, ok)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, n.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(n.UpdatedAt))
	assert.Equal(t, []string{"other", "Updated Title"}, titles(m.Notes()), "position is kept")
	assert.Equal(t, 3, rec.noteSaves)

	t.Run("Empty Patch Still Touches", func(t *testing.T) {
		clock.Advance(time.Second)
		again, ok := m.UpdateNote(n.ID, core.NotePatch{})
		require.True(t, ok)
		assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
	})

	t.Run("Clock Moving Backwards Is Clamped", func(t *testing.T) {
		clock.Advance(-24 * time.Hour)
		again, ok := m.UpdateNote(n.ID, core.NotePatch{})
		require.True(t, ok)
		assert.False(t, again.UpdatedAt.Before(again.CreatedAt))
	})
}

func TestManager_NotFoundIsSafe(t *testing.T) {
	m, _, rec := newManager(t)
	m.CreateNote(core.NotePatch{Title: core.Ptr("keep")})
	before := m.Notes()
	saves := rec.noteSaves

	_, ok := m.UpdateNote("non-existent", core.NotePatch{Title: core.Ptr("x")})
	assert.False(t, ok)
	assert.False(t, m.DeleteNote("non-existent"))
	assert.False(t, m.TogglePin("non-existent"))
	_, ok = m.DuplicateNote("non-existent")
	assert.False(t, ok)

	assert.Equal(t, before, m.Notes())
	assert.Equal(t, saves, rec.noteSaves, "no save for a no-op")
}

func TestManager_DeleteNote(t *testing.T) {
	m, _, rec := newManager(t)
	n := m.CreateNote(core.NotePatch{Title: core.Ptr("To Delete")})
	require.Len(t, m.Notes(), 1)

	assert.True(t, m.DeleteNote(n.ID))
	assert.Empty(t, m.Notes())
	assert.Len(t, m.Categories(), 3)
	assert.Equal(t, 2, rec.noteSaves)
	assert.Empty(t, rec.lastNotes)
}

func TestManager_TogglePin(t *testing.T) {
	m, clock, _ := newManager(t)
	n := m.CreateNote(core.NotePatch{Title: core.Ptr("Test Note")})
	clock.Advance(time.Minute)

	require.True(t, m.TogglePin(n.ID))
	pinned, _ := m.Note(n.ID)
	assert.True(t, pinned.Pinned)
	assert.True(t, pinned.UpdatedAt.After(n.UpdatedAt))

	require.True(t, m.TogglePin(n.ID))
	unpinned, _ := m.Note(n.ID)
	assert.Equal(t, n.Pinned, unpinned.Pinned)
}

func TestManager_DuplicateNote(t *testing.T) {
	m, clock, rec := newManager(t)
	orig := m.CreateNote(core.NotePatch{
		Title:   core.Ptr("Original"),
		Content: core.Ptr("content"),
		Tags:    []string{"a", "b"},
		Pinned:  core.Ptr(true),
	})
	clock.Advance(time.Hour)

	dup, ok := m.DuplicateNote(orig.ID)

	require.True(t, ok)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, "Original (Copy)", dup.Title)
	assert.Equal(t, orig.Content, dup.Content)
	assert.Equal(t, orig.Tags, dup.Tags)
	assert.Equal(t, orig.Category, dup.Category)
	assert.False(t, dup.Pinned)
	assert.Equal(t, clock.Now(), dup.CreatedAt)
	assert.Len(t, m.Notes(), 2)
	assert.Equal(t, dup.ID, m.Notes()[0].ID)
	assert.Equal(t, 2, rec.noteSaves, "one save per operation")

	m.UpdateNote(dup.ID, core.NotePatch{Tags: []string{"c"}})
	still, _ := m.Note(orig.ID)
	assert.Equal(t, []string{"a", "b"}, still.Tags)
}

func TestManager_CreateCategory(t *testing.T) {
	m, _, rec := newManager(t)

	c := m.CreateCategory("Travel", "#ff0000")
	dupName := m.CreateCategory("Travel", "#00ff00")

	cats := m.Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, c, cats[3], "appended")
	assert.Equal(t, dupName, cats[4])
	assert.NotEqual(t, c.ID, dupName.ID)
	assert.Equal(t, 2, rec.categorySaves)
	assert.Equal(t, 0, rec.noteSaves)
	assert.Len(t, rec.lastCats, 5)

	got, ok := m.Category(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Travel", got.Name)
}

func TestManager_Filter(t *testing.T) {
	m, _, _ := newManager(t)

	m.UpdateFilter(core.FilterPatch{Search: core.Ptr("foo"), Tags: []string{"a"}})
	m.UpdateFilter(core.FilterPatch{SortBy: core.SortByTitle})

	f := m.Filter()
	assert.Equal(t, "foo", f.Search)
	assert.Equal(t, []string{"a"}, f.Tags)
	assert.Equal(t, core.SortByTitle, f.SortBy)
	assert.Equal(t, core.SortDesc, f.SortOrder)

	m.ClearFilter()
	assert.Equal(t, core.DefaultFilter(), m.Filter())
}

func TestManager_FilterTagsAND(t *testing.T) {
	m, _, _ := newManager(t)
	n1 := m.CreateNote(core.NotePatch{Title: core.Ptr("N1"), Tags: []string{"a", "b"}})
	m.CreateNote(core.NotePatch{Title: core.Ptr("N2"), Tags: []string{"a"}})

	m.UpdateFilter(core.FilterPatch{Tags: []string{"a", "b"}})

	got := m.FilteredNotes()
	require.Len(t, got, 1)
	assert.Equal(t, n1.ID, got[0].ID)
}

func TestManager_PinnedFirstRegardlessOfSort(t *testing.T) {
	m, clock, _ := newManager(t)
	unpinned := m.CreateNote(core.NotePatch{Title: core.Ptr("A unpinned")})
	clock.Advance(time.Minute)
	pinned := m.CreateNote(core.NotePatch{Title: core.Ptr("Z pinned"), Pinned: core.Ptr(true)})

	for _, field := range []core.SortField{core.SortByCreatedAt, core.SortByUpdatedAt, core.SortByTitle} {
		for _, order := range []core.SortOrder{core.SortAsc, core.SortDesc} {
			m.UpdateFilter(core.FilterPatch{SortBy: field, SortOrder: order})
			got := m.FilteredNotes()
			require.Len(t, got, 2)
			assert.Equal(t, pinned.ID, got[0].ID, "%s %s", field, order)
			assert.Equal(t, unpinned.ID, got[1].ID, "%s %s", field, order)
		}
	}
}

func TestManager_SortByTitle(t *testing.T) {
	m, _, _ := newManager(t)
	m.CreateNote(core.NotePatch{Title: core.Ptr("B")})
	m.CreateNote(core.NotePatch{Title: core.Ptr("A")})

	m.UpdateFilter(core.FilterPatch{SortBy: core.SortByTitle, SortOrder: core.SortAsc})
	assert.Equal(t, []string{"A", "B"}, titles(m.FilteredNotes()))

	m.UpdateFilter(core.FilterPatch{SortOrder: core.SortDesc})
	assert.Equal(t, []string{"B", "A"}, titles(m.FilteredNotes()))
}

func TestManager_SortByTitleIsLocaleAware(t *testing.T) {
	m, _, _ := newManager(t)
	for _, title := range []string{"banana", "Cherry", "apple", "Éclair"} {
		m.CreateNote(core.NotePatch{Title: core.Ptr(title)})
	}

	m.UpdateFilter(core.FilterPatch{SortBy: core.SortByTitle, SortOrder: core.SortAsc})
	assert.Equal(t, []string{"apple", "banana", "Cherry", "Éclair"}, titles(m.FilteredNotes()))
}

func TestManager_AllTags(t *testing.T) {
	m, _, _ := newManager(t)
	m.CreateNote(core.NotePatch{Tags: []string{"x", "y"}})
	m.CreateNote(core.NotePatch{Tags: []string{"y", "z"}})

	assert.Equal(t, []string{"x", "y", "z"}, m.AllTags())
}

func TestManager_SearchScenario(t *testing.T) {
	m, clock, _ := newManager(t)
	for _, title := range []string{"Note 1", "Note 2", "Note 3"} {
		m.CreateNote(core.NotePatch{Title: core.Ptr(title)})
		clock.Advance(time.Second)
	}

	m.UpdateFilter(core.FilterPatch{Search: core.Ptr("note")})
	assert.Len(t, m.FilteredNotes(), 3)

	m.UpdateFilter(core.FilterPatch{Search: core.Ptr("nonexistent")})
	assert.Empty(t, m.FilteredNotes())

	m.ClearFilter()
	assert.Equal(t, []string{"Note 3", "Note 2", "Note 1"}, titles(m.FilteredNotes()))
}

func TestManager_ReadsAreCopies(t *testing.T) {
	m, _, _ := newManager(t)
	n := m.CreateNote(core.NotePatch{Tags: []string{"a"}})

	view := m.FilteredNotes()
	view[0].Tags[0] = "mutated"
	view[0].Title = "mutated"
	notes := m.Notes()
	notes[0].Tags = append(notes[0].Tags, "extra")

	got, _ := m.Note(n.ID)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.Equal(t, core.UntitledTitle, got.Title)
}

func TestManager_Replace(t *testing.T) {
	m, _, rec := newManager(t)
	m.CreateNote(core.NotePatch{})
	saves := rec.noteSaves

	m.Replace([]core.Note{{ID: "ext", Title: "external"}}, []core.Category{{ID: "c", Name: "Only"}})

	assert.Equal(t, []string{"external"}, titles(m.Notes()))
	assert.Len(t, m.Categories(), 1)
	assert.Equal(t, saves, rec.noteSaves, "replace does not echo to observers")
}

func TestManager_State(t *testing.T) {
	m, _, _ := newManager(t)
	m.CreateNote(core.NotePatch{Tags: []string{"a"}, Pinned: core.Ptr(true)})
	m.CreateNote(core.NotePatch{Tags: []string{"a", "b"}})

	state, ok := m.State().(core.ManagerState)
	require.True(t, ok)
	assert.Equal(t, 2, state.Notes)
	assert.Equal(t, 1, state.Pinned)
	assert.Equal(t, 3, state.Categories)
	assert.Equal(t, 2, state.Tags)
	assert.True(t, state.Observed)
	assert.Equal(t, "manager", m.ComponentType())
}
