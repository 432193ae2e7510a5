// Package jot is the Composition Root for the Jot note keeper.
//
// It connects the in-memory note manager (Domain Layer) with a key-value
// store (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Features:
//
//   - **Single source of truth**: one Manager owns notes, categories and the active filter.
//   - **Derived views**: filtered and sorted notes (pinned first) and the tag set are computed on demand.
//   - **Write-through**: every mutation saves the changed collection; failures are logged, never fatal.
//   - **Default Adapter (FS)**: one JSON or YAML file per collection, written atomically.
//   - **Live reload**: Notebook.Watch picks up edits made by other processes.
//
// Usage:
//
//	nb, err := jot.Open("", jot.WithLogger(logger))
//
//	note := nb.CreateNote(jot.NotePatch{Title: jot.Ptr("Groceries")})
//	nb.TogglePin(note.ID)
//	nb.UpdateFilter(jot.FilterPatch{Search: jot.Ptr("groc")})
//	visible := nb.FilteredNotes()
package jot
