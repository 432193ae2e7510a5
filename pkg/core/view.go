package core

import (
	"slices"
	"strings"
)

// TitleCompare orders two titles, returning a negative number, zero or a
// positive number like strings.Compare.
type TitleCompare func(a, b string) int

// FilterNotes derives the visible subset of notes for f.
//
// The result is a new slice: notes matching the search, category and tag
// criteria, stably sorted by f.SortBy in f.SortOrder, with pinned notes
// stably moved ahead of unpinned ones. A nil titles falls back to
// strings.Compare.
func FilterNotes(notes []Note, f Filter, titles TitleCompare) []Note {
	out := make([]Note, 0, len(notes))
	search := strings.ToLower(f.Search)
	for _, n := range notes {
		if search != "" && !matchesSearch(n, search) {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if !hasAllTags(n, f.Tags) {
			continue
		}
		out = append(out, n.Clone())
	}

	if titles == nil {
		titles = strings.Compare
	}
	cmp := comparatorFor(f.SortBy, titles)
	if f.SortOrder == SortAsc {
		slices.SortStableFunc(out, cmp)
	} else {
		slices.SortStableFunc(out, func(a, b Note) int { return -cmp(a, b) })
	}

	return pinnedFirst(out)
}

// matchesSearch reports whether title, content or any tag contains the
// already lower-cased search term.
func matchesSearch(n Note, search string) bool {
	if strings.Contains(strings.ToLower(n.Title), search) ||
		strings.Contains(strings.ToLower(n.Content), search) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), search)
	})
}

func hasAllTags(n Note, tags []string) bool {
	for _, tag := range tags {
		if !n.HasTag(tag) {
			return false
		}
	}
	return true
}

func byCreatedAt(a, b Note) int { return a.CreatedAt.Compare(b.CreatedAt) }

func byUpdatedAt(a, b Note) int { return a.UpdatedAt.Compare(b.UpdatedAt) }

// comparatorFor selects the ascending comparator for field.
// Unknown fields order by last update.
func comparatorFor(field SortField, titles TitleCompare) func(a, b Note) int {
	switch field {
	case SortByCreatedAt:
		return byCreatedAt
	case SortByTitle:
		return func(a, b Note) int { return titles(a.Title, b.Title) }
	default:
		return byUpdatedAt
	}
}

// pinnedFirst is a stable partition: pinned notes keep their relative order
// ahead of unpinned notes, which keep theirs.
func pinnedFirst(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.Pinned {
			out = append(out, n)
		}
	}
	for _, n := range notes {
		if !n.Pinned {
			out = append(out, n)
		}
	}
	return out
}

// CollectTags returns every distinct tag across notes, sorted ascending.
func CollectTags(notes []Note) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, n := range notes {
		for _, tag := range n.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}
