package core

import (
	"fmt"
	"slices"
)

// SortField names the note field the filtered view is ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
)

// SortOrder is the direction of the filtered view ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortField validates s as a SortField.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByCreatedAt, SortByUpdatedAt, SortByTitle:
		return f, nil
	default:
		return "", fmt.Errorf("invalid sort field %q (want createdAt, updatedAt or title)", s)
	}
}

// ParseSortOrder validates s as a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order %q (want asc or desc)", s)
	}
}

// Filter is the active search, category, tag and sort criteria.
// It is transient and never persisted.
type Filter struct {
	Search    string    `json:"search" yaml:"search"`
	Category  string    `json:"category" yaml:"category"`
	Tags      []string  `json:"tags" yaml:"tags"`
	SortBy    SortField `json:"sortBy" yaml:"sortBy"`
	SortOrder SortOrder `json:"sortOrder" yaml:"sortOrder"`
}

// DefaultFilter returns the canonical filter: everything, most recently
// updated first.
func DefaultFilter() Filter {
	return Filter{
		Tags:      []string{},
		SortBy:    SortByUpdatedAt,
		SortOrder: SortDesc,
	}
}

func (f Filter) clone() Filter {
	f.Tags = slices.Clone(f.Tags)
	if f.Tags == nil {
		f.Tags = []string{}
	}
	return f
}

// FilterPatch is a partial Filter. Zero-valued fields leave the current
// value untouched; a non-nil empty Tags slice clears the tag criteria.
type FilterPatch struct {
	Search    *string
	Category  *string
	Tags      []string
	SortBy    SortField
	SortOrder SortOrder
}

// Merge returns f with the provided fields of p overlaid.
func (f Filter) Merge(p FilterPatch) Filter {
	out := f.clone()
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(p.Tags)
	}
	if p.SortBy != "" {
		out.SortBy = p.SortBy
	}
	if p.SortOrder != "" {
		out.SortOrder = p.SortOrder
	}
	return out
}
