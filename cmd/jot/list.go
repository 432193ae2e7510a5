package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
)

var (
	listSearch   string
	listCategory string
	listTags     []string
	listSort     string
	listOrder    string
	listJSON     bool
	listYAML     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, pinned first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, err := core.ParseSortField(listSort)
		if err != nil {
			return err
		}
		order, err := core.ParseSortOrder(listOrder)
		if err != nil {
			return err
		}

		nb, err := openNotebook()
		if err != nil {
			return err
		}

		nb.UpdateFilter(jot.FilterPatch{
			Search:    jot.Ptr(listSearch),
			Category:  jot.Ptr(listCategory),
			Tags:      append([]string{}, listTags...),
			SortBy:    sortBy,
			SortOrder: order,
		})
		if err := printNotes(cmd.OutOrStdout(), nb.FilteredNotes()); err != nil {
			return fmt.Errorf("failed to encode notes: %w", err)
		}
		return nil
	},
}

func printNotes(w io.Writer, notes []jot.Note) error {
	switch {
	case listJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	case listYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(notes)
	}

	for _, note := range notes {
		marker := " "
		if note.Pinned {
			marker = "*"
		}
		tags := ""
		if len(note.Tags) > 0 {
			tags = " #" + strings.Join(note.Tags, " #")
		}
		fmt.Fprintf(w, "%s %s  %s%s\n", marker, note.ID, note.Title, tags)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive text in title, content or tags")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Category ID")
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Required tag (repeatable, all must match)")
	listCmd.Flags().StringVar(&listSort, "sort", string(core.SortByUpdatedAt), "Sort field: createdAt, updatedAt or title")
	listCmd.Flags().StringVar(&listOrder, "order", string(core.SortDesc), "Sort order: asc or desc")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
