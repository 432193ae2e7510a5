package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		note, ok := nb.Note(args[0])
		if !ok {
			return noteNotFound(args[0])
		}

		category := note.Category
		if c, ok := nb.Category(note.Category); ok {
			category = c.Name
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# %s\n", note.Title)
		fmt.Fprintf(w, "id:       %s\n", note.ID)
		fmt.Fprintf(w, "category: %s\n", category)
		fmt.Fprintf(w, "tags:     %s\n", strings.Join(note.Tags, ", "))
		fmt.Fprintf(w, "pinned:   %v\n", note.Pinned)
		fmt.Fprintf(w, "created:  %s\n", note.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "updated:  %s\n", note.UpdatedAt.Format("2006-01-02 15:04:05"))
		if note.Content != "" {
			fmt.Fprintf(w, "\n%s\n", note.Content)
		}
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		for _, tag := range nb.AllTags() {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd, tagsCmd)
}
