package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var (
	noteTitle    string
	noteContent  string
	noteCategory string
	noteTags     []string
	notePin      bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		p := notePatch(cmd)
		if notePin {
			p.Pinned = jot.Ptr(true)
		}
		note := nb.CreateNote(p)
		if err := nb.saved(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), note.ID)
		return nil
	},
}

// notePatch builds a patch from the note flags the user actually set.
func notePatch(cmd *cobra.Command) jot.NotePatch {
	var p jot.NotePatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		p.Title = jot.Ptr(noteTitle)
	}
	if flags.Changed("content") {
		p.Content = jot.Ptr(noteContent)
	}
	if flags.Changed("category") {
		p.Category = jot.Ptr(noteCategory)
	}
	if flags.Changed("tag") {
		p.Tags = append([]string{}, noteTags...)
	}
	return p
}

func addNoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	cmd.Flags().StringVar(&noteContent, "content", "", "Note body")
	cmd.Flags().StringVar(&noteCategory, "category", "", "Category ID")
	cmd.Flags().StringSliceVar(&noteTags, "tag", nil, "Tag (repeatable)")
}

func init() {
	rootCmd.AddCommand(newCmd)
	addNoteFlags(newCmd)
	newCmd.Flags().BoolVar(&notePin, "pin", false, "Pin the new note")
}
