package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update the fields of a note",
	Long:  `Edit changes only the fields given as flags. Passing --tag replaces the whole tag list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		note, ok := nb.UpdateNote(args[0], notePatch(cmd))
		if !ok {
			return noteNotFound(args[0])
		}
		if err := nb.saved(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	addNoteFlags(editCmd)
}
