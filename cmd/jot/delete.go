package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		if !nb.DeleteNote(args[0]) {
			return noteNotFound(args[0])
		}
		if err := nb.saved(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", args[0])
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Toggle the pinned flag of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		if !nb.TogglePin(args[0]) {
			return noteNotFound(args[0])
		}
		if err := nb.saved(); err != nil {
			return err
		}
		note, _ := nb.Note(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Note %s pinned: %v\n", note.ID, note.Pinned)
		return nil
	},
}

var dupCmd = &cobra.Command{
	Use:   "dup [id]",
	Short: "Duplicate a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}

		copied, ok := nb.DuplicateNote(args[0])
		if !ok {
			return noteNotFound(args[0])
		}
		if err := nb.saved(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), copied.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd, pinCmd, dupCmd)
}
