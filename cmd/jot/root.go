package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/persist"
)

var (
	verbose bool
	dataDir string
	format  string
)

var (
	errNoteNotFound = errors.New("note not found")
	errSaveFailed   = errors.New("failed to save")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A small local notes keeper",
	Long: `Jot keeps notes, categories and tags in plain JSON or YAML files.
Every change is written through immediately; the data directory defaults to
$JOT_DATA_DIR, then the nearest .jot directory, then the OS data directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (default: resolved automatically)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "Record format: json or yaml")
}

// notebook is a jot.Notebook that remembers the first failed save.
// Unreadable records are not failures here: they load as empty and are
// only logged.
type notebook struct {
	*jot.Notebook
	saveErr error
}

// saved returns the first save failure of this run, if any.
func (n *notebook) saved() error {
	if n.saveErr != nil {
		return fmt.Errorf("%w: %v", errSaveFailed, n.saveErr)
	}
	return nil
}

// openNotebook opens the notebook selected by the persistent flags.
func openNotebook() (*notebook, error) {
	n := &notebook{}
	nb, err := jot.Open(dataDir,
		jot.WithFormat(format),
		jot.WithLogger(slog.Default()),
		jot.WithErrorHandler(func(err error) {
			var perr *persist.Error
			if errors.As(err, &perr) && perr.Op == persist.OpSave && n.saveErr == nil {
				n.saveErr = err
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open notebook: %w", err)
	}
	n.Notebook = nb
	return n, nil
}

func noteNotFound(id string) error {
	return fmt.Errorf("%w: %s", errNoteNotFound, id)
}
