package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/entrhq/rubrica/pkg/config"
	"github.com/entrhq/rubrica/pkg/executor/cli"
	"github.com/entrhq/rubrica/pkg/executor/tui"
	"github.com/entrhq/rubrica/pkg/logging"
	"github.com/entrhq/rubrica/pkg/store"
)

// app holds the persistent flags and builds what each command needs from them.
type app struct {
	configPath  string
	baseDir     string
	contactsDir string
	indexFile   string
	verbose     bool

	// isTerminal reports whether f is attached to a terminal.
	isTerminal func(f *os.File) bool
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{isTerminal: isTerminal})
}

func newRootCmdWith(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rubrica",
		Short: "Rubrica - a contact book for the terminal",
		Long: `Rubrica keeps a contact book as one plain-text record file per contact
plus an index file listing them in order.

Run without a command to open the interactive contact list.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         a.runInteractive,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default is $HOME/.rubrica/config.json)")
	flags.StringVarP(&a.baseDir, "dir", "d", "", "directory holding the contact book (overrides storage.base_dir)")
	flags.StringVar(&a.contactsDir, "contacts-dir", "", "name of the record directory (overrides storage.contacts_dir)")
	flags.StringVar(&a.indexFile, "index", "", "name of the index file (overrides storage.index_file)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(
		a.newListCmd(),
		a.newShowCmd(),
		a.newAddCmd(),
		a.newEditCmd(),
		a.newDeleteCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig initializes the global configuration and applies the storage
// flags on top of it.
func (a *app) loadConfig() (*config.StorageSection, error) {
	if err := config.Initialize(a.configPath); err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	storage := config.GetStorage()
	storage.Override(a.baseDir, a.contactsDir, a.indexFile)
	if err := storage.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}
	return storage, nil
}

// logger picks the log destination: the session log file when fileLog is
// set (the TUI owns the terminal), stderr with --verbose, nowhere otherwise.
func (a *app) logger(stderr io.Writer, fileLog bool) *logging.Logger {
	switch {
	case fileLog:
		// NewLogger falls back to stderr on error and says so itself.
		l, _ := logging.NewLogger("rubrica")
		if !a.verbose {
			l.SetLevel(logging.LevelInfo)
		}
		return l
	case a.verbose:
		return logging.New("rubrica", stderr)
	default:
		return logging.Discard("rubrica")
	}
}

func (a *app) openStore(log *logging.Logger) (*store.DirStore, error) {
	storage, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.NewDirStore(storage.ContactsPath(), storage.IndexPath(), store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Debugf("Contact book at %s (index %s)", st.ContactsDir(), st.IndexPath())
	return st, nil
}

// withExecutor opens the store and hands a CLI executor writing to the
// command's output to fn.
func (a *app) withExecutor(cmd *cobra.Command, fn func(*cli.Executor) error) error {
	log := a.logger(cmd.ErrOrStderr(), false)
	defer log.Close()

	st, err := a.openStore(log)
	if err != nil {
		return err
	}

	return fn(cli.NewExecutor(st,
		cli.WithWriter(cmd.OutOrStdout()),
		cli.WithLogger(log),
	))
}

// runInteractive opens the TUI. When stdout is not a terminal the book is
// listed instead so that rubrica can be piped.
func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	if !a.isTerminal(os.Stdout) {
		return a.withExecutor(cmd, func(e *cli.Executor) error {
			return e.List("")
		})
	}

	log := a.logger(cmd.ErrOrStderr(), true)
	defer log.Close()

	st, err := a.openStore(log)
	if err != nil {
		return err
	}

	log.Infof("Starting rubrica v%s", version)
	executor := tui.NewExecutor(st,
		tui.WithLogger(log),
		tui.WithUISettings(config.GetUI()),
	)
	if err := executor.Run(cmd.Context()); err != nil {
		log.Errorf("TUI exited: %v", err)
		return err
	}
	return nil
}
