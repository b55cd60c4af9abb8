package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/executor/cli"
)

func (a *app) newListCmd() *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long: `List contacts in book order. --match filters on first name, last name
or phone with a case-insensitive glob pattern, e.g. "ros*" or "?ario".`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				return e.List(match)
			})
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "glob pattern to filter by")
	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FIRST LAST",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				return e.Show(args[0], args[1])
			})
		},
	}
}

// contactFlags are the field flags shared by add and edit.
type contactFlags struct {
	first   string
	last    string
	address string
	phone   string
	age     int
}

func (f *contactFlags) register(cmd *cobra.Command, withNames bool) {
	if withNames {
		cmd.Flags().StringVar(&f.first, "first", "", "new first name")
		cmd.Flags().StringVar(&f.last, "last", "", "new last name")
	}
	cmd.Flags().StringVarP(&f.address, "address", "a", "", "postal address")
	cmd.Flags().StringVarP(&f.phone, "phone", "p", "", "phone number")
	cmd.Flags().IntVar(&f.age, "age", 0, "age in years")
}

// apply copies the flags the user set onto c.
func (f *contactFlags) apply(cmd *cobra.Command, c contact.Contact) contact.Contact {
	changed := cmd.Flags().Changed
	if changed("first") {
		c.FirstName = f.first
	}
	if changed("last") {
		c.LastName = f.last
	}
	if changed("address") {
		c.Address = f.address
	}
	if changed("phone") {
		c.Phone = f.phone
	}
	if changed("age") {
		c.Age = f.age
	}
	return c
}

func (a *app) newAddCmd() *cobra.Command {
	var fields contactFlags

	cmd := &cobra.Command{
		Use:     "add FIRST LAST",
		Short:   "Add a contact",
		Example: `  rubrica add Mario Rossi --phone "333 1234567" --address "Via Roma 1" --age 42`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := fields.apply(cmd, contact.Contact{FirstName: args[0], LastName: args[1]})
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				return e.Add(c)
			})
		},
	}
	fields.register(cmd, false)
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	var fields contactFlags

	cmd := &cobra.Command{
		Use:   "edit FIRST LAST",
		Short: "Change fields of a contact",
		Long: `Change the fields given as flags on the first contact named FIRST LAST.
Renaming with --first/--last moves the contact to a new record file.`,
		Example: `  rubrica edit Mario Rossi --phone "340 0000000"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				current, err := e.Lookup(args[0], args[1])
				if err != nil {
					return err
				}
				return e.Edit(args[0], args[1], fields.apply(cmd, current))
			})
		},
	}
	fields.register(cmd, true)
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete FIRST LAST",
		Short:   "Delete a contact and its record file",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !a.isTerminal(os.Stdin) {
					return errors.New("refusing to delete without --yes when stdin is not a terminal")
				}
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete %s %s?", args[0], args[1]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
					return nil
				}
			}
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				return e.Delete(args[0], args[1])
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question; anything but y or yes means no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (a *app) newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the contact book as YAML",
		Long: `Write the contact book as a YAML document, to stdout or to --output.
Output to a terminal is syntax highlighted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				if output == "" || output == "-" {
					if !a.isTerminal(os.Stdout) {
						return e.Export(cmd.OutOrStdout())
					}
					var buf bytes.Buffer
					if err := e.Export(&buf); err != nil {
						return err
					}
					return quick.Highlight(cmd.OutOrStdout(), buf.String(), "yaml", "terminal256", "monokai")
				}

				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				if err := e.Export(f); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func (a *app) newImportCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add contacts from a YAML export",
		Long: `Add the contacts of a YAML document written by "rubrica export" to the
book. With --replace the book is replaced instead. FILE "-" reads stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			return a.withExecutor(cmd, func(e *cli.Executor) error {
				return e.Import(in, replace)
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the book instead of appending")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rubrica v%s\n", version)
		},
	}
}
