package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch"
	"github.com/roach88/portalsearch/internal/querytree"
	"github.com/roach88/portalsearch/internal/store"
)

// SavedOptions holds flags for the saved command and its subcommands.
type SavedOptions struct {
	*RootOptions
	Database string

	// IDs allows overriding the saved-search ID generator (for testing).
	// If nil, the store's UUIDv7 generator is used.
	IDs store.IDGenerator
}

// SaveOutput is the result of saved save. Duplicates names the other saved
// searches with the same fingerprint.
type SaveOutput struct {
	Saved      store.SavedSearch `json:"saved"`
	Duplicates []string          `json:"duplicates,omitempty"`
}

// ShowOutput is the result of saved show.
type ShowOutput struct {
	Search store.SavedSearch `json:"search"`
	Tree   json.RawMessage   `json:"tree"`
}

// NewSavedCommand creates the saved command group.
func NewSavedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SavedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved searches",
		Long: `Keep named searches in a SQLite database.

Queries are stored in canonical form together with the profile they were
written for and the fingerprint of their compiled query, so two names
holding the same search are easy to spot.

Examples:
  portalsearch saved save travel 'hotel #travel' --db ./searches.db
  portalsearch saved list --db ./searches.db
  portalsearch saved show travel --db ./searches.db
  portalsearch saved rm travel --db ./searches.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "portalsearch.db", "path to SQLite database")

	cmd.AddCommand(newSavedSaveCommand(opts))
	cmd.AddCommand(newSavedListCommand(opts))
	cmd.AddCommand(newSavedShowCommand(opts))
	cmd.AddCommand(newSavedRmCommand(opts))

	return cmd
}

func newSavedSaveCommand(opts *SavedOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "save <name> <query>",
		Short:         "Save a query under a name, replacing any previous query",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavedSave(opts, args[0], args[1], cmd)
		},
	}
}

func newSavedListCommand(opts *SavedOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved searches, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavedList(opts, cmd)
		},
	}
}

func newSavedShowCommand(opts *SavedOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show a saved search and its compiled query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavedShow(opts, args[0], cmd)
		},
	}
}

func newSavedRmCommand(opts *SavedOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <name>",
		Short:         "Remove a saved search",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavedRm(opts, args[0], cmd)
		},
	}
}

// openStore opens the database named by --db. The caller must close it.
func (o *SavedOptions) openStore(cmd *cobra.Command, f *OutputFormatter) (*store.Store, error) {
	st, err := store.Open(o.Database,
		store.WithLogger(o.logger(cmd.ErrOrStderr())),
		store.WithIDGenerator(o.IDs),
	)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("opening %s: %v", o.Database, err), nil)
	}
	f.VerboseLog("Opened saved searches at %s", o.Database)
	return st, nil
}

func runSavedSave(opts *SavedOptions, name, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	eng, err := opts.newEngine(formatter)
	if err != nil {
		return err
	}
	clauses, err := eng.Parse(query)
	if err != nil {
		return syntaxFailure(formatter, err)
	}
	fingerprint, err := eng.Fingerprint(clauses)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompile, err.Error(), nil)
	}

	st, err := opts.openStore(cmd, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	saved, err := st.Save(ctx, store.SavedSearch{
		Name:        name,
		Query:       eng.Serialize(clauses),
		Profile:     eng.Profile().String(),
		Fingerprint: fingerprint,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	same, err := st.ByFingerprint(ctx, fingerprint)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	out := SaveOutput{Saved: saved}
	for _, other := range same {
		if other.ID != saved.ID {
			out.Duplicates = append(out.Duplicates, other.Name)
		}
	}

	return formatter.Render(out, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ Saved %q: %s\n", saved.Name, saved.Query)
		if len(out.Duplicates) > 0 {
			fmt.Fprintf(w, "  same search as: %s\n", strings.Join(out.Duplicates, ", "))
		}
		return nil
	})
}

func runSavedList(opts *SavedOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore(cmd, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	searches, err := st.List(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	if searches == nil {
		searches = []store.SavedSearch{}
	}

	return formatter.Render(searches, func(w io.Writer) error {
		if len(searches) == 0 {
			fmt.Fprintln(w, "No saved searches.")
			return nil
		}
		for _, ss := range searches {
			fmt.Fprintf(w, "%-20s %-9s %s\n", ss.Name, ss.Profile, ss.Query)
		}
		return nil
	})
}

func runSavedShow(opts *SavedOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore(cmd, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	ss, err := st.Get(cmd.Context(), name)
	if err != nil {
		return savedLookupFailure(formatter, name, err)
	}

	// Recompile under the profile the search was saved with.
	recompile := *opts.RootOptions
	recompile.Profile = ss.Profile
	eng, err := recompile.newEngine(formatter)
	if err != nil {
		return err
	}
	tree, err := eng.ParseAndCompile(ss.Query)
	if err != nil {
		if portalsearch.IsSyntaxError(err) {
			return syntaxFailure(formatter, err)
		}
		return formatter.Fail(ExitFailure, ErrCodeCompile, err.Error(), nil)
	}
	body, err := portalsearch.Encode(tree)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompile, err.Error(), nil)
	}

	return formatter.Render(ShowOutput{Search: ss, Tree: body}, func(w io.Writer) error {
		pretty, err := querytree.Indent(body)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "name:        %s\n", ss.Name)
		fmt.Fprintf(w, "profile:     %s\n", ss.Profile)
		fmt.Fprintf(w, "query:       %s\n", ss.Query)
		fmt.Fprintf(w, "fingerprint: %s\n\n", ss.Fingerprint)
		fmt.Fprintln(w, string(pretty))
		return nil
	})
}

func runSavedRm(opts *SavedOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.openStore(cmd, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), name); err != nil {
		return savedLookupFailure(formatter, name, err)
	}

	return formatter.Render(map[string]string{"removed": name}, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ Removed %q\n", name)
		return nil
	})
}

func savedLookupFailure(f *OutputFormatter, name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("saved search not found: %s", name), nil)
	}
	return f.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
}
