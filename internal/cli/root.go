package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // YAML or JSON config file
	Profile    string // overrides the config's profile when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the portalsearch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "portalsearch",
		Short: "Parse, serialize and compile search-bar queries",
		Long: `Tools for the search-bar query language.

Queries mix free text with keyed filters:

  hotel deals #travel @jdoe createdDate:>=2024-01-01 team:{search,infra}

Commands parse query text into clauses, write clauses back out as text,
compile queries into search-engine bool queries, keep named saved
searches, and run scenario files against golden output.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Profile != "" {
				if _, err := portalsearch.ParseProfile(opts.Profile); err != nil {
					return err
				}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (YAML, or JSON with comments)")
	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "search profile (portal|insights)")

	// Add subcommands
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewSerializeCommand(opts))
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSavedCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewProfilesCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter returns the output formatter for a command.
// Verbose logs go to stderr to avoid corrupting JSON.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// logger returns a text logger on w, at debug level when verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newEngine builds an engine from --config and --profile. Failures are
// reported through f and returned as command errors.
func (o *RootOptions) newEngine(f *OutputFormatter) (*portalsearch.Engine, error) {
	var engineOpts []portalsearch.Option

	if o.ConfigPath != "" {
		cfg, err := portalsearch.LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
		}
		f.VerboseLog("Loaded config from %s", o.ConfigPath)
		engineOpts = append(engineOpts, portalsearch.WithConfig(cfg))
	}

	if o.Profile != "" {
		p, err := portalsearch.ParseProfile(o.Profile)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
		}
		engineOpts = append(engineOpts, portalsearch.WithProfile(p))
	}

	eng, err := portalsearch.New(engineOpts...)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	f.VerboseLog("Using profile %s", eng.Profile())
	return eng, nil
}
