package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch"
	"github.com/roach88/portalsearch/internal/querytree"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompileOutput is the result of the compile command.
type CompileOutput struct {
	Query       string          `json:"query"`
	Profile     string          `json:"profile"`
	Serialized  string          `json:"serialized"`
	Fingerprint string          `json:"fingerprint"`
	Tree        json.RawMessage `json:"tree"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <query>",
		Short: "Compile query text to a bool query",
		Long: `Compile query text into the bool query sent to the search engine.

Filters (terms, ranges) land in bool.filter, free text and phrases in
bool.should. The query body is canonical JSON, so its fingerprint is
stable: queries written differently that select the same documents the
same way share a fingerprint.

Examples:
  portalsearch compile 'hotel #travel createdDate:>=2024-01-01'
  portalsearch compile 'hotel' --config search.yaml -o body.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the canonical query body to this file")

	return cmd
}

func runCompile(opts *CompileOptions, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	eng, err := opts.newEngine(formatter)
	if err != nil {
		return err
	}

	clauses, err := eng.Parse(query)
	if err != nil {
		return syntaxFailure(formatter, err)
	}

	tree, err := eng.Compile(clauses)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompile, err.Error(), nil)
	}

	body, err := portalsearch.Encode(tree)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompile, err.Error(), nil)
	}
	fingerprint, err := querytree.Fingerprint(tree)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeCompile, err.Error(), nil)
	}
	formatter.VerboseLog("Compiled %d clause(s): %d filter, %d should", len(clauses), len(tree.Filter), len(tree.Should))

	// Write to file if --output specified
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, body, 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	out := CompileOutput{
		Query:       query,
		Profile:     eng.Profile().String(),
		Serialized:  eng.Serialize(clauses),
		Fingerprint: fingerprint,
		Tree:        body,
	}
	return outputCompileSuccess(formatter, out, opts.Output)
}

// outputCompileSuccess outputs the compiled query.
func outputCompileSuccess(formatter *OutputFormatter, out CompileOutput, outputFile string) error {
	return formatter.Render(out, func(w io.Writer) error {
		pretty, err := querytree.Indent(out.Tree)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(pretty))
		fmt.Fprintf(w, "\nfingerprint: %s\n", out.Fingerprint)
		if outputFile != "" {
			fmt.Fprintf(w, "Wrote query body to %s\n", outputFile)
		}
		return nil
	})
}
