package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch"
)

// ParseOutput is the result of the parse command.
type ParseOutput struct {
	Query      string                  `json:"query"`
	Profile    string                  `json:"profile"`
	Clauses    portalsearch.ClauseList `json:"clauses"`
	Serialized string                  `json:"serialized"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Parse query text into clauses",
		Long: `Parse query text into its clauses and print them together with the
canonical text they serialize back to.

Examples:
  portalsearch parse 'hotel deals #travel'
  portalsearch parse --profile insights 'hotel deals' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runParse(opts *RootOptions, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	eng, err := opts.newEngine(formatter)
	if err != nil {
		return err
	}

	clauses, err := eng.Parse(query)
	if err != nil {
		return syntaxFailure(formatter, err)
	}
	formatter.VerboseLog("Parsed %d clause(s)", len(clauses))

	out := ParseOutput{
		Query:      query,
		Profile:    eng.Profile().String(),
		Clauses:    clauses,
		Serialized: eng.Serialize(clauses),
		Warnings:   eng.Validate(clauses).Warnings,
	}

	return formatter.Render(out, func(w io.Writer) error {
		if len(clauses) == 0 {
			fmt.Fprintln(w, "(empty query)")
			return nil
		}
		fmt.Fprintln(w, out.Serialized)
		for _, c := range clauses {
			fmt.Fprintf(w, "  %s\n", describeClause(c))
		}
		for _, warning := range out.Warnings {
			fmt.Fprintf(w, "Warning: %s\n", warning)
		}
		return nil
	})
}
