package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ValidateOutput holds round-trip validation results.
type ValidateOutput struct {
	Valid    bool     `json:"valid"`
	Profile  string   `json:"profile"`
	Text     string   `json:"text"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [clauses.json|-]",
		Short: "Check that a clause list survives a round trip",
		Long: `Check that a JSON clause list serializes to text that parses back into
the same clauses under the selected profile. Reads stdin when no file is
given.

Hand-built lists can fail, for example two adjacent matches under a
profile that combines words, or a key containing whitespace. Parsed lists
fail only when a stray quote would pair with a later one.

Exit codes:
  0 - Clauses round-trip
  1 - Clauses would re-parse differently
  2 - Command error (unreadable input, bad config)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	eng, err := opts.newEngine(formatter)
	if err != nil {
		return err
	}

	clauses, err := readClauses(cmd, args, formatter)
	if err != nil {
		return err
	}

	res := eng.Validate(clauses)
	out := ValidateOutput{
		Valid:    res.RoundTrips,
		Profile:  eng.Profile().String(),
		Text:     eng.Serialize(clauses),
		Warnings: res.Warnings,
	}

	if !out.Valid {
		return outputValidationFailure(formatter, out)
	}
	return outputValidateSuccess(formatter, out)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, out ValidateOutput) error {
	return formatter.Render(out, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ Clauses round-trip as: %s\n", out.Text)
		return nil
	})
}

// outputValidationFailure lists the clauses that would re-parse differently.
func outputValidationFailure(formatter *OutputFormatter, out ValidateOutput) error {
	message := fmt.Sprintf("clauses do not round-trip (%d warning(s))", len(out.Warnings))
	return formatter.Reject(ExitFailure, ErrCodeRoundTrip, message, out, func(w io.Writer) error {
		fmt.Fprintln(w, "✗ Validation failed")
		fmt.Fprintf(w, "  text: %s\n\n", out.Text)
		for _, warning := range out.Warnings {
			fmt.Fprintf(w, "  %s: %s\n", ErrCodeRoundTrip, warning)
		}
		return nil
	})
}
