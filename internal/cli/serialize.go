package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// SerializeOutput is the result of the serialize command.
type SerializeOutput struct {
	Profile  string   `json:"profile"`
	Text     string   `json:"text"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewSerializeCommand creates the serialize command.
func NewSerializeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialize [clauses.json|-]",
		Short: "Write a JSON clause list as query text",
		Long: `Read a JSON clause list (as printed by "parse --format json") and write
it back out as canonical query text. Reads stdin when no file is given.

Clause lists that would not parse back unchanged are still serialized;
the problems are reported as warnings.

Example:
  echo '[{"type":"term","key":"tag","value":"travel"}]' | portalsearch serialize`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSerialize(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runSerialize(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	eng, err := opts.newEngine(formatter)
	if err != nil {
		return err
	}

	clauses, err := readClauses(cmd, args, formatter)
	if err != nil {
		return err
	}

	out := SerializeOutput{
		Profile:  eng.Profile().String(),
		Text:     eng.Serialize(clauses),
		Warnings: eng.Validate(clauses).Warnings,
	}

	return formatter.Render(out, func(w io.Writer) error {
		fmt.Fprintln(w, out.Text)
		for _, warning := range out.Warnings {
			formatter.Warn("%s", warning)
		}
		return nil
	})
}
