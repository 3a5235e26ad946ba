package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch"
)

// describeClause renders a clause for text output, one clause per line.
func describeClause(c portalsearch.Clause) string {
	switch v := c.(type) {
	case portalsearch.Match:
		return fmt.Sprintf("%-14s %q", "match", v.Value)
	case portalsearch.Phrase:
		return fmt.Sprintf("%-14s %q", "phrase", v.Value)
	case portalsearch.Term:
		return fmt.Sprintf("%-14s %s %q", "term", v.Field, v.Value)
	case portalsearch.MultiTerm:
		quoted := make([]string, len(v.Values))
		for i, value := range v.Values {
			quoted[i] = fmt.Sprintf("%q", value)
		}
		return fmt.Sprintf("%-14s %s {%s}", "multi_term", v.Field, strings.Join(quoted, ", "))
	case portalsearch.Range:
		return fmt.Sprintf("%-14s %s %s %q", "range", v.Field, v.Operation, v.Value)
	case portalsearch.CompoundRange:
		return fmt.Sprintf("%-14s %s [%q to %q]", "compound_range", v.Field, v.From, v.To)
	default:
		return fmt.Sprintf("%-14s %v", "unknown", c)
	}
}

// readInput reads the named file, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readClauses decodes a JSON clause list from the first argument or stdin.
// Failures are reported through f.
func readClauses(cmd *cobra.Command, args []string, f *OutputFormatter) (portalsearch.ClauseList, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	data, err := readInput(cmd, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("input file not found: %s", path), nil)
		}
		return nil, f.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("reading input: %v", err), nil)
	}

	var clauses portalsearch.ClauseList
	if err := json.Unmarshal(data, &clauses); err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("invalid clause list: %v", err), nil)
	}
	f.VerboseLog("Read %d clause(s)", len(clauses))
	return clauses, nil
}

// syntaxFailure reports a parse error. Syntax errors exit with
// ExitFailure and carry their code and offset as details.
func syntaxFailure(f *OutputFormatter, err error) error {
	var se *portalsearch.SyntaxError
	if !errors.As(err, &se) {
		return f.Fail(ExitFailure, ErrCodeSyntax, err.Error(), nil)
	}
	return f.Fail(ExitFailure, ErrCodeSyntax, se.Error(), map[string]any{
		"code": se.Code,
		"pos":  se.Pos,
	})
}
