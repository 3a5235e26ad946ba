// Command portalsearch parses, serializes and compiles search-bar queries.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/portalsearch/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own failures; only usage errors remain.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
