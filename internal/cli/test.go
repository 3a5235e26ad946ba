package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool
	Filter string // glob matched against the scenario file name without extension
}

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"` // "matched" or "updated"
	Errors []string `json:"errors,omitempty"`
}

// TestResult summarizes a scenario run.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run query scenarios",
		Long: `Run scenario files: each step parses a query, serializes it back,
compiles it, and checks the expectations and assertions written in the
scenario. When golden/<scenario>.golden exists next to a scenario file,
the run's snapshot must match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  portalsearch test ./scenarios
  portalsearch test ./scenarios --filter "portal_*"
  portalsearch test ./scenarios --update
  portalsearch test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(scenariosDir); errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("scenarios directory not found: %s", scenariosDir), nil)
	}

	files, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to find scenarios: %v", err), nil)
	}
	formatter.VerboseLog("Found %d scenario file(s) in %s", len(files), scenariosDir)

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, file := range files {
		sr := runScenario(file, opts.Update)
		if !formatter.isJSON() {
			printScenario(formatter.Writer, sr)
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	return reportTests(formatter, result)
}

// findScenarioFiles lists the .yaml and .yml files under dir, skipping
// golden directories.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && d.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(d.Name(), ext))
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

// runScenario loads and runs one scenario file, then checks or rewrites
// its golden snapshot.
func runScenario(file string, update bool) ScenarioResult {
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}
	sr := ScenarioResult{Name: scenario.Name}

	result, err := harness.Run(scenario)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return sr
	}

	snapshot, err := harness.NewSnapshot(scenario, result).Encode()
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("failed to encode snapshot: %v", err)}
		return sr
	}
	sr.Golden, err = checkGolden(goldenFilePath(file), snapshot, update)
	if err != nil {
		sr.Errors = append(sr.Errors, err.Error())
	}

	sr.Errors = append(sr.Errors, result.Errors...)
	sr.Pass = len(sr.Errors) == 0
	return sr
}

// goldenFilePath maps dir/name.yaml to dir/golden/name.golden.
func goldenFilePath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

var errGoldenMismatch = errors.New("snapshot does not match golden file (run with --update to regenerate)")

// checkGolden writes snapshot to path when update is set. Otherwise it
// compares against an existing golden file and returns "" when there is none.
func checkGolden(path string, snapshot []byte, update bool) (string, error) {
	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("failed to create golden directory: %w", err)
		}
		if err := os.WriteFile(path, snapshot, 0644); err != nil {
			return "", fmt.Errorf("failed to write golden file: %w", err)
		}
		return "updated", nil
	}

	golden, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(golden, snapshot) {
		return "", errGoldenMismatch
	}
	return "matched", nil
}

func printScenario(w io.Writer, sr ScenarioResult) {
	if !sr.Pass {
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return
	}
	if sr.Golden == "updated" {
		fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
		return
	}
	fmt.Fprintf(w, "✓ %s\n", sr.Name)
}

func reportTests(formatter *OutputFormatter, result TestResult) error {
	summary := func(w io.Writer) error {
		if result.Total == 0 {
			fmt.Fprintln(w, "No scenarios found.")
			return nil
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
		if result.Failed == 0 {
			fmt.Fprintln(w, "✓ All scenarios passed")
		}
		return nil
	}

	if result.Failed > 0 {
		message := fmt.Sprintf("%d scenario(s) failed", result.Failed)
		return formatter.Reject(ExitFailure, ErrCodeScenario, message, result, summary)
	}
	return formatter.Render(result, summary)
}
