package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It lists every step involved so the failure can be read on its own.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Steps    []StepResult // Steps the assertion looked at
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Steps) > 0 {
		fmt.Fprintf(&buf, "\nSteps:\n")
		for _, s := range e.Steps {
			fmt.Fprintf(&buf, "  %q -> %q %s\n", s.Query, s.Serialized, shortFingerprint(s.Fingerprint))
		}
	}

	return buf.String()
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

// assertRoundTrip checks that every successfully parsed step serializes to
// text that parses back to the same clauses.
func assertRoundTrip(steps []StepResult) error {
	var broken []StepResult
	for _, s := range steps {
		if s.ErrorCode == "" && !s.RoundTrips {
			broken = append(broken, s)
		}
	}
	if len(broken) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertRoundTrip,
		Expected: "parse(serialize(clauses)) == clauses for every step",
		Actual:   fmt.Sprintf("%d step(s) did not round-trip", len(broken)),
		Steps:    broken,
	}
}

// assertTrees checks that the listed steps compile to the same tree
// (same == true) or to pairwise different trees.
func assertTrees(steps []StepResult, a Assertion, same bool) error {
	picked := make([]StepResult, 0, len(a.Steps))
	for _, n := range a.Steps {
		if n < 0 || n >= len(steps) {
			return fmt.Errorf("%s: step %d out of range", a.Type, n)
		}
		if steps[n].ErrorCode != "" {
			return fmt.Errorf("%s: step %d failed to parse (%s)", a.Type, n, steps[n].ErrorCode)
		}
		picked = append(picked, steps[n])
	}

	seen := make(map[string]bool, len(picked))
	for _, s := range picked {
		seen[s.Fingerprint] = true
	}

	switch {
	case same && len(seen) != 1:
		return &AssertionError{
			Type:     a.Type,
			Expected: "one compiled tree",
			Actual:   fmt.Sprintf("%d distinct trees", len(seen)),
			Steps:    picked,
		}
	case !same && len(seen) != len(picked):
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d distinct trees", len(picked)),
			Actual:   fmt.Sprintf("%d distinct trees", len(seen)),
			Steps:    picked,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertRoundTrip:
			err = assertRoundTrip(result.Steps)
		case AssertSameTree:
			err = assertTrees(result.Steps, assertion, true)
		case AssertDistinctTree:
			err = assertTrees(result.Steps, assertion, false)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
