package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/portalsearch/internal/querytree"
)

// Snapshot is the golden form of a scenario run: for each step, the query,
// its canonical text and compiled tree, or its syntax error code.
type Snapshot struct {
	ScenarioName string
	Profile      string
	Steps        []StepResult
}

// toCanonicalMap converts a Snapshot to plain maps for canonical JSON
// serialization. Fingerprints are left out since the tree is present.
func (s *Snapshot) toCanonicalMap() map[string]any {
	steps := make([]any, len(s.Steps))
	for i, step := range s.Steps {
		m := map[string]any{"query": step.Query}
		if step.ErrorCode != "" {
			m["error"] = step.ErrorCode
		} else {
			m["serialized"] = step.Serialized
			m["tree"] = step.Tree
		}
		steps[i] = m
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"profile":       s.Profile,
		"steps":         steps,
	}
}

// Encode returns the canonical JSON form of the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return querytree.MarshalCanonical(s.toCanonicalMap())
}

// NewSnapshot builds the snapshot of a finished run.
func NewSnapshot(scenario *Scenario, result *Result) *Snapshot {
	p := scenario.Profile
	if p == "" {
		if h, err := New(scenario); err == nil {
			p = h.profile.String()
		}
	}
	return &Snapshot{
		ScenarioName: scenario.Name,
		Profile:      p,
		Steps:        result.Steps,
	}
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the scenario's golden
// file without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenario, result).Encode()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
